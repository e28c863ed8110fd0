// Package validation performs the request-schema validation step executed
// before handler logic. It turns validator tag violations into a structured
// list of field errors suitable for a 400 response body.
package validation

import (
	"errors"
	"fmt"

	validator "github.com/go-playground/validator/v10"
	"github.com/thoas/go-funk"
)

// Validator validates request DTOs against their `validate` struct tags.
type Validator struct {
	validate *validator.Validate
}

// New creates a request Validator.
func New() *Validator {
	return &Validator{
		validate: validator.New(),
	}
}

// ValidateStruct checks the given request structure and returns one message
// per violated field rule. A nil result means the structure is valid.
func (v *Validator) ValidateStruct(request interface{}) []string {
	err := v.validate.Struct(request)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	return funk.Map(
		[]validator.FieldError(validationErrors),
		func(fieldError validator.FieldError) string {
			return fmt.Sprintf("%s: failed on the '%s' rule", fieldError.Field(), fieldError.Tag())
		},
	).([]string)
}
