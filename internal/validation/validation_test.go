package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/patric-chuzhbe/bookmarks/internal/models"
)

func TestValidateStruct(t *testing.T) {
	theValidator := New()

	tests := []struct {
		name           string
		request        interface{}
		expectedErrors []string
	}{
		{
			name: "valid registration",
			request: &models.RegisterRequest{
				Email:     "a@x.com",
				FirstName: "A",
				Password:  "pw",
			},
			expectedErrors: nil,
		},
		{
			name: "optional last name may be omitted",
			request: &models.RegisterRequest{
				Email:     "a@x.com",
				FirstName: "A",
				LastName:  "",
				Password:  "pw",
			},
			expectedErrors: nil,
		},
		{
			name: "broken email and missing password",
			request: &models.RegisterRequest{
				Email:     "not-an-email",
				FirstName: "A",
			},
			expectedErrors: []string{
				"Email: failed on the 'email' rule",
				"Password: failed on the 'required' rule",
			},
		},
		{
			name: "digits in the first name",
			request: &models.RegisterRequest{
				Email:     "a@x.com",
				FirstName: "A1",
				Password:  "pw",
			},
			expectedErrors: []string{
				"FirstName: failed on the 'alpha' rule",
			},
		},
		{
			name:           "empty partial edit is valid",
			request:        &models.EditUserRequest{},
			expectedErrors: nil,
		},
		{
			name: "bookmark link must be an URL",
			request: &models.CreateBookmarkRequest{
				Title: "t",
				Link:  "not an url",
			},
			expectedErrors: []string{
				"Link: failed on the 'url' rule",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedErrors, theValidator.ValidateStruct(tt.request))
		})
	}
}
