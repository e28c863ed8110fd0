// Package models defines the data structures exchanged between the HTTP
// boundary, the services, and the storage layer, along with the sentinel
// errors used to classify ordinary failures.
package models

import "errors"

// User is the stored identity record. PasswordHash never leaves the
// storage/auth layers; handlers respond with UserView instead.
type User struct {
	ID           int
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
}

// UserView is the outward shape of a user. It has no hash field at all,
// so the hash cannot leak through serialization.
type UserView struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName,omitempty"`
}

// View returns the public projection of the user.
func (u *User) View() *UserView {
	return &UserView{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// Bookmark is a saved link owned by a single user.
type Bookmark struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link"`
	UserID      int    `json:"userId"`
}

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required,alpha"`
	LastName  string `json:"lastName,omitempty" validate:"omitempty,alpha"`
	Password  string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse carries the issued bearer token back to the client.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

// EditUserRequest is a partial profile update. Nil fields are left unchanged.
type EditUserRequest struct {
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,alpha"`
	LastName  *string `json:"lastName,omitempty" validate:"omitempty,alpha"`
}

type CreateBookmarkRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link" validate:"required,url"`
}

// EditBookmarkRequest is a partial bookmark update. Nil fields are left unchanged.
type EditBookmarkRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1"`
	Description *string `json:"description,omitempty"`
	Link        *string `json:"link,omitempty" validate:"omitempty,url"`
}

// ValidationErrorsResponse is the body of a 400 response produced by the
// request-schema validation step.
type ValidationErrorsResponse struct {
	Errors []string `json:"errors"`
}

const (
	StorageTypeUnknown = iota
	StorageTypePostgresql
	StorageTypeFile
	StorageTypeMemory
)

var (
	// ErrEmailTaken is returned when a user record would violate email uniqueness.
	ErrEmailTaken = errors.New("the email is already taken")

	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("the user was not found")

	// ErrInvalidCredentials is returned when the password does not match the stored hash.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrBookmarkNotFound covers both an absent bookmark and one owned by
	// another user, so the two cases are indistinguishable to the caller.
	ErrBookmarkNotFound = errors.New("the bookmark was not found")
)
