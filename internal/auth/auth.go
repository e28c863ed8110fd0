// Package auth orchestrates sign-up and sign-in (password hashing, user
// persistence, token issuance) and provides the middleware that guards
// protected routes by validating bearer tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/patric-chuzhbe/bookmarks/internal/hasher"
	"github.com/patric-chuzhbe/bookmarks/internal/logger"
	"github.com/patric-chuzhbe/bookmarks/internal/models"
	"github.com/patric-chuzhbe/bookmarks/internal/token"
)

type userKeeper interface {
	CreateUser(ctx context.Context, usr *models.User) (int, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Auth handles user registration, login, and request authentication.
type Auth struct {
	db     userKeeper
	tokens *token.Service
}

// ContextKey is a custom type for storing values in context to avoid collisions.
type ContextKey string

// UserIDKey is the context key used to store and retrieve the authenticated user's ID.
const UserIDKey ContextKey = "userID"

// New creates a new Auth service with the given user data access layer
// and token service.
func New(db userKeeper, tokens *token.Service) *Auth {
	return &Auth{
		db:     db,
		tokens: tokens,
	}
}

// Register hashes the password, persists a new user record, and issues a
// bearer token bound to the new user's id and email. A duplicate email
// surfaces as models.ErrEmailTaken. If token issuance fails after the
// record was created, the record is not rolled back.
func (a *Auth) Register(ctx context.Context, request *models.RegisterRequest) (string, error) {
	passwordHash, err := hasher.Hash(request.Password)
	if err != nil {
		return "", fmt.Errorf("error while `hasher.Hash()` calling: %w", err)
	}

	userID, err := a.db.CreateUser(ctx, &models.User{
		Email:        request.Email,
		FirstName:    request.FirstName,
		LastName:     request.LastName,
		PasswordHash: passwordHash,
	})
	if err != nil {
		return "", err
	}

	return a.tokens.Issue(userID, request.Email)
}

// Login looks the user up by email, verifies the password against the
// stored hash, and issues a bearer token. An unknown email surfaces as
// models.ErrUserNotFound and a wrong password as models.ErrInvalidCredentials;
// the router maps both to one uniform response.
func (a *Auth) Login(ctx context.Context, request *models.LoginRequest) (string, error) {
	usr, err := a.db.GetUserByEmail(ctx, request.Email)
	if err != nil {
		return "", err
	}

	passwordMatches, err := hasher.Verify(usr.PasswordHash, request.Password)
	if err != nil {
		return "", fmt.Errorf("error while `hasher.Verify()` calling: %w", err)
	}
	if !passwordMatches {
		return "", models.ErrInvalidCredentials
	}

	return a.tokens.Issue(usr.ID, usr.Email)
}

// Authenticate is an HTTP middleware that validates the bearer token from
// the Authorization header and stores the resolved user ID in the request
// context. Requests with a missing, expired, or tampered token are rejected
// with 401 before any handler logic runs. The identity is derived purely
// from token claims; the storage is not queried.
func (a *Auth) Authenticate(h http.Handler) http.Handler {
	middleware := func(response http.ResponseWriter, request *http.Request) {
		tokenString, found := strings.CutPrefix(request.Header.Get("Authorization"), "Bearer ")
		if !found {
			response.WriteHeader(http.StatusUnauthorized)
			return
		}

		claims, err := a.tokens.Validate(tokenString)
		if err != nil {
			if !errors.Is(err, token.ErrInvalidToken) {
				logger.Log.Debugln("Error calling the `a.tokens.Validate()`: ", zap.Error(err))
			}
			response.WriteHeader(http.StatusUnauthorized)
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			logger.Log.Debugln("Error calling the `claims.UserID()`: ", zap.Error(err))
			response.WriteHeader(http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(request.Context(), UserIDKey, userID)
		requestWithCtx := request.WithContext(ctx)

		h.ServeHTTP(response, requestWithCtx)
	}

	return http.HandlerFunc(middleware)
}

// UserIDFromContext extracts the authenticated user's ID placed into the
// context by the Authenticate middleware.
func UserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(UserIDKey).(int)

	return userID, ok
}
