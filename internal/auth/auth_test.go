package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/bookmarks/internal/db/memorystorage"
	"github.com/patric-chuzhbe/bookmarks/internal/logger"
	"github.com/patric-chuzhbe/bookmarks/internal/models"
	"github.com/patric-chuzhbe/bookmarks/internal/token"
)

var testSecretKey = []byte("test-signing-secret-key")

func setupAuth(t *testing.T) (*Auth, *token.Service) {
	t.Helper()

	err := logger.Init("debug")
	require.NoError(t, err)

	db, err := memorystorage.New()
	require.NoError(t, err)

	tokens := token.New(testSecretKey, 15*time.Minute)

	return New(db, tokens), tokens
}

func TestRegisterIssuesTokenBoundToNewUser(t *testing.T) {
	theAuth, tokens := setupAuth(t)

	accessToken, err := theAuth.Register(context.Background(), &models.RegisterRequest{
		Email:     "a@x.com",
		FirstName: "A",
		Password:  "pw",
	})
	require.NoError(t, err)

	claims, err := tokens.Validate(accessToken)
	require.NoError(t, err)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, 1, userID)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	theAuth, _ := setupAuth(t)

	_, err := theAuth.Register(context.Background(), &models.RegisterRequest{
		Email:     "a@x.com",
		FirstName: "A",
		Password:  "pw",
	})
	require.NoError(t, err)

	_, err = theAuth.Register(context.Background(), &models.RegisterRequest{
		Email:     "a@x.com",
		FirstName: "B",
		Password:  "another pw entirely",
	})
	assert.ErrorIs(t, err, models.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	theAuth, tokens := setupAuth(t)

	_, err := theAuth.Register(context.Background(), &models.RegisterRequest{
		Email:     "a@x.com",
		FirstName: "A",
		Password:  "pw",
	})
	require.NoError(t, err)

	t.Run("correct credentials", func(t *testing.T) {
		accessToken, err := theAuth.Login(context.Background(), &models.LoginRequest{
			Email:    "a@x.com",
			Password: "pw",
		})
		require.NoError(t, err)

		claims, err := tokens.Validate(accessToken)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", claims.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := theAuth.Login(context.Background(), &models.LoginRequest{
			Email:    "a@x.com",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := theAuth.Login(context.Background(), &models.LoginRequest{
			Email:    "nobody@x.com",
			Password: "pw",
		})
		assert.ErrorIs(t, err, models.ErrUserNotFound)
	})
}

func TestAuthenticateMiddleware(t *testing.T) {
	theAuth, tokens := setupAuth(t)

	var seenUserID int
	var seenOK bool
	handler := theAuth.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID, seenOK = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	validToken, err := tokens.Issue(7, "a@x.com")
	require.NoError(t, err)

	expiredTokens := token.New(testSecretKey, -time.Minute)
	expiredToken, err := expiredTokens.Issue(7, "a@x.com")
	require.NoError(t, err)

	tests := []struct {
		name               string
		authorization      string
		expectedStatusCode int
	}{
		{
			name:               "valid bearer token",
			authorization:      "Bearer " + validToken,
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "missing header",
			authorization:      "",
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "wrong scheme",
			authorization:      "Basic " + validToken,
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "tampered token",
			authorization:      "Bearer " + validToken + "xx",
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "expired token",
			authorization:      "Bearer " + expiredToken,
			expectedStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seenUserID, seenOK = 0, false

			request := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			if tt.authorization != "" {
				request.Header.Set("Authorization", tt.authorization)
			}

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.expectedStatusCode, recorder.Code)

			if tt.expectedStatusCode == http.StatusOK {
				assert.True(t, seenOK)
				assert.Equal(t, 7, seenUserID)
			} else {
				assert.False(t, seenOK)
			}
		})
	}
}
