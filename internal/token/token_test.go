package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecretKey = []byte("test-signing-secret-key")

func TestIssueAndValidateRoundTrip(t *testing.T) {
	tokens := New(testSecretKey, 15*time.Minute)

	tokenString, err := tokens.Issue(42, "someone@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := tokens.Validate(tokenString)
	require.NoError(t, err)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
	assert.Equal(t, "someone@example.com", claims.Email)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(
		t,
		time.Now().Add(15*time.Minute),
		claims.ExpiresAt.Time,
		time.Minute,
	)
}

func TestValidateExpiredToken(t *testing.T) {
	tokens := New(testSecretKey, -time.Minute)

	tokenString, err := tokens.Issue(42, "someone@example.com")
	require.NoError(t, err)

	_, err = tokens.Validate(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTamperedToken(t *testing.T) {
	tokens := New(testSecretKey, 15*time.Minute)

	tokenString, err := tokens.Issue(42, "someone@example.com")
	require.NoError(t, err)

	tampered := tokenString + "xx"

	_, err = tokens.Validate(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenSignedWithDifferentKey(t *testing.T) {
	tokens := New(testSecretKey, 15*time.Minute)
	otherTokens := New([]byte("some-other-secret-key"), 15*time.Minute)

	tokenString, err := otherTokens.Issue(42, "someone@example.com")
	require.NoError(t, err)

	_, err = tokens.Validate(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateGarbage(t *testing.T) {
	tokens := New(testSecretKey, 15*time.Minute)

	_, err := tokens.Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
