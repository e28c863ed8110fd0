// Package token issues and validates the signed bearer tokens used for
// authentication. Tokens are stateless: validity is determined solely by
// the HMAC signature and the expiry claim, with no server-side storage
// and no revocation.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for every rejected token. Expired, tampered
// and malformed tokens are deliberately indistinguishable to the caller.
var ErrInvalidToken = errors.New("invalid token")

// Claims represents the JWT claims carried by issued tokens.
// It embeds standard JWT claims and adds the user's email;
// the user id travels in the standard `sub` claim.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// UserID returns the numeric user id stored in the subject claim.
func (c *Claims) UserID() (int, error) {
	id, err := strconv.Atoi(c.Subject)
	if err != nil {
		return 0, fmt.Errorf("non-numeric subject claim: %w", err)
	}

	return id, nil
}

// Service signs and verifies tokens with a process-wide secret loaded
// once at startup.
type Service struct {
	signingSecretKey []byte
	tokenLifetime    time.Duration
}

// New creates a token Service with the given HMAC signing secret and
// token lifetime.
func New(signingSecretKey []byte, tokenLifetime time.Duration) *Service {
	return &Service{
		signingSecretKey: signingSecretKey,
		tokenLifetime:    tokenLifetime,
	}
}

// Issue produces a signed token bound to the user's id and email.
// The expiry claim is set to the configured lifetime from now.
func (s *Service) Issue(userID int, email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
		Email: email,
	})

	tokenString, err := token.SignedString(s.signingSecretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Validate checks the token's signature and expiry and returns its claims.
// Every failure maps to ErrInvalidToken.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.signingSecretKey, nil
		},
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
