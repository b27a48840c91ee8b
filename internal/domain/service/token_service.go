package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by an access token.
type Claims struct {
	UserID uuid.UUID
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating bearer tokens.
// This abstracts the details of token signing from the rest of the application.
// Tokens are stateless: every request is independently authenticated and no
// session state is created anywhere.
type TokenService interface {
	// Generate creates a signed access token for the given user.
	Generate(userID uuid.UUID) (string, error)

	// Validate checks the signature and expiry of a raw token string and
	// returns its claims. Any structural, signature, or expiry problem is an
	// error; the caller treats all of them as an invalid token.
	Validate(raw string) (*Claims, error)
}
