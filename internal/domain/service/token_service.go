package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token verification failures. Callers outside the token service see them
// only through the workflow's single unauthorized error.
var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token signature or format")
	ErrTokenExpired = errors.New("token expired")
)

// TokenIdentity is the identity a session token is issued for.
type TokenIdentity struct {
	UserID uuid.UUID
	Name   string
}

// Claims defines the custom claims for the session token.
type Claims struct {
	UserID uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	jwt.RegisteredClaims
}

// IssuedAtTime returns the iat claim, or the zero time when absent.
func (c *Claims) IssuedAtTime() time.Time {
	if c.IssuedAt == nil {
		return time.Time{}
	}

	return c.IssuedAt.Time
}

// ExpiresAtTime returns the exp claim, or the zero time when absent.
func (c *Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}

	return c.ExpiresAt.Time
}

// TokenService defines the interface for issuing and validating session tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Issue creates a signed token for the identity that expires after ttl.
	// A non-positive ttl selects the service default.
	Issue(identity TokenIdentity, ttl time.Duration) (string, error)

	// Validate checks structure, signature and expiry and returns the embedded claims.
	Validate(tokenString string) (*Claims, error)

	// DefaultTTL returns the lifetime applied when Issue receives no ttl.
	DefaultTTL() time.Duration
}
