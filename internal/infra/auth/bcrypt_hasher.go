// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"authgate/config"
	"authgate/internal/domain/service"
)

// bcryptMaxPasswordBytes is the input length bcrypt accepts before rejecting the password.
const bcryptMaxPasswordBytes = 72

var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher is the constructor for bcryptHasher.
// Costs outside bcrypt's accepted range fall back to config.DefaultBcryptCost.
func NewBcryptHasher(cost int) service.PasswordHasher {
	return newBcryptHasher(cost)
}

func newBcryptHasher(cost int) *bcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = config.DefaultBcryptCost
	}

	return &bcryptHasher{cost: cost}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation and embeds the cost in the digest.
func (h *bcryptHasher) Hash(password string) (string, error) {
	if len(password) > bcryptMaxPasswordBytes {
		return "", service.ErrPasswordTooLong
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	return string(bytes), err
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}

func (h *bcryptHasher) handles(digest string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(digest, prefix) {
			return true
		}
	}

	return false
}
