package auth

import (
	"authgate/config"
	"authgate/internal/domain/service"
)

// digester is a PasswordHasher that can tell whether a stored digest is in its format.
type digester interface {
	service.PasswordHasher
	handles(digest string) bool
}

// passwordHasher hashes with the configured algorithm and checks against whichever
// algorithm produced the stored digest, so switching auth.hasher keeps old accounts working.
type passwordHasher struct {
	primary   digester
	digesters []digester
}

// NewPasswordHasher builds the hasher selected by auth.hasher.
func NewPasswordHasher(cfg *config.Config) service.PasswordHasher {
	cost := config.DefaultBcryptCost
	algorithm := config.HasherBcrypt
	if cfg != nil && cfg.Auth != nil {
		cost = cfg.Auth.BcryptCost
		if cfg.Auth.Hasher != "" {
			algorithm = cfg.Auth.Hasher
		}
	}

	bcryptDigester := newBcryptHasher(cost)
	argon2Digester := &argon2idHasher{}

	primary := digester(bcryptDigester)
	if algorithm == config.HasherArgon2id {
		primary = argon2Digester
	}

	return &passwordHasher{
		primary:   primary,
		digesters: []digester{bcryptDigester, argon2Digester},
	}
}

// Hash generates a digest with the configured algorithm.
func (h *passwordHasher) Hash(password string) (string, error) {
	return h.primary.Hash(password)
}

// Check verifies the password against a digest of any supported algorithm.
func (h *passwordHasher) Check(password, digest string) bool {
	for _, d := range h.digesters {
		if d.handles(digest) {
			return d.Check(password, digest)
		}
	}

	return false
}
