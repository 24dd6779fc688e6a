// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import "errors"

// ErrPasswordTooLong is returned by hashers whose algorithm truncates or rejects long input.
var ErrPasswordTooLong = errors.New("password exceeds the maximum supported length")

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted digest from a plaintext password. It fails only when
	// the password is too long for the algorithm or the system cannot supply randomness.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a digest. Any failure, including a
	// malformed digest, reports false.
	Check(password, digest string) bool
}
