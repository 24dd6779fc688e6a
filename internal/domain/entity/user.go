// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the account record owned by the user directory.
// It is created once at registration and never mutated by the auth workflow.
type User struct {
	ID             uuid.UUID // Opaque unique identifier assigned by the directory.
	Name           string    // Display name given at registration.
	Email          string    // Login identifier; unique across the directory.
	PasswordDigest string    // Salted one-way digest. Never leaves the workflow.
	CreatedAt      time.Time // Timestamp of when the directory accepted the record.
}

// PublicUser is the projection of a User that is safe to hand to callers.
type PublicUser struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// Public strips the credential digest from the record.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

// NormalizeEmail canonicalises an email address for use as the directory key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
