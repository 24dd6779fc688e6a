// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"authgate/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup key.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateKey is returned when an insert would violate the email uniqueness constraint.
	ErrDuplicateKey = errors.New("duplicate key")
)

// UserRepository is the user directory the auth workflow depends on.
// Implementations own email uniqueness; the workflow never checks it itself.
type UserRepository interface {
	// FindByEmail retrieves a single user by their email address.
	// It returns ErrUserNotFound when no record exists.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// InsertIfAbsent stores the user unless the email is already taken, in which
	// case it returns ErrDuplicateKey. It must be atomic with respect to the
	// uniqueness constraint: of N concurrent inserts for one email exactly one wins.
	// On success the directory assigns ID and CreatedAt on the passed record.
	InsertIfAbsent(ctx context.Context, user *entity.User) error
}
