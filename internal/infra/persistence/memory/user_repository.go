// Package memory contains an in-process user directory for local runs and tests.
package memory

import (
	"context"
	"time"

	"authgate/internal/domain/entity"
	"authgate/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/puzpuzpuz/xsync/v3"
)

// userRepository keeps users keyed by email. LoadOrStore on the email key is the
// uniqueness constraint; the ID index is only written after the email is won.
type userRepository struct {
	byEmail *xsync.MapOf[string, *entity.User]
	byID    *xsync.MapOf[uuid.UUID, *entity.User]
}

// NewUserRepository is the constructor for the in-memory directory.
func NewUserRepository() repository.UserRepository {
	return &userRepository{
		byEmail: xsync.NewMapOf[string, *entity.User](),
		byID:    xsync.NewMapOf[uuid.UUID, *entity.User](),
	}
}

// FindByEmail retrieves a copy of the user stored under email.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	user, ok := repo.byEmail.Load(email)
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return cloneUser(user), nil
}

// FindByID retrieves a copy of the user with the given ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	user, ok := repo.byID.Load(id)
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return cloneUser(user), nil
}

// InsertIfAbsent stores the user unless its email is already present.
func (repo *userRepository) InsertIfAbsent(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}
	if user == nil {
		return errors.New("user must not be nil")
	}

	stored := cloneUser(user)
	if stored.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate user id")
		}
		stored.ID = id
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}

	if _, loaded := repo.byEmail.LoadOrStore(stored.Email, stored); loaded {
		return errors.Wrap(repository.ErrDuplicateKey, "email already exists")
	}
	repo.byID.Store(stored.ID, stored)

	user.ID = stored.ID
	user.CreatedAt = stored.CreatedAt

	return nil
}

func cloneUser(user *entity.User) *entity.User {
	clone := *user

	return &clone
}
