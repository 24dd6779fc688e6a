// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"authgate/internal/domain/entity"
	"authgate/internal/domain/repository"
	"authgate/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		Take(&userM).Error
	if err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	// Map the persistence model back to a pure domain entity before returning.
	return toUserDomain(&userM), nil
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// InsertIfAbsent inserts the user with ON CONFLICT (email) DO NOTHING, so the unique
// index decides the winner of concurrent registrations without aborting the statement.
func (repo *userRepository) InsertIfAbsent(ctx context.Context, user *entity.User) error {
	userM, err := fromUserDomain(user)
	if err != nil {
		return err
	}

	result := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).
		Create(userM)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return errors.Wrap(repository.ErrDuplicateKey, "email already exists")
		}

		return errors.Wrap(result.Error, "failed to insert user")
	}

	if result.RowsAffected == 0 {
		return errors.Wrap(repository.ErrDuplicateKey, "email already exists")
	}

	// Update the user entity with the generated ID and timestamps
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:             data.ID,
		Name:           data.Name,
		Email:          data.Email,
		PasswordDigest: data.PasswordDigest,
		CreatedAt:      data.CreatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence,
// assigning a UUIDv7 and creation time when the entity has none.
func fromUserDomain(data *entity.User) (*model.UserModel, error) {
	if data == nil {
		return nil, errors.New("user must not be nil")
	}

	id := data.ID
	if id == uuid.Nil {
		generated, err := uuid.NewV7()
		if err != nil {
			return nil, errors.Wrap(err, "failed to generate user id")
		}
		id = generated
	}

	createdAt := data.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	return &model.UserModel{
		ID:             id,
		Name:           data.Name,
		Email:          data.Email,
		PasswordDigest: data.PasswordDigest,
		CreatedAt:      createdAt,
	}, nil
}
