package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. IDs are UUIDv7 generated by the application
// so the table does not depend on a PostgreSQL extension.
// It is an exported type so it can be shared by the repository and its tests.
type UserModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"type:varchar(100);not null"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex:users_email_key;not null"`
	PasswordDigest string    `gorm:"type:text;not null"`
	CreatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
