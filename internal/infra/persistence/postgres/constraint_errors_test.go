package postgres

import (
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueConstraintViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "gorm duplicated key", err: gorm.ErrDuplicatedKey, want: true},
		{name: "wrapped gorm duplicated key", err: errors.Wrap(gorm.ErrDuplicatedKey, "insert"), want: true},
		{name: "pg unique violation", err: &pgconn.PgError{Code: pgerrcode.UniqueViolation}, want: true},
		{name: "wrapped pg unique violation", err: errors.WithStack(&pgconn.PgError{Code: pgerrcode.UniqueViolation}), want: true},
		{name: "pg not null violation", err: &pgconn.PgError{Code: pgerrcode.NotNullViolation}, want: false},
		{name: "record not found", err: gorm.ErrRecordNotFound, want: false},
		{name: "other", err: errors.New("connection refused"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUniqueConstraintViolation(tt.err))
		})
	}
}
