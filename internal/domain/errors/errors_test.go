package errors

import (
	"net/http"
	"testing"

	"authgate/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_WrapMessageKeepsIdentity(t *testing.T) {
	err := ErrAccountAlreadyExists.WrapMessage("email already registered")

	assert.True(t, errors.Is(err, ErrAccountAlreadyExists))
	assert.False(t, errors.Is(err, ErrStorageFailure))
	assert.Contains(t, err.Error(), "email already registered")

	var appErr AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusConflict, appErr.HTTPCode())
	assert.Equal(t, "ACCOUNT_ALREADY_EXISTS", appErr.ErrorCode())
	assert.Equal(t, "User already exists", appErr.Message())
}

func TestBaseError_WithDetails(t *testing.T) {
	detailed := ErrValidationFailed.WithDetails("email is required")

	assert.Equal(t, "email is required", detailed.Details())
	assert.Empty(t, ErrValidationFailed.Details())
	assert.Equal(t, ErrValidationFailed.ErrorCode(), detailed.ErrorCode())
}

func TestTaxonomy_MessagesAreDistinct(t *testing.T) {
	taxonomy := []*BaseError{
		ErrAccountAlreadyExists,
		ErrStorageFailure,
		ErrUserNotFound,
		ErrInvalidCredentials,
		ErrUnauthorized,
	}

	seenCodes := map[string]bool{}
	seenMessages := map[string]bool{}
	for _, e := range taxonomy {
		assert.False(t, seenCodes[e.ErrorCode()], "duplicate code %s", e.ErrorCode())
		assert.False(t, seenMessages[e.Message()], "duplicate message %s", e.Message())
		seenCodes[e.ErrorCode()] = true
		seenMessages[e.Message()] = true
	}
}

func TestBaseError_DetailedCopyMatchesPredefined(t *testing.T) {
	err := errors.Wrap(ErrValidationFailed.WithDetails("password too long"), "register")

	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.False(t, errors.Is(err, ErrPasswordHashFailed))
}
