// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"authgate/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthenticateInput defines the credentials presented at login.
type AuthenticateInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// RegisterOutput acknowledges a registration with the stored account's public fields.
type RegisterOutput struct {
	User entity.PublicUser
}

// AuthenticateOutput returns the session token issued at login.
type AuthenticateOutput struct {
	Token string
	User  entity.PublicUser
}

// Principal is the identity decoded from a valid session token.
type Principal struct {
	UserID    uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

// AuthUsecase defines the account and session operations exposed to the delivery layer.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Authenticate(ctx context.Context, input *AuthenticateInput) (*AuthenticateOutput, error)
	AccessProtectedResource(ctx context.Context, token string) (*Principal, error)

	// GetAccount loads the current directory record for an authenticated principal.
	GetAccount(ctx context.Context, userID uuid.UUID) (*entity.PublicUser, error)
}

// Operation names reported to an OutcomeRecorder.
const (
	OperationRegister     = "register"
	OperationAuthenticate = "authenticate"
	OperationAccess       = "access"
	OperationGetAccount   = "get_account"
)

// OutcomeSuccess is the outcome label recorded when an operation succeeds.
// Failures are recorded under their business error code.
const OutcomeSuccess = "success"

// OutcomeRecorder receives the outcome of every workflow operation.
type OutcomeRecorder interface {
	RecordOutcome(operation, outcome string)
}
