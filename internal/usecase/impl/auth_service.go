// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "authgate/internal/delivery/context"
	"authgate/internal/domain/entity"
	domainerrors "authgate/internal/domain/errors"
	"authgate/internal/domain/repository"
	"authgate/internal/domain/service"
	"authgate/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	recorder     usecase.OutcomeRecorder
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
	Recorder     usecase.OutcomeRecorder `optional:"true"`
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		recorder:     params.Recorder,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.Logger(ctx, srv.logger)
}

func (srv *authService) record(operation string, err error) {
	if srv.recorder == nil {
		return
	}

	outcome := usecase.OutcomeSuccess
	if err != nil {
		outcome = domainerrors.ErrInternalError.ErrorCode()
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			outcome = appErr.ErrorCode()
		}
	}

	srv.recorder.RecordOutcome(operation, outcome)
}

// Register hashes the password and stores a new account unless the email is taken.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (out *usecase.RegisterOutput, err error) {
	defer func() { srv.record(usecase.OperationRegister, err) }()

	email := entity.NormalizeEmail(input.Email)
	srv.log(ctx).Info("Starting registration", slog.String("email", email))

	digest, err := srv.hasher.Hash(input.Password)
	if err != nil {
		if errors.Is(err, service.ErrPasswordTooLong) {
			srv.log(ctx).Warn("Password rejected during registration", slog.String("email", email), slog.Any("error", err))

			return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails(err.Error()), "register")
		}
		srv.log(ctx).Error("Failed to hash password during registration", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "register")
	}

	user := &entity.User{
		Name:           strings.TrimSpace(input.Name),
		Email:          email,
		PasswordDigest: digest,
	}
	if err := srv.userRepo.InsertIfAbsent(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			srv.log(ctx).Warn("Registration rejected, account exists", slog.String("email", email))

			return nil, domainerrors.ErrAccountAlreadyExists.WrapMessage("register")
		}
		srv.log(ctx).Error("Failed to store account", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrapf(domainerrors.ErrStorageFailure, "register: %v", err)
	}

	srv.log(ctx).Info("Registration completed", slog.Any("userID", user.ID))

	return &usecase.RegisterOutput{User: user.Public()}, nil
}

// Authenticate verifies the credentials and issues a session token.
func (srv *authService) Authenticate(ctx context.Context, input *usecase.AuthenticateInput) (out *usecase.AuthenticateOutput, err error) {
	defer func() { srv.record(usecase.OperationAuthenticate, err) }()

	email := entity.NormalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting login", slog.String("email", email))

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.Any("error", err))

			return nil, domainerrors.ErrUserNotFound.WrapMessage("login failed")
		}
		srv.log(ctx).Error("Failed to load account", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrapf(domainerrors.ErrStorageFailure, "login: %v", err)
	}

	if !srv.hasher.Check(input.Password, user.PasswordDigest) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	identity := service.TokenIdentity{UserID: user.ID, Name: user.Name}
	token, err := srv.tokenService.Issue(identity, srv.tokenService.DefaultTTL())
	if err != nil {
		srv.log(ctx).Error("Failed to issue session token", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrapf(domainerrors.ErrTokenIssueFailed, "login: %v", err)
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return &usecase.AuthenticateOutput{Token: token, User: user.Public()}, nil
}

// AccessProtectedResource validates the session token and returns its claims.
// Every token failure surfaces as ErrUnauthorized.
func (srv *authService) AccessProtectedResource(ctx context.Context, token string) (out *usecase.Principal, err error) {
	defer func() { srv.record(usecase.OperationAccess, err) }()

	claims, err := srv.tokenService.Validate(token)
	if err != nil {
		srv.log(ctx).Debug("Token rejected", slog.Any("error", err))

		return nil, domainerrors.ErrUnauthorized.WrapMessage("access denied")
	}

	return &usecase.Principal{
		UserID:    claims.UserID,
		Name:      claims.Name,
		IssuedAt:  claims.IssuedAtTime().UTC(),
		ExpiresAt: claims.ExpiresAtTime().UTC(),
	}, nil
}

// GetAccount returns the directory record for an authenticated user.
func (srv *authService) GetAccount(ctx context.Context, userID uuid.UUID) (out *entity.PublicUser, err error) {
	defer func() { srv.record(usecase.OperationGetAccount, err) }()

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("get account")
		}
		srv.log(ctx).Error("Failed to load account", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrapf(domainerrors.ErrStorageFailure, "get account: %v", err)
	}

	public := user.Public()

	return &public, nil
}
