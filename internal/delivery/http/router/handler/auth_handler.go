// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"

	"authgate/internal/delivery/http/middleware"
	"authgate/internal/delivery/http/response"
	"authgate/internal/domain/entity"
	domainerrors "authgate/internal/domain/errors"
	"authgate/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type signupRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

type loginResponse struct {
	Token string            `json:"token"`
	User  entity.PublicUser `json:"user"`
}

type profileResponse struct {
	User *usecase.Principal `json:"user"`
}

// AuthHandler holds dependencies for account and session handlers.
type AuthHandler struct {
	uc usecase.AuthUsecase
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Signup handles the account registration request.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid signup input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output.User, "User registered successfully")
}

// Login handles the password login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Authenticate(c.Request().Context(), &usecase.AuthenticateInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, loginResponse{Token: output.Token, User: output.User}, "Login successful")
}

// Profile returns the claims of the session token. It must run behind AuthMiddleware.
func (h *AuthHandler) Profile(c echo.Context) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrUnauthorized)
	}

	return response.Success(c, http.StatusOK, profileResponse{User: principal}, "Protected route accessed")
}

// Account returns the directory record of the token's owner. It must run behind AuthMiddleware.
func (h *AuthHandler) Account(c echo.Context) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrUnauthorized)
	}

	account, err := h.uc.GetAccount(c.Request().Context(), principal.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, account, "Account retrieved successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
