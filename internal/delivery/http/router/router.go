// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"authgate/internal/delivery/http/middleware"
	"authgate/internal/delivery/http/router/handler"
	"authgate/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	Metrics        *metrics.Metrics `optional:"true"`
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	authMiddleware *middleware.AuthMiddleware
	metrics        *metrics.Metrics
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		authMiddleware: params.AuthMiddleware,
		metrics:        params.Metrics,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	if r.metrics != nil && r.metrics.Enabled() {
		e.GET(r.metrics.Path(), echo.WrapHandler(r.metrics.Handler()))
	}

	e.POST("/signup", r.authHandler.Signup)
	e.POST("/login", r.authHandler.Login)

	// Routes that require a session token
	e.GET("/profile", r.authHandler.Profile, r.authMiddleware.Authenticate)
	e.GET("/account", r.authHandler.Account, r.authMiddleware.Authenticate)
}
