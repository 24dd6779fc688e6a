package middleware

import (
	"log/slog"

	"authgate/config"

	"github.com/labstack/echo/v4"
	slogecho "github.com/samber/slog-echo"
)

// NewLoggerMiddleware builds the access log. Request and response bodies are never
// logged since they carry credentials and tokens; debug mode adds headers minus
// Authorization.
func NewLoggerMiddleware(logger *slog.Logger, cfg *config.Config) echo.MiddlewareFunc {
	debug := cfg != nil && cfg.Env.Debug

	return slogecho.NewWithConfig(logger, slogecho.Config{
		DefaultLevel:      slog.LevelInfo,
		ClientErrorLevel:  slog.LevelWarn,
		ServerErrorLevel:  slog.LevelError,
		WithRequestID:     true,
		WithUserAgent:     debug,
		WithRequestHeader: debug,
	})
}
