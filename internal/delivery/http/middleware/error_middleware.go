package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	deliverycontext "authgate/internal/delivery/context"
	"authgate/internal/delivery/http/response"
	domainerrors "authgate/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	if renderErr := m.render(err, c); renderErr != nil {
		m.log(c).Error("Failed to write error response", slog.Any("error", renderErr))
	}
}

func (m *ErrorMiddleware) render(err error, c echo.Context) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			m.log(c).Error("Request failed", slog.String("path", c.Request().URL.Path), slog.Any("error", err))
		}

		return response.AppError(c, appErr)
	}

	// Echo's own errors: unknown route, method not allowed, body too large.
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok && msg != "" {
			message = msg
		}

		return response.Error(c, httpErr.Code, "HTTP_ERROR", message, "")
	}

	// Anything else is unexpected; keep internals out of the response.
	m.log(c).Error("Unhandled error",
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
		slog.String("error", fmt.Sprintf("%+v", err)),
	)

	return response.InternalServerError(c)
}

func (m *ErrorMiddleware) log(c echo.Context) *slog.Logger {
	return deliverycontext.Logger(c.Request().Context(), m.logger)
}
