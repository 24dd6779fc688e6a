// Package context carries request-scoped values from the HTTP layer down to the
// workflow and the storage logger.
package context

import (
	"context"
	"log/slog"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	loggerKey    contextKey = "logger"
)

// HeaderXRequestID is the header a client may set to choose its own request ID.
const HeaderXRequestID = "X-Request-Id"

// WithRequest returns ctx carrying the request ID and the logger scoped to it.
func WithRequest(ctx context.Context, requestID string, logger *slog.Logger) context.Context {
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	if logger != nil {
		ctx = context.WithValue(ctx, loggerKey, logger)
	}

	return ctx
}

// RequestID returns the ID stored by WithRequest, or "" outside a request.
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey).(string)

	return id
}

// Logger returns the request logger stored by WithRequest, or fallback.
func Logger(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if ctx == nil {
		return fallback
	}
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}
