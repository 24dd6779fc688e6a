package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"authgate/config"
	deliverycontext "authgate/internal/delivery/context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Directory lookups are single indexed statements; anything slower is worth a warning.
const directorySlowQuery = 200 * time.Millisecond

// gormSlogLogger writes GORM output through the request logger when the query
// context carries one, so directory SQL lines share the request_id.
type gormSlogLogger struct {
	base      *slog.Logger
	mode      logger.LogLevel
	slowQuery time.Duration
}

func newGormSlogLogger(base *slog.Logger, cfg *config.Config) logger.Interface {
	mode := logger.Warn
	if cfg != nil && cfg.Env.Debug {
		mode = logger.Info
	}

	return &gormSlogLogger{base: base, mode: mode, slowQuery: directorySlowQuery}
}

func (l *gormSlogLogger) LogMode(mode logger.LogLevel) logger.Interface {
	next := *l
	next.mode = mode

	return &next
}

func (l *gormSlogLogger) Info(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Info, slog.LevelInfo, "GORM info", msg, args)
}

func (l *gormSlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Warn, slog.LevelWarn, "GORM warn", msg, args)
}

func (l *gormSlogLogger) Error(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Error, slog.LevelError, "GORM error", msg, args)
}

// Trace reports a finished statement. Missing rows are an expected directory
// answer and are not logged.
func (l *gormSlogLogger) Trace(ctx context.Context, begin time.Time, sqlAndRowsFn func() (string, int64), err error) {
	if l.base == nil || l.mode == logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.mode >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		l.query(ctx, slog.LevelError, "GORM query failed", sqlAndRowsFn, elapsed, slog.String("error", err.Error()))
	case l.slowQuery > 0 && elapsed > l.slowQuery && l.mode >= logger.Warn:
		l.query(ctx, slog.LevelWarn, "GORM slow query", sqlAndRowsFn, elapsed, slog.Duration("slowThreshold", l.slowQuery))
	case l.mode >= logger.Info:
		l.query(ctx, slog.LevelInfo, "GORM query", sqlAndRowsFn, elapsed)
	}
}

func (l *gormSlogLogger) printf(ctx context.Context, threshold logger.LogLevel, level slog.Level, title, msg string, args []any) {
	if l.base == nil || l.mode < threshold {
		return
	}

	l.loggerFor(ctx).LogAttrs(ctx, level, title, slog.String("message", fmt.Sprintf(msg, args...)))
}

func (l *gormSlogLogger) query(ctx context.Context, level slog.Level, title string, sqlAndRowsFn func() (string, int64), elapsed time.Duration, extra ...slog.Attr) {
	sql, rows := sqlAndRowsFn()
	attrs := append([]slog.Attr{
		slog.Duration("elapsed", elapsed),
		slog.Int64("rows", rows),
		slog.String("sql", sql),
	}, extra...)

	l.loggerFor(ctx).LogAttrs(ctx, level, title, attrs...)
}

func (l *gormSlogLogger) loggerFor(ctx context.Context) *slog.Logger {
	return deliverycontext.Logger(ctx, l.base)
}
