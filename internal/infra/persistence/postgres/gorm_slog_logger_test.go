package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"authgate/config"
	deliverycontext "authgate/internal/delivery/context"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newBufferedGormLogger(debug bool) (*bytes.Buffer, logger.Interface) {
	buf := &bytes.Buffer{}
	base := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cfg := &config.Config{}
	cfg.Env.Debug = debug

	return buf, newGormSlogLogger(base, cfg)
}

func sqlFn(sql string) func() (string, int64) {
	return func() (string, int64) { return sql, 1 }
}

func TestGormSlogLogger_TraceError(t *testing.T) {
	buf, l := newBufferedGormLogger(false)

	l.Trace(context.Background(), time.Now(), sqlFn("INSERT INTO users"), errors.New("boom"))

	assert.Contains(t, buf.String(), "GORM query failed")
	assert.Contains(t, buf.String(), "INSERT INTO users")
	assert.Contains(t, buf.String(), "boom")
}

func TestGormSlogLogger_IgnoresRecordNotFound(t *testing.T) {
	buf, l := newBufferedGormLogger(false)

	l.Trace(context.Background(), time.Now(), sqlFn("SELECT * FROM users"), gorm.ErrRecordNotFound)

	assert.Empty(t, buf.String())
}

func TestGormSlogLogger_SlowQuery(t *testing.T) {
	buf, l := newBufferedGormLogger(false)

	l.Trace(context.Background(), time.Now().Add(-time.Second), sqlFn("SELECT pg_sleep(1)"), nil)

	assert.Contains(t, buf.String(), "GORM slow query")
}

func TestGormSlogLogger_InfoOnlyInDebug(t *testing.T) {
	buf, l := newBufferedGormLogger(false)
	l.Trace(context.Background(), time.Now(), sqlFn("SELECT 1"), nil)
	assert.Empty(t, buf.String())

	buf, l = newBufferedGormLogger(true)
	l.Trace(context.Background(), time.Now(), sqlFn("SELECT 1"), nil)
	assert.Contains(t, buf.String(), "GORM query")
}

func TestGormSlogLogger_LogModeSilent(t *testing.T) {
	buf, l := newBufferedGormLogger(true)

	l.LogMode(logger.Silent).Trace(context.Background(), time.Now(), sqlFn("SELECT 1"), errors.New("boom"))

	assert.Empty(t, buf.String())
}

func TestGormSlogLogger_UsesRequestLogger(t *testing.T) {
	baseBuf, l := newBufferedGormLogger(false)

	reqBuf := &bytes.Buffer{}
	reqLogger := slog.New(slog.NewTextHandler(reqBuf, nil)).With(slog.String("request_id", "req-42"))
	ctx := deliverycontext.WithRequest(context.Background(), "req-42", reqLogger)

	l.Trace(ctx, time.Now(), sqlFn("INSERT INTO users"), errors.New("boom"))

	assert.Empty(t, baseBuf.String())
	assert.Contains(t, reqBuf.String(), "request_id=req-42")
	assert.Contains(t, reqBuf.String(), "GORM query failed")
}
