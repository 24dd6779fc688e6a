package impl

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"authgate/config"

	"github.com/golang-jwt/jwt/v5"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(tokenTTL time.Duration) *config.Config {
	return &config.Config{
		SecretKey: config.SecretKeyConfig{Access: "test-secret"},
		Auth: &config.AuthConfig{
			Hasher:     config.HasherBcrypt,
			BcryptCost: 4,
			TokenTTL:   tokenTTL,
		},
	}
}

// outcomeLog records workflow outcomes in call order.
type outcomeLog struct {
	mu      sync.Mutex
	entries []string
}

func (l *outcomeLog) RecordOutcome(operation, outcome string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, operation+":"+outcome)
}

func (l *outcomeLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]string(nil), l.entries...)
}

func jwtTime(t time.Time) *jwt.NumericDate {
	return jwt.NewNumericDate(t)
}
