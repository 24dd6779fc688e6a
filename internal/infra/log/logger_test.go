package logs

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"authgate/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogConfig(level string, pretty bool) *config.Config {
	cfg := &config.Config{}
	cfg.Env.ServiceName = "authgate"
	cfg.Env.Log.Level = level
	cfg.Env.Log.Pretty = pretty

	return cfg
}

func TestParseLogLevel(t *testing.T) {
	testCases := []struct {
		input    string
		expected slog.Level
		wantErr  bool
	}{
		{input: "debug", expected: slog.LevelDebug},
		{input: "INFO", expected: slog.LevelInfo},
		{input: "", expected: slog.LevelInfo},
		{input: "warn", expected: slog.LevelWarn},
		{input: "error", expected: slog.LevelError},
		{input: "verbose", expected: slog.LevelInfo, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			level, err := parseLogLevel(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.expected, level)
		})
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, newLogConfig("warn", false))
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept", slog.String("email", "ann@x.com"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "authgate", entry["service"])
	assert.Equal(t, "ann@x.com", entry["email"])
}

func TestNewLogger_Pretty(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, newLogConfig("debug", true))
	require.NoError(t, err)

	logger.Debug("hello")

	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "service=authgate")
}

func TestNewLogger_UnknownLevel(t *testing.T) {
	_, err := New(Params{Config: newLogConfig("loud", false)})

	assert.Error(t, err)
}
