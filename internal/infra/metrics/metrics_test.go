package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"authgate/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	return string(body)
}

func TestMetrics_RecordOutcome(t *testing.T) {
	m := New(nil)

	m.RecordOutcome("register", "success")
	m.RecordOutcome("register", "success")
	m.RecordOutcome("authenticate", "INVALID_CREDENTIALS")

	body := scrape(t, m)
	assert.Contains(t, body, `authgate_auth_operations_total{operation="register",outcome="success"} 2`)
	assert.Contains(t, body, `authgate_auth_operations_total{operation="authenticate",outcome="INVALID_CREDENTIALS"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

func TestMetrics_Config(t *testing.T) {
	defaults := New(nil)
	assert.True(t, defaults.Enabled())
	assert.Equal(t, "/metrics", defaults.Path())

	configured := New(&config.Config{Metrics: &config.MetricsConfig{Enabled: false, Path: "/internal/metrics"}})
	assert.False(t, configured.Enabled())
	assert.Equal(t, "/internal/metrics", configured.Path())
}

func TestNewRecorder(t *testing.T) {
	m := New(nil)
	recorder := NewRecorder(m)

	recorder.RecordOutcome("access", "UNAUTHORIZED")

	assert.Contains(t, scrape(t, m), `authgate_auth_operations_total{operation="access",outcome="UNAUTHORIZED"} 1`)
}
