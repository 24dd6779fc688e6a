// Package metrics exposes Prometheus counters for the auth workflow.
package metrics

import (
	"net/http"

	"authgate/config"
	"authgate/internal/usecase"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so the process-wide default one stays untouched.
type Metrics struct {
	registry     *prometheus.Registry
	authOutcomes *prometheus.CounterVec
	enabled      bool
	path         string
}

// New creates the registry with the standard Go and process collectors plus
// the auth outcome counter.
func New(cfg *config.Config) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	authOutcomes := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "authgate_auth_operations_total",
			Help: "Total number of auth workflow operations by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)
	registry.MustRegister(authOutcomes)

	m := &Metrics{
		registry:     registry,
		authOutcomes: authOutcomes,
		enabled:      true,
		path:         "/metrics",
	}
	if cfg != nil && cfg.Metrics != nil {
		m.enabled = cfg.Metrics.Enabled
		if cfg.Metrics.Path != "" {
			m.path = cfg.Metrics.Path
		}
	}

	return m
}

// NewRecorder exposes m as the workflow's outcome recorder.
func NewRecorder(m *Metrics) usecase.OutcomeRecorder {
	return m
}

// RecordOutcome increments the counter for one finished workflow operation.
func (m *Metrics) RecordOutcome(operation, outcome string) {
	m.authOutcomes.WithLabelValues(operation, outcome).Inc()
}

// Enabled reports whether the scrape endpoint should be mounted.
func (m *Metrics) Enabled() bool {
	return m.enabled
}

// Path is the route the scrape endpoint is mounted on.
func (m *Metrics) Path() string {
	return m.path
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}
