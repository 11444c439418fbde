// Package metrics holds per-endpoint business metrics for the API handlers.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// APIMetrics records latency and outcome per API endpoint.
type APIMetrics struct {
	latency  *prometheus.HistogramVec
	outcomes *prometheus.CounterVec
}

func NewAPIMetrics(reg prometheus.Registerer) *APIMetrics {
	f := promauto.With(reg)
	return &APIMetrics{
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stockpulse",
				Subsystem: "api",
				Name:      "latency_seconds",
				Help:      "Latency of API endpoints including upstream lookups",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
			},
			[]string{"endpoint"},
		),
		outcomes: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stockpulse",
				Subsystem: "api",
				Name:      "outcomes_total",
				Help:      "API results by endpoint and outcome code",
			},
			[]string{"endpoint", "outcome"},
		),
	}
}

// Observe records one call. outcome is "ok" or an error code.
func (m *APIMetrics) Observe(endpoint, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.latency.WithLabelValues(endpoint).Observe(elapsed.Seconds())
	m.outcomes.WithLabelValues(endpoint, outcome).Inc()
}
