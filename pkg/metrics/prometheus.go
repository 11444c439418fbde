package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements repository.Metrics using Prometheus.
type Recorder struct {
	signals     *prometheus.CounterVec
	sourceErrs  *prometheus.CounterVec
	resolutions *prometheus.CounterVec
	adjustment  prometheus.Histogram
	latency     *prometheus.HistogramVec
}

// New creates a recorder on the default registry.
func New() *Recorder {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a recorder on reg. Tests pass a fresh registry
// so repeated construction does not panic on duplicate registration.
func NewWithRegistry(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		signals: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpulse_signals_total",
				Help: "Sentiment signals evaluated, by signal and availability",
			},
			[]string{"signal", "available"},
		),
		sourceErrs: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpulse_source_errors_total",
				Help: "Upstream data source failures",
			},
			[]string{"source"},
		),
		resolutions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpulse_reconciliations_total",
				Help: "Forecast reconciliations by resolution kind",
			},
			[]string{"resolution"},
		),
		adjustment: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "stockpulse_sentiment_adjustment_pct",
				Help:    "Percent difference between adjusted and base forecast",
				Buckets: []float64{-10, -5, -3, -1, -0.5, 0, 0.5, 1, 3, 5, 10},
			},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockpulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordSignal counts whether a sentiment signal contributed to a summary.
func (r *Recorder) RecordSignal(signal string, available bool) {
	v := "false"
	if available {
		v = "true"
	}
	r.signals.WithLabelValues(signal, v).Inc()
}

// RecordSourceError records an upstream failure.
func (r *Recorder) RecordSourceError(source string) {
	r.sourceErrs.WithLabelValues(source).Inc()
}

// RecordResolution records which reconciliation branch fired.
func (r *Recorder) RecordResolution(kind string) {
	r.resolutions.WithLabelValues(kind).Inc()
}

// RecordAdjustment observes the sentiment adjustment percentage.
func (r *Recorder) RecordAdjustment(pct float64) {
	r.adjustment.Observe(pct)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
