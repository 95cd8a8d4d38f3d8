package metrics

import (
	"time"

	"mercator-hq/chatifier/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// ProbeMetrics tracks individual connectivity probes.
//
// Metrics:
//   - chatifier_probe_attempts_total: probe attempts by method and outcome
//   - chatifier_probe_duration_seconds: probe attempt latency
type ProbeMetrics struct {
	attempts *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewProbeMetrics creates and registers probe metrics with the provided registry.
func NewProbeMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ProbeMetrics {
	pm := &ProbeMetrics{
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "probe_attempts_total",
				Help:      "Total number of probe attempts by HTTP method and outcome",
			},
			[]string{"method", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "probe_duration_seconds",
				Help:      "Probe attempt duration in seconds",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"method"},
		),
	}

	registry.MustRegister(pm.attempts, pm.duration)

	return pm
}

// Record records one probe attempt.
func (pm *ProbeMetrics) Record(method, outcome string, duration time.Duration) {
	pm.attempts.WithLabelValues(method, outcome).Inc()
	pm.duration.WithLabelValues(method).Observe(duration.Seconds())
}
