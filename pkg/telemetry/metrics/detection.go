package metrics

import (
	"time"

	"mercator-hq/chatifier/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// DetectionMetrics tracks whole detection runs.
//
// Metrics:
//   - chatifier_detection_runs_total: runs by detected provider ("none" when nothing answered)
//   - chatifier_detection_duration_seconds: wall time per run by mode
//   - chatifier_detection_candidates: candidates probed per run
type DetectionMetrics struct {
	runs       *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	candidates prometheus.Histogram
}

// NewDetectionMetrics creates and registers detection metrics with the provided registry.
func NewDetectionMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *DetectionMetrics {
	dm := &DetectionMetrics{
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "detection_runs_total",
				Help:      "Total number of detection runs by detected provider",
			},
			[]string{"provider"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "detection_duration_seconds",
				Help:      "Detection run duration in seconds",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"mode"},
		),
		candidates: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "detection_candidates",
				Help:      "Number of candidate URLs probed per detection run",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
	}

	registry.MustRegister(dm.runs, dm.duration, dm.candidates)

	return dm
}

// Observe records one detection run.
func (dm *DetectionMetrics) Observe(provider, mode string, candidates int, duration time.Duration) {
	dm.runs.WithLabelValues(provider).Inc()
	dm.duration.WithLabelValues(mode).Observe(duration.Seconds())
	dm.candidates.Observe(float64(candidates))
}
