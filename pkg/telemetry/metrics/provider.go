package metrics

import (
	"time"

	"mercator-hq/chatifier/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// ProviderMetrics tracks traffic between chatifier and the provider API.
//
// Metrics:
//   - chatifier_provider_requests_total: HTTP requests by provider, operation and outcome
//   - chatifier_provider_latency_seconds: HTTP request latency
//   - chatifier_chat_exchanges_total: user-visible chat turns by outcome
type ProviderMetrics struct {
	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	exchanges *prometheus.CounterVec
}

// NewProviderMetrics creates and registers provider metrics with the provided registry.
func NewProviderMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ProviderMetrics {
	pm := &ProviderMetrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "provider_requests_total",
				Help:      "Total number of provider HTTP requests by outcome",
			},
			[]string{"provider", "operation", "outcome"},
		),

		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "provider_latency_seconds",
				Help:      "Provider HTTP request latency in seconds",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"provider", "operation"},
		),

		exchanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "chat_exchanges_total",
				Help:      "Total number of chat turns by outcome",
			},
			[]string{"provider", "model", "outcome"},
		),
	}

	registry.MustRegister(pm.requests, pm.latency, pm.exchanges)

	return pm
}

// RecordRequest records one provider HTTP request.
func (pm *ProviderMetrics) RecordRequest(provider, operation, outcome string, duration time.Duration) {
	pm.requests.WithLabelValues(provider, operation, outcome).Inc()
	pm.latency.WithLabelValues(provider, operation).Observe(duration.Seconds())
}

// RecordExchange records one chat turn.
func (pm *ProviderMetrics) RecordExchange(provider, model, outcome string) {
	pm.exchanges.WithLabelValues(provider, model, outcome).Inc()
}
