package metrics

import (
	"fmt"
	"sync"
	"time"

	"mercator-hq/chatifier/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values shared by probe, provider and exchange metrics.
const (
	OutcomeSuccess     = "success"
	OutcomeAuth        = "auth"
	OutcomeError       = "error"
	OutcomeUnreachable = "unreachable"
)

// Collector owns every chatifier metric and the registry they live in.
//
// All methods are safe to call on a nil *Collector, which records nothing.
// Library code therefore takes a *Collector without checking whether
// metrics were enabled.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	probeMetrics     *ProbeMetrics
	detectionMetrics *DetectionMetrics
	providerMetrics  *ProviderMetrics

	// Model names come from remote servers, so their label values are capped.
	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a private registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{Enabled: true, Namespace: "chatifier"}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = append([]float64(nil), config.DefaultDurationBuckets...)
	}

	c := &Collector{
		config:             cfg,
		registry:           registry,
		cardinalityLimiter: NewCardinalityLimiter(200),
	}

	c.probeMetrics = NewProbeMetrics(cfg, registry)
	c.detectionMetrics = NewDetectionMetrics(cfg, registry)
	c.providerMetrics = NewProviderMetrics(cfg, registry)

	return c
}

func (c *Collector) enabled() bool {
	return c != nil && c.config.Enabled
}

// RecordProbe records one probe attempt.
//
// Parameters:
//   - method: HTTP method used ("HEAD" or "GET")
//   - outcome: OutcomeSuccess for status < 500, OutcomeError for >= 500,
//     OutcomeUnreachable when no response arrived
//   - duration: time spent on the attempt
func (c *Collector) RecordProbe(method, outcome string, duration time.Duration) {
	if !c.enabled() {
		return
	}

	c.probeMetrics.Record(method, outcome, duration)
}

// ObserveDetection records a finished detection run. provider is empty when
// nothing answered.
func (c *Collector) ObserveDetection(provider, mode string, candidates int, duration time.Duration) {
	if !c.enabled() {
		return
	}

	if provider == "" {
		provider = "none"
	}
	c.detectionMetrics.Observe(provider, mode, candidates, duration)
}

// RecordProviderRequest records one HTTP exchange with a provider.
//
// Parameters:
//   - provider: provider identifier (e.g., "openai", "ollama")
//   - operation: client operation ("connect_check", "list_models", "send_message", ...)
//   - outcome: one of the Outcome constants
//   - duration: time from request start to body read
func (c *Collector) RecordProviderRequest(provider, operation, outcome string, duration time.Duration) {
	if !c.enabled() {
		return
	}

	c.providerMetrics.RecordRequest(provider, operation, outcome, duration)
}

// RecordExchange records one chat turn as seen by the user.
func (c *Collector) RecordExchange(provider, model, outcome string) {
	if !c.enabled() {
		return
	}

	labelSet := fmt.Sprintf("exchange:%s:%s", provider, model)
	if !c.cardinalityLimiter.Allow(labelSet) {
		// Aggregate into "other" to prevent cardinality explosion
		model = "other"
	}

	c.providerMetrics.RecordExchange(provider, model, outcome)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// WriteTextfile writes every registered metric to path in the text
// exposition format, for pickup by the node_exporter textfile collector.
// The file is replaced atomically.
func (c *Collector) WriteTextfile(path string) error {
	if !c.enabled() || path == "" {
		return nil
	}

	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %q: %w", path, err)
	}
	return nil
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label combinations per metric.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow checks if a label set is allowed. Returns true if the label set
// already exists or if we haven't reached the cardinality limit yet.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	if _, exists := cl.current[labelSet]; exists {
		return true
	}
	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
