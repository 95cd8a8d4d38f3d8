package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mercator-hq/chatifier/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:         true,
		Namespace:       "test",
		DurationBuckets: []float64{0.1, 0.5, 1.0, 5.0},
	}
}

func TestNewCollector_Defaults(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: true}
	collector := NewCollector(cfg, nil)

	require.NotNil(t, collector.Registry())
	assert.Equal(t, config.DefaultMetricsNamespace, cfg.Namespace)
	assert.Equal(t, config.DefaultDurationBuckets, cfg.DurationBuckets)
}

func TestCollector_RecordProbe(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordProbe("HEAD", OutcomeSuccess, 10*time.Millisecond)
	collector.RecordProbe("HEAD", OutcomeSuccess, 20*time.Millisecond)
	collector.RecordProbe("GET", OutcomeUnreachable, time.Second)

	attempts := collector.probeMetrics.attempts
	assert.Equal(t, 2.0, testutil.ToFloat64(attempts.WithLabelValues("HEAD", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(attempts.WithLabelValues("GET", OutcomeUnreachable)))
}

func TestCollector_ObserveDetection(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.ObserveDetection("ollama", "sequential", 12, 300*time.Millisecond)
	collector.ObserveDetection("", "parallel", 84, 2*time.Second)

	runs := collector.detectionMetrics.runs
	assert.Equal(t, 1.0, testutil.ToFloat64(runs.WithLabelValues("ollama")))
	assert.Equal(t, 1.0, testutil.ToFloat64(runs.WithLabelValues("none")))
	assert.Equal(t, 2, testutil.CollectAndCount(collector.detectionMetrics.duration))
}

func TestCollector_RecordProviderRequest(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordProviderRequest("openai", "send_message", OutcomeSuccess, time.Second)
	collector.RecordProviderRequest("openai", "connect_check", OutcomeAuth, 50*time.Millisecond)

	requests := collector.providerMetrics.requests
	assert.Equal(t, 1.0, testutil.ToFloat64(requests.WithLabelValues("openai", "send_message", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(requests.WithLabelValues("openai", "connect_check", OutcomeAuth)))
	assert.Equal(t, 2, testutil.CollectAndCount(collector.providerMetrics.latency))
}

func TestCollector_RecordExchange_CapsModels(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	collector.cardinalityLimiter = NewCardinalityLimiter(1)

	collector.RecordExchange("generic", "first", OutcomeSuccess)
	collector.RecordExchange("generic", "second", OutcomeSuccess)

	exchanges := collector.providerMetrics.exchanges
	assert.Equal(t, 1.0, testutil.ToFloat64(exchanges.WithLabelValues("generic", "first", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(exchanges.WithLabelValues("generic", "other", OutcomeSuccess)))
}

func TestCollector_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	collector := NewCollector(cfg, prometheus.NewRegistry())

	collector.RecordProbe("HEAD", OutcomeSuccess, time.Millisecond)
	collector.RecordProviderRequest("openai", "send_message", OutcomeSuccess, time.Millisecond)

	assert.Equal(t, 0, testutil.CollectAndCount(collector.probeMetrics.attempts))
	assert.Equal(t, 0, testutil.CollectAndCount(collector.providerMetrics.requests))
}

func TestCollector_NilIsSafe(t *testing.T) {
	var collector *Collector

	assert.NotPanics(t, func() {
		collector.RecordProbe("HEAD", OutcomeSuccess, time.Millisecond)
		collector.ObserveDetection("openai", "sequential", 1, time.Millisecond)
		collector.RecordProviderRequest("openai", "send_message", OutcomeError, time.Millisecond)
		collector.RecordExchange("openai", "gpt-4o", OutcomeError)
	})
	assert.Nil(t, collector.Registry())
	assert.NoError(t, collector.WriteTextfile(filepath.Join(t.TempDir(), "m.prom")))
}

func TestCollector_WriteTextfile(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	collector.RecordProbe("GET", OutcomeError, 100*time.Millisecond)

	path := filepath.Join(t.TempDir(), "chatifier.prom")
	require.NoError(t, collector.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `test_probe_attempts_total{method="GET",outcome="error"} 1`),
		"unexpected textfile contents:\n%s", data)
}

func TestCollector_WriteTextfile_BadPath(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	err := collector.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "m.prom"))
	assert.Error(t, err)
}

func TestCardinalityLimiter(t *testing.T) {
	cl := NewCardinalityLimiter(2)

	assert.True(t, cl.Allow("a"))
	assert.True(t, cl.Allow("b"))
	assert.True(t, cl.Allow("a"))
	assert.False(t, cl.Allow("c"))
	assert.Equal(t, 2, cl.Count())
}
