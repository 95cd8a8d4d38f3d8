package config

import "time"

// Default values for configuration fields.
const (
	// Detection defaults
	DefaultProbeTimeout   = 5 * time.Second
	DefaultMaxConcurrency = 8

	// Provider defaults
	DefaultProviderTimeout = 30 * time.Second

	// Chat defaults
	DefaultWordWrap = 100

	// Telemetry defaults
	DefaultLoggingLevel       = "info"
	DefaultLoggingFormat      = "text"
	DefaultMetricsNamespace   = "chatifier"
	DefaultTracingSampler     = "always"
	DefaultTracingSampleRatio = 1.0
	DefaultTracingEndpoint    = "localhost:4317"
	DefaultTracingService     = "chatifier"
	DefaultOTLPTimeout        = 10 * time.Second
)

// DefaultPorts is the port order tried when a target has no explicit port.
// Common development server ports come first, then Ollama, then the
// standard web ports.
var DefaultPorts = []int{8080, 8000, 3000, 5000, 11434, 80, 443}

// DefaultDurationBuckets are the latency histogram buckets in seconds.
var DefaultDurationBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}

// Default returns a configuration with every default applied. It is used
// when no configuration file exists.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Detection defaults
	if len(cfg.Detection.Ports) == 0 {
		cfg.Detection.Ports = append([]int(nil), DefaultPorts...)
	}
	if cfg.Detection.ProbeTimeout == 0 {
		cfg.Detection.ProbeTimeout = DefaultProbeTimeout
	}
	if cfg.Detection.MaxConcurrency == 0 {
		cfg.Detection.MaxConcurrency = DefaultMaxConcurrency
	}

	// Provider defaults - applied to each provider
	for name, provider := range cfg.Providers {
		if provider.Timeout == 0 {
			provider.Timeout = DefaultProviderTimeout
		}
		cfg.Providers[name] = provider
	}

	// Chat defaults
	if cfg.Chat.WordWrap == 0 {
		cfg.Chat.WordWrap = DefaultWordWrap
	}

	// Logging defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}

	// Metrics defaults
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if len(cfg.Telemetry.Metrics.DurationBuckets) == 0 {
		cfg.Telemetry.Metrics.DurationBuckets = append([]float64(nil), DefaultDurationBuckets...)
	}
	if cfg.Telemetry.Metrics.Textfile != "" {
		cfg.Telemetry.Metrics.Enabled = true
	}

	// Tracing defaults
	if cfg.Telemetry.Tracing.Sampler == "" {
		cfg.Telemetry.Tracing.Sampler = DefaultTracingSampler
	}
	if cfg.Telemetry.Tracing.SampleRatio == 0 {
		cfg.Telemetry.Tracing.SampleRatio = DefaultTracingSampleRatio
	}
	if cfg.Telemetry.Tracing.Endpoint == "" {
		cfg.Telemetry.Tracing.Endpoint = DefaultTracingEndpoint
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultTracingService
	}
	if cfg.Telemetry.Tracing.OTLP.Timeout == 0 {
		cfg.Telemetry.Tracing.OTLP.Timeout = DefaultOTLPTimeout
	}
}
