package config

import "time"

// Config is the root configuration for chatifier.
// It contains all configuration sections for detection, provider connection
// overrides, the chat loop, and telemetry.
type Config struct {
	// Detection controls how an unknown host is probed.
	Detection DetectionConfig `yaml:"detection"`

	// Providers maps provider identifiers to connection overrides.
	// Keys must be one of KnownProviders.
	Providers map[string]ProviderConfig `yaml:"providers"`

	// Chat contains interactive chat loop settings.
	Chat ChatConfig `yaml:"chat"`

	// Telemetry contains logging, metrics, and tracing configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// DetectionConfig controls endpoint detection.
type DetectionConfig struct {
	// Ports is the ordered list of ports tried when the target has no
	// explicit port. Earlier ports win ties.
	// Default: [8080, 8000, 3000, 5000, 11434, 80, 443]
	Ports []int `yaml:"ports"`

	// ProbeTimeout bounds every single probe attempt.
	// Default: 5s
	ProbeTimeout time.Duration `yaml:"probe_timeout"`

	// VerifyTLS enables certificate verification for probes and provider
	// clients. Most targets are local hosts with self-signed certificates.
	// Default: false
	VerifyTLS bool `yaml:"verify_tls"`

	// Parallel probes all candidates concurrently. The winner is still the
	// first candidate in declaration order.
	// Default: false
	Parallel bool `yaml:"parallel"`

	// MaxConcurrency limits in-flight probes in parallel mode.
	// Default: 8
	MaxConcurrency int `yaml:"max_concurrency"`
}

// ProviderConfig holds connection overrides for one provider.
type ProviderConfig struct {
	// BaseURL replaces the detected or default base URL.
	BaseURL string `yaml:"base_url"`

	// APIKey is the credential sent to the provider.
	// Supports environment variable substitution: ${ENV_VAR}
	APIKey string `yaml:"api_key"`

	// Model is the initially selected model.
	Model string `yaml:"model"`

	// Timeout bounds each request to the provider.
	// Default: 30s
	Timeout time.Duration `yaml:"timeout"`
}

// ChatConfig contains chat loop settings.
type ChatConfig struct {
	// PlainText prints replies verbatim instead of rendering markdown.
	// Default: false
	PlainText bool `yaml:"plain_text"`

	// WordWrap is the column replies are wrapped at when rendering markdown.
	// Default: 100
	WordWrap int `yaml:"word_wrap"`

	// WatchConfig reloads the configuration file while a session runs.
	// Only the log level takes effect mid-session.
	// Default: false
	WatchConfig bool `yaml:"watch_config"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`

	// RedactPatterns contains extra redaction patterns applied on top of
	// the built-in credential patterns.
	RedactPatterns []RedactPattern `yaml:"redact_patterns"`
}

// RedactPattern defines a custom redaction pattern.
type RedactPattern struct {
	// Name is a descriptive name for the pattern.
	Name string `yaml:"name"`

	// Pattern is the regular expression to match.
	Pattern string `yaml:"pattern"`

	// Replacement is the string to replace matches with.
	Replacement string `yaml:"replacement"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected.
	// Default: false (enabled implicitly when Textfile is set)
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "chatifier"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: ""
	Subsystem string `yaml:"subsystem"`

	// Textfile is the path the registry is written to on exit, in the
	// node_exporter textfile format.
	Textfile string `yaml:"textfile"`

	// DurationBuckets defines histogram buckets for probe, detection and
	// provider latency (seconds).
	// Default: [0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30]
	DurationBuckets []float64 `yaml:"duration_buckets"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "always"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is the service name in traces.
	// Default: "chatifier"
	ServiceName string `yaml:"service_name"`

	// OTLP contains OTLP exporter specific configuration.
	OTLP OTLPConfig `yaml:"otlp"`
}

// OTLPConfig contains OTLP exporter configuration.
type OTLPConfig struct {
	// Insecure disables TLS for the OTLP connection. Set it for a local
	// collector without certificates.
	// Default: false
	Insecure bool `yaml:"insecure"`

	// Timeout is the timeout for OTLP exports.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}

// KnownProviders lists the provider identifiers accepted under providers.
// It mirrors the client factory registry.
var KnownProviders = []string{"openai", "anthropic", "ollama", "gemini", "cohere", "generic"}

// Provider returns the overrides for id, or the zero value when none are
// configured.
func (c *Config) Provider(id string) ProviderConfig {
	if c == nil || c.Providers == nil {
		return ProviderConfig{}
	}
	return c.Providers[id]
}
