package config

import (
	"testing"
	"time"
)

func TestApplyDefaults(t *testing.T) {
	tests := []struct {
		name  string
		input Config
		check func(*testing.T, *Config)
	}{
		{
			name:  "empty config gets all defaults",
			input: Config{},
			check: func(t *testing.T, cfg *Config) {
				if len(cfg.Detection.Ports) != len(DefaultPorts) {
					t.Fatalf("expected %d ports, got %v", len(DefaultPorts), cfg.Detection.Ports)
				}
				for i, p := range DefaultPorts {
					if cfg.Detection.Ports[i] != p {
						t.Errorf("port %d: expected %d, got %d", i, p, cfg.Detection.Ports[i])
					}
				}
				if cfg.Detection.ProbeTimeout != DefaultProbeTimeout {
					t.Errorf("expected probe timeout %v, got %v", DefaultProbeTimeout, cfg.Detection.ProbeTimeout)
				}
				if cfg.Detection.VerifyTLS {
					t.Error("expected TLS verification to be off by default")
				}
				if cfg.Detection.MaxConcurrency != DefaultMaxConcurrency {
					t.Errorf("expected max concurrency %d, got %d", DefaultMaxConcurrency, cfg.Detection.MaxConcurrency)
				}
				if cfg.Chat.WordWrap != DefaultWordWrap {
					t.Errorf("expected word wrap %d, got %d", DefaultWordWrap, cfg.Chat.WordWrap)
				}
				if cfg.Telemetry.Logging.Level != DefaultLoggingLevel {
					t.Errorf("expected logging level %q, got %q", DefaultLoggingLevel, cfg.Telemetry.Logging.Level)
				}
				if cfg.Telemetry.Logging.Format != DefaultLoggingFormat {
					t.Errorf("expected logging format %q, got %q", DefaultLoggingFormat, cfg.Telemetry.Logging.Format)
				}
				if cfg.Telemetry.Metrics.Enabled {
					t.Error("expected metrics to be disabled by default")
				}
				if cfg.Telemetry.Tracing.ServiceName != DefaultTracingService {
					t.Errorf("expected service name %q, got %q", DefaultTracingService, cfg.Telemetry.Tracing.ServiceName)
				}
			},
		},
		{
			name: "existing values are preserved",
			input: Config{
				Detection: DetectionConfig{Ports: []int{9999}, ProbeTimeout: time.Second},
				Chat:      ChatConfig{WordWrap: 60},
				Telemetry: TelemetryConfig{Logging: LoggingConfig{Level: "debug", Format: "json"}},
			},
			check: func(t *testing.T, cfg *Config) {
				if len(cfg.Detection.Ports) != 1 || cfg.Detection.Ports[0] != 9999 {
					t.Errorf("expected ports [9999], got %v", cfg.Detection.Ports)
				}
				if cfg.Detection.ProbeTimeout != time.Second {
					t.Errorf("expected probe timeout 1s, got %v", cfg.Detection.ProbeTimeout)
				}
				if cfg.Chat.WordWrap != 60 {
					t.Errorf("expected word wrap 60, got %d", cfg.Chat.WordWrap)
				}
				if cfg.Telemetry.Logging.Level != "debug" {
					t.Errorf("expected level debug, got %q", cfg.Telemetry.Logging.Level)
				}
			},
		},
		{
			name: "provider timeout is defaulted",
			input: Config{
				Providers: map[string]ProviderConfig{"openai": {APIKey: "k"}},
			},
			check: func(t *testing.T, cfg *Config) {
				if got := cfg.Providers["openai"].Timeout; got != DefaultProviderTimeout {
					t.Errorf("expected provider timeout %v, got %v", DefaultProviderTimeout, got)
				}
			},
		},
		{
			name: "textfile enables metrics",
			input: Config{
				Telemetry: TelemetryConfig{Metrics: MetricsConfig{Textfile: "/tmp/chatifier.prom"}},
			},
			check: func(t *testing.T, cfg *Config) {
				if !cfg.Telemetry.Metrics.Enabled {
					t.Error("expected metrics to be enabled when a textfile is set")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.input
			ApplyDefaults(&cfg)
			tt.check(t, &cfg)
		})
	}
}

func TestApplyDefaults_Idempotent(t *testing.T) {
	cfg := Default()
	before := len(cfg.Detection.Ports)
	ApplyDefaults(cfg)
	if len(cfg.Detection.Ports) != before {
		t.Errorf("expected ports to stay at %d entries, got %d", before, len(cfg.Detection.Ports))
	}
}

func TestDefault_DoesNotAliasPorts(t *testing.T) {
	cfg := Default()
	cfg.Detection.Ports[0] = 1
	if DefaultPorts[0] != 8080 {
		t.Fatalf("modifying a config changed DefaultPorts: %v", DefaultPorts)
	}
}

func TestDefault_IsValid(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Errorf("expected defaults to validate, got: %v", err)
	}
}

func TestConfig_Provider(t *testing.T) {
	var nilCfg *Config
	if got := nilCfg.Provider("openai"); got != (ProviderConfig{}) {
		t.Errorf("expected zero value from nil config, got %+v", got)
	}

	cfg := &Config{Providers: map[string]ProviderConfig{"ollama": {Model: "llama3"}}}
	if got := cfg.Provider("ollama").Model; got != "llama3" {
		t.Errorf("expected model llama3, got %q", got)
	}
	if got := cfg.Provider("openai"); got != (ProviderConfig{}) {
		t.Errorf("expected zero value for unconfigured provider, got %+v", got)
	}
}
