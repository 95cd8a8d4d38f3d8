package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := Default()
	cfg.Providers = map[string]ProviderConfig{
		"openai": {BaseURL: "https://api.openai.com", Timeout: time.Second},
		"ollama": {},
	}

	if err := Validate(cfg); err != nil {
		t.Errorf("expected valid config to pass validation, got error: %v", err)
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := &Config{}

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	var validationErr ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(validationErr.Errors) < 2 {
		t.Errorf("expected multiple errors, got %d", len(validationErr.Errors))
	}
	if !strings.Contains(validationErr.Error(), "validation failed with") {
		t.Errorf("error message should mention multiple errors: %s", validationErr.Error())
	}
}

func TestValidate_Fields(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*Config)
		errorField string
	}{
		{
			name:       "no ports",
			mutate:     func(c *Config) { c.Detection.Ports = nil },
			errorField: "detection.ports",
		},
		{
			name:       "port out of range",
			mutate:     func(c *Config) { c.Detection.Ports = []int{8080, 70000} },
			errorField: "detection.ports[1]",
		},
		{
			name:       "duplicate port",
			mutate:     func(c *Config) { c.Detection.Ports = []int{80, 80} },
			errorField: "detection.ports[1]",
		},
		{
			name:       "zero probe timeout",
			mutate:     func(c *Config) { c.Detection.ProbeTimeout = 0 },
			errorField: "detection.probe_timeout",
		},
		{
			name:       "zero concurrency",
			mutate:     func(c *Config) { c.Detection.MaxConcurrency = 0 },
			errorField: "detection.max_concurrency",
		},
		{
			name: "unknown provider",
			mutate: func(c *Config) {
				c.Providers = map[string]ProviderConfig{"mistral": {}}
			},
			errorField: "providers.mistral",
		},
		{
			name: "relative base url",
			mutate: func(c *Config) {
				c.Providers = map[string]ProviderConfig{"generic": {BaseURL: "localhost:8080"}}
			},
			errorField: "providers.generic.base_url",
		},
		{
			name: "negative provider timeout",
			mutate: func(c *Config) {
				c.Providers = map[string]ProviderConfig{"cohere": {Timeout: -time.Second}}
			},
			errorField: "providers.cohere.timeout",
		},
		{
			name:       "negative word wrap",
			mutate:     func(c *Config) { c.Chat.WordWrap = -1 },
			errorField: "chat.word_wrap",
		},
		{
			name:       "bad log level",
			mutate:     func(c *Config) { c.Telemetry.Logging.Level = "verbose" },
			errorField: "telemetry.logging.level",
		},
		{
			name:       "bad log format",
			mutate:     func(c *Config) { c.Telemetry.Logging.Format = "xml" },
			errorField: "telemetry.logging.format",
		},
		{
			name: "bad redact pattern",
			mutate: func(c *Config) {
				c.Telemetry.Logging.RedactPatterns = []RedactPattern{{Name: "broken", Pattern: "("}}
			},
			errorField: "telemetry.logging.redact_patterns[0].pattern",
		},
		{
			name:       "unsorted buckets",
			mutate:     func(c *Config) { c.Telemetry.Metrics.DurationBuckets = []float64{1, 0.5} },
			errorField: "telemetry.metrics.duration_buckets",
		},
		{
			name: "bad sampler",
			mutate: func(c *Config) {
				c.Telemetry.Tracing.Enabled = true
				c.Telemetry.Tracing.Sampler = "sometimes"
			},
			errorField: "telemetry.tracing.sampler",
		},
		{
			name: "ratio out of range",
			mutate: func(c *Config) {
				c.Telemetry.Tracing.Enabled = true
				c.Telemetry.Tracing.SampleRatio = 1.5
			},
			errorField: "telemetry.tracing.sample_ratio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			found := false
			for _, fe := range verr.Errors {
				if fe.Field == tt.errorField {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on %q, got %v", tt.errorField, verr.Errors)
			}
		})
	}
}

func TestValidate_TracingIgnoredWhenDisabled(t *testing.T) {
	cfg := Default()
	cfg.Telemetry.Tracing.Sampler = "sometimes"

	if err := Validate(cfg); err != nil {
		t.Errorf("disabled tracing should not be validated, got: %v", err)
	}
}

func TestFieldError_Error(t *testing.T) {
	fe := FieldError{Field: "detection.ports", Message: "at least one port is required"}
	if got := fe.Error(); got != "detection.ports: at least one port is required" {
		t.Errorf("unexpected message %q", got)
	}

	single := ValidationError{Errors: []FieldError{fe}}
	if !strings.HasPrefix(single.Error(), "configuration validation failed: detection.ports") {
		t.Errorf("unexpected single error message %q", single.Error())
	}
}
