package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
detection:
  ports: [11434, 8080]
  probe_timeout: 2s
  verify_tls: true
  parallel: true

providers:
  openai:
    api_key: "test-key-123"
    model: "gpt-4o-mini"
    timeout: 45s

chat:
  plain_text: true
  word_wrap: 72

telemetry:
  logging:
    level: "debug"
    format: "json"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if len(cfg.Detection.Ports) != 2 || cfg.Detection.Ports[0] != 11434 {
		t.Errorf("expected ports [11434 8080], got %v", cfg.Detection.Ports)
	}
	if cfg.Detection.ProbeTimeout != 2*time.Second {
		t.Errorf("expected probe timeout 2s, got %v", cfg.Detection.ProbeTimeout)
	}
	if !cfg.Detection.VerifyTLS || !cfg.Detection.Parallel {
		t.Errorf("expected verify_tls and parallel to be set, got %+v", cfg.Detection)
	}
	openai := cfg.Providers["openai"]
	if openai.APIKey != "test-key-123" || openai.Model != "gpt-4o-mini" || openai.Timeout != 45*time.Second {
		t.Errorf("unexpected openai config: %+v", openai)
	}
	if !cfg.Chat.PlainText || cfg.Chat.WordWrap != 72 {
		t.Errorf("unexpected chat config: %+v", cfg.Chat)
	}
	if cfg.Telemetry.Logging.Level != "debug" || cfg.Telemetry.Logging.Format != "json" {
		t.Errorf("unexpected logging config: %+v", cfg.Telemetry.Logging)
	}
	// untouched sections still get defaults
	if cfg.Detection.MaxConcurrency != DefaultMaxConcurrency {
		t.Errorf("expected default max concurrency, got %d", cfg.Detection.MaxConcurrency)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to read configuration file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "detection: [unclosed")

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "failed to parse configuration file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	path := writeConfig(t, `
providers:
  mistral:
    api_key: "x"
`)

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if verr.Errors[0].Field != "providers.mistral" {
		t.Errorf("expected providers.mistral field error, got %q", verr.Errors[0].Field)
	}
}

func TestLoadConfig_ExpandsAPIKey(t *testing.T) {
	t.Setenv("CHATIFIER_TEST_SECRET", "sk-from-env")
	path := writeConfig(t, `
providers:
  anthropic:
    api_key: "${CHATIFIER_TEST_SECRET}"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if got := cfg.Providers["anthropic"].APIKey; got != "sk-from-env" {
		t.Errorf("expected expanded key, got %q", got)
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
detection:
  ports: [8080]
telemetry:
  logging:
    level: info
`)

	t.Setenv("CHATIFIER_DETECTION_PORTS", "3000, 5000")
	t.Setenv("CHATIFIER_DETECTION_PROBE_TIMEOUT", "750ms")
	t.Setenv("CHATIFIER_DETECTION_VERIFY_TLS", "true")
	t.Setenv("CHATIFIER_TELEMETRY_LOGGING_LEVEL", "warn")
	t.Setenv("CHATIFIER_PROVIDERS_OLLAMA_MODEL", "mistral")
	t.Setenv("CHATIFIER_PROVIDERS_GEMINI_API_KEY", "g-key")
	t.Setenv("CHATIFIER_CHAT_PLAIN_TEXT", "1")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if len(cfg.Detection.Ports) != 2 || cfg.Detection.Ports[0] != 3000 || cfg.Detection.Ports[1] != 5000 {
		t.Errorf("expected ports [3000 5000], got %v", cfg.Detection.Ports)
	}
	if cfg.Detection.ProbeTimeout != 750*time.Millisecond {
		t.Errorf("expected probe timeout 750ms, got %v", cfg.Detection.ProbeTimeout)
	}
	if !cfg.Detection.VerifyTLS {
		t.Error("expected verify_tls override")
	}
	if cfg.Telemetry.Logging.Level != "warn" {
		t.Errorf("expected level warn, got %q", cfg.Telemetry.Logging.Level)
	}
	if got := cfg.Providers["ollama"]; got.Model != "mistral" || got.Timeout != DefaultProviderTimeout {
		t.Errorf("unexpected ollama config: %+v", got)
	}
	if got := cfg.Providers["gemini"].APIKey; got != "g-key" {
		t.Errorf("expected gemini key override, got %q", got)
	}
	if _, ok := cfg.Providers["cohere"]; ok {
		t.Error("providers without overrides should not be added")
	}
	if !cfg.Chat.PlainText {
		t.Error("expected plain_text override")
	}
}

func TestLoadConfigWithEnvOverrides_MalformedIgnored(t *testing.T) {
	t.Setenv("CHATIFIER_DETECTION_PORTS", "80,http")
	t.Setenv("CHATIFIER_DETECTION_PROBE_TIMEOUT", "soon")

	cfg, err := LoadConfigWithEnvOverrides("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if len(cfg.Detection.Ports) != len(DefaultPorts) {
		t.Errorf("expected default ports, got %v", cfg.Detection.Ports)
	}
	if cfg.Detection.ProbeTimeout != DefaultProbeTimeout {
		t.Errorf("expected default probe timeout, got %v", cfg.Detection.ProbeTimeout)
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Setenv("CHATIFIER_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, path, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "" {
		t.Errorf("expected no path to be read, got %q", path)
	}
	if cfg.Detection.ProbeTimeout != DefaultProbeTimeout {
		t.Errorf("expected defaults, got probe timeout %v", cfg.Detection.ProbeTimeout)
	}
}

func TestLoad_DefaultPathIsRead(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CHATIFIER_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", dir)

	want := filepath.Join(dir, "chatifier", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(want), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(want, []byte("chat:\n  word_wrap: 42\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, path, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != want {
		t.Errorf("expected path %q, got %q", want, path)
	}
	if cfg.Chat.WordWrap != 42 {
		t.Errorf("expected word wrap 42, got %d", cfg.Chat.WordWrap)
	}
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit path")
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("CHATIFIER_CONFIG", "/etc/chatifier.yaml")
	if got := DefaultPath(); got != "/etc/chatifier.yaml" {
		t.Errorf("expected CHATIFIER_CONFIG to win, got %q", got)
	}

	t.Setenv("CHATIFIER_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := DefaultPath(); got != filepath.Join("/xdg", "chatifier", "config.yaml") {
		t.Errorf("unexpected XDG path %q", got)
	}
}
