package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable override.
const EnvPrefix = "CHATIFIER_"

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// The configuration is not modified by environment variables; use LoadConfigWithEnvOverrides
// for that functionality.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	expandSecrets(&cfg)
	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention CHATIFIER_SECTION_FIELD (e.g., CHATIFIER_DETECTION_PROBE_TIMEOUT).
// Environment variables always take precedence over file-based configuration.
//
// An empty path skips the file and starts from defaults.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	var cfg *Config
	if path == "" {
		cfg = Default()
	} else {
		var err error
		cfg, err = LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)
	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// Load resolves the configuration used by the command line. An explicit
// path must exist. Without one, the default path is used when present and
// plain defaults otherwise. Environment overrides apply in every case.
// It returns the path that was actually read, or "" when none was.
func Load(explicit string) (*Config, string, error) {
	if explicit != "" {
		cfg, err := LoadConfigWithEnvOverrides(explicit)
		return cfg, explicit, err
	}

	path := DefaultPath()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			cfg, err := LoadConfigWithEnvOverrides(path)
			return cfg, path, err
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("failed to stat configuration file %q: %w", path, err)
		}
	}

	cfg, err := LoadConfigWithEnvOverrides("")
	return cfg, "", err
}

// DefaultPath returns the conventional configuration file location:
// $CHATIFIER_CONFIG, then $XDG_CONFIG_HOME/chatifier/config.yaml, then
// ~/.config/chatifier/config.yaml. It returns "" when no home directory
// can be determined.
func DefaultPath() string {
	if p := os.Getenv(EnvPrefix + "CONFIG"); p != "" {
		return p
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "chatifier", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "chatifier", "config.yaml")
}

// expandSecrets substitutes ${ENV_VAR} references in provider credentials.
func expandSecrets(cfg *Config) {
	for name, provider := range cfg.Providers {
		if strings.Contains(provider.APIKey, "$") {
			provider.APIKey = os.ExpandEnv(provider.APIKey)
			cfg.Providers[name] = provider
		}
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables use the format CHATIFIER_SECTION_FIELD.
// Malformed values are ignored.
func applyEnvOverrides(cfg *Config) {
	// Detection overrides
	if val := os.Getenv(EnvPrefix + "DETECTION_PORTS"); val != "" {
		if ports, err := parsePorts(val); err == nil {
			cfg.Detection.Ports = ports
		}
	}
	if val := os.Getenv(EnvPrefix + "DETECTION_PROBE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Detection.ProbeTimeout = d
		}
	}
	if val := os.Getenv(EnvPrefix + "DETECTION_VERIFY_TLS"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Detection.VerifyTLS = b
		}
	}
	if val := os.Getenv(EnvPrefix + "DETECTION_PARALLEL"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Detection.Parallel = b
		}
	}
	if val := os.Getenv(EnvPrefix + "DETECTION_MAX_CONCURRENCY"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Detection.MaxConcurrency = i
		}
	}

	for _, name := range KnownProviders {
		applyProviderEnvOverrides(cfg, name)
	}

	// Chat overrides
	if val := os.Getenv(EnvPrefix + "CHAT_PLAIN_TEXT"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Chat.PlainText = b
		}
	}
	if val := os.Getenv(EnvPrefix + "CHAT_WORD_WRAP"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Chat.WordWrap = i
		}
	}

	// Telemetry overrides
	if val := os.Getenv(EnvPrefix + "TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv(EnvPrefix + "TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv(EnvPrefix + "TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv(EnvPrefix + "TELEMETRY_METRICS_TEXTFILE"); val != "" {
		cfg.Telemetry.Metrics.Textfile = val
	}
	if val := os.Getenv(EnvPrefix + "TELEMETRY_TRACING_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Tracing.Enabled = b
		}
	}
	if val := os.Getenv(EnvPrefix + "TELEMETRY_TRACING_ENDPOINT"); val != "" {
		cfg.Telemetry.Tracing.Endpoint = val
	}
	if val := os.Getenv(EnvPrefix + "TELEMETRY_TRACING_SAMPLE_RATIO"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Telemetry.Tracing.SampleRatio = f
		}
	}
}

// applyProviderEnvOverrides applies overrides for a single provider.
// Provider environment variables follow the format CHATIFIER_PROVIDERS_<NAME>_<FIELD>
// where NAME is the uppercase provider name.
func applyProviderEnvOverrides(cfg *Config, providerName string) {
	if cfg.Providers == nil {
		cfg.Providers = make(map[string]ProviderConfig)
	}

	provider, exists := cfg.Providers[providerName]
	prefix := fmt.Sprintf("%sPROVIDERS_%s_", EnvPrefix, strings.ToUpper(providerName))

	modified := false

	if val := os.Getenv(prefix + "BASE_URL"); val != "" {
		provider.BaseURL = val
		modified = true
	}
	if val := os.Getenv(prefix + "API_KEY"); val != "" {
		provider.APIKey = val
		modified = true
	}
	if val := os.Getenv(prefix + "MODEL"); val != "" {
		provider.Model = val
		modified = true
	}
	if val := os.Getenv(prefix + "TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			provider.Timeout = d
			modified = true
		}
	}

	// Only update the map if we found at least one override
	if modified || exists {
		cfg.Providers[providerName] = provider
	}
}

// parsePorts parses a comma-separated port list such as "8080,11434".
func parsePorts(val string) ([]int, error) {
	fields := strings.Split(val, ",")
	ports := make([]int, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		p, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid port %q: %w", f, err)
		}
		ports = append(ports, p)
	}
	if len(ports) == 0 {
		return nil, errors.New("empty port list")
	}
	return ports, nil
}
