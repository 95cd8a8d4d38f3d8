// Package config provides configuration management for chatifier.
//
// This package handles loading, validating, and managing configuration from
// an optional YAML file with environment variable overrides. Every field has
// a default, so chatifier runs without any configuration file at all.
//
// # Configuration Loading
//
// The command line uses Load, which picks the file to read:
//
//  1. An explicit --config path, which must exist
//  2. $CHATIFIER_CONFIG
//  3. $XDG_CONFIG_HOME/chatifier/config.yaml or ~/.config/chatifier/config.yaml
//  4. No file: defaults only
//
// LoadConfig and LoadConfigWithEnvOverrides remain available for callers
// that already know the path.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention CHATIFIER_SECTION_FIELD.
// For example:
//
//   - CHATIFIER_DETECTION_PORTS=8080,11434 overrides detection.ports
//   - CHATIFIER_PROVIDERS_OPENAI_API_KEY overrides providers.openai.api_key
//   - CHATIFIER_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// Environment variables always take precedence over file-based configuration.
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Command line flags (applied by the caller)
//
// # Validation
//
// Validation collects every problem before failing:
//
//	configuration validation failed with 2 errors:
//	  - detection.ports[0]: port 70000 out of range (1-65535)
//	  - providers.mistral: unknown provider (supported: openai, anthropic, ollama, gemini, cohere, generic)
//
// # Example Configuration
//
//	detection:
//	  ports: [11434, 8080]
//	  probe_timeout: 3s
//
//	providers:
//	  openai:
//	    api_key: "${OPENAI_API_KEY}"
//	    model: gpt-4o-mini
//
//	chat:
//	  word_wrap: 80
//	  watch_config: true
//
//	telemetry:
//	  logging:
//	    level: debug
//
// # Hot Reload
//
// Watch follows the file with fsnotify and swaps the singleton when a new
// version validates. The chat loop uses it to change the log level without
// restarting a conversation.
package config
