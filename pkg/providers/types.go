package providers

import "time"

// Message represents a single turn in a conversation.
// It is provider-agnostic; adapters translate it into their wire format.
type Message struct {
	// Role identifies the message sender (user, assistant, system)
	Role string `json:"role"`

	// Content is the message text content
	Content string `json:"content"`
}

// ClientConfig contains the connection settings of a single client.
type ClientConfig struct {
	// BaseURL is the API endpoint base URL without a trailing slash
	BaseURL string

	// Token is the optional credential. How it is sent depends on the provider
	// (bearer header, x-api-key header or query parameter).
	Token string

	// Model is the selected model. Empty means the provider default.
	Model string

	// Timeout is the per-request timeout duration
	Timeout time.Duration

	// InsecureSkipVerify disables TLS certificate validation. The command line
	// enables it unless --secure is given, since targets are often local hosts
	// with self-signed certificates.
	InsecureSkipVerify bool
}

// Message role constants
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Provider identifiers, in detection declaration order.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
	ProviderGemini    = "gemini"
	ProviderCohere    = "cohere"
	ProviderGeneric   = "generic"
)

// DefaultTimeout is the request timeout used when ClientConfig.Timeout is zero.
const DefaultTimeout = 30 * time.Second
