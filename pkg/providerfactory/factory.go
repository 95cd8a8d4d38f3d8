package providerfactory

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"mercator-hq/chatifier/pkg/providers"
	"mercator-hq/chatifier/pkg/providers/anthropic"
	"mercator-hq/chatifier/pkg/providers/cohere"
	"mercator-hq/chatifier/pkg/providers/gemini"
	"mercator-hq/chatifier/pkg/providers/generic"
	"mercator-hq/chatifier/pkg/providers/ollama"
	"mercator-hq/chatifier/pkg/providers/openai"
	"mercator-hq/chatifier/pkg/telemetry/metrics"
)

// Options are the settings a client is created with. Zero values select the
// provider defaults.
type Options struct {
	// BaseURL overrides the provider's public default
	BaseURL string

	// Token is the optional credential
	Token string

	// Model overrides the provider's default model
	Model string

	// Timeout is the per-request timeout (providers.DefaultTimeout when zero)
	Timeout time.Duration

	// InsecureSkipVerify disables TLS certificate validation
	InsecureSkipVerify bool

	// Metrics receives request counters. May be nil.
	Metrics *metrics.Collector
}

type constructor func(ctx context.Context, cfg providers.ClientConfig, collector *metrics.Collector) providers.Client

type entry struct {
	id             string
	defaultBaseURL string
	build          constructor
}

// registry lists the supported providers in detection declaration order.
var registry = []entry{
	{providers.ProviderOpenAI, "https://api.openai.com", func(_ context.Context, cfg providers.ClientConfig, m *metrics.Collector) providers.Client {
		return openai.NewProvider(cfg, m)
	}},
	{providers.ProviderAnthropic, "https://api.anthropic.com", func(_ context.Context, cfg providers.ClientConfig, m *metrics.Collector) providers.Client {
		return anthropic.NewProvider(cfg, m)
	}},
	{providers.ProviderOllama, "http://localhost:11434", func(_ context.Context, cfg providers.ClientConfig, m *metrics.Collector) providers.Client {
		return ollama.NewProvider(cfg, m)
	}},
	{providers.ProviderGemini, "https://generativelanguage.googleapis.com", func(_ context.Context, cfg providers.ClientConfig, m *metrics.Collector) providers.Client {
		return gemini.NewProvider(cfg, m)
	}},
	{providers.ProviderCohere, "https://api.cohere.com", func(_ context.Context, cfg providers.ClientConfig, m *metrics.Collector) providers.Client {
		return cohere.NewProvider(cfg, m)
	}},
	{providers.ProviderGeneric, "http://localhost:8080", func(ctx context.Context, cfg providers.ClientConfig, m *metrics.Collector) providers.Client {
		return generic.NewProvider(ctx, cfg, m)
	}},
}

// Create builds the client for providerID. The identifier is matched
// case-insensitively. When opts.BaseURL is empty the provider's public
// default is used.
//
// The generic client probes for its chat endpoint during construction, so
// ctx bounds that discovery.
//
// Example:
//
//	client, err := providerfactory.Create(ctx, "ollama", providerfactory.Options{})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
func Create(ctx context.Context, providerID string, opts Options) (providers.Client, error) {
	id := strings.ToLower(strings.TrimSpace(providerID))

	for _, e := range registry {
		if e.id != id {
			continue
		}

		baseURL := opts.BaseURL
		if baseURL == "" {
			baseURL = e.defaultBaseURL
		}

		slog.Debug("creating provider client",
			"provider", id,
			"base_url", baseURL,
		)

		return e.build(ctx, providers.ClientConfig{
			BaseURL:            baseURL,
			Token:              opts.Token,
			Model:              opts.Model,
			Timeout:            opts.Timeout,
			InsecureSkipVerify: opts.InsecureSkipVerify,
		}, opts.Metrics), nil
	}

	return nil, &providers.UnknownProviderError{Provider: providerID, Supported: Supported()}
}

// Supported returns the known provider identifiers in declaration order.
func Supported() []string {
	ids := make([]string, len(registry))
	for i, e := range registry {
		ids[i] = e.id
	}
	return ids
}

// DefaultBaseURL returns the public default base URL for providerID, or ""
// when the identifier is unknown.
func DefaultBaseURL(providerID string) string {
	id := strings.ToLower(strings.TrimSpace(providerID))
	for _, e := range registry {
		if e.id == id {
			return e.defaultBaseURL
		}
	}
	return ""
}
