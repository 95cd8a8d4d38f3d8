package anthropic

import (
	"context"
	"log/slog"
	"net/http"

	"mercator-hq/chatifier/pkg/providers"
	"mercator-hq/chatifier/pkg/telemetry/metrics"
)

const (
	// DefaultAnthropicVersion is the API version to use
	DefaultAnthropicVersion = "2023-06-01"

	// DefaultModel is used when no model is configured.
	DefaultModel = "claude-3-sonnet-20240229"

	// DefaultMaxTokens caps each reply.
	DefaultMaxTokens = 4000

	messagesPath = "/v1/messages"
)

// Anthropic has no public model listing reachable with every key, so the
// adapter offers a fixed set.
var knownModels = []string{
	"claude-3-5-sonnet-20241022",
	"claude-3-opus-20240229",
	"claude-3-sonnet-20240229",
	"claude-3-haiku-20240307",
}

// Provider is the Anthropic provider adapter.
type Provider struct {
	*providers.HTTPProvider
	history providers.History
}

// NewProvider creates a new Anthropic provider instance. collector may be nil.
func NewProvider(cfg providers.ClientConfig, collector *metrics.Collector) *Provider {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	p := &Provider{
		HTTPProvider: providers.NewHTTPProvider(providers.ProviderAnthropic, cfg, collector),
	}

	slog.Debug("Anthropic provider initialized",
		"base_url", p.Config().BaseURL,
		"model", cfg.Model,
	)
	return p
}

// ConnectCheck sends a one-token message. Anthropic has no cheaper
// authenticated endpoint.
func (p *Provider) ConnectCheck(ctx context.Context) error {
	req := transformRequest(p.Config().Model, 1, []providers.Message{
		{Role: providers.RoleUser, Content: "Hi"},
	})

	resp, err := p.DoJSONRequest(ctx, "connect", http.MethodPost, p.URL(messagesPath), req, p.headers())
	if err != nil {
		return err
	}
	return providers.ClassifyResponse(p.Provider(), resp.StatusCode, resp.Body, true)
}

// SetToken stores the API key and validates it with a fresh connect check.
func (p *Provider) SetToken(ctx context.Context, token string) error {
	p.StoreToken(token)
	return p.ConnectCheck(ctx)
}

// ListModels returns the fixed Claude model set.
func (p *Provider) ListModels(ctx context.Context) []string {
	return providers.FallbackModels(knownModels)
}

// SendMessage sends the conversation plus text to the Messages API.
func (p *Provider) SendMessage(ctx context.Context, text string) (string, error) {
	req := transformRequest(p.Config().Model, DefaultMaxTokens, p.history.WithPending(text))

	resp, err := p.DoJSONRequest(ctx, "send", http.MethodPost, p.URL(messagesPath), req, p.headers())
	if err != nil {
		return "", err
	}
	if err := providers.ClassifyResponse(p.Provider(), resp.StatusCode, resp.Body, false); err != nil {
		return "", err
	}

	var message AnthropicResponse
	if err := p.DecodeJSON(resp, &message); err != nil {
		return "", err
	}
	reply, err := transformResponse(&message)
	if err != nil {
		return "", &providers.APIError{
			Provider:   p.Provider(),
			StatusCode: resp.StatusCode,
			Message:    "invalid response format",
			Cause:      err,
		}
	}

	p.history.Commit(text, reply)
	return reply, nil
}

// ClearHistory discards the conversation.
func (p *Provider) ClearHistory() {
	p.history.Clear()
}

// History returns a copy of the conversation.
func (p *Provider) History() []providers.Message {
	return p.history.Snapshot()
}

func (p *Provider) headers() map[string]string {
	headers := map[string]string{
		"anthropic-version": DefaultAnthropicVersion,
		"Content-Type":      "application/json",
	}
	if token := p.Config().Token; token != "" {
		headers["x-api-key"] = token
	}
	return headers
}

var _ providers.Client = (*Provider)(nil)
