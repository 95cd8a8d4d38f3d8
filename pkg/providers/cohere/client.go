package cohere

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"mercator-hq/chatifier/pkg/providers"
	"mercator-hq/chatifier/pkg/telemetry/metrics"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "command-r"

const chatPath = "/v1/chat"

var knownModels = []string{"command-r-plus", "command-r", "command", "command-light"}

// Provider is the Cohere chat adapter.
type Provider struct {
	*providers.HTTPProvider
	history providers.History
}

// NewProvider creates a new Cohere adapter. collector may be nil.
func NewProvider(cfg providers.ClientConfig, collector *metrics.Collector) *Provider {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	p := &Provider{
		HTTPProvider: providers.NewHTTPProvider(providers.ProviderCohere, cfg, collector),
	}

	slog.Debug("Cohere provider initialized",
		"base_url", p.Config().BaseURL,
		"model", cfg.Model,
	)
	return p
}

// ConnectCheck sends a one-token chat request.
func (p *Provider) ConnectCheck(ctx context.Context) error {
	req := &ChatRequest{Model: p.Config().Model, Message: "Hi", MaxTokens: 1}

	resp, err := p.DoJSONRequest(ctx, "connect", http.MethodPost, p.URL(chatPath), req, p.headers())
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

// ListModels returns the fixed Command model set.
func (p *Provider) ListModels(ctx context.Context) []string {
	return providers.FallbackModels(knownModels)
}

// SendMessage sends text with the prior turns as chat_history.
func (p *Provider) SendMessage(ctx context.Context, text string) (string, error) {
	req := transformRequest(p.Config().Model, p.history.Snapshot(), text)

	resp, err := p.DoJSONRequest(ctx, "send", http.MethodPost, p.URL(chatPath), req, p.headers())
	if err != nil {
		return "", err
	}
	if err := providers.ClassifyResponse(p.Provider(), resp.StatusCode, resp.Body, false); err != nil {
		return "", err
	}

	var chat ChatResponse
	if err := p.DecodeJSON(resp, &chat); err != nil {
		return "", err
	}
	if chat.Text == nil {
		return "", &providers.APIError{
			Provider:   p.Provider(),
			StatusCode: resp.StatusCode,
			Message:    "invalid response format",
			Cause:      errors.New(`missing "text" field`),
		}
	}

	p.history.Commit(text, *chat.Text)
	return *chat.Text, nil
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
	headers := providers.BearerHeaders(p.Config().Token)
	headers["Accept"] = "application/json"
	return headers
}

var _ providers.Client = (*Provider)(nil)
