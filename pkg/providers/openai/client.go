package openai

import (
	"context"
	"log/slog"
	"net/http"

	"mercator-hq/chatifier/pkg/providers"
	"mercator-hq/chatifier/pkg/telemetry/metrics"
)

// DefaultModel is used when no model is configured. Most OpenAI-compatible
// servers (llama.cpp, vLLM, LM Studio) accept any name here.
const DefaultModel = "gpt-3.5-turbo"

const (
	modelsPath      = "/v1/models"
	completionsPath = "/v1/chat/completions"
)

var fallbackModels = []string{"gpt-4o", "gpt-4o-mini", "gpt-4-turbo", "gpt-3.5-turbo"}

// Provider is the OpenAI-compatible chat completions adapter.
type Provider struct {
	*providers.HTTPProvider
	history providers.History
}

// NewProvider creates a new OpenAI adapter. collector may be nil.
func NewProvider(cfg providers.ClientConfig, collector *metrics.Collector) *Provider {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	p := &Provider{
		HTTPProvider: providers.NewHTTPProvider(providers.ProviderOpenAI, cfg, collector),
	}

	slog.Debug("OpenAI provider initialized",
		"base_url", p.Config().BaseURL,
		"model", cfg.Model,
	)
	return p
}

// ConnectCheck lists models, which every compatible server implements.
func (p *Provider) ConnectCheck(ctx context.Context) error {
	resp, err := p.DoRequest(ctx, "connect", http.MethodGet, p.URL(modelsPath), nil, p.headers())
	if err != nil {
		return err
	}
	return providers.ClassifyResponse(p.Provider(), resp.StatusCode, resp.Body, true)
}

// SetToken stores token and validates it with a fresh connect check.
func (p *Provider) SetToken(ctx context.Context, token string) error {
	p.StoreToken(token)
	return p.ConnectCheck(ctx)
}

// ListModels returns the served model ids, or a fixed list when the listing
// fails.
func (p *Provider) ListModels(ctx context.Context) []string {
	resp, err := p.DoRequest(ctx, "models", http.MethodGet, p.URL(modelsPath), nil, p.headers())
	if err != nil || resp.StatusCode >= 400 {
		return providers.FallbackModels(fallbackModels)
	}

	var list OpenAIModelList
	if err := p.DecodeJSON(resp, &list); err != nil {
		slog.Debug("failed to decode model list", "provider", p.Provider(), "error", err)
		return providers.FallbackModels(fallbackModels)
	}
	ids := modelIDs(&list)
	if len(ids) == 0 {
		return providers.FallbackModels(fallbackModels)
	}
	return ids
}

// SendMessage sends the whole conversation plus text and returns the reply.
func (p *Provider) SendMessage(ctx context.Context, text string) (string, error) {
	req := transformRequest(p.Config().Model, p.history.WithPending(text))

	resp, err := p.DoJSONRequest(ctx, "send", http.MethodPost, p.URL(completionsPath), req, p.headers())
	if err != nil {
		return "", err
	}
	if err := providers.ClassifyResponse(p.Provider(), resp.StatusCode, resp.Body, false); err != nil {
		return "", err
	}

	var completion OpenAIResponse
	if err := p.DecodeJSON(resp, &completion); err != nil {
		return "", err
	}
	reply, err := transformResponse(&completion)
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
	return providers.BearerHeaders(p.Config().Token)
}

var _ providers.Client = (*Provider)(nil)
