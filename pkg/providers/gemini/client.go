package gemini

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"mercator-hq/chatifier/pkg/providers"
	"mercator-hq/chatifier/pkg/telemetry/metrics"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-1.5-flash"

const modelsPath = "/v1beta/models"

var fallbackModels = []string{"gemini-1.5-pro", "gemini-1.5-flash", "gemini-1.0-pro"}

// Provider is the Google Gemini (Generative Language API) adapter. The API
// key travels as the "key" query parameter.
type Provider struct {
	*providers.HTTPProvider
	history providers.History
}

// NewProvider creates a new Gemini adapter. collector may be nil.
func NewProvider(cfg providers.ClientConfig, collector *metrics.Collector) *Provider {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	p := &Provider{
		HTTPProvider: providers.NewHTTPProvider(providers.ProviderGemini, cfg, collector),
	}

	slog.Debug("Gemini provider initialized",
		"base_url", p.Config().BaseURL,
		"model", cfg.Model,
	)
	return p
}

// ConnectCheck lists models, which requires a valid key.
func (p *Provider) ConnectCheck(ctx context.Context) error {
	resp, err := p.DoRequest(ctx, "connect", http.MethodGet, p.keyedURL(modelsPath), nil, nil)
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

// ListModels returns the models that support generateContent.
func (p *Provider) ListModels(ctx context.Context) []string {
	resp, err := p.DoRequest(ctx, "models", http.MethodGet, p.keyedURL(modelsPath), nil, nil)
	if err != nil || resp.StatusCode >= 400 {
		return providers.FallbackModels(fallbackModels)
	}

	var list ModelList
	if err := p.DecodeJSON(resp, &list); err != nil {
		return providers.FallbackModels(fallbackModels)
	}
	names := chatModels(&list)
	if len(names) == 0 {
		return providers.FallbackModels(fallbackModels)
	}
	return names
}

// SendMessage sends the conversation plus text to generateContent.
func (p *Provider) SendMessage(ctx context.Context, text string) (string, error) {
	req := transformRequest(p.history.WithPending(text))
	path := modelsPath + "/" + url.PathEscape(p.Config().Model) + ":generateContent"

	resp, err := p.DoJSONRequest(ctx, "send", http.MethodPost, p.keyedURL(path), req, nil)
	if err != nil {
		return "", err
	}
	if err := providers.ClassifyResponse(p.Provider(), resp.StatusCode, resp.Body, false); err != nil {
		return "", err
	}

	var generated GenerateContentResponse
	if err := p.DecodeJSON(resp, &generated); err != nil {
		return "", err
	}
	reply, err := transformResponse(&generated)
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

func (p *Provider) keyedURL(path string) string {
	u := p.URL(path)
	if token := p.Config().Token; token != "" {
		u += "?key=" + url.QueryEscape(token)
	}
	return u
}

var _ providers.Client = (*Provider)(nil)
