package ollama

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"mercator-hq/chatifier/pkg/providers"
	"mercator-hq/chatifier/pkg/telemetry/metrics"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "llama2"

const (
	tagsPath     = "/api/tags"
	generatePath = "/api/generate"
)

var fallbackModels = []string{"llama2", "llama3", "mistral", "codellama"}

// Provider is the Ollama adapter. Ollama's generate endpoint is stateless
// text completion, so the conversation is replayed as a transcript prompt.
type Provider struct {
	*providers.HTTPProvider
	history providers.History
}

// NewProvider creates a new Ollama adapter. collector may be nil.
func NewProvider(cfg providers.ClientConfig, collector *metrics.Collector) *Provider {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	p := &Provider{
		HTTPProvider: providers.NewHTTPProvider(providers.ProviderOllama, cfg, collector),
	}

	slog.Debug("Ollama provider initialized",
		"base_url", p.Config().BaseURL,
		"model", cfg.Model,
	)
	return p
}

// ConnectCheck fetches the local model tags.
func (p *Provider) ConnectCheck(ctx context.Context) error {
	resp, err := p.DoRequest(ctx, "connect", http.MethodGet, p.URL(tagsPath), nil, p.headers())
	if err != nil {
		return err
	}
	return providers.ClassifyResponse(p.Provider(), resp.StatusCode, resp.Body, true)
}

// SetToken stores token and validates it with a fresh connect check. Plain
// Ollama ignores credentials but reverse proxies in front of it may not.
func (p *Provider) SetToken(ctx context.Context, token string) error {
	p.StoreToken(token)
	return p.ConnectCheck(ctx)
}

// ListModels returns the installed model names.
func (p *Provider) ListModels(ctx context.Context) []string {
	resp, err := p.DoRequest(ctx, "models", http.MethodGet, p.URL(tagsPath), nil, p.headers())
	if err != nil || resp.StatusCode >= 400 {
		return providers.FallbackModels(fallbackModels)
	}

	var tags TagsResponse
	if err := p.DecodeJSON(resp, &tags); err != nil {
		return providers.FallbackModels(fallbackModels)
	}
	names := tagNames(&tags)
	if len(names) == 0 {
		return providers.FallbackModels(fallbackModels)
	}
	return names
}

// SendMessage replays the transcript plus text and returns the completion.
func (p *Provider) SendMessage(ctx context.Context, text string) (string, error) {
	req := &GenerateRequest{
		Model:  p.Config().Model,
		Prompt: buildPrompt(p.history.Snapshot(), text),
	}

	resp, err := p.DoJSONRequest(ctx, "send", http.MethodPost, p.URL(generatePath), req, p.headers())
	if err != nil {
		return "", err
	}
	if err := providers.ClassifyResponse(p.Provider(), resp.StatusCode, resp.Body, false); err != nil {
		return "", err
	}

	var generated GenerateResponse
	if err := p.DecodeJSON(resp, &generated); err != nil {
		return "", err
	}
	if generated.Response == nil {
		return "", &providers.APIError{
			Provider:   p.Provider(),
			StatusCode: resp.StatusCode,
			Message:    "invalid response format",
			Cause:      errors.New(`missing "response" field`),
		}
	}

	reply := *generated.Response
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
