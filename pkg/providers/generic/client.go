package generic

import (
	"context"
	"log/slog"
	"net/http"

	"mercator-hq/chatifier/pkg/providers"
	"mercator-hq/chatifier/pkg/telemetry/metrics"
)

// DefaultModel is sent in the messages shape when no model is configured.
const DefaultModel = "default"

// DefaultEndpoint is used when discovery finds nothing.
const DefaultEndpoint = "/chat"

// candidateEndpoints are probed in order at construction.
var candidateEndpoints = []string{"/chat", "/api/chat", "/message", "/api/message", "/completion"}

// Provider talks to an unrecognized chat endpoint by trying a list of common
// request shapes and reply fields.
type Provider struct {
	*providers.HTTPProvider
	history  providers.History
	endpoint string
}

// NewProvider creates a generic adapter and discovers its chat endpoint: the
// first candidate path whose GET answers below 500 is adopted, /chat
// otherwise. collector may be nil.
func NewProvider(ctx context.Context, cfg providers.ClientConfig, collector *metrics.Collector) *Provider {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	p := &Provider{
		HTTPProvider: providers.NewHTTPProvider(providers.ProviderGeneric, cfg, collector),
		endpoint:     DefaultEndpoint,
	}
	p.discoverEndpoint(ctx)

	slog.Debug("generic provider initialized",
		"base_url", p.Config().BaseURL,
		"endpoint", p.endpoint,
	)
	return p
}

// Endpoint returns the chat path in use.
func (p *Provider) Endpoint() string {
	return p.endpoint
}

func (p *Provider) discoverEndpoint(ctx context.Context) {
	for _, path := range candidateEndpoints {
		resp, err := p.DoRequest(ctx, "discover", http.MethodGet, p.URL(path), nil, p.headers())
		if err != nil {
			slog.Debug("endpoint discovery failed", "path", path, "error", err)
			continue
		}
		if resp.StatusCode < 500 {
			p.endpoint = path
			slog.Debug("found chat endpoint", "path", path, "status", resp.StatusCode)
			return
		}
	}
}

// ConnectCheck GETs the chat endpoint. It fails only on a server error or an
// auth signal; 404 and 405 still count as a live server.
func (p *Provider) ConnectCheck(ctx context.Context) error {
	resp, err := p.DoRequest(ctx, "connect", http.MethodGet, p.URL(p.endpoint), nil, p.headers())
	if err != nil {
		return err
	}
	if providers.IsAuthError(resp.StatusCode, resp.Body) {
		return &providers.AuthError{
			Provider:   p.Provider(),
			StatusCode: resp.StatusCode,
			Message:    providers.ExtractErrorMessage(resp.StatusCode, resp.Body),
		}
	}
	if resp.StatusCode >= 500 {
		return &providers.APIError{
			Provider:   p.Provider(),
			StatusCode: resp.StatusCode,
			Message:    "server error",
		}
	}
	return nil
}

// SetToken stores token and validates it with a fresh connect check.
func (p *Provider) SetToken(ctx context.Context, token string) error {
	p.StoreToken(token)
	return p.ConnectCheck(ctx)
}

// ListModels returns nothing; unknown APIs have no model listing.
func (p *Provider) ListModels(ctx context.Context) []string {
	return []string{}
}

// SendMessage tries each request shape in order and returns the first
// non-empty reply.
func (p *Provider) SendMessage(ctx context.Context, text string) (string, error) {
	url := p.URL(p.endpoint)
	messages := p.history.WithPending(text)

	var lastErr error
	for _, s := range shapes {
		payload := s.build(p.Config().Model, messages, text)

		resp, err := p.DoJSONRequest(ctx, "send", http.MethodPost, url, payload, p.headers())
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			slog.Debug("payload shape failed", "shape", s.name, "error", err)
			continue
		}
		if err := providers.ClassifyResponse(p.Provider(), resp.StatusCode, resp.Body, false); err != nil {
			lastErr = err
			slog.Debug("payload shape rejected", "shape", s.name, "status", resp.StatusCode)
			continue
		}

		reply, ok := s.extract(resp.Body)
		if !ok {
			slog.Debug("payload shape gave no reply", "shape", s.name)
			continue
		}

		p.history.Commit(text, reply)
		return reply, nil
	}

	return "", &providers.APIError{
		Provider: p.Provider(),
		Message:  "unable to get a response from generic API",
		Cause:    lastErr,
	}
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
