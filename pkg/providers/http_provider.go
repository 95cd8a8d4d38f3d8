package providers

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"mercator-hq/chatifier/pkg/telemetry/metrics"
	"mercator-hq/chatifier/pkg/telemetry/tracing"
)

// maxResponseBytes bounds how much of a response body is read into memory.
const maxResponseBytes = 8 << 20

// Response is a fully-read HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
}

// HTTPProvider is the shared base for HTTP-based adapters. It owns the
// connection settings and the http.Client and performs exactly one attempt
// per request; there is no retry.
//
// Concrete adapters embed *HTTPProvider and layer their wire format on top.
type HTTPProvider struct {
	name    string
	config  ClientConfig
	client  *http.Client
	metrics *metrics.Collector
}

// NewHTTPProvider creates the base for the named provider. A zero Timeout is
// replaced with DefaultTimeout and trailing slashes are trimmed from BaseURL.
// collector may be nil.
func NewHTTPProvider(name string, cfg ClientConfig, collector *metrics.Collector) *HTTPProvider {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec // targets are often self-signed local hosts
		},
	}

	return &HTTPProvider{
		name:   name,
		config: cfg,
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		metrics: collector,
	}
}

// Provider returns the provider identifier.
func (p *HTTPProvider) Provider() string {
	return p.name
}

// Config returns the current connection settings.
func (p *HTTPProvider) Config() ClientConfig {
	return p.config
}

// SetModel selects the model used by subsequent requests.
func (p *HTTPProvider) SetModel(model string) {
	p.config.Model = model
}

// StoreToken replaces the credential without validating it.
// Adapters call it from SetToken before running their connect check.
func (p *HTTPProvider) StoreToken(token string) {
	p.config.Token = token
}

// URL joins the base URL and path.
func (p *HTTPProvider) URL(path string) string {
	return p.config.BaseURL + path
}

// DoRequest performs a single HTTP request and reads the whole response.
//
// Transport failures (connection refused, DNS, TLS, timeout) are returned as
// *ConnectivityError. Any HTTP response, whatever its status, is returned
// to the caller for classification.
func (p *HTTPProvider) DoRequest(ctx context.Context, operation, method, url string, body []byte, headers map[string]string) (*Response, error) {
	ctx, span := tracing.StartSpan(ctx, "provider."+operation,
		tracing.ProviderAttributes(p.name, p.config.Model)...)
	defer span.End()

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	if req.Header.Get("Content-Type") == "" && body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	tracing.Inject(ctx, req.Header)

	slog.Debug("sending request to provider",
		"provider", p.name,
		"operation", operation,
		"method", method,
		"url", url,
	)

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		p.metrics.RecordProviderRequest(p.name, operation, metrics.OutcomeUnreachable, time.Since(start))
		tracing.SetError(span, err)
		slog.Debug("provider request failed",
			"provider", p.name,
			"url", url,
			"error", err,
		)
		return nil, &ConnectivityError{Provider: p.name, URL: url, Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	elapsed := time.Since(start)
	if err != nil {
		p.metrics.RecordProviderRequest(p.name, operation, metrics.OutcomeUnreachable, elapsed)
		tracing.SetError(span, err)
		return nil, &ConnectivityError{Provider: p.name, URL: url, Cause: fmt.Errorf("failed to read response: %w", err)}
	}

	p.metrics.RecordProviderRequest(p.name, operation, outcomeFor(resp.StatusCode), elapsed)
	tracing.SetHTTPStatus(span, resp.StatusCode)
	slog.Debug("provider responded",
		"provider", p.name,
		"operation", operation,
		"status", resp.StatusCode,
		"duration", elapsed,
	)

	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}

// DoJSONRequest marshals reqBody (when non-nil) and performs the request.
func (p *HTTPProvider) DoJSONRequest(ctx context.Context, operation, method, url string, reqBody any, headers map[string]string) (*Response, error) {
	var bodyBytes []byte
	if reqBody != nil {
		var err error
		bodyBytes, err = json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
	}
	return p.DoRequest(ctx, operation, method, url, bodyBytes, headers)
}

// DecodeJSON unmarshals a response body, wrapping failures in *APIError.
func (p *HTTPProvider) DecodeJSON(resp *Response, v any) error {
	if err := json.Unmarshal(resp.Body, v); err != nil {
		return &APIError{
			Provider:   p.name,
			StatusCode: resp.StatusCode,
			Message:    "invalid response body",
			Cause:      err,
		}
	}
	return nil
}

// Close releases idle connections.
func (p *HTTPProvider) Close() error {
	p.client.CloseIdleConnections()
	slog.Debug("provider closed", "provider", p.name)
	return nil
}

func outcomeFor(status int) string {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return metrics.OutcomeAuth
	case status >= 400:
		return metrics.OutcomeError
	default:
		return metrics.OutcomeSuccess
	}
}
