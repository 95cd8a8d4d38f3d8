package probe

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptrace"
	"sync/atomic"
	"time"

	"mercator-hq/chatifier/pkg/telemetry/metrics"
	"mercator-hq/chatifier/pkg/telemetry/tracing"
)

// DefaultTimeout is the per-attempt timeout used when Options.Timeout is zero.
const DefaultTimeout = 5 * time.Second

// maxBodyBytes bounds how much of a probed body is kept.
const maxBodyBytes = 64 << 10

// Result is the classification of a single probe.
type Result struct {
	// Reachable is true when the final attempt got any HTTP response with a
	// status below 500.
	Reachable bool

	// StatusCode of the final response, 0 when no response arrived.
	StatusCode int

	// Method of the attempt the result comes from (HEAD or GET).
	Method string

	// Body of the final response, truncated to 64 KiB. HEAD responses have none.
	Body []byte

	// Err is the transport error of the final attempt, if any.
	Err error

	// ConnectFailed is true when Err occurred before a connection was
	// established: refused dial, DNS failure, TLS handshake failure or a
	// malformed URL. Other URLs on the same host and port will fail the
	// same way. A timeout after the server accepted the connection leaves
	// it false.
	ConnectFailed bool
}

// Options configures a Prober.
type Options struct {
	// Timeout bounds each attempt (DefaultTimeout when zero)
	Timeout time.Duration

	// VerifyTLS enables certificate validation. Off by default because
	// targets are often local hosts with self-signed certificates.
	VerifyTLS bool

	// Metrics receives probe counters. May be nil.
	Metrics *metrics.Collector
}

// Prober checks whether anything HTTP-shaped answers at a URL.
// It is safe for concurrent use.
type Prober struct {
	client  *http.Client
	timeout time.Duration
	metrics *metrics.Collector
}

// New creates a Prober.
func New(opts Options) *Prober {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        32,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     30 * time.Second,
		TLSHandshakeTimeout: timeout,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: !opts.VerifyTLS, //nolint:gosec // self-signed local endpoints are the common case
		},
	}

	return &Prober{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
			// A redirect is already proof that something answers.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		timeout: timeout,
		metrics: opts.Metrics,
	}
}

// Probe sends HEAD to url and falls back to GET on the same URL when the
// server rejects the method (405, 501), answers with a server error, or
// breaks the exchange without a transport-level failure. Connection refused,
// DNS and TLS handshake failures and timeouts are not retried.
//
// Probe never returns an error; failures are reported in Result.
func (p *Prober) Probe(ctx context.Context, url string, headers map[string]string) Result {
	head := p.attempt(ctx, http.MethodHead, url, headers)
	if !needsFallback(head) {
		return head
	}

	slog.Debug("probe falling back to GET", "url", url, "status", head.StatusCode, "error", head.Err)

	get := p.attempt(ctx, http.MethodGet, url, headers)
	if get.Err != nil && head.StatusCode != 0 {
		// GET broke but HEAD already proved a server is there.
		return head
	}
	return get
}

// Close releases idle connections.
func (p *Prober) Close() {
	p.client.CloseIdleConnections()
}

func (p *Prober) attempt(ctx context.Context, method, url string, headers map[string]string) Result {
	ctx, span := tracing.StartSpan(ctx, "probe", tracing.ProbeAttributes(method, url)...)
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	result := Result{Method: method}

	var connected atomic.Bool
	ctx = httptrace.WithClientTrace(ctx, &httptrace.ClientTrace{
		GotConn: func(httptrace.GotConnInfo) { connected.Store(true) },
	})

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		result.Err = err
		result.ConnectFailed = true
		tracing.SetError(span, err)
		return result
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		p.metrics.RecordProbe(method, metrics.OutcomeUnreachable, time.Since(start))
		tracing.SetError(span, err)
		result.Err = err
		result.ConnectFailed = !connected.Load()
		slog.Debug("probe failed", "method", method, "url", url, "connected", !result.ConnectFailed, "error", err)
		return result
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	result.Reachable = resp.StatusCode < http.StatusInternalServerError
	if method != http.MethodHead {
		result.Body, _ = io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	}

	outcome := metrics.OutcomeSuccess
	if !result.Reachable {
		outcome = metrics.OutcomeError
	}
	p.metrics.RecordProbe(method, outcome, time.Since(start))
	tracing.SetHTTPStatus(span, resp.StatusCode)

	slog.Debug("probe answered", "method", method, "url", url, "status", resp.StatusCode)
	return result
}

func needsFallback(r Result) bool {
	if r.ConnectFailed {
		return false
	}
	if r.Err != nil {
		return !isTransportFailure(r.Err)
	}
	switch r.StatusCode {
	case http.StatusMethodNotAllowed, http.StatusNotImplemented:
		return true
	}
	return r.StatusCode >= http.StatusInternalServerError
}

// isTransportFailure reports errors a second request cannot fix: the
// connection was never established or the deadline passed.
func isTransportFailure(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}

	return false
}
