package detect

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"mercator-hq/chatifier/pkg/config"
	"mercator-hq/chatifier/pkg/probe"
	"mercator-hq/chatifier/pkg/telemetry/metrics"
	"mercator-hq/chatifier/pkg/telemetry/tracing"
)

// Result is a successful detection. BaseURL is exactly the base at which a
// probe already answered below 500.
type Result struct {
	Provider string `json:"provider"`
	Hostname string `json:"hostname"`
	Port     int    `json:"port"`
	BaseURL  string `json:"base_url"`
}

// Attempt describes one probed candidate. It is passed to the progress
// callback after the probe completes.
type Attempt struct {
	Provider  string
	BaseURL   string
	Path      string
	Reachable bool
	Status    int
}

// ProgressFunc observes detection attempts. In parallel mode it is called
// from several goroutines.
type ProgressFunc func(Attempt)

// Detector finds which provider API answers on a host.
type Detector struct {
	prober         *probe.Prober
	ports          []int
	parallel       bool
	maxConcurrency int
	metrics        *metrics.Collector
	progress       ProgressFunc
}

// Option configures a Detector.
type Option func(*Detector)

// WithPorts replaces the fallback port list tried when the target has no port.
func WithPorts(ports []int) Option {
	return func(d *Detector) {
		if len(ports) > 0 {
			d.ports = slices.Clone(ports)
		}
	}
}

// WithParallel probes base URLs concurrently, at most maxConcurrency at a
// time. The result is the same as a sequential run.
func WithParallel(maxConcurrency int) Option {
	return func(d *Detector) {
		d.parallel = true
		if maxConcurrency > 0 {
			d.maxConcurrency = maxConcurrency
		}
	}
}

// WithMetrics records detection runs in collector.
func WithMetrics(collector *metrics.Collector) Option {
	return func(d *Detector) {
		d.metrics = collector
	}
}

// WithProgress registers fn to observe every attempt.
func WithProgress(fn ProgressFunc) Option {
	return func(d *Detector) {
		d.progress = fn
	}
}

// New creates a Detector that probes through prober.
func New(prober *probe.Prober, opts ...Option) *Detector {
	d := &Detector{
		prober:         prober,
		ports:          slices.Clone(config.DefaultPorts),
		maxConcurrency: config.DefaultMaxConcurrency,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Ports returns the ports tried for target, in order.
func (d *Detector) Ports(target Target) []int {
	if target.Port != 0 {
		return []int{target.Port}
	}
	return slices.Clone(d.ports)
}

// candidate is one base URL; all signatures are tried against it in order.
type candidate struct {
	port    int
	baseURL string
}

func (d *Detector) candidates(target Target) []candidate {
	var out []candidate
	for _, port := range d.Ports(target) {
		// TLS first regardless of the hint.
		for _, scheme := range []string{"https", "http"} {
			out = append(out, candidate{port: port, baseURL: BaseURL(scheme, target.Hostname, port)})
		}
	}
	return out
}

// Detect probes target and returns the first provider signature that
// answers, in (port, scheme, signature, path) order. It returns nil when
// nothing answers; callers should ask for an explicit provider rather than
// guess one.
func (d *Detector) Detect(ctx context.Context, target Target) *Result {
	ctx, span := tracing.StartSpan(ctx, "detect", attribute.String(tracing.AttrTarget, target.String()))
	defer span.End()

	mode := "sequential"
	if d.parallel {
		mode = "parallel"
	}

	start := time.Now()
	cands := d.candidates(target)

	slog.Debug("detecting provider",
		"target", target.String(),
		"ports", d.Ports(target),
		"mode", mode,
	)

	var (
		hit   *Result
		tried int
	)
	if d.parallel {
		hit, tried = d.detectParallel(ctx, target, cands)
	} else {
		hit, tried = d.detectSequential(ctx, target, cands)
	}

	provider, baseURL := "", ""
	if hit != nil {
		provider, baseURL = hit.Provider, hit.BaseURL
	}
	d.metrics.ObserveDetection(provider, mode, tried, time.Since(start))
	tracing.SetDetectionResult(span, provider, baseURL, tried)

	if hit == nil {
		slog.Debug("no provider detected", "target", target.String(), "probes", tried)
		return nil
	}
	slog.Info("provider detected", "provider", hit.Provider, "base_url", hit.BaseURL)
	return hit
}

func (d *Detector) detectSequential(ctx context.Context, target Target, cands []candidate) (*Result, int) {
	tried := 0
	for _, c := range cands {
		if ctx.Err() != nil {
			break
		}
		provider, n := d.probeBase(ctx, c, nil)
		tried += n
		if provider != "" {
			return &Result{Provider: provider, Hostname: target.Hostname, Port: c.port, BaseURL: c.baseURL}, tried
		}
	}
	return nil, tried
}

// detectParallel probes base URLs concurrently. Each base walks its own
// signatures in order, and the lowest-indexed base with a hit wins, so the
// answer matches detectSequential. Bases ordered after a confirmed hit stop
// early.
func (d *Detector) detectParallel(ctx context.Context, target Target, cands []candidate) (*Result, int) {
	var (
		mu    sync.Mutex
		best  = len(cands)
		found = make([]string, len(cands))
		tried int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.maxConcurrency)

	for i, c := range cands {
		i, c := i, c
		g.Go(func() error {
			superseded := func() bool {
				mu.Lock()
				defer mu.Unlock()
				return best < i
			}
			if superseded() {
				return nil
			}

			provider, n := d.probeBase(gctx, c, superseded)

			mu.Lock()
			defer mu.Unlock()
			tried += n
			if provider != "" {
				found[i] = provider
				if i < best {
					best = i
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	if best == len(cands) {
		return nil, tried
	}
	c := cands[best]
	return &Result{Provider: found[best], Hostname: target.Hostname, Port: c.port, BaseURL: c.baseURL}, tried
}

// probeBase tries every signature path against one base URL and returns the
// first provider that answers, plus the number of probes sent. A probe that
// could not connect (nothing listening, DNS failure, TLS spoken to a
// plaintext port) marks the whole base dead since no other path can answer
// either. A path that hangs or drops the connection does not: later paths
// are still tried. stop, if non-nil, is consulted before each probe.
func (d *Detector) probeBase(ctx context.Context, c candidate, stop func() bool) (string, int) {
	tried := 0
	for _, sig := range signatures {
		for _, path := range sig.Paths {
			if ctx.Err() != nil || (stop != nil && stop()) {
				return "", tried
			}

			res := d.prober.Probe(ctx, c.baseURL+path, nil)
			tried++
			d.report(Attempt{
				Provider:  sig.Provider,
				BaseURL:   c.baseURL,
				Path:      path,
				Reachable: res.Reachable,
				Status:    res.StatusCode,
			})

			if res.Reachable {
				return sig.Provider, tried
			}
			if res.ConnectFailed {
				slog.Debug("base URL unreachable, skipping", "base_url", c.baseURL, "error", res.Err)
				return "", tried
			}
		}
	}
	return "", tried
}

func (d *Detector) report(a Attempt) {
	if d.progress != nil {
		d.progress(a)
	}
}

// DetectProvider reports whether provider's signature answers at baseURL.
// Unknown providers report false.
func (d *Detector) DetectProvider(ctx context.Context, baseURL, provider string) bool {
	sig, ok := SignatureFor(provider)
	if !ok {
		return false
	}

	ctx, span := tracing.StartSpan(ctx, "detect", attribute.String(tracing.AttrTarget, baseURL))
	defer span.End()

	for i, path := range sig.Paths {
		res := d.prober.Probe(ctx, baseURL+path, nil)
		d.report(Attempt{
			Provider:  provider,
			BaseURL:   baseURL,
			Path:      path,
			Reachable: res.Reachable,
			Status:    res.StatusCode,
		})
		if res.Reachable {
			tracing.SetDetectionResult(span, provider, baseURL, i+1)
			return true
		}
	}
	tracing.SetDetectionResult(span, "", "", len(sig.Paths))
	return false
}
