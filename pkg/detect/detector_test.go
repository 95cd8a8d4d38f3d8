package detect

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testhelpers "mercator-hq/chatifier/internal/providers"
	"mercator-hq/chatifier/pkg/config"
	"mercator-hq/chatifier/pkg/probe"
	"mercator-hq/chatifier/pkg/providers"
	"mercator-hq/chatifier/pkg/telemetry/metrics"
)

// newAPIServer answers 200 on the given paths and 500 everywhere else, so
// only those paths count as reachable.
func newAPIServer(t *testing.T, paths ...string) *httptest.Server {
	t.Helper()

	allowed := make(map[string]bool, len(paths))
	for _, p := range paths {
		allowed[p] = true
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if allowed[r.URL.Path] {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestProber(t *testing.T) *probe.Prober {
	t.Helper()
	p := probe.New(probe.Options{Timeout: 2 * time.Second})
	t.Cleanup(p.Close)
	return p
}

func targetFor(t *testing.T, rawURL string) Target {
	t.Helper()
	host, port := testhelpers.HostPort(t, rawURL)
	return Target{Hostname: host, Port: port}
}

func detectBoth(t *testing.T, target Target, opts ...Option) (*Result, *Result) {
	t.Helper()
	seq := New(newTestProber(t), opts...).Detect(context.Background(), target)
	par := New(newTestProber(t), append(opts, WithParallel(4))...).Detect(context.Background(), target)
	return seq, par
}

func TestDetect_AnyHTTPServerIsOpenAI(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)

	target := targetFor(t, srv.URL)
	res := New(newTestProber(t)).Detect(context.Background(), target)

	require.NotNil(t, res)
	assert.Equal(t, providers.ProviderOpenAI, res.Provider)
	assert.Equal(t, target.Port, res.Port)
	assert.Equal(t, srv.URL, res.BaseURL)
}

func TestDetect_EachProvider(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/v1/chat/completions", providers.ProviderOpenAI},
		{"/v1/messages", providers.ProviderAnthropic},
		{"/api/generate", providers.ProviderOllama},
		{"/v1beta/models", providers.ProviderGemini},
		{"/v1/chat", providers.ProviderCohere},
		{"/api/message", providers.ProviderGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			srv := newAPIServer(t, tt.path)
			seq, par := detectBoth(t, targetFor(t, srv.URL))

			require.NotNil(t, seq)
			assert.Equal(t, tt.want, seq.Provider)
			assert.Equal(t, srv.URL, seq.BaseURL)
			assert.Equal(t, seq, par)
		})
	}
}

func TestDetect_EarlierDeclaredProviderWins(t *testing.T) {
	srv := newAPIServer(t, "/chat", "/api/tags", "/v1/chat")

	seq, par := detectBoth(t, targetFor(t, srv.URL))

	require.NotNil(t, seq)
	assert.Equal(t, providers.ProviderOllama, seq.Provider)
	assert.Equal(t, seq, par)
}

func TestDetect_EarlierPortWins(t *testing.T) {
	generic := newAPIServer(t, "/chat")
	openai := newAPIServer(t, "/v1/models")

	_, genericPort := testhelpers.HostPort(t, generic.URL)
	_, openaiPort := testhelpers.HostPort(t, openai.URL)
	closed := testhelpers.ClosedPort(t)

	target := Target{Hostname: "127.0.0.1"}
	seq, par := detectBoth(t, target, WithPorts([]int{closed, genericPort, openaiPort}))

	require.NotNil(t, seq)
	assert.Equal(t, providers.ProviderGeneric, seq.Provider)
	assert.Equal(t, genericPort, seq.Port)
	assert.Equal(t, generic.URL, seq.BaseURL)
	assert.Equal(t, seq, par)
}

func TestDetect_PrefersHTTPS(t *testing.T) {
	mock := testhelpers.NewTLSMockServer()
	defer mock.Close()
	mock.SetResponse("/api/tags", testhelpers.MockResponse{})

	target := targetFor(t, mock.URL())
	res := New(newTestProber(t)).Detect(context.Background(), target)

	require.NotNil(t, res)
	assert.Equal(t, mock.URL(), res.BaseURL)
	assert.Contains(t, res.BaseURL, "https://")
}

func TestDetect_NothingAnswers(t *testing.T) {
	closed := testhelpers.ClosedPort(t)

	seq, par := detectBoth(t, Target{Hostname: "127.0.0.1", Port: closed})
	assert.Nil(t, seq)
	assert.Nil(t, par)
}

func TestDetect_OnlyServerErrors(t *testing.T) {
	srv := newAPIServer(t)

	seq, par := detectBoth(t, targetFor(t, srv.URL))
	assert.Nil(t, seq)
	assert.Nil(t, par)
}

func TestDetect_DeadBaseIsSkipped(t *testing.T) {
	closed := testhelpers.ClosedPort(t)

	var (
		mu       sync.Mutex
		attempts []Attempt
	)
	d := New(newTestProber(t), WithProgress(func(a Attempt) {
		mu.Lock()
		defer mu.Unlock()
		attempts = append(attempts, a)
	}))

	assert.Nil(t, d.Detect(context.Background(), Target{Hostname: "127.0.0.1", Port: closed}))

	// one refused probe per scheme
	require.Len(t, attempts, 2)
	assert.Equal(t, "/v1/models", attempts[0].Path)
	assert.Contains(t, attempts[0].BaseURL, "https://")
	assert.Contains(t, attempts[1].BaseURL, "http://")
}

func TestDetect_HangingPathDoesNotEndScan(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/models":
			select {
			case <-time.After(2 * time.Second):
			case <-r.Context().Done():
			}
		case "/api/tags":
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	t.Cleanup(srv.Close)

	p := probe.New(probe.Options{Timeout: 300 * time.Millisecond})
	t.Cleanup(p.Close)

	target := targetFor(t, srv.URL)
	for _, d := range []*Detector{New(p), New(p, WithParallel(4))} {
		res := d.Detect(context.Background(), target)
		require.NotNil(t, res, "a path that times out must not end the scan")
		assert.Equal(t, providers.ProviderOllama, res.Provider)
		assert.Equal(t, srv.URL, res.BaseURL)
	}
}

func TestDetect_ProgressReportsAttempts(t *testing.T) {
	srv := newAPIServer(t, "/v1/models")

	var attempts []Attempt
	d := New(newTestProber(t), WithProgress(func(a Attempt) {
		attempts = append(attempts, a)
	}))

	res := d.Detect(context.Background(), targetFor(t, srv.URL))
	require.NotNil(t, res)

	require.NotEmpty(t, attempts)
	last := attempts[len(attempts)-1]
	assert.True(t, last.Reachable)
	assert.Equal(t, http.StatusOK, last.Status)
	assert.Equal(t, providers.ProviderOpenAI, last.Provider)
	assert.Equal(t, srv.URL, last.BaseURL)
}

func TestDetect_CancelledContext(t *testing.T) {
	srv := newAPIServer(t, "/v1/models")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Nil(t, New(newTestProber(t)).Detect(ctx, targetFor(t, srv.URL)))
}

func TestDetect_RecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(&config.MetricsConfig{Enabled: true, Namespace: "test"}, reg)

	srv := newAPIServer(t, "/api/tags")
	d := New(newTestProber(t), WithMetrics(collector))
	require.NotNil(t, d.Detect(context.Background(), targetFor(t, srv.URL)))

	count, err := testutil.GatherAndCount(reg, "test_detection_runs_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDetector_Ports(t *testing.T) {
	d := New(newTestProber(t))
	assert.Equal(t, config.DefaultPorts, d.Ports(Target{Hostname: "localhost"}))
	assert.Equal(t, []int{9000}, d.Ports(Target{Hostname: "localhost", Port: 9000}))

	d = New(newTestProber(t), WithPorts([]int{1234}))
	assert.Equal(t, []int{1234}, d.Ports(Target{Hostname: "localhost"}))

	d = New(newTestProber(t), WithPorts(nil))
	assert.Equal(t, config.DefaultPorts, d.Ports(Target{Hostname: "localhost"}))
}

func TestDetector_CandidateOrder(t *testing.T) {
	d := New(newTestProber(t), WithPorts([]int{443, 80, 8080}))

	var got []string
	for _, c := range d.candidates(Target{Hostname: "example.com"}) {
		got = append(got, c.baseURL)
	}
	assert.Equal(t, []string{
		"https://example.com",
		"http://example.com:443",
		"https://example.com:80",
		"http://example.com",
		"https://example.com:8080",
		"http://example.com:8080",
	}, got)
}

func TestDetectProvider(t *testing.T) {
	srv := newAPIServer(t, "/api/generate")
	d := New(newTestProber(t))
	ctx := context.Background()

	assert.True(t, d.DetectProvider(ctx, srv.URL, providers.ProviderOllama))
	assert.False(t, d.DetectProvider(ctx, srv.URL, providers.ProviderOpenAI))
	assert.False(t, d.DetectProvider(ctx, srv.URL, "mistral"))
}
