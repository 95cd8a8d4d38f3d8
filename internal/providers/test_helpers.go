package providers

import (
	"net"
	"net/url"
	"strconv"
	"testing"
	"time"

	"mercator-hq/chatifier/pkg/providers"
)

// TestConfig returns a client configuration pointing at baseURL with a short
// timeout suitable for tests.
func TestConfig(baseURL string) providers.ClientConfig {
	return providers.ClientConfig{
		BaseURL:            baseURL,
		Timeout:            2 * time.Second,
		InsecureSkipVerify: true,
	}
}

// TestConfigWithToken returns TestConfig with a credential set.
func TestConfigWithToken(baseURL, token string) providers.ClientConfig {
	cfg := TestConfig(baseURL)
	cfg.Token = token
	return cfg
}

// HostPort splits a test server URL into hostname and numeric port.
func HostPort(t *testing.T, rawURL string) (string, int) {
	t.Helper()

	u, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("failed to parse %q: %v", rawURL, err)
	}
	host, portStr, err := net.SplitHostPort(u.Host)
	if err != nil {
		t.Fatalf("failed to split %q: %v", u.Host, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatalf("invalid port %q: %v", portStr, err)
	}
	return host, port
}

// ClosedPort returns a local port with nothing listening on it.
func ClosedPort(t *testing.T) int {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	port := l.Addr().(*net.TCPAddr).Port
	_ = l.Close()
	return port
}

// AssertHistory fails the test unless history holds exactly the given
// alternating user/assistant turns.
func AssertHistory(t *testing.T, history []providers.Message, turns ...string) {
	t.Helper()

	if len(history) != len(turns) {
		t.Fatalf("expected %d history messages, got %d: %+v", len(turns), len(history), history)
	}
	for i, content := range turns {
		wantRole := providers.RoleUser
		if i%2 == 1 {
			wantRole = providers.RoleAssistant
		}
		if history[i].Role != wantRole || history[i].Content != content {
			t.Fatalf("history[%d] = %+v, want {%s %q}", i, history[i], wantRole, content)
		}
	}
}
