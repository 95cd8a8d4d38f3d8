package detect

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// Target is a normalized connection target.
type Target struct {
	// Hostname is a DNS name or IP literal, without brackets for IPv6.
	Hostname string

	// Port is the explicit port, 0 when the input named none.
	Port int

	// UseTLS is the transport hint derived from the input.
	UseTLS bool
}

// Scheme returns "https" or "http" according to UseTLS.
func (t Target) Scheme() string {
	if t.UseTLS {
		return "https"
	}
	return "http"
}

// BaseURL returns the base URL for the target's own scheme and port.
func (t Target) BaseURL() string {
	return BaseURL(t.Scheme(), t.Hostname, t.Port)
}

// String returns host[:port].
func (t Target) String() string {
	if t.Port == 0 {
		return t.Hostname
	}
	return net.JoinHostPort(t.Hostname, strconv.Itoa(t.Port))
}

// Normalize turns free-form host input into a Target. It accepts
//
//   - a full URL ("https://api.example.com", "http://10.0.0.5:8080/v1"):
//     hostname, port and TLS come from the URL
//   - host:port ("10.0.0.5:8080", "[::1]:11434"): TLS off
//   - a bare host: TLS on for names that look like domains
//     ("api.example.com"), off for IP literals and single labels
//     ("localhost", "192.168.1.2")
func Normalize(raw string) (Target, error) {
	input := strings.TrimSpace(raw)
	if input == "" {
		return Target{}, fmt.Errorf("empty host")
	}

	if strings.Contains(input, "://") {
		return parseURL(input)
	}

	if strings.Count(input, ":") == 1 {
		host, portStr, _ := strings.Cut(input, ":")
		if port, err := strconv.Atoi(portStr); err == nil {
			return hostPort(host, port)
		}
	}

	// [v6]:port
	if strings.HasPrefix(input, "[") {
		if host, portStr, err := net.SplitHostPort(input); err == nil {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Target{}, fmt.Errorf("invalid port %q", portStr)
			}
			return hostPort(host, port)
		}
		input = strings.Trim(input, "[]")
	}

	return Target{Hostname: input, UseTLS: looksLikeDomain(input)}, nil
}

func parseURL(input string) (Target, error) {
	u, err := url.Parse(input)
	if err != nil {
		return Target{}, fmt.Errorf("invalid URL %q: %w", input, err)
	}
	if u.Hostname() == "" {
		return Target{}, fmt.Errorf("invalid URL %q: missing host", input)
	}

	t := Target{
		Hostname: u.Hostname(),
		UseTLS:   strings.EqualFold(u.Scheme, "https"),
	}
	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil || !validPort(port) {
			return Target{}, fmt.Errorf("invalid port %q", p)
		}
		t.Port = port
	}
	return t, nil
}

func hostPort(host string, port int) (Target, error) {
	if host == "" {
		return Target{}, fmt.Errorf("missing host before port %d", port)
	}
	if !validPort(port) {
		return Target{}, fmt.Errorf("port %d out of range (1-65535)", port)
	}
	return Target{Hostname: host, Port: port}, nil
}

func validPort(port int) bool {
	return port >= 1 && port <= 65535
}

// looksLikeDomain reports whether host contains a dot and is not made only
// of digits, dots and dashes (the shape of an IPv4 literal).
func looksLikeDomain(host string) bool {
	if !strings.Contains(host, ".") {
		return false
	}
	for _, r := range host {
		if (r < '0' || r > '9') && r != '.' && r != '-' {
			return true
		}
	}
	return false
}

// BaseURL builds scheme://host[:port]. The port is omitted when it is 0 or
// the scheme's default (443 for https, 80 for http). IPv6 literals are
// bracketed.
func BaseURL(scheme, host string, port int) string {
	if port == 0 || (scheme == "https" && port == 443) || (scheme == "http" && port == 80) {
		if strings.Contains(host, ":") {
			host = "[" + host + "]"
		}
		return scheme + "://" + host
	}
	return scheme + "://" + net.JoinHostPort(host, strconv.Itoa(port))
}
