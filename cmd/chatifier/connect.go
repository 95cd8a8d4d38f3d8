package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"mercator-hq/chatifier/pkg/cli"
	"mercator-hq/chatifier/pkg/detect"
	"mercator-hq/chatifier/pkg/providerfactory"
	"mercator-hq/chatifier/pkg/providers"
)

// endpoint is where a client will connect.
type endpoint struct {
	provider string
	baseURL  string
}

// resolveEndpoint picks the provider and base URL. With --override the
// provider is taken as given: the base URL comes from the host argument when
// one was given, else from the configuration file, else the provider's
// public default. Without it the host is detected.
func resolveEndpoint(ctx context.Context, a *app, args []string, out io.Writer) (endpoint, error) {
	target, err := targetFromArgs(args)
	if err != nil {
		return endpoint{}, err
	}

	if connFlags.override != "" {
		ep := endpoint{provider: strings.ToLower(strings.TrimSpace(connFlags.override))}
		if len(args) > 0 || connFlags.port != 0 {
			if len(args) > 0 && !strings.Contains(args[0], "://") {
				target = withDefaultPort(target, ep.provider)
			}
			ep.baseURL = target.BaseURL()
		} else {
			ep.baseURL = a.cfg.Provider(ep.provider).BaseURL
		}
		slog.Debug("using provider override", "provider", ep.provider, "base_url", ep.baseURL)
		return ep, nil
	}

	if verbose {
		fmt.Fprintf(out, "Auto-detecting API on %s...\n", target)
	}

	d, done := a.detector(target)
	res := d.Detect(ctx, target)
	done()

	if res == nil {
		return endpoint{}, &cli.NoProviderError{Target: target.Hostname, Ports: d.Ports(target)}
	}
	if verbose {
		fmt.Fprintf(out, "Detected %s API at %s\n", res.Provider, res.BaseURL)
	}
	return endpoint{provider: res.Provider, baseURL: res.BaseURL}, nil
}

// withDefaultPort fills in the port and scheme of provider's default base
// URL when target has no port and that default names one explicitly. Local
// servers such as Ollama (11434) listen on their own port rather than 80.
func withDefaultPort(target detect.Target, provider string) detect.Target {
	if target.Port != 0 {
		return target
	}
	u, err := url.Parse(providerfactory.DefaultBaseURL(provider))
	if err != nil || u.Port() == "" {
		return target
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		return target
	}
	target.Port = port
	target.UseTLS = u.Scheme == "https"
	return target
}

// newClient creates the client for ep. Flags win over the configuration
// file for the token and model.
func newClient(ctx context.Context, a *app, ep endpoint) (providers.Client, error) {
	pc := a.cfg.Provider(ep.provider)

	token := connFlags.token
	if token == "" {
		token = pc.APIKey
	}
	model := connFlags.model
	if model == "" {
		model = pc.Model
	}

	return providerfactory.Create(ctx, ep.provider, providerfactory.Options{
		BaseURL:            ep.baseURL,
		Token:              token,
		Model:              model,
		Timeout:            pc.Timeout,
		InsecureSkipVerify: !a.cfg.Detection.VerifyTLS,
		Metrics:            a.metrics,
	})
}

// connect runs the connect check. When the server asks for a credential and
// none was configured, the user is prompted once and the check repeated.
func connect(ctx context.Context, client providers.Client, prompter *cli.Prompter, out io.Writer) error {
	err := client.ConnectCheck(ctx)
	if err == nil {
		return nil
	}

	if !providers.IsAuthFailure(err) {
		return fmt.Errorf("connection failed: %w", err)
	}
	if client.Config().Token != "" {
		return fmt.Errorf("authentication failed: %w", err)
	}

	fmt.Fprintln(out, "Authentication required.")
	token, perr := prompter.Secret("Enter API token: ")
	if perr != nil {
		return fmt.Errorf("authentication failed: %w", perr)
	}
	if token == "" {
		return fmt.Errorf("authentication failed: no token given")
	}

	if err := client.SetToken(ctx, token); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	return nil
}

// describe prints where the client is connected.
func describe(client providers.Client) string {
	return fmt.Sprintf("%s at %s", client.Provider(), client.Config().BaseURL)
}

// endpointsFor is the text shown by detect for a found provider.
func endpointsFor(provider string) string {
	e := detect.EndpointInfo(provider)
	if e.Models == "" {
		return "chat " + e.Chat
	}
	return "chat " + e.Chat + ", models " + e.Models
}
