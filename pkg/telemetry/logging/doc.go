// Package logging configures structured logging for chatifier.
//
// # Overview
//
// chatifier packages log through the log/slog package-level functions.
// This package builds the handler those calls end up in:
//   - JSON or text output on stderr, so logs never interleave with chat output
//   - Credential redaction (API keys, bearer tokens, ?key= query parameters)
//   - Context fields (session_id, provider, model) added to every record
//   - A level that can change while the program runs
//
// # Usage
//
//	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging, verbose))
//	if err != nil {
//	    return err
//	}
//	logger.Install()
//
//	ctx = logging.WithSession(ctx, sessionID)
//	slog.InfoContext(ctx, "chat session started", "base_url", baseURL)
//
// # Redaction
//
//   - sk-abc123def456 → sk-***
//   - Authorization: Bearer abc.def → Bearer ***
//   - https://host/v1beta/models?key=AIza... → https://host/v1beta/models?key=***
//   - attributes named token, api_key, authorization, ... → first 4 chars + ***
package logging
