package providers

import "context"

// Client is the conversational contract every provider adapter implements.
// It hides the wire-format differences between OpenAI-style, Ollama, Anthropic,
// Gemini, Cohere and unknown chat endpoints behind one stateful dialogue.
//
// A Client is owned by a single chat session. SendMessage must not be called
// concurrently on the same Client: history mutation is not synchronized and
// concurrent calls would corrupt turn ordering.
//
// Example usage:
//
//	client, err := providerfactory.Create(ctx, "openai", providerfactory.Options{
//	    BaseURL: "http://localhost:8080",
//	})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	if err := client.ConnectCheck(ctx); err != nil {
//	    var authErr *providers.AuthError
//	    if errors.As(err, &authErr) {
//	        err = client.SetToken(ctx, promptForToken())
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
//
//	reply, err := client.SendMessage(ctx, "Hello!")
type Client interface {
	// Provider returns the provider identifier ("openai", "ollama", ...).
	Provider() string

	// ConnectCheck performs a provider-appropriate lightweight request.
	// It returns an *AuthError when the credential is missing or rejected,
	// a *ConnectivityError when the server cannot be reached and an *APIError
	// for any other rejection.
	ConnectCheck(ctx context.Context) error

	// ListModels returns the model identifiers the endpoint offers. It never
	// fails: providers without a models endpoint return a fixed list or an
	// empty slice, and listing failures fall back to the fixed list.
	ListModels(ctx context.Context) []string

	// SendMessage sends text as the next user turn and returns the reply.
	// On success exactly one user and one assistant message are appended to
	// the history. On failure the history is left untouched.
	SendMessage(ctx context.Context, text string) (string, error)

	// ClearHistory discards all turns. Connection settings are kept.
	ClearHistory()

	// History returns a copy of the conversation so far.
	History() []Message

	// Config returns the current connection settings.
	Config() ClientConfig

	// SetToken replaces the credential and returns the result of a fresh
	// ConnectCheck, so the caller sees whether the new token is accepted.
	SetToken(ctx context.Context, token string) error

	// SetModel selects the model used by subsequent requests.
	SetModel(model string)

	// Close releases idle HTTP connections.
	Close() error
}
