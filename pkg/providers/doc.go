// Package providers normalizes conversational HTTP APIs behind one client
// contract.
//
// # Overview
//
// A terminal chat session does not care whether it is talking to OpenAI, a
// local Ollama, Anthropic, Gemini, Cohere or some home-grown /chat endpoint.
// Every adapter implements Client, keeps its own conversation history and
// translates it into the provider's wire format on each request.
//
// # Architecture
//
//  1. Client - the interface every adapter implements
//  2. HTTPProvider - shared single-attempt HTTP base (TLS settings, timeouts,
//     metrics and spans)
//  3. Helpers - error classification, history bookkeeping, model list helpers
//  4. Adapters - openai, ollama, anthropic, gemini, cohere, generic subpackages
//
// Adapters are constructed through the providerfactory package, which maps a
// provider identifier to a constructor and fills in default base URLs.
//
// # Error Handling
//
// Failures are reported as typed errors and matched with errors.As:
//
//   - ConnectivityError: no HTTP response was received
//   - AuthError: 401/403 or an auth-related error body
//   - APIError: any other rejection or an unparseable reply
//   - UnknownProviderError: no adapter for the requested identifier
//
// Example:
//
//	reply, err := client.SendMessage(ctx, "Hello")
//	var authErr *providers.AuthError
//	if errors.As(err, &authErr) {
//	    // prompt for a token and call client.SetToken
//	}
//
// # History
//
// A successful SendMessage appends exactly one user turn and one assistant
// turn. A failed call appends nothing, so the user can retry the same input.
//
// # Thread Safety
//
// Clients are not safe for concurrent use. One chat session owns one client
// and issues one request at a time.
package providers
