// Package anthropic implements the Anthropic provider adapter.
//
// This package implements providers.Client for Anthropic's Messages API.
// The API key travels in the x-api-key header together with a pinned
// anthropic-version header.
//
// # Basic Usage
//
//	client := anthropic.NewProvider(providers.ClientConfig{
//	    BaseURL: "https://api.anthropic.com",
//	    Token:   os.Getenv("ANTHROPIC_API_KEY"),
//	}, nil)
//	defer client.Close()
//
//	reply, err := client.SendMessage(ctx, "Hello!")
//
// # Connect Check
//
// There is no lightweight authenticated endpoint, so ConnectCheck sends a
// message with max_tokens set to 1.
package anthropic
