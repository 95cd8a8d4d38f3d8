// Package openai implements the adapter for OpenAI's chat completions API and
// the many servers that copy it (llama.cpp, vLLM, LM Studio, LocalAI).
//
// Requests carry the full conversation on every call and ask for a single
// non-streamed reply. The credential, when present, travels as a bearer
// token.
//
// # Basic Usage
//
//	client := openai.NewProvider(providers.ClientConfig{
//	    BaseURL: "http://localhost:8000",
//	}, nil)
//	defer client.Close()
//
//	if err := client.ConnectCheck(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	reply, err := client.SendMessage(ctx, "Hello!")
package openai
