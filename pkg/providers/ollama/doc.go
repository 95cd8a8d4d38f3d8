// Package ollama implements the adapter for a local Ollama server.
//
// Conversation turns are flattened into a "User: / Assistant:" transcript
// and sent to /api/generate with streaming disabled.
package ollama
