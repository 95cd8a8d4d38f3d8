// chatifier is a terminal chat client for unknown LLM endpoints.
//
// Point it at a host and it works out which API is listening (OpenAI-style,
// Anthropic, Ollama, Gemini, Cohere or a generic chat endpoint), checks the
// credential, and starts a conversation.
//
// Usage:
//
//	# Detect and chat with whatever answers on localhost
//	chatifier
//
//	# A specific host and port
//	chatifier 10.0.0.5 --port 11434
//
//	# Skip detection
//	chatifier api.openai.com --override openai --token "$OPENAI_API_KEY"
//
//	# Only report what is listening
//	chatifier detect 10.0.0.5 --output json
//
//	# List models
//	chatifier models localhost -p 11434
//
//	# Check a configuration file
//	chatifier config validate ~/.config/chatifier/config.yaml
package main

func main() {
	Execute()
}
