package detect

import (
	"slices"

	"mercator-hq/chatifier/pkg/providers"
)

// Signature lists the paths whose answer is diagnostic of a provider,
// in the order they are tried.
type Signature struct {
	Provider string
	Paths    []string
}

// signatures is the fixed declaration order. When a host answers on paths
// of several providers, the earlier one wins.
var signatures = []Signature{
	{Provider: providers.ProviderOpenAI, Paths: []string{"/v1/models", "/v1/chat/completions"}},
	{Provider: providers.ProviderAnthropic, Paths: []string{"/v1/messages", "/v1/models"}},
	{Provider: providers.ProviderOllama, Paths: []string{"/api/tags", "/api/generate"}},
	{Provider: providers.ProviderGemini, Paths: []string{"/v1beta/models"}},
	{Provider: providers.ProviderCohere, Paths: []string{"/v1/chat"}},
	{Provider: providers.ProviderGeneric, Paths: []string{"/chat", "/api/chat", "/message", "/api/message"}},
}

// Signatures returns a copy of the known signatures in declaration order.
func Signatures() []Signature {
	out := make([]Signature, len(signatures))
	for i, s := range signatures {
		out[i] = Signature{Provider: s.Provider, Paths: slices.Clone(s.Paths)}
	}
	return out
}

// SignatureFor returns the signature of provider.
func SignatureFor(provider string) (Signature, bool) {
	for _, s := range signatures {
		if s.Provider == provider {
			return Signature{Provider: s.Provider, Paths: slices.Clone(s.Paths)}, true
		}
	}
	return Signature{}, false
}

// Endpoints are the paths a client of a provider talks to.
type Endpoints struct {
	// Chat is the path messages are sent to. For gemini it contains a
	// {model} placeholder.
	Chat string

	// Models is the model listing path, empty when the provider has none.
	Models string
}

// EndpointInfo returns the chat and model listing paths of provider.
// Unknown providers get the generic paths.
func EndpointInfo(provider string) Endpoints {
	switch provider {
	case providers.ProviderOpenAI:
		return Endpoints{Chat: "/v1/chat/completions", Models: "/v1/models"}
	case providers.ProviderAnthropic:
		return Endpoints{Chat: "/v1/messages", Models: "/v1/models"}
	case providers.ProviderOllama:
		return Endpoints{Chat: "/api/generate", Models: "/api/tags"}
	case providers.ProviderGemini:
		return Endpoints{Chat: "/v1beta/models/{model}:generateContent", Models: "/v1beta/models"}
	case providers.ProviderCohere:
		return Endpoints{Chat: "/v1/chat"}
	default:
		return Endpoints{Chat: "/chat", Models: "/models"}
	}
}
