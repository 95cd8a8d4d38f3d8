package ollama

import (
	"strings"

	"mercator-hq/chatifier/pkg/providers"
)

// GenerateRequest is the body of POST /api/generate.
type GenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// GenerateResponse is the non-streamed /api/generate reply.
type GenerateResponse struct {
	Model    string  `json:"model"`
	Response *string `json:"response"`
	Done     bool    `json:"done"`
}

// TagsResponse is the body of GET /api/tags.
type TagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// buildPrompt flattens the conversation into a transcript that ends with an
// open assistant turn:
//
//	User: hi
//	Assistant: hello
//	User: <text>
//	Assistant:
func buildPrompt(history []providers.Message, text string) string {
	var b strings.Builder
	for _, msg := range history {
		if msg.Role == providers.RoleUser {
			b.WriteString("User: ")
		} else {
			b.WriteString("Assistant: ")
		}
		b.WriteString(msg.Content)
		b.WriteByte('\n')
	}
	b.WriteString("User: ")
	b.WriteString(text)
	b.WriteString("\nAssistant: ")
	return b.String()
}

func tagNames(tags *TagsResponse) []string {
	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return providers.SortedUnique(names)
}
