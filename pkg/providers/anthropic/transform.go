package anthropic

import (
	"errors"

	"mercator-hq/chatifier/pkg/providers"
)

// Anthropic API request/response types

// AnthropicRequest represents an Anthropic messages request.
type AnthropicRequest struct {
	Model     string             `json:"model"`
	Messages  []AnthropicMessage `json:"messages"`
	MaxTokens int                `json:"max_tokens"`
}

// AnthropicMessage represents a message in Anthropic format.
type AnthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ContentBlock represents a content block in Anthropic format.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// AnthropicResponse represents an Anthropic messages response.
type AnthropicResponse struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Role       string         `json:"role"`
	Content    []ContentBlock `json:"content"`
	Model      string         `json:"model"`
	StopReason string         `json:"stop_reason"`
}

var errNoContent = errors.New("no content blocks in response")

// transformRequest converts the conversation to Anthropic format. System
// messages are not part of the Messages API turn list and are dropped.
func transformRequest(model string, maxTokens int, messages []providers.Message) *AnthropicRequest {
	req := &AnthropicRequest{
		Model:     model,
		Messages:  make([]AnthropicMessage, 0, len(messages)),
		MaxTokens: maxTokens,
	}
	for _, msg := range messages {
		if msg.Role == providers.RoleSystem {
			continue
		}
		req.Messages = append(req.Messages, AnthropicMessage{Role: msg.Role, Content: msg.Content})
	}
	return req
}

// transformResponse returns the text of the first content block.
func transformResponse(resp *AnthropicResponse) (string, error) {
	if len(resp.Content) == 0 {
		return "", errNoContent
	}
	return resp.Content[0].Text, nil
}
