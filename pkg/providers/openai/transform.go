package openai

import (
	"errors"

	"mercator-hq/chatifier/pkg/providers"
)

// OpenAI API request/response types

// OpenAIRequest represents an OpenAI chat completion request.
type OpenAIRequest struct {
	Model    string          `json:"model"`
	Messages []OpenAIMessage `json:"messages"`
	Stream   bool            `json:"stream"`
}

// OpenAIMessage represents a message in OpenAI format.
type OpenAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// OpenAIResponse represents an OpenAI chat completion response.
type OpenAIResponse struct {
	ID      string         `json:"id"`
	Model   string         `json:"model"`
	Choices []OpenAIChoice `json:"choices"`
}

// OpenAIChoice represents a completion choice in OpenAI format.
type OpenAIChoice struct {
	Index        int           `json:"index"`
	Message      OpenAIMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

// OpenAIModelList is the body of GET /v1/models.
type OpenAIModelList struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

var errNoChoices = errors.New("no choices in response")

// transformRequest builds a non-streaming chat completion request from the
// full conversation, pending user turn included.
func transformRequest(model string, messages []providers.Message) *OpenAIRequest {
	req := &OpenAIRequest{
		Model:    model,
		Messages: make([]OpenAIMessage, len(messages)),
	}
	for i, msg := range messages {
		req.Messages[i] = OpenAIMessage{Role: msg.Role, Content: msg.Content}
	}
	return req
}

// transformResponse extracts the reply text of the first choice.
func transformResponse(resp *OpenAIResponse) (string, error) {
	if len(resp.Choices) == 0 {
		return "", errNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}

// modelIDs returns the sorted model identifiers of a listing.
func modelIDs(list *OpenAIModelList) []string {
	ids := make([]string, 0, len(list.Data))
	for _, m := range list.Data {
		ids = append(ids, m.ID)
	}
	return providers.SortedUnique(ids)
}
