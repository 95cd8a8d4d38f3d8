package cohere

import (
	"mercator-hq/chatifier/pkg/providers"
)

// ChatRequest is the body of POST /v1/chat. The pending user turn goes in
// Message; earlier turns go in ChatHistory.
type ChatRequest struct {
	Model       string        `json:"model"`
	Message     string        `json:"message"`
	ChatHistory []ChatMessage `json:"chat_history,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// ChatMessage is a prior turn in Cohere format.
type ChatMessage struct {
	Role    string `json:"role"`
	Message string `json:"message"`
}

// ChatResponse is the /v1/chat reply.
type ChatResponse struct {
	ResponseID   string  `json:"response_id"`
	Text         *string `json:"text"`
	FinishReason string  `json:"finish_reason"`
}

const (
	roleUser    = "USER"
	roleChatbot = "CHATBOT"
	roleSystem  = "SYSTEM"
)

func transformRequest(model string, history []providers.Message, text string) *ChatRequest {
	req := &ChatRequest{Model: model, Message: text}
	for _, msg := range history {
		role := roleUser
		switch msg.Role {
		case providers.RoleAssistant:
			role = roleChatbot
		case providers.RoleSystem:
			role = roleSystem
		}
		req.ChatHistory = append(req.ChatHistory, ChatMessage{Role: role, Message: msg.Content})
	}
	return req
}
