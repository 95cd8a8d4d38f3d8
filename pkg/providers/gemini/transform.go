package gemini

import (
	"errors"
	"strings"

	"mercator-hq/chatifier/pkg/providers"
)

// GenerateContentRequest is the body of models/{model}:generateContent.
type GenerateContentRequest struct {
	Contents []Content `json:"contents"`
}

// Content is one conversation turn in Gemini format.
type Content struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// Part is a piece of turn content. Only text parts are used.
type Part struct {
	Text string `json:"text"`
}

// GenerateContentResponse is the generateContent reply.
type GenerateContentResponse struct {
	Candidates []struct {
		Content      Content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
}

// ModelList is the body of GET /v1beta/models.
type ModelList struct {
	Models []struct {
		Name                       string   `json:"name"`
		SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
	} `json:"models"`
}

const (
	roleUser  = "user"
	roleModel = "model"
)

var errNoCandidates = errors.New("no content in response")

// transformRequest maps assistant turns to Gemini's "model" role and drops
// system messages.
func transformRequest(messages []providers.Message) *GenerateContentRequest {
	req := &GenerateContentRequest{Contents: make([]Content, 0, len(messages))}
	for _, msg := range messages {
		role := roleUser
		switch msg.Role {
		case providers.RoleSystem:
			continue
		case providers.RoleAssistant:
			role = roleModel
		}
		req.Contents = append(req.Contents, Content{Role: role, Parts: []Part{{Text: msg.Content}}})
	}
	return req
}

// transformResponse joins the text parts of the first candidate.
func transformResponse(resp *GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errNoCandidates
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String(), nil
}

// chatModels returns the models that support generateContent, with the
// "models/" resource prefix removed.
func chatModels(list *ModelList) []string {
	names := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		for _, method := range m.SupportedGenerationMethods {
			if method == "generateContent" {
				names = append(names, strings.TrimPrefix(m.Name, "models/"))
				break
			}
		}
	}
	return providers.SortedUnique(names)
}
