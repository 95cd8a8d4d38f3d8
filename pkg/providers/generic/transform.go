package generic

import (
	"encoding/json"
	"fmt"

	"mercator-hq/chatifier/pkg/providers"
)

// shape is one request format tried against an unknown endpoint, paired
// with the extractor that reads its reply.
type shape struct {
	name    string
	build   func(model string, messages []providers.Message, text string) any
	extract func(body []byte) (string, bool)
}

// shapes are attempted in order until one produces a reply.
var shapes = []shape{
	{
		name: "messages",
		build: func(model string, messages []providers.Message, _ string) any {
			return map[string]any{"messages": messages, "model": model}
		},
		extract: extractReply,
	},
	{
		name: "message",
		build: func(_ string, _ []providers.Message, text string) any {
			return map[string]any{"message": text, "user": "user"}
		},
		extract: extractReply,
	},
	{
		name: "text",
		build: func(_ string, _ []providers.Message, text string) any {
			return map[string]any{"text": text}
		},
		extract: extractReply,
	},
	{
		name: "query",
		build: func(_ string, _ []providers.Message, text string) any {
			return map[string]any{"query": text}
		},
		extract: extractReply,
	},
}

// replyKeys are the top-level fields that may carry the reply. The first key
// present decides; a value of the form {"content": ...} is unwrapped.
var replyKeys = []string{"response", "message", "text", "reply", "answer"}

// extractReply reads a reply from a JSON object body. It reports false when
// no reply key is present or the reply is empty.
func extractReply(body []byte) (string, bool) {
	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return "", false
	}

	for _, key := range replyKeys {
		value, ok := data[key]
		if !ok {
			continue
		}
		if obj, ok := value.(map[string]any); ok {
			if content, ok := obj["content"]; ok {
				value = content
			}
		}
		reply := stringify(value)
		return reply, reply != ""
	}
	return "", false
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if !v {
			return ""
		}
		return "true"
	case float64:
		if v == 0 {
			return ""
		}
		return fmt.Sprint(v)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		s := string(encoded)
		if s == "{}" || s == "[]" {
			return ""
		}
		return s
	}
}
