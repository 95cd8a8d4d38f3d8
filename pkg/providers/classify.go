package providers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

// authKeywords are matched case-insensitively wherever they are not part of
// a longer alphabetic word, against
// response bodies. Some providers answer auth failures with 200 and an
// error body, so the status code alone is not enough.
var authKeywords = []string{"unauthorized", "forbidden", "authentication", "token", "api key"}

// maxPlainErrorLen bounds how much of a non-JSON error body is echoed back.
const maxPlainErrorLen = 200

// Only letters count as word characters, so snake_case codes such as
// "invalid_token" and "authentication_error" match.
var authKeywordPattern = regexp.MustCompile(`(?i)(?:^|[^a-zA-Z])(` + strings.Join(authKeywords, "|") + `)(?:[^a-zA-Z]|$)`)

// IsAuthError reports whether a response signals an authentication failure:
// status 401 or 403, or a body containing one of the auth keywords.
//
// A keyword followed or preceded by another letter does not count, so usage
// fields such as "input_tokens" or "promptTokenCount" in successful payloads
// do not trip the check.
func IsAuthError(statusCode int, body []byte) bool {
	if statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		return true
	}
	return authKeywordPattern.Match(body)
}

// ExtractErrorMessage pulls a human-readable message out of an error
// response. It understands {"error": {"message": ...}}, {"error": "..."} and
// {"message": "..."} bodies and falls back to the HTTP status line.
func ExtractErrorMessage(statusCode int, body []byte) string {
	var data map[string]any
	if err := json.Unmarshal(body, &data); err == nil {
		if raw, ok := data["error"]; ok {
			switch v := raw.(type) {
			case map[string]any:
				if msg, ok := v["message"].(string); ok {
					return msg
				}
				encoded, _ := json.Marshal(v)
				return string(encoded)
			case string:
				return v
			default:
				return fmt.Sprint(v)
			}
		}
		if msg, ok := data["message"].(string); ok {
			return msg
		}
	} else if text := strings.TrimSpace(string(body)); text != "" && len(text) <= maxPlainErrorLen {
		return text
	}
	return fmt.Sprintf("HTTP %d: %s", statusCode, http.StatusText(statusCode))
}

// ClassifyResponse converts a non-successful response into the matching
// error type. It returns nil when the response is neither an auth failure
// nor a status >= 400. checkBody controls whether the keyword heuristic is
// applied to responses below 400.
func ClassifyResponse(provider string, statusCode int, body []byte, checkBody bool) error {
	if statusCode >= 400 || checkBody {
		if IsAuthError(statusCode, body) {
			return &AuthError{
				Provider:   provider,
				StatusCode: statusCode,
				Message:    ExtractErrorMessage(statusCode, body),
			}
		}
	}
	if statusCode >= 400 {
		return &APIError{
			Provider:   provider,
			StatusCode: statusCode,
			Message:    ExtractErrorMessage(statusCode, body),
		}
	}
	return nil
}
