package providers

import (
	"sort"
	"strings"
)

// BearerHeaders returns the JSON content-type header plus an Authorization
// bearer header when token is non-empty.
func BearerHeaders(token string) map[string]string {
	headers := map[string]string{"Content-Type": "application/json"}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	return headers
}

// SortedUnique returns the non-empty names in ascending order without
// duplicates.
func SortedUnique(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// FormatModelName shortens a model identifier for display by stripping
// common vendor prefixes and release-channel suffixes.
//
//	FormatModelName("gpt-4-turbo-preview") // "4-turbo"
//	FormatModelName("text-davinci-003")    // "davinci-003"
func FormatModelName(model string) string {
	formatted := model
	for _, prefix := range []string{"text-", "chat-", "gpt-"} {
		formatted = strings.TrimPrefix(formatted, prefix)
	}
	for _, suffix := range []string{"-latest", "-preview"} {
		formatted = strings.TrimSuffix(formatted, suffix)
	}
	return formatted
}

// FallbackModels returns a copy of a fixed model list so callers can modify
// the result freely.
func FallbackModels(models []string) []string {
	out := make([]string, len(models))
	copy(out, models)
	return out
}
