package providers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// MockServer is a mock HTTP server for testing provider adapters and
// detection. Responses are keyed by URL path; unknown paths answer 404.
type MockServer struct {
	server    *httptest.Server
	responses map[string]MockResponse
	handlers  map[string]http.HandlerFunc
	requests  []RecordedRequest
	mu        sync.Mutex
}

// MockResponse defines a mock response configuration.
type MockResponse struct {
	StatusCode int
	Body       interface{}
	Delay      time.Duration
	Headers    map[string]string
	// Method restricts the response to one HTTP method. Other methods get 405.
	Method string
}

// RecordedRequest is a request captured by the mock server.
type RecordedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

// NewMockServer creates a new plain HTTP mock server.
func NewMockServer() *MockServer {
	ms := &MockServer{
		responses: make(map[string]MockResponse),
		handlers:  make(map[string]http.HandlerFunc),
	}
	ms.server = httptest.NewServer(http.HandlerFunc(ms.handler))
	return ms
}

// NewTLSMockServer creates a mock server with a self-signed certificate.
func NewTLSMockServer() *MockServer {
	ms := &MockServer{
		responses: make(map[string]MockResponse),
		handlers:  make(map[string]http.HandlerFunc),
	}
	ms.server = httptest.NewTLSServer(http.HandlerFunc(ms.handler))
	return ms
}

// URL returns the mock server's base URL.
func (ms *MockServer) URL() string {
	return ms.server.URL
}

// Close closes the mock server.
func (ms *MockServer) Close() {
	ms.server.Close()
}

// SetResponse sets a mock response for a specific path.
func (ms *MockServer) SetResponse(path string, response MockResponse) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.responses[path] = response
}

// SetHandler installs a custom handler for a path. Handlers take precedence
// over responses registered with SetResponse.
func (ms *MockServer) SetHandler(path string, handler http.HandlerFunc) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.handlers[path] = handler
}

// GetRequestCount returns the number of requests received.
func (ms *MockServer) GetRequestCount() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	return len(ms.requests)
}

// Requests returns a copy of every captured request in arrival order.
func (ms *MockServer) Requests() []RecordedRequest {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	out := make([]RecordedRequest, len(ms.requests))
	copy(out, ms.requests)
	return out
}

// LastRequest returns the most recent request for path.
func (ms *MockServer) LastRequest(path string) (RecordedRequest, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	for i := len(ms.requests) - 1; i >= 0; i-- {
		if ms.requests[i].Path == path {
			return ms.requests[i], true
		}
	}
	return RecordedRequest{}, false
}

// RequestsFor returns the captured requests for path.
func (ms *MockServer) RequestsFor(path string) []RecordedRequest {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	var out []RecordedRequest
	for _, r := range ms.requests {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// ResetRequests clears the captured requests.
func (ms *MockServer) ResetRequests() {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.requests = nil
}

func (ms *MockServer) handler(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	ms.mu.Lock()
	ms.requests = append(ms.requests, RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Header: r.Header.Clone(),
		Body:   body,
	})
	custom, hasCustom := ms.handlers[r.URL.Path]
	response, ok := ms.responses[r.URL.Path]
	ms.mu.Unlock()

	if hasCustom {
		custom(w, r)
		return
	}
	if !ok {
		http.NotFound(w, r)
		return
	}
	if response.Method != "" && response.Method != r.Method {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if response.Delay > 0 {
		select {
		case <-time.After(response.Delay):
		case <-r.Context().Done():
			return
		}
	}

	for key, value := range response.Headers {
		w.Header().Set(key, value)
	}
	status := response.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)

	// HEAD responses carry no body
	if response.Body == nil || r.Method == http.MethodHead {
		return
	}
	switch v := response.Body.(type) {
	case string:
		_, _ = w.Write([]byte(v))
	case []byte:
		_, _ = w.Write(v)
	default:
		_ = json.NewEncoder(w).Encode(response.Body)
	}
}

// MockOpenAIResponse creates a mock OpenAI chat completion response.
func MockOpenAIResponse(content string, model string) map[string]interface{} {
	return map[string]interface{}{
		"id":      "chatcmpl-123",
		"object":  "chat.completion",
		"created": time.Now().Unix(),
		"model":   model,
		"choices": []map[string]interface{}{
			{
				"index": 0,
				"message": map[string]interface{}{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]interface{}{
			"prompt_tokens":     10,
			"completion_tokens": 20,
			"total_tokens":      30,
		},
	}
}

// MockOpenAIModels creates a mock /v1/models listing.
func MockOpenAIModels(ids ...string) map[string]interface{} {
	data := make([]map[string]interface{}, 0, len(ids))
	for _, id := range ids {
		data = append(data, map[string]interface{}{"id": id, "object": "model", "owned_by": "system"})
	}
	return map[string]interface{}{"object": "list", "data": data}
}

// MockAnthropicResponse creates a mock Anthropic messages response.
func MockAnthropicResponse(content string, model string) map[string]interface{} {
	return map[string]interface{}{
		"id":   "msg_123",
		"type": "message",
		"role": "assistant",
		"content": []map[string]interface{}{
			{
				"type": "text",
				"text": content,
			},
		},
		"model":       model,
		"stop_reason": "end_turn",
		"usage": map[string]interface{}{
			"input_tokens":  10,
			"output_tokens": 20,
		},
	}
}

// MockOllamaGenerate creates a mock /api/generate response.
func MockOllamaGenerate(content, model string) map[string]interface{} {
	return map[string]interface{}{
		"model":    model,
		"response": content,
		"done":     true,
	}
}

// MockOllamaTags creates a mock /api/tags listing.
func MockOllamaTags(names ...string) map[string]interface{} {
	models := make([]map[string]interface{}, 0, len(names))
	for _, name := range names {
		models = append(models, map[string]interface{}{"name": name, "size": 3825819519})
	}
	return map[string]interface{}{"models": models}
}

// MockGeminiResponse creates a mock generateContent response.
func MockGeminiResponse(content string) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"role":  "model",
					"parts": []map[string]interface{}{{"text": content}},
				},
				"finishReason": "STOP",
			},
		},
	}
}

// MockGeminiModels creates a mock /v1beta/models listing. Every model
// supports generateContent except those named in embedOnly.
func MockGeminiModels(names []string, embedOnly ...string) map[string]interface{} {
	skip := make(map[string]bool, len(embedOnly))
	for _, n := range embedOnly {
		skip[n] = true
	}
	models := make([]map[string]interface{}, 0, len(names)+len(embedOnly))
	for _, name := range names {
		models = append(models, map[string]interface{}{
			"name":                       "models/" + name,
			"supportedGenerationMethods": []string{"generateContent", "countTokens"},
		})
	}
	for _, name := range embedOnly {
		models = append(models, map[string]interface{}{
			"name":                       "models/" + name,
			"supportedGenerationMethods": []string{"embedContent"},
		})
	}
	return map[string]interface{}{"models": models}
}

// MockCohereResponse creates a mock /v1/chat response.
func MockCohereResponse(content string) map[string]interface{} {
	return map[string]interface{}{
		"response_id":   "c-123",
		"text":          content,
		"finish_reason": "COMPLETE",
	}
}

// MockErrorResponse creates a mock error response.
func MockErrorResponse(statusCode int, message string) MockResponse {
	body := map[string]interface{}{
		"error": map[string]interface{}{
			"message": message,
			"type":    "invalid_request_error",
			"code":    statusCode,
		},
	}

	return MockResponse{
		StatusCode: statusCode,
		Body:       body,
	}
}

// MockAuthError creates a 401 authentication error response.
func MockAuthError() MockResponse {
	return MockErrorResponse(http.StatusUnauthorized, "Invalid API key")
}

// MockServerError creates a 500 internal server error response.
func MockServerError() MockResponse {
	return MockErrorResponse(http.StatusInternalServerError, "Internal server error")
}

// MockTimeoutError creates a slow response to simulate a timeout.
func MockTimeoutError(delay time.Duration) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       `{}`,
		Delay:      delay,
	}
}

// DecodeJSONBody unmarshals a captured request body into a generic map.
func DecodeJSONBody(r RecordedRequest) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := json.Unmarshal(r.Body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode request body: %w", err)
	}
	return out, nil
}
