package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys. HTTP keys follow the OpenTelemetry semantic conventions;
// chatifier-specific keys use the "chatifier.*" namespace.
const (
	AttrProvider = "chatifier.provider"
	AttrModel    = "chatifier.model"
	AttrSession  = "chatifier.session"

	AttrTarget     = "chatifier.detect.target"
	AttrCandidates = "chatifier.detect.candidates"
	AttrBaseURL    = "chatifier.detect.base_url"

	AttrURL        = "url.full"
	AttrHTTPMethod = "http.request.method"
	AttrHTTPStatus = "http.response.status_code"

	AttrErrorMessage = "error.message"
)

// ProviderAttributes returns the attributes identifying a provider call.
// An empty model is omitted.
func ProviderAttributes(provider, model string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{attribute.String(AttrProvider, provider)}
	if model != "" {
		attrs = append(attrs, attribute.String(AttrModel, model))
	}
	return attrs
}

// ProbeAttributes returns the attributes for a single probe attempt.
func ProbeAttributes(method, url string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrHTTPMethod, method),
		attribute.String(AttrURL, url),
	}
}

// SetHTTPStatus records the response status code on the span.
func SetHTTPStatus(span trace.Span, status int) {
	span.SetAttributes(attribute.Int(AttrHTTPStatus, status))
}

// SetDetectionResult records the outcome of a detection run. provider is
// empty when nothing answered.
func SetDetectionResult(span trace.Span, provider, baseURL string, candidates int) {
	span.SetAttributes(attribute.Int(AttrCandidates, candidates))
	if provider == "" {
		return
	}
	span.SetAttributes(
		attribute.String(AttrProvider, provider),
		attribute.String(AttrBaseURL, baseURL),
	)
}

// SetSessionAttribute tags the span with the chat session identifier.
func SetSessionAttribute(span trace.Span, session string) {
	if session != "" {
		span.SetAttributes(attribute.String(AttrSession, session))
	}
}

// AddEvent adds an event to the span with optional attributes.
//
//	AddEvent(span, "token_prompted")
func AddEvent(span trace.Span, name string, attrs ...attribute.KeyValue) {
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
