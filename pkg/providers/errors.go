package providers

import (
	"errors"
	"fmt"
)

// ConnectivityError represents a network or transport failure.
// The request never produced an HTTP response (connection refused, DNS
// failure, TLS handshake failure, timeout).
type ConnectivityError struct {
	// Provider is the name of the provider that was being contacted
	Provider string

	// URL is the URL that could not be reached
	URL string

	// Cause is the underlying transport error
	Cause error
}

// Error implements the error interface.
func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("provider %q unreachable at %s: %v", e.Provider, e.URL, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *ConnectivityError) Unwrap() error {
	return e.Cause
}

// AuthError represents an authentication failure.
// The server answered but rejected (or demanded) the credential, either with
// HTTP 401/403 or with an auth-related error body.
type AuthError struct {
	// Provider is the name of the provider that rejected authentication
	Provider string

	// StatusCode is the HTTP status code of the rejecting response
	StatusCode int

	// Message is the error message from the provider
	Message string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return fmt.Sprintf("provider %q authentication failed: %s", e.Provider, e.Message)
}

// APIError represents a request the server rejected for reasons other than
// authentication, or a response that could not be parsed.
type APIError struct {
	// Provider is the name of the provider that returned the error
	Provider string

	// StatusCode is the HTTP status code (0 if not applicable)
	StatusCode int

	// Message is the error message
	Message string

	// Cause is the underlying error (if any)
	Cause error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider %q error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider %q error: %s", e.Provider, e.Message)
}

// Unwrap returns the underlying error for error chain support.
func (e *APIError) Unwrap() error {
	return e.Cause
}

// UnknownProviderError is returned when a caller asks for a provider
// identifier that has no client implementation.
type UnknownProviderError struct {
	// Provider is the requested identifier
	Provider string

	// Supported lists the identifiers that are known
	Supported []string
}

// Error implements the error interface.
func (e *UnknownProviderError) Error() string {
	if len(e.Supported) == 0 {
		return fmt.Sprintf("unknown provider %q", e.Provider)
	}
	return fmt.Sprintf("unknown provider %q (supported: %v)", e.Provider, e.Supported)
}

// IsAuthFailure reports whether err is, or wraps, an *AuthError.
func IsAuthFailure(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}
