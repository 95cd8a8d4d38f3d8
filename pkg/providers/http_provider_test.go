package providers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPProvider_SingleAttemptOn5xx(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	}))
	defer server.Close()

	p := NewHTTPProvider("openai", ClientConfig{BaseURL: server.URL}, nil)
	resp, err := p.DoRequest(context.Background(), "send", http.MethodPost, p.URL("/v1/chat/completions"), []byte(`{}`), nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}

func TestHTTPProvider_Headers(t *testing.T) {
	var got http.Header
	var body []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		body, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	p := NewHTTPProvider("openai", ClientConfig{BaseURL: server.URL + "/"}, nil)
	resp, err := p.DoJSONRequest(context.Background(), "send", http.MethodPost, p.URL("/x"),
		map[string]string{"hello": "world"}, BearerHeaders("sk-test"))
	require.NoError(t, err)

	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, "Bearer sk-test", got.Get("Authorization"))
	assert.JSONEq(t, `{"hello":"world"}`, string(body))

	var decoded struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, p.DecodeJSON(resp, &decoded))
	assert.True(t, decoded.OK)
}

func TestHTTPProvider_ConnectivityError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	p := NewHTTPProvider("ollama", ClientConfig{BaseURL: url, Timeout: time.Second}, nil)
	_, err := p.DoRequest(context.Background(), "connect", http.MethodGet, p.URL("/api/tags"), nil, nil)

	var connErr *ConnectivityError
	require.True(t, errors.As(err, &connErr))
	assert.Equal(t, "ollama", connErr.Provider)
	assert.Equal(t, url+"/api/tags", connErr.URL)
}

func TestHTTPProvider_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	p := NewHTTPProvider("generic", ClientConfig{BaseURL: server.URL, Timeout: 50 * time.Millisecond}, nil)
	_, err := p.DoRequest(context.Background(), "send", http.MethodGet, p.URL("/chat"), nil, nil)

	var connErr *ConnectivityError
	assert.True(t, errors.As(err, &connErr))
}

func TestHTTPProvider_InsecureTLS(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	insecure := NewHTTPProvider("openai", ClientConfig{BaseURL: server.URL, InsecureSkipVerify: true}, nil)
	resp, err := insecure.DoRequest(context.Background(), "connect", http.MethodGet, insecure.URL("/v1/models"), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	strict := NewHTTPProvider("openai", ClientConfig{BaseURL: server.URL}, nil)
	_, err = strict.DoRequest(context.Background(), "connect", http.MethodGet, strict.URL("/v1/models"), nil, nil)
	var connErr *ConnectivityError
	assert.True(t, errors.As(err, &connErr), "self-signed certificate must fail verification")
}

func TestHTTPProvider_Settings(t *testing.T) {
	p := NewHTTPProvider("openai", ClientConfig{BaseURL: "http://h:1///"}, nil)
	assert.Equal(t, "openai", p.Provider())
	assert.Equal(t, "http://h:1", p.Config().BaseURL)
	assert.Equal(t, DefaultTimeout, p.Config().Timeout)

	p.SetModel("gpt-4o")
	p.StoreToken("sk-1")
	assert.Equal(t, "gpt-4o", p.Config().Model)
	assert.Equal(t, "sk-1", p.Config().Token)
	assert.NoError(t, p.Close())
}

func TestHTTPProvider_DecodeJSONFailure(t *testing.T) {
	p := NewHTTPProvider("openai", ClientConfig{BaseURL: "http://h"}, nil)
	var v map[string]any
	err := p.DecodeJSON(&Response{StatusCode: 200, Body: []byte("<html>")}, &v)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 200, apiErr.StatusCode)
	assert.Error(t, apiErr.Cause)
}
