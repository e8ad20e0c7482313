// Package testing provides shared helpers for exercising the pipeline
// against a mock completions endpoint.
package testing

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// MockServerOption configures NewMockServer
type MockServerOption func(*mockServerConfig)

type mockServerConfig struct {
	validateAuth bool
	authHeader   string
	authValue    string
}

// WithAuthValidation makes the mock server assert the given header value
// on every request
func WithAuthValidation(header, value string) MockServerOption {
	return func(cfg *mockServerConfig) {
		cfg.validateAuth = true
		cfg.authHeader = header
		cfg.authValue = value
	}
}

// NewMockServer starts an httptest server wrapping the handler
func NewMockServer(t *testing.T, handler http.HandlerFunc, opts ...MockServerOption) *httptest.Server {
	t.Helper()
	cfg := &mockServerConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	wrappedHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cfg.validateAuth {
			if got := r.Header.Get(cfg.authHeader); got != cfg.authValue {
				t.Errorf("Expected %s header '%s', got '%s'", cfg.authHeader, cfg.authValue, got)
			}
		}
		handler(w, r)
	})

	srv := httptest.NewServer(wrappedHandler)
	t.Cleanup(srv.Close)
	return srv
}

// JSONHandler responds with a fixed status code and JSON body
func JSONHandler(statusCode int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(body))
	}
}

// CompletionBody builds a minimal completions payload with the given
// model and answer text
func CompletionBody(model, content string) string {
	return fmt.Sprintf(`{"model":%q,"choices":[{"message":{"role":"assistant","content":%q}}]}`, model, content)
}

// CompletionBodyWithUsage builds a payload carrying a full usage block
func CompletionBodyWithUsage(model, content string, promptTokens, completionTokens, totalTokens int) string {
	return fmt.Sprintf(
		`{"model":%q,"choices":[{"message":{"role":"assistant","content":%q}}],"usage":{"prompt_tokens":%d,"completion_tokens":%d,"total_tokens":%d}}`,
		model, content, promptTokens, completionTokens, totalTokens)
}
