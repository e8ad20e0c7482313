package perplexity

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"sync"
	"testing"

	apperrors "github.com/user/perplexity-mcp/internal/errors"
	"github.com/user/perplexity-mcp/internal/simcache"
	testhelpers "github.com/user/perplexity-mcp/internal/testing"
)

// stubCache returns a fixed similarity list and records stores
type stubCache struct {
	mu           sync.Mutex
	similarities []simcache.SimilarityResult
	lookupErr    error
	storeErr     error
	stored       []simcache.CacheQuery
}

func (c *stubCache) Store(query simcache.CacheQuery) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stored = append(c.stored, query)
	return c.storeErr
}

func (c *stubCache) Similarities(query simcache.CacheQuery) ([]simcache.SimilarityResult, error) {
	return c.similarities, c.lookupErr
}

func (c *stubCache) storeCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.stored)
}

func similarityWith(score float64, results string) []simcache.SimilarityResult {
	return []simcache.SimilarityResult{{
		Query: simcache.CacheQuery{
			Action:  DefaultCacheAction,
			Results: json.RawMessage(results),
		},
		Score: score,
	}}
}

func TestClient_CacheHitSkipsRemoteCall(t *testing.T) {
	srv := testhelpers.NewMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("Remote call performed despite cache hit")
	})

	cache := &stubCache{
		similarities: similarityWith(0.97, `{"choices":[{"message":{"content":"cached answer"}}]}`),
	}

	client := NewClient(ClientConfig{APIKey: "key", BaseURL: srv.URL}, cache, nil, nil)

	resp, err := client.Call(context.Background(), ChatRequest{
		Model:    "sonar-reasoning-pro",
		Messages: UserMessage("question"),
	})
	if err != nil {
		t.Fatalf("Call returned error: %v", err)
	}

	content, err := resp.Content()
	if err != nil {
		t.Fatalf("Content returned error: %v", err)
	}
	if content != "cached answer" {
		t.Errorf("Expected cached answer, got %q", content)
	}
	if cache.storeCount() != 0 {
		t.Errorf("Cache hit should not store, got %d stores", cache.storeCount())
	}
}

func TestClient_BelowThresholdCallsRemoteAndStoresOnce(t *testing.T) {
	srv := testhelpers.NewMockServer(t,
		testhelpers.JSONHandler(http.StatusOK, testhelpers.CompletionBody("sonar-reasoning-pro", "fresh answer")),
		testhelpers.WithAuthValidation("Authorization", "Bearer key"),
	)

	cache := &stubCache{
		similarities: similarityWith(0.80, `{"choices":[{"message":{"content":"stale"}}]}`),
	}

	client := NewClient(ClientConfig{APIKey: "key", BaseURL: srv.URL}, cache, nil, nil)

	resp, err := client.Call(context.Background(), ChatRequest{
		Model:    "sonar-reasoning-pro",
		Messages: UserMessage("question"),
	})
	if err != nil {
		t.Fatalf("Call returned error: %v", err)
	}

	content, err := resp.Content()
	if err != nil {
		t.Fatalf("Content returned error: %v", err)
	}
	if content != "fresh answer" {
		t.Errorf("Expected fresh answer, got %q", content)
	}

	if cache.storeCount() != 1 {
		t.Fatalf("Expected exactly one store, got %d", cache.storeCount())
	}
	stored := cache.stored[0]
	if stored.Action != DefaultCacheAction {
		t.Errorf("Stored action = %q, want %q", stored.Action, DefaultCacheAction)
	}
	if len(stored.Results) == 0 {
		t.Error("Stored entry has empty results")
	}
}

func TestClient_MissingCredential(t *testing.T) {
	srv := testhelpers.NewMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("Remote call performed without credential")
	})

	client := NewClient(ClientConfig{BaseURL: srv.URL}, nil, nil, nil)

	_, err := client.Call(context.Background(), ChatRequest{
		Model:    "sonar-reasoning-pro",
		Messages: UserMessage("question"),
	})

	var credErr *apperrors.MissingCredentialError
	if !stderrors.As(err, &credErr) {
		t.Fatalf("Expected MissingCredentialError, got %v", err)
	}
}

func TestClient_UpstreamFailure(t *testing.T) {
	srv := testhelpers.NewMockServer(t,
		testhelpers.JSONHandler(http.StatusInternalServerError, `{"error":"overloaded"}`))

	client := NewClient(ClientConfig{APIKey: "key", BaseURL: srv.URL}, nil, nil, nil)

	_, err := client.Call(context.Background(), ChatRequest{
		Model:    "sonar-reasoning-pro",
		Messages: UserMessage("question"),
	})

	var upErr *apperrors.UpstreamUnavailableError
	if !stderrors.As(err, &upErr) {
		t.Fatalf("Expected UpstreamUnavailableError, got %v", err)
	}
}

func TestClient_CacheFailuresAreNonFatal(t *testing.T) {
	srv := testhelpers.NewMockServer(t,
		testhelpers.JSONHandler(http.StatusOK, testhelpers.CompletionBody("sonar-reasoning-pro", "answer")))

	cache := &stubCache{
		lookupErr: stderrors.New("backend down"),
		storeErr:  stderrors.New("backend down"),
	}

	client := NewClient(ClientConfig{APIKey: "key", BaseURL: srv.URL}, cache, nil, nil)

	resp, err := client.Call(context.Background(), ChatRequest{
		Model:    "sonar-reasoning-pro",
		Messages: UserMessage("question"),
	})
	if err != nil {
		t.Fatalf("Cache failure should degrade to a miss, got error: %v", err)
	}
	if content, _ := resp.Content(); content != "answer" {
		t.Errorf("Expected remote answer, got %q", content)
	}
}

func TestClient_RequestBodyCarriesOptionalParameters(t *testing.T) {
	var body map[string]any
	srv := testhelpers.NewMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode request body: %v", err)
		}
		testhelpers.JSONHandler(http.StatusOK, testhelpers.CompletionBody("sonar-deep-research", "report"))(w, r)
	})

	client := NewClient(ClientConfig{APIKey: "key", BaseURL: srv.URL}, nil, nil, nil)

	temp := 0.2
	_, err := client.Call(context.Background(), ChatRequest{
		Model:               "sonar-deep-research",
		Messages:            UserMessage("topic"),
		Temperature:         &temp,
		MaxTokens:           4000,
		SearchIterations:    10,
		SearchRecencyFilter: "week",
	})
	if err != nil {
		t.Fatalf("Call returned error: %v", err)
	}

	if body["temperature"] != 0.2 {
		t.Errorf("temperature = %v, want 0.2", body["temperature"])
	}
	if body["max_tokens"] != float64(4000) {
		t.Errorf("max_tokens = %v, want 4000", body["max_tokens"])
	}
	if body["search_iterations"] != float64(10) {
		t.Errorf("search_iterations = %v, want 10", body["search_iterations"])
	}
	if body["search_recency_filter"] != "week" {
		t.Errorf("search_recency_filter = %v, want week", body["search_recency_filter"])
	}
}

func TestRecencyFromTimeConstraint(t *testing.T) {
	tests := []struct {
		constraint string
		want       string
	}{
		{"recent developments", "week"},
		{"the latest research", "week"},
		{"last year", "month"},
		{"historical", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := RecencyFromTimeConstraint(tt.constraint); got != tt.want {
			t.Errorf("RecencyFromTimeConstraint(%q) = %q, want %q", tt.constraint, got, tt.want)
		}
	}
}
