// Package perplexity implements the gateway to the Perplexity chat
// completions API. Every outbound call consults the similarity cache first;
// a fresh remote call is only made when no stored entry scores above the
// hit threshold.
package perplexity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/user/perplexity-mcp/internal/errors"
	"github.com/user/perplexity-mcp/internal/logging"
	"github.com/user/perplexity-mcp/internal/simcache"
)

const (
	// DefaultBaseURL is the production API endpoint
	DefaultBaseURL = "https://api.perplexity.ai"

	// DefaultHitThreshold is the minimum similarity score treated as a
	// cache hit. Conservative: a false hit returns a stale answer to a
	// different question, which is worse than a redundant remote call.
	DefaultHitThreshold = 0.95

	// DefaultCacheAction identifies gateway calls in the cache
	DefaultCacheAction = "perplexity_api_call"

	completionsPath = "/chat/completions"
)

// ClientConfig holds gateway construction parameters. The credential is
// explicit configuration, not an ad-hoc environment lookup.
type ClientConfig struct {
	APIKey       string
	BaseURL      string
	Timeout      time.Duration
	HitThreshold float64
	CacheAction  string
}

// Client is the API gateway
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	threshold  float64
	action     string
	cache      simcache.Cache
	embedder   simcache.Embedder
	logger     *logging.Logger
}

// NewClient creates a gateway. A nil cache falls back to the passthrough
// null object and a nil embedder to the zero-vector placeholder, so an
// unconfigured system behaves identically to one without caching at all.
func NewClient(cfg ClientConfig, cache simcache.Cache, embedder simcache.Embedder, logger *logging.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 180 * time.Second
	}
	if cfg.HitThreshold == 0 {
		cfg.HitThreshold = DefaultHitThreshold
	}
	if cfg.CacheAction == "" {
		cfg.CacheAction = DefaultCacheAction
	}
	if cache == nil {
		cache = simcache.NewPassthrough()
	}
	if embedder == nil {
		embedder = simcache.ZeroEmbedder{}
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		threshold:  cfg.HitThreshold,
		action:     cfg.CacheAction,
		cache:      cache,
		embedder:   embedder,
		logger:     logger.Named("gateway"),
	}
}

// Call executes one completion request. The similarity cache is consulted
// before the remote call; on a miss the response is stored best-effort
// after it has been fully received.
func (c *Client) Call(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	c.logger.Debug("calling Perplexity API", logging.String("model", req.Model))

	candidate, err := c.buildCacheQuery(req)
	if err != nil {
		return nil, err
	}

	if cached := c.lookupCached(candidate); cached != nil {
		return cached, nil
	}

	if c.apiKey == "" {
		return nil, errors.NewMissingCredentialError("PERPLEXITY_API_KEY")
	}

	raw, err := c.post(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := ParseResponse(raw)
	if err != nil {
		return nil, errors.NewUpstreamUnavailableError(fmt.Errorf("failed to parse API response: %w", err))
	}

	stored := candidate.Clone()
	stored.Results = resp.Raw
	if err := c.cache.Store(stored); err != nil {
		c.logger.Warn("cache store failed", logging.Error(errors.NewCacheError("store", err)))
	}

	return resp, nil
}

// buildCacheQuery constructs the candidate entry for this call attempt.
// Text is the canonical serialization of the outbound messages.
func (c *Client) buildCacheQuery(req ChatRequest) (simcache.CacheQuery, error) {
	text, err := json.Marshal(req.Messages)
	if err != nil {
		return simcache.CacheQuery{}, fmt.Errorf("failed to serialize messages: %w", err)
	}

	params := map[string]any{
		"model":                 req.Model,
		"search_recency_filter": req.SearchRecencyFilter,
	}

	return simcache.CacheQuery{
		Action:    c.action,
		Text:      string(text),
		Params:    params,
		Embedding: c.embedder.Embed(string(text)),
	}, nil
}

// lookupCached returns the stored payload of the top similarity result when
// it clears the hit threshold. Cache failures degrade to a miss.
func (c *Client) lookupCached(candidate simcache.CacheQuery) *ChatResponse {
	similarities, err := c.cache.Similarities(candidate)
	if err != nil {
		c.logger.Warn("cache lookup failed", logging.Error(errors.NewCacheError("lookup", err)))
		return nil
	}
	if len(similarities) == 0 {
		return nil
	}

	top := similarities[0]
	if top.Score <= c.threshold || len(top.Query.Results) == 0 {
		return nil
	}

	resp, err := ParseResponse(top.Query.Results)
	if err != nil {
		c.logger.Warn("cached payload unreadable, falling through to remote call", logging.Error(err))
		return nil
	}

	c.logger.Info("found cached similar response", logging.Float64("score", top.Score))
	return resp
}

// post sends the authenticated request and returns the response body bytes
func (c *Client) post(ctx context.Context, req ChatRequest) ([]byte, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+completionsPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.NewUpstreamUnavailableError(err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, errors.NewUpstreamUnavailableError(err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, errors.NewUpstreamUnavailableError(
			fmt.Errorf("status %d: %s", httpResp.StatusCode, strings.TrimSpace(string(raw))))
	}

	return raw, nil
}

// RecencyFromTimeConstraint derives a search recency filter from free-text
// time constraints: "recent"/"latest" map to a week, "year" to a month.
func RecencyFromTimeConstraint(timeConstraint string) string {
	tc := strings.ToLower(timeConstraint)
	switch {
	case strings.Contains(tc, "recent"), strings.Contains(tc, "latest"):
		return "week"
	case strings.Contains(tc, "year"):
		return "month"
	default:
		return ""
	}
}
