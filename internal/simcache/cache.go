// Package simcache provides a semantic-similarity response cache that sits
// in front of outbound API calls. Past (query, result) pairs are keyed by an
// embedding vector; lookups return past entries ranked by similarity score.
package simcache

import "encoding/json"

// CacheQuery is one cached API call attempt. A candidate is constructed
// fresh per call with empty Results; a stored entry carries the response
// payload. Entries are never mutated after storage.
type CacheQuery struct {
	Action    string          `json:"action"`
	Text      string          `json:"text"`
	Params    map[string]any  `json:"params,omitempty"`
	Embedding []float64       `json:"embedding"`
	Results   json.RawMessage `json:"results,omitempty"`
}

// Clone returns a deep copy of the query
func (q CacheQuery) Clone() CacheQuery {
	out := q
	out.Embedding = append([]float64(nil), q.Embedding...)
	if q.Params != nil {
		out.Params = make(map[string]any, len(q.Params))
		for k, v := range q.Params {
			out.Params[k] = v
		}
	}
	out.Results = append(json.RawMessage(nil), q.Results...)
	return out
}

// SimilarityResult pairs a stored query with its similarity score in [0,1]
type SimilarityResult struct {
	Query CacheQuery
	Score float64
}

// Cache is the similarity cache contract. Implementations must be safe for
// concurrent use by multiple callers.
type Cache interface {
	// Store persists a query with its populated results. Failure is
	// non-fatal to callers: a cache miss next time is an acceptable
	// degradation.
	Store(query CacheQuery) error

	// Similarities returns past entries ranked by descending similarity
	// against the supplied query's embedding. An empty cache yields an
	// empty slice, never an error.
	Similarities(query CacheQuery) ([]SimilarityResult, error)
}

// Passthrough is the null-object cache: it stores nothing and never
// reports a similar entry, so the pipeline behaves as if uncached.
type Passthrough struct{}

// NewPassthrough creates a passthrough cache
func NewPassthrough() *Passthrough {
	return &Passthrough{}
}

// Store discards the query
func (p *Passthrough) Store(query CacheQuery) error {
	return nil
}

// Similarities always returns an empty slice
func (p *Passthrough) Similarities(query CacheQuery) ([]SimilarityResult, error) {
	return nil, nil
}
