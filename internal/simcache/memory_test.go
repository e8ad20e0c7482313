package simcache

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"
)

func entry(action, text string, embedding []float64) CacheQuery {
	return CacheQuery{
		Action:    action,
		Text:      text,
		Embedding: embedding,
		Results:   json.RawMessage(`{"cached":true}`),
	}
}

func TestMemoryCache_SimilaritiesOrderedByDescendingScore(t *testing.T) {
	cache := NewMemoryCache(10)

	// Vectors at decreasing angles to the probe (1, 0)
	if err := cache.Store(entry("call", "far", []float64{0, 1})); err != nil {
		t.Fatal(err)
	}
	if err := cache.Store(entry("call", "near", []float64{1, 0.1})); err != nil {
		t.Fatal(err)
	}
	if err := cache.Store(entry("call", "exact", []float64{1, 0})); err != nil {
		t.Fatal(err)
	}

	results, err := cache.Similarities(CacheQuery{Action: "call", Embedding: []float64{1, 0}})
	if err != nil {
		t.Fatalf("Similarities returned error: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("Results not ordered by descending score: %v then %v",
				results[i-1].Score, results[i].Score)
		}
	}
	if results[0].Query.Text != "exact" {
		t.Errorf("Expected best match 'exact', got %q", results[0].Query.Text)
	}
	if results[0].Score < 0.999 {
		t.Errorf("Identical vectors should score ~1, got %v", results[0].Score)
	}
}

func TestMemoryCache_FiltersByAction(t *testing.T) {
	cache := NewMemoryCache(10)

	if err := cache.Store(entry("other_call", "a", []float64{1, 0})); err != nil {
		t.Fatal(err)
	}

	results, err := cache.Similarities(CacheQuery{Action: "perplexity_api_call", Embedding: []float64{1, 0}})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("Expected no results for mismatched action, got %d", len(results))
	}
}

func TestMemoryCache_EvictsOldestBeyondCapacity(t *testing.T) {
	cache := NewMemoryCache(2)

	for i := 0; i < 3; i++ {
		if err := cache.Store(entry("call", fmt.Sprintf("q%d", i), []float64{1, 0})); err != nil {
			t.Fatal(err)
		}
	}

	if cache.Len() != 2 {
		t.Fatalf("Expected 2 entries after eviction, got %d", cache.Len())
	}
	stats := cache.GetStats()
	if stats.Evictions != 1 {
		t.Errorf("Expected 1 eviction, got %d", stats.Evictions)
	}

	results, _ := cache.Similarities(CacheQuery{Action: "call", Embedding: []float64{1, 0}})
	for _, r := range results {
		if r.Query.Text == "q0" {
			t.Error("Oldest entry should have been evicted")
		}
	}
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	cache := NewMemoryCache(100)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = cache.Store(entry("call", fmt.Sprintf("q%d", i), []float64{1, float64(i)}))
			_, _ = cache.Similarities(CacheQuery{Action: "call", Embedding: []float64{1, 0}})
		}(i)
	}
	wg.Wait()

	if cache.Len() != 20 {
		t.Errorf("Expected 20 entries, got %d", cache.Len())
	}
}
