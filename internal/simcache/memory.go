package simcache

import (
	"sort"
	"sync"
)

// Stats tracks cache performance metrics
type Stats struct {
	Stores    int64
	Lookups   int64
	Evictions int64
	Size      int
	MaxSize   int
}

// MemoryCache is a thread-safe in-memory similarity cache. Entries are
// appended in store order and evicted oldest-first once MaxEntries is
// reached. Lookups score every stored entry against the candidate's
// embedding with cosine similarity.
type MemoryCache struct {
	maxEntries int
	entries    []CacheQuery
	mu         sync.RWMutex
	stats      Stats
}

// NewMemoryCache creates an in-memory cache bounded to maxEntries
func NewMemoryCache(maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &MemoryCache{
		maxEntries: maxEntries,
		stats:      Stats{MaxSize: maxEntries},
	}
}

// Store appends the query. Existing entries are never rewritten; a repeat
// of the same text simply becomes a newer entry.
func (c *MemoryCache) Store(query CacheQuery) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxEntries {
		c.entries = c.entries[1:]
		c.stats.Evictions++
	}
	c.entries = append(c.entries, query.Clone())
	c.stats.Stores++
	c.stats.Size = len(c.entries)
	return nil
}

// Similarities scores every stored entry with the same action against the
// candidate and returns them ordered by descending score.
func (c *MemoryCache) Similarities(query CacheQuery) ([]SimilarityResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.Lookups++

	results := make([]SimilarityResult, 0, len(c.entries))
	for _, entry := range c.entries {
		if entry.Action != query.Action {
			continue
		}
		results = append(results, SimilarityResult{
			Query: entry.Clone(),
			Score: CosineSimilarity(entry.Embedding, query.Embedding),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results, nil
}

// Len returns the number of stored entries
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetStats returns a snapshot of cache metrics
func (c *MemoryCache) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.stats
	s.Size = len(c.entries)
	return s
}
