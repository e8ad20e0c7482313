package simcache

import (
	"hash/fnv"
	"math"
	"strings"
)

// Embedder produces the similarity vector for a piece of query text.
// Embedding production is a swappable capability: a real deployment can
// plug in an external model without touching the pipeline.
type Embedder interface {
	Embed(text string) []float64
}

// ZeroEmbedder is the null embedder paired with the passthrough cache: a
// degenerate single-dimension zero vector that carries no signal.
type ZeroEmbedder struct{}

// Embed returns the placeholder vector
func (ZeroEmbedder) Embed(text string) []float64 {
	return []float64{0}
}

// TokenHashEmbedder is a deterministic feature-hashing vectorizer. Tokens
// are lowercased, hashed into a fixed number of buckets, and the resulting
// count vector is L2-normalized so cosine similarity lands in [0,1] for
// non-negative vectors. It is not a learned model, just enough signal for
// near-duplicate prompts to score close to 1.
type TokenHashEmbedder struct {
	dims int
}

// NewTokenHashEmbedder creates an embedder with the given vector width
func NewTokenHashEmbedder(dims int) *TokenHashEmbedder {
	if dims <= 0 {
		dims = 256
	}
	return &TokenHashEmbedder{dims: dims}
}

// Embed hashes the text's tokens into a normalized count vector
func (e *TokenHashEmbedder) Embed(text string) []float64 {
	vec := make([]float64, e.dims)

	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	for _, tok := range tokens {
		h := fnv.New32a()
		h.Write([]byte(tok))
		vec[int(h.Sum32())%e.dims]++
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

// CosineSimilarity returns the cosine of the angle between two vectors.
// Mismatched lengths or zero vectors score 0.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
