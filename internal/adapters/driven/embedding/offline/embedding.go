// Package offline provides a deterministic, network-free embedding
// adapter for tests and as the terminal provider fallback.
package offline

import (
	"context"
	"hash/fnv"
	"math"

	"github.com/askdoc-ai/askdoc/internal/core/domain"
	"github.com/askdoc-ai/askdoc/internal/core/ports/driven"
)

// Ensure Embedder implements the interface.
var _ driven.Embedder = (*Embedder)(nil)

// ModelName reported by the offline embedder.
const Model = "offline-hash"

// Embedder derives a reproducible unit vector from a hash of the input
// text: the same text always embeds to the same vector, and distinct
// texts get distinct vectors. The geometry carries no semantics, which
// keeps retrieval tests honest about ranking behaviour rather than
// meaning.
type Embedder struct {
	dimensions int
}

// New returns an offline embedder with the given vector size.
// Non-positive sizes fall back to the documented default.
func New(dimensions int) *Embedder {
	if dimensions <= 0 {
		dimensions = domain.DefaultOfflineDimensions
	}
	return &Embedder{dimensions: dimensions}
}

// Embed returns the deterministic embedding for the text.
func (e *Embedder) Embed(_ context.Context, text string) ([]float32, error) {
	h := fnv.New64a()
	h.Write([]byte(text))
	seed := h.Sum64()

	vec := make([]float32, e.dimensions)
	var sum float64
	for i := range vec {
		// A cheap seeded stream; splitmix64-style scrambling keeps
		// nearby seeds from producing correlated vectors.
		seed += 0x9e3779b97f4a7c15
		z := seed
		z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
		z = (z ^ (z >> 27)) * 0x94d049bb133111eb
		z ^= z >> 31
		v := float64(z)/float64(math.MaxUint64) - 0.5
		vec[i] = float32(v)
		sum += v * v
	}

	// Normalise to unit length so inner product equals cosine similarity.
	if sum > 0 {
		norm := 1.0 / math.Sqrt(sum)
		for i := range vec {
			vec[i] *= float32(norm)
		}
	}
	return vec, nil
}

// EmbedBatch embeds every text, order-preserving.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		emb, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		embeddings[i] = emb
	}
	return embeddings, nil
}

// Dimensions returns the embedding vector size.
func (e *Embedder) Dimensions() int {
	return e.dimensions
}

// ModelName returns the offline model identifier.
func (e *Embedder) ModelName() string {
	return Model
}

// Ping always succeeds; there is nothing to reach.
func (e *Embedder) Ping(_ context.Context) error {
	return nil
}

// Close releases resources.
func (e *Embedder) Close() error {
	return nil
}
