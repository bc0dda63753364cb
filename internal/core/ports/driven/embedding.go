package driven

import "context"

// Embedder converts text into fixed-length numeric vectors.
//
// Vectors are only comparable when produced by the same provider and
// model: Dimensions is constant for one Embedder instance and must
// match the collection it feeds.
//
// Implementations:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Google Generative Language (embedding-001)
//   - Offline (deterministic hash-seeded vectors, no network)
type Embedder interface {
	// Embed generates the vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates one vector per input text, order-preserving,
	// with the same length as the input. A failure on any single item
	// fails the whole batch; there is no partial result.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g. 768, 1536).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the backend is reachable with a lightweight
	// request. Used at startup before committing to a provider.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
