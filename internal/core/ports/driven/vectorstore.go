package driven

import (
	"context"

	"github.com/askdoc-ai/askdoc/internal/core/domain"
)

// VectorStore is an append-only collection of (vector, text, metadata)
// records partitioned into named collections, with similarity search
// and whole-collection deletion.
//
// Two documented behaviours are deliberate simplifications, not bugs:
//
//   - Insert is additive across process runs. Re-ingesting without
//     deleting the collection first duplicates records; there is no
//     upsert or dedup.
//   - The store cannot tell which embedding provider produced a vector.
//     Mixing providers in one collection without clearing it silently
//     degrades retrieval; it does not error.
type VectorStore interface {
	// Insert persists a batch of records into the named collection,
	// creating it when missing. Once Insert returns, the batch is
	// visible to subsequent searches.
	Insert(ctx context.Context, collection string, records []domain.IndexRecord) error

	// Search returns up to k records nearest to the query vector,
	// ordered by descending similarity with ties broken by insertion
	// order. A missing or empty collection yields an empty result, not
	// an error. k <= 0 is a configuration error.
	Search(ctx context.Context, collection string, query []float32, k int) ([]domain.RetrievedChunk, error)

	// DeleteCollection removes the collection and all its records.
	// Idempotent: deleting a collection that does not exist succeeds as
	// a no-op. No partial-collection state is observable afterwards.
	DeleteCollection(ctx context.Context, name string) error

	// Close releases resources.
	Close() error
}
