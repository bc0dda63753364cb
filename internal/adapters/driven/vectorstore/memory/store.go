// Package memory provides an in-process vector store for tests and
// small corpora, using brute-force cosine search.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/askdoc-ai/askdoc/internal/adapters/driven/vectorstore/similarity"
	"github.com/askdoc-ai/askdoc/internal/core/domain"
	"github.com/askdoc-ai/askdoc/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Store keeps records per collection in insertion order, which is what
// gives Search its stable tie-break.
type Store struct {
	mu          sync.RWMutex
	collections map[string][]domain.IndexRecord
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		collections: make(map[string][]domain.IndexRecord),
	}
}

// Insert appends the records to the named collection, creating it when
// missing. Inserts are additive; nothing deduplicates.
func (s *Store) Insert(_ context.Context, collection string, records []domain.IndexRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range records {
		copied := record
		copied.Embedding = append([]float32(nil), record.Embedding...)
		s.collections[collection] = append(s.collections[collection], copied)
	}
	return nil
}

// Search returns up to k records by descending cosine similarity, ties
// broken by insertion order. A missing or empty collection yields an
// empty result.
func (s *Store) Search(_ context.Context, collection string, query []float32, k int) ([]domain.RetrievedChunk, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", domain.ErrConfiguration, k)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.collections[collection]
	if len(records) == 0 {
		return []domain.RetrievedChunk{}, nil
	}

	results := make([]domain.RetrievedChunk, len(records))
	for i, record := range records {
		results[i] = domain.RetrievedChunk{
			Content:  record.Content,
			Score:    similarity.Cosine(query, record.Embedding),
			Metadata: record.Metadata,
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// DeleteCollection removes the collection and all its records.
// Deleting a collection that does not exist is a no-op.
func (s *Store) DeleteCollection(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.collections, name)
	return nil
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}

// Len reports the record count of a collection. Test helper.
func (s *Store) Len(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.collections[collection])
}
