package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/askdoc-ai/askdoc/internal/core/domain"
	"github.com/askdoc-ai/askdoc/internal/core/ports/driven"
	"github.com/askdoc-ai/askdoc/internal/core/ports/driving"
	"github.com/askdoc-ai/askdoc/internal/logger"
)

// Ensure RetrieverService implements the interface.
var _ driving.RetrieveService = (*RetrieverService)(nil)

// RetrieverService embeds a question once and returns the most similar
// indexed chunks. All hits are passed through in store order; there is
// no score thresholding or reranking.
type RetrieverService struct {
	embedder   driven.Embedder
	store      driven.VectorStore
	collection string
}

// NewRetrieverService creates a retriever over the given collection.
func NewRetrieverService(embedder driven.Embedder, store driven.VectorStore, collection string) *RetrieverService {
	return &RetrieverService{
		embedder:   embedder,
		store:      store,
		collection: collection,
	}
}

// Retrieve returns the k chunks most similar to the question.
func (s *RetrieverService) Retrieve(ctx context.Context, question string, k int) ([]domain.RetrievedChunk, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question must not be empty", domain.ErrInvalidInput)
	}
	if k <= 0 {
		return nil, fmt.Errorf("%w: retrieval depth must be positive, got %d", domain.ErrConfiguration, k)
	}

	logger.Section("Retrieval")
	logger.Debug("Question: %q, k=%d", question, k)

	embedding, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embedding question: %w", err)
	}
	logger.Debug("Question embedding: %d dimensions", len(embedding))

	chunks, err := s.store.Search(ctx, s.collection, embedding, k)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIndex, err)
	}

	logger.Info("Retrieved %d chunks from collection %q", len(chunks), s.collection)
	return chunks, nil
}
