package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/time/rate"

	"github.com/askdoc-ai/askdoc/internal/chunker"
	"github.com/askdoc-ai/askdoc/internal/core/domain"
	"github.com/askdoc-ai/askdoc/internal/core/ports/driven"
	"github.com/askdoc-ai/askdoc/internal/core/ports/driving"
	"github.com/askdoc-ai/askdoc/internal/logger"
)

// Ensure IngesterService implements the interface.
var _ driving.IngestService = (*IngesterService)(nil)

// defaultEmbedBatchSize bounds how many chunks go to the embedding
// backend per request.
const defaultEmbedBatchSize = 64

// IngesterConfig configures an IngesterService.
type IngesterConfig struct {
	// Collection is the target partition in the vector store.
	Collection string

	// Append skips the collection reset, accumulating records on top
	// of the existing index. Defaults to false: each ingestion run
	// rebuilds the collection from scratch.
	Append bool

	// BatchSize is the number of chunks per embedding request.
	// Defaults to 64.
	BatchSize int

	// EmbedRate limits embedding requests per second. Zero means no
	// pacing, which suits the offline provider.
	EmbedRate rate.Limit
}

// IngesterService turns one plain-text document into indexed chunks:
// chunk, embed in batches, insert. Any failure aborts the whole run so
// a partial index is never mistaken for a complete one.
type IngesterService struct {
	chunker  *chunker.Chunker
	embedder driven.Embedder
	store    driven.VectorStore
	config   IngesterConfig
	limiter  *rate.Limiter
}

// NewIngesterService creates an ingester.
func NewIngesterService(
	ch *chunker.Chunker,
	embedder driven.Embedder,
	store driven.VectorStore,
	config IngesterConfig,
) *IngesterService {
	if config.BatchSize <= 0 {
		config.BatchSize = defaultEmbedBatchSize
	}

	var limiter *rate.Limiter
	if config.EmbedRate > 0 {
		limiter = rate.NewLimiter(config.EmbedRate, 1)
	}

	return &IngesterService{
		chunker:  ch,
		embedder: embedder,
		store:    store,
		config:   config,
		limiter:  limiter,
	}
}

// Ingest chunks the document, embeds every chunk and inserts the
// records into the configured collection. Returns the number of
// records written.
func (s *IngesterService) Ingest(ctx context.Context, doc domain.Document) (int, error) {
	if strings.TrimSpace(doc.Content) == "" {
		return 0, fmt.Errorf("%w: document content must not be empty", domain.ErrInvalidInput)
	}

	logger.Section("Ingestion")
	logger.Debug("Source: %q, %d bytes", doc.Source, len(doc.Content))

	chunks := s.chunker.Split(doc)
	logger.Info("Split %q into %d chunks", doc.Source, len(chunks))

	if !s.config.Append {
		if err := s.store.DeleteCollection(ctx, s.config.Collection); err != nil {
			return 0, fmt.Errorf("%w: resetting collection %q: %v", domain.ErrIndex, s.config.Collection, err)
		}
		logger.Debug("Collection %q reset before ingestion", s.config.Collection)
	}

	written := 0
	for start := 0; start < len(chunks); start += s.config.BatchSize {
		end := start + s.config.BatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return written, fmt.Errorf("waiting for embed rate limit: %w", err)
			}
		}

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = chunk.Content
		}

		embeddings, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return written, fmt.Errorf("embedding batch %d-%d: %w", start, end-1, err)
		}

		records := make([]domain.IndexRecord, len(batch))
		for i, chunk := range batch {
			records[i] = domain.IndexRecord{
				ID:        chunk.ID,
				Content:   chunk.Content,
				Embedding: embeddings[i],
				Metadata: map[string]any{
					"source":   chunk.Source,
					"position": chunk.Position,
				},
			}
		}

		if err := s.store.Insert(ctx, s.config.Collection, records); err != nil {
			return written, fmt.Errorf("%w: inserting batch %d-%d: %v", domain.ErrIndex, start, end-1, err)
		}

		written += len(records)
		logger.Debug("Inserted batch %d-%d (%d records total)", start, end-1, written)
	}

	logger.Info("Ingested %d records into collection %q", written, s.config.Collection)
	return written, nil
}
