package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdoc-ai/askdoc/internal/adapters/driven/embedding/offline"
	"github.com/askdoc-ai/askdoc/internal/adapters/driven/vectorstore/memory"
	"github.com/askdoc-ai/askdoc/internal/chunker"
	"github.com/askdoc-ai/askdoc/internal/core/domain"
)

func newTestChunker(t *testing.T, size, overlap int) *chunker.Chunker {
	t.Helper()

	ch, err := chunker.New(domain.ChunkingSettings{Size: size, Overlap: overlap})
	require.NoError(t, err)
	return ch
}

func TestIngest_WritesEveryChunk(t *testing.T) {
	ch := newTestChunker(t, 100, 20)
	store := memory.New()
	ingester := NewIngesterService(ch, offline.New(64), store, IngesterConfig{Collection: "docs"})

	doc := domain.Document{
		Source:  "report.txt",
		Content: strings.Repeat("the quarterly revenue was ten million. ", 20),
	}

	count, err := ingester.Ingest(context.Background(), doc)
	require.NoError(t, err)
	assert.Greater(t, count, 1)
	assert.Equal(t, count, store.Len("docs"))
}

func TestIngest_EmptyDocumentIsInvalidInput(t *testing.T) {
	ch := newTestChunker(t, 100, 20)
	ingester := NewIngesterService(ch, offline.New(64), memory.New(), IngesterConfig{Collection: "docs"})

	for _, content := range []string{"", "   \n\t"} {
		_, err := ingester.Ingest(context.Background(), domain.Document{Source: "empty.txt", Content: content})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	}
}

func TestIngest_ResetsCollectionByDefault(t *testing.T) {
	ch := newTestChunker(t, 100, 20)
	store := memory.New()
	ingester := NewIngesterService(ch, offline.New(64), store, IngesterConfig{Collection: "docs"})
	ctx := context.Background()

	doc := domain.Document{Source: "report.txt", Content: "a short document"}

	first, err := ingester.Ingest(ctx, doc)
	require.NoError(t, err)
	second, err := ingester.Ingest(ctx, doc)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, second, store.Len("docs"))
}

func TestIngest_AppendModeAccumulates(t *testing.T) {
	ch := newTestChunker(t, 100, 20)
	store := memory.New()
	ingester := NewIngesterService(ch, offline.New(64), store, IngesterConfig{
		Collection: "docs",
		Append:     true,
	})
	ctx := context.Background()

	doc := domain.Document{Source: "report.txt", Content: "a short document"}

	first, err := ingester.Ingest(ctx, doc)
	require.NoError(t, err)
	_, err = ingester.Ingest(ctx, doc)
	require.NoError(t, err)

	assert.Equal(t, first*2, store.Len("docs"))
}

func TestIngest_EmbeddingFailureAborts(t *testing.T) {
	ch := newTestChunker(t, 100, 20)
	store := memory.New()
	provErr := domain.NewProviderError("openai", "embed", domain.ProviderErrorAuth, errors.New("401"))
	ingester := NewIngesterService(ch, &failEmbedder{err: provErr}, store, IngesterConfig{Collection: "docs"})

	_, err := ingester.Ingest(context.Background(), domain.Document{Source: "a.txt", Content: "some text"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrProvider))
	assert.Equal(t, 0, store.Len("docs"))
}

func TestIngest_StoreFailureIsIndexError(t *testing.T) {
	ch := newTestChunker(t, 100, 20)
	ingester := NewIngesterService(ch, offline.New(64), &failStore{err: errors.New("connection refused")},
		IngesterConfig{Collection: "docs"})

	_, err := ingester.Ingest(context.Background(), domain.Document{Source: "a.txt", Content: "some text"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrIndex))
}

func TestIngest_RecordsCarrySourceAndPosition(t *testing.T) {
	ch := newTestChunker(t, 10, 2)
	store := memory.New()
	ingester := NewIngesterService(ch, offline.New(64), store, IngesterConfig{Collection: "docs"})
	ctx := context.Background()

	_, err := ingester.Ingest(ctx, domain.Document{
		Source:  "report.txt",
		Content: "abcdefghijklmnopqrstuvwxyz",
	})
	require.NoError(t, err)

	embedder := offline.New(64)
	query, err := embedder.Embed(ctx, "abcdefghij")
	require.NoError(t, err)

	chunks, err := store.Search(ctx, "docs", query, 1)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "report.txt", chunks[0].Metadata["source"])
	assert.Equal(t, 0, chunks[0].Metadata["position"])
}
