package sqlite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdoc-ai/askdoc/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "askdoc-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

func testRecord(id, content string, embedding ...float32) domain.IndexRecord {
	return domain.IndexRecord{
		ID:        id,
		Content:   content,
		Embedding: embedding,
		Metadata:  map[string]any{"source": "doc.txt"},
	}
}

func TestNewStore_CreatesDatabaseFile(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	assert.Equal(t, "index.db", filepath.Base(store.Path()))
	_, err := os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_ReopenKeepsData(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "askdoc-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	ctx := context.Background()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, store.Insert(ctx, "docs", []domain.IndexRecord{
		testRecord("a", "persisted", 1, 0),
	}))
	require.NoError(t, store.Close())

	// Reopening runs migrations again; they must be idempotent.
	store, err = NewStore(tempDir)
	require.NoError(t, err)
	defer store.Close()

	results, err := store.Search(ctx, "docs", []float32{1, 0}, 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "persisted", results[0].Content)
}

func TestSearch_RanksByDescendingSimilarity(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, "docs", []domain.IndexRecord{
		testRecord("a", "far", 0, 1),
		testRecord("b", "near", 1, 0.1),
		testRecord("c", "exact", 1, 0),
	}))

	results, err := store.Search(ctx, "docs", []float32{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "exact", results[0].Content)
	assert.Equal(t, "near", results[1].Content)
	assert.Equal(t, "far", results[2].Content)
	assert.Equal(t, "doc.txt", results[0].Metadata["source"])
}

func TestSearch_TiesKeepInsertionOrder(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	var records []domain.IndexRecord
	for i := 0; i < 5; i++ {
		records = append(records, testRecord(fmt.Sprintf("r%d", i), fmt.Sprintf("content %d", i), 1, 0))
	}
	require.NoError(t, store.Insert(ctx, "docs", records))

	results, err := store.Search(ctx, "docs", []float32{1, 0}, 5)
	require.NoError(t, err)
	require.Len(t, results, 5)

	for i, r := range results {
		assert.Equal(t, fmt.Sprintf("content %d", i), r.Content)
	}
}

func TestSearch_RespectsLimit(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	var records []domain.IndexRecord
	for i := 0; i < 20; i++ {
		records = append(records, testRecord(fmt.Sprintf("r%d", i), "c", float32(i), 1))
	}
	require.NoError(t, store.Insert(ctx, "docs", records))

	results, err := store.Search(ctx, "docs", []float32{1, 0}, 7)
	require.NoError(t, err)
	assert.Len(t, results, 7)
}

func TestSearch_MissingCollectionIsEmptyNotError(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	results, err := store.Search(context.Background(), "nope", []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_NonPositiveKIsConfigurationError(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.Search(context.Background(), "docs", []float32{1, 0}, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}

func TestInsert_IsAdditive(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	batch := []domain.IndexRecord{testRecord("a", "same chunk", 1, 0)}
	require.NoError(t, store.Insert(ctx, "docs", batch))
	require.NoError(t, store.Insert(ctx, "docs", batch))

	results, err := store.Search(ctx, "docs", []float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestInsert_CollectionIsolation(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, "first", []domain.IndexRecord{testRecord("a", "from first", 1, 0)}))
	require.NoError(t, store.Insert(ctx, "second", []domain.IndexRecord{testRecord("b", "from second", 1, 0)}))

	results, err := store.Search(ctx, "first", []float32{1, 0}, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "from first", results[0].Content)
}

func TestDeleteCollection(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, "docs", []domain.IndexRecord{testRecord("a", "c", 1, 0)}))
	require.NoError(t, store.DeleteCollection(ctx, "docs"))

	results, err := store.Search(ctx, "docs", []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, results)

	require.NoError(t, store.DeleteCollection(ctx, "docs"))
	require.NoError(t, store.DeleteCollection(ctx, "never-existed"))
}

func TestFloat32BlobRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input []float32
	}{
		{name: "empty", input: nil},
		{name: "single", input: []float32{1.5}},
		{name: "mixed signs", input: []float32{-0.25, 0, 3.75, -128}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bytesToFloat32Slice(float32SliceToBytes(tt.input))
			assert.Equal(t, tt.input, got)
		})
	}
}
