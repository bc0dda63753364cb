package vectorstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdoc-ai/askdoc/internal/core/domain"
)

func TestCreateStore_Memory(t *testing.T) {
	factory := NewFactory()

	store, err := factory.CreateStore(context.Background(), domain.StoreSettings{
		Backend: domain.StoreBackendMemory,
	})
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()
}

func TestCreateStore_SQLite(t *testing.T) {
	factory := NewFactory()

	store, err := factory.CreateStore(context.Background(), domain.StoreSettings{
		Backend: domain.StoreBackendSQLite,
		DataDir: t.TempDir(),
	})
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()
}

func TestCreateStore_MemorySearchRanks(t *testing.T) {
	factory := NewFactory()
	ctx := context.Background()

	store, err := factory.CreateStore(ctx, domain.StoreSettings{
		Backend: domain.StoreBackendMemory,
	})
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Insert(ctx, "docs", []domain.IndexRecord{
		{ID: "far", Content: "far", Embedding: []float32{0, 1}},
		{ID: "near", Content: "near", Embedding: []float32{1, 0}},
	}))

	results, err := store.Search(ctx, "docs", []float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "near", results[0].Content)
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
}

func TestCreateStore_PgvectorWithoutURL(t *testing.T) {
	factory := NewFactory()

	_, err := factory.CreateStore(context.Background(), domain.StoreSettings{
		Backend: domain.StoreBackendPgvector,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}

func TestCreateStore_UnknownBackend(t *testing.T) {
	factory := NewFactory()

	_, err := factory.CreateStore(context.Background(), domain.StoreSettings{
		Backend: domain.StoreBackend("redis"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}
