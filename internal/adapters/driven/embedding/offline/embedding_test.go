package offline

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdoc-ai/askdoc/internal/core/domain"
)

func TestNew_DefaultDimensions(t *testing.T) {
	assert.Equal(t, domain.DefaultOfflineDimensions, New(0).Dimensions())
	assert.Equal(t, domain.DefaultOfflineDimensions, New(-3).Dimensions())
	assert.Equal(t, 64, New(64).Dimensions())
}

func TestEmbed_Deterministic(t *testing.T) {
	e := New(256)
	ctx := context.Background()

	first, err := e.Embed(ctx, "the revenue was 10 million reais")
	require.NoError(t, err)
	second, err := e.Embed(ctx, "the revenue was 10 million reais")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 256)
}

func TestEmbed_NoCollisionsOnTestCorpus(t *testing.T) {
	e := New(64)
	ctx := context.Background()

	seen := make(map[string][]float32)
	for i := 0; i < 200; i++ {
		text := fmt.Sprintf("chunk number %d of the corpus", i)
		vec, err := e.Embed(ctx, text)
		require.NoError(t, err)
		for prev, other := range seen {
			require.NotEqual(t, other, vec, "collision between %q and %q", prev, text)
		}
		seen[text] = vec
	}
}

func TestEmbed_UnitLength(t *testing.T) {
	e := New(128)
	vec, err := e.Embed(context.Background(), "normalisation check")
	require.NoError(t, err)

	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, sum, 1e-3)
}

func TestEmbedBatch_OrderPreserving(t *testing.T) {
	e := New(32)
	ctx := context.Background()

	texts := []string{"first", "second", "third"}
	batch, err := e.EmbedBatch(ctx, texts)
	require.NoError(t, err)
	require.Len(t, batch, len(texts))

	for i, text := range texts {
		single, err := e.Embed(ctx, text)
		require.NoError(t, err)
		assert.Equal(t, single, batch[i])
	}
}

func TestPing_AlwaysSucceeds(t *testing.T) {
	require.NoError(t, New(16).Ping(context.Background()))
}

func TestEmbed_ValuesAreFinite(t *testing.T) {
	vec, err := New(512).Embed(context.Background(), "")
	require.NoError(t, err)
	for i, v := range vec {
		require.False(t, math.IsNaN(float64(v)) || math.IsInf(float64(v), 0),
			"component %d is not finite", i)
	}
}
