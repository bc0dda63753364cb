package services

import (
	"context"
	"strings"

	"github.com/askdoc-ai/askdoc/internal/core/domain"
	"github.com/askdoc-ai/askdoc/internal/core/ports/driven"
)

// tableEmbedder maps known texts to fixed vectors, with a default for
// everything else. It lets tests place chunks at chosen similarities.
type tableEmbedder struct {
	vectors  map[string][]float32
	fallback []float32
}

var _ driven.Embedder = (*tableEmbedder)(nil)

func (e *tableEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if v, ok := e.vectors[text]; ok {
		return v, nil
	}
	return e.fallback, nil
}

func (e *tableEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (e *tableEmbedder) Dimensions() int              { return len(e.fallback) }
func (e *tableEmbedder) ModelName() string            { return "table-test" }
func (e *tableEmbedder) Ping(_ context.Context) error { return nil }
func (e *tableEmbedder) Close() error                 { return nil }

// failEmbedder fails every call with a fixed error.
type failEmbedder struct {
	err error
}

var _ driven.Embedder = (*failEmbedder)(nil)

func (e *failEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return nil, e.err
}

func (e *failEmbedder) EmbedBatch(_ context.Context, _ []string) ([][]float32, error) {
	return nil, e.err
}

func (e *failEmbedder) Dimensions() int              { return 4 }
func (e *failEmbedder) ModelName() string            { return "fail-test" }
func (e *failEmbedder) Ping(_ context.Context) error { return e.err }
func (e *failEmbedder) Close() error                 { return nil }

// lexicalGenerator honours the grounding contract by string matching:
// it answers with the first fact sentence found verbatim in the
// prompt's CONTEXT block, and refuses otherwise. This stands in for a
// real model, whose grounding behaviour cannot run in tests.
type lexicalGenerator struct {
	facts []string
	calls int
}

var _ driven.Generator = (*lexicalGenerator)(nil)

func (g *lexicalGenerator) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	g.calls++

	_, after, _ := strings.Cut(prompt, domain.PromptContextHeader)
	context, _, _ := strings.Cut(after, domain.PromptRulesHeader)

	for _, fact := range g.facts {
		if strings.Contains(context, fact) {
			return fact, nil
		}
	}
	return domain.RefusalSentence, nil
}

func (g *lexicalGenerator) ModelName() string            { return "lexical-test" }
func (g *lexicalGenerator) Ping(_ context.Context) error { return nil }
func (g *lexicalGenerator) Close() error                 { return nil }

// flakyGenerator fails a set number of times before delegating.
type flakyGenerator struct {
	inner    driven.Generator
	failures int
	err      error
	calls    int
}

var _ driven.Generator = (*flakyGenerator)(nil)

func (g *flakyGenerator) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	g.calls++
	if g.calls <= g.failures {
		return "", g.err
	}
	return g.inner.Generate(ctx, prompt, opts)
}

func (g *flakyGenerator) ModelName() string            { return "flaky-test" }
func (g *flakyGenerator) Ping(_ context.Context) error { return nil }
func (g *flakyGenerator) Close() error                 { return nil }

// failStore fails every operation with a fixed error.
type failStore struct {
	err error
}

var _ driven.VectorStore = (*failStore)(nil)

func (s *failStore) Insert(_ context.Context, _ string, _ []domain.IndexRecord) error {
	return s.err
}

func (s *failStore) Search(_ context.Context, _ string, _ []float32, _ int) ([]domain.RetrievedChunk, error) {
	return nil, s.err
}

func (s *failStore) DeleteCollection(_ context.Context, _ string) error {
	return s.err
}

func (s *failStore) Close() error { return nil }
