package offline

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdoc-ai/askdoc/internal/core/domain"
	"github.com/askdoc-ai/askdoc/internal/core/ports/driven"
)

func prompt(context, question string) string {
	return domain.PromptContextHeader + "\n" + context + "\n\n" +
		domain.PromptRulesHeader + "\n- Answer only using the CONTEXT block.\n\n" +
		domain.PromptQuestionHeader + "\n" + question + "\n"
}

func TestGenerate_RefusesOnEmptyContext(t *testing.T) {
	g := New()

	for _, ctx := range []string{"", domain.PromptEmptyContext} {
		answer, err := g.Generate(context.Background(), prompt(ctx, "What is the revenue?"), driven.GenerateOptions{})
		require.NoError(t, err)
		assert.Equal(t, domain.RefusalSentence, answer)
	}
}

func TestGenerate_EchoesQuestionAndContext(t *testing.T) {
	g := New()

	answer, err := g.Generate(context.Background(),
		prompt("The revenue was 10 million reais.", "What is the revenue?"),
		driven.GenerateOptions{})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(answer, ResponsePrefix))
	assert.Contains(t, answer, "What is the revenue?")
	assert.Contains(t, answer, "10 million reais")
	assert.NotEqual(t, domain.RefusalSentence, answer)
}

func TestGenerate_Deterministic(t *testing.T) {
	g := New()
	p := prompt("Some context paragraph.", "A question?")

	first, err := g.Generate(context.Background(), p, driven.GenerateOptions{})
	require.NoError(t, err)
	second, err := g.Generate(context.Background(), p, driven.GenerateOptions{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerate_TruncatesLongContext(t *testing.T) {
	g := New()
	long := strings.Repeat("context ", 100)

	answer, err := g.Generate(context.Background(), prompt(long, "Q?"), driven.GenerateOptions{})
	require.NoError(t, err)

	// The preview is bounded; the answer must not carry the whole block.
	assert.Less(t, len(answer), len(long))
	assert.True(t, strings.HasSuffix(answer, "..."))
}

func TestGenerate_TruncatesMultibyteContextOnRuneBoundary(t *testing.T) {
	g := New()
	// One ASCII rune followed by three-byte runes, so any byte-indexed
	// cut of the preview lands inside a rune.
	long := "a" + strings.Repeat("€", 200)

	answer, err := g.Generate(context.Background(), prompt(long, "Q?"), driven.GenerateOptions{})
	require.NoError(t, err)

	assert.True(t, utf8.ValidString(answer))
	assert.Contains(t, answer, "€")
	assert.True(t, strings.HasSuffix(answer, "..."))
}

func TestGenerate_MissingQuestionHeader(t *testing.T) {
	g := New()

	answer, err := g.Generate(context.Background(),
		domain.PromptContextHeader+"\nsome context\n"+domain.PromptRulesHeader+"\nrules\n",
		driven.GenerateOptions{})
	require.NoError(t, err)
	assert.Contains(t, answer, "No question provided.")
}
