package driving

import (
	"context"

	"github.com/askdoc-ai/askdoc/internal/core/domain"
)

// AskService answers one natural-language question strictly from the
// ingested document. Each question is independent; there is no
// conversation memory.
type AskService interface {
	// Ask runs one question→answer cycle and returns either a grounded
	// answer or the fixed refusal sentence.
	Ask(ctx context.Context, question string) (string, error)
}

// RetrieveService exposes raw similarity retrieval without the answer
// generator, for the inspection command.
type RetrieveService interface {
	// Retrieve embeds the question and returns the k most similar
	// chunks with their scores.
	Retrieve(ctx context.Context, question string, k int) ([]domain.RetrievedChunk, error)
}
