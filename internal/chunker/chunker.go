// Package chunker splits document text into fixed-size overlapping
// windows, the unit of embedding and retrieval.
package chunker

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/askdoc-ai/askdoc/internal/core/domain"
)

// Chunker walks a text in a single pass emitting windows of up to Size
// runes, advancing Size-Overlap runes each step. Windows are measured
// in runes, not bytes, so multi-byte text never splits mid-character.
type Chunker struct {
	size    int
	overlap int
}

// New validates the chunking parameters and returns a Chunker.
// Overlap must satisfy 0 < overlap < size; anything else is a
// configuration error, never silently clamped.
func New(settings domain.ChunkingSettings) (*Chunker, error) {
	if settings.Size <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d",
			domain.ErrConfiguration, settings.Size)
	}
	if settings.Overlap <= 0 {
		return nil, fmt.Errorf("%w: chunk overlap must be positive, got %d",
			domain.ErrConfiguration, settings.Overlap)
	}
	if settings.Overlap >= settings.Size {
		return nil, fmt.Errorf("%w: chunk overlap %d must be smaller than chunk size %d",
			domain.ErrConfiguration, settings.Overlap, settings.Size)
	}
	return &Chunker{size: settings.Size, overlap: settings.Overlap}, nil
}

// Size returns the configured window size in runes.
func (c *Chunker) Size() int {
	return c.size
}

// Overlap returns the configured overlap in runes.
func (c *Chunker) Overlap() int {
	return c.overlap
}

// Split chunks the document content. Empty content produces no chunks;
// content shorter than the window size produces exactly one chunk equal
// to the whole text. The final chunk may be shorter than the window
// size, without padding.
func (c *Chunker) Split(doc domain.Document) []domain.Chunk {
	if doc.Content == "" {
		return nil
	}

	runes := []rune(doc.Content)
	total := len(runes)
	stride := c.size - c.overlap

	chunks := make([]domain.Chunk, 0, total/stride+1)
	position := 0

	for start := 0; start < total; start += stride {
		end := start + c.size
		if end > total {
			end = total
		}

		chunks = append(chunks, domain.Chunk{
			ID:       uuid.New().String(),
			Source:   doc.Source,
			Content:  string(runes[start:end]),
			Position: position,
			Start:    start,
			End:      end,
		})
		position++

		// The remaining text is fully covered by this window.
		if end == total {
			break
		}
	}

	return chunks
}
