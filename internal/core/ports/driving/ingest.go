package driving

import (
	"context"

	"github.com/askdoc-ai/askdoc/internal/core/domain"
)

// IngestService turns one plain-text document into indexed chunks.
type IngestService interface {
	// Ingest chunks the document, embeds every chunk, and inserts the
	// records into the configured collection. Returns the number of
	// records written. Any embedding or store failure aborts the whole
	// run; there is no partial silent success.
	Ingest(ctx context.Context, doc domain.Document) (int, error)
}
