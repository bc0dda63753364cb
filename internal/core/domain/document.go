package domain

// Document is the plain-text input to ingestion. Binary formats are
// parsed by the caller; the core only ever sees extracted text plus a
// source identifier. A document is read once, chunked, and discarded.
type Document struct {
	// Source identifies where the text came from (file path or logical name).
	Source string

	// Content is the full extracted text.
	Content string
}

// Chunk is a fixed-size overlapping window of a document. Chunks are
// created once per ingestion run and are immutable afterwards.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// Source is the identifier of the document this chunk came from.
	Source string

	// Content is the text of this window.
	Content string

	// Position is the ordinal position within the document.
	Position int

	// Start and End are the rune offsets of this window in the source
	// text, kept for traceability. End is exclusive.
	Start int
	End   int
}

// IndexRecord is what the vector store persists per chunk. Records are
// created by ingestion, read by retrieval, and destroyed only by
// deleting their collection.
type IndexRecord struct {
	// ID is the unique record identifier.
	ID string

	// Content is the chunk text.
	Content string

	// Embedding is the vector produced by the active embedding provider.
	// All records in one collection must come from the same provider and
	// model; mixing providers silently degrades retrieval (see the
	// VectorStore port documentation).
	Embedding []float32

	// Metadata holds record annotations such as the source identifier
	// and chunk position.
	Metadata map[string]any
}

// RetrievedChunk is a single similarity-search hit. Results are
// ephemeral: constructed per query and never persisted.
type RetrievedChunk struct {
	// Content is the stored chunk text.
	Content string

	// Score is the similarity to the query vector, higher is closer.
	Score float64

	// Metadata is the record metadata as stored at ingestion time.
	Metadata map[string]any
}
