// Package pgvector provides a PostgreSQL vector store using the pgvector
// extension. Similarity search runs server-side with the cosine distance
// operator, which scales past what a local brute-force scan can handle.
package pgvector

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	pgv "github.com/pgvector/pgvector-go"

	"github.com/askdoc-ai/askdoc/internal/core/domain"
	"github.com/askdoc-ai/askdoc/internal/core/ports/driven"
)

// Store is a PostgreSQL-backed vector store.
type Store struct {
	db *sql.DB
}

var _ driven.VectorStore = (*Store)(nil)

// NewStore connects to PostgreSQL and prepares the schema. The connection
// URL must point at a database with the pgvector extension available.
func NewStore(ctx context.Context, connURL string) (*Store, error) {
	if strings.TrimSpace(connURL) == "" {
		return nil, fmt.Errorf("%w: postgres connection URL is required", domain.ErrConfiguration)
	}

	db, err := sql.Open("pgx", connURL)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, domain.NewProviderError("pgvector", "connect", domain.ProviderErrorNetwork, err)
	}

	s := &Store{db: db}

	if err := s.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ensureSchema creates the extension and tables if they are missing.
func (s *Store) ensureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		`CREATE TABLE IF NOT EXISTS collections (
			name TEXT PRIMARY KEY,
			created_at TIMESTAMPTZ DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS embeddings (
			seq BIGSERIAL PRIMARY KEY,
			id TEXT NOT NULL,
			collection TEXT NOT NULL REFERENCES collections(name) ON DELETE CASCADE,
			content TEXT NOT NULL,
			embedding VECTOR NOT NULL,
			metadata JSONB
		)`,
		`CREATE INDEX IF NOT EXISTS idx_embeddings_collection ON embeddings(collection)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Insert appends records to a collection, creating it if needed.
// Repeated inserts of the same records accumulate duplicates.
func (s *Store) Insert(ctx context.Context, collection string, records []domain.IndexRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO collections (name) VALUES ($1) ON CONFLICT (name) DO NOTHING", collection); err != nil {
		return fmt.Errorf("ensuring collection: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO embeddings (id, collection, content, embedding, metadata)
		VALUES ($1, $2, $3, $4, $5)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		metadataJSON, err := json.Marshal(record.Metadata)
		if err != nil {
			return fmt.Errorf("marshalling metadata: %w", err)
		}

		if _, err := stmt.ExecContext(ctx, record.ID, collection, record.Content,
			pgv.NewVector(record.Embedding), string(metadataJSON)); err != nil {
			return fmt.Errorf("inserting record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Search returns the k records of a collection most similar to the query
// vector, in descending similarity order. Ties keep insertion order.
// An absent collection yields an empty result.
func (s *Store) Search(ctx context.Context, collection string, query []float32, k int) ([]domain.RetrievedChunk, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: search limit must be positive, got %d", domain.ErrConfiguration, k)
	}

	// Cosine distance d is in [0, 2]; report similarity 1 - d.
	rows, err := s.db.QueryContext(ctx, `
		SELECT content, 1 - (embedding <=> $1) AS score, metadata
		FROM embeddings
		WHERE collection = $2
		ORDER BY embedding <=> $1, seq
		LIMIT $3
	`, pgv.NewVector(query), collection, k)
	if err != nil {
		return nil, fmt.Errorf("querying embeddings: %w", err)
	}
	defer rows.Close()

	var results []domain.RetrievedChunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		var chunk domain.RetrievedChunk
		var metadataJSON sql.NullString

		if err := rows.Scan(&chunk.Content, &chunk.Score, &metadataJSON); err != nil {
			return nil, fmt.Errorf("scanning embedding: %w", err)
		}

		if metadataJSON.Valid && metadataJSON.String != "" && metadataJSON.String != "null" {
			if err := json.Unmarshal([]byte(metadataJSON.String), &chunk.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshaling metadata: %w", err)
			}
		}

		results = append(results, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating embeddings: %w", err)
	}

	return results, nil
}

// DeleteCollection removes a collection and all its embeddings.
// Deleting a collection that does not exist is not an error.
func (s *Store) DeleteCollection(ctx context.Context, collection string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM collections WHERE name = $1", collection); err != nil {
		return fmt.Errorf("deleting collection: %w", err)
	}
	return nil
}
