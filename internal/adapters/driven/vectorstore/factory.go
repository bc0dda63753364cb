// Package vectorstore selects the configured store backend.
package vectorstore

import (
	"context"
	"fmt"

	"github.com/askdoc-ai/askdoc/internal/adapters/driven/vectorstore/memory"
	"github.com/askdoc-ai/askdoc/internal/adapters/driven/vectorstore/pgvector"
	"github.com/askdoc-ai/askdoc/internal/adapters/driven/vectorstore/sqlite"
	"github.com/askdoc-ai/askdoc/internal/core/domain"
	"github.com/askdoc-ai/askdoc/internal/core/ports/driven"
	"github.com/askdoc-ai/askdoc/internal/logger"
)

// Factory creates vector stores from settings.
type Factory struct{}

// NewFactory creates a new vector store factory.
func NewFactory() *Factory {
	return &Factory{}
}

// CreateStore builds the vector store selected by the settings backend.
func (f *Factory) CreateStore(ctx context.Context, settings domain.StoreSettings) (driven.VectorStore, error) {
	switch settings.Backend {
	case domain.StoreBackendPgvector:
		store, err := pgvector.NewStore(ctx, settings.ConnectionURL)
		if err != nil {
			return nil, err
		}
		logger.Info("Connected to pgvector store")
		return store, nil

	case domain.StoreBackendSQLite:
		store, err := sqlite.NewStore(settings.DataDir)
		if err != nil {
			return nil, err
		}
		logger.Info("Opened SQLite store at %s", store.Path())
		return store, nil

	case domain.StoreBackendMemory:
		return memory.New(), nil

	default:
		return nil, fmt.Errorf("%w: unknown store backend %q", domain.ErrConfiguration, settings.Backend)
	}
}
