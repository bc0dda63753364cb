// Package ai provides factory functions for creating embedding and
// generation adapters from resolved settings.
package ai

import (
	"context"
	"fmt"
	"time"

	googleembed "github.com/askdoc-ai/askdoc/internal/adapters/driven/embedding/google"
	offlineembed "github.com/askdoc-ai/askdoc/internal/adapters/driven/embedding/offline"
	openaiembed "github.com/askdoc-ai/askdoc/internal/adapters/driven/embedding/openai"
	googlellm "github.com/askdoc-ai/askdoc/internal/adapters/driven/llm/google"
	offlinellm "github.com/askdoc-ai/askdoc/internal/adapters/driven/llm/offline"
	openaillm "github.com/askdoc-ai/askdoc/internal/adapters/driven/llm/openai"
	"github.com/askdoc-ai/askdoc/internal/core/domain"
	"github.com/askdoc-ai/askdoc/internal/core/ports/driven"
	"github.com/askdoc-ai/askdoc/internal/logger"
)

// pingTimeout is the maximum time to wait for connectivity validation.
const pingTimeout = 5 * time.Second

// CreateEmbedder creates the embedding adapter for the settings.
// An explicitly requested cloud provider with no credential is a
// configuration error, not a silent fallback.
func CreateEmbedder(settings domain.EmbeddingSettings) (driven.Embedder, error) {
	switch settings.Provider {
	case domain.AIProviderOpenAI:
		return openaiembed.New(openaiembed.Config{
			APIKey:     settings.APIKey,
			Model:      settings.Model,
			Dimensions: settings.Dimensions,
		})

	case domain.AIProviderGoogle:
		return googleembed.New(googleembed.Config{
			APIKey: settings.APIKey,
			Model:  settings.Model,
		})

	case domain.AIProviderOffline:
		return offlineembed.New(settings.Dimensions), nil

	default:
		return nil, fmt.Errorf("%w: unsupported embedding provider %q",
			domain.ErrConfiguration, settings.Provider)
	}
}

// CreateGenerator creates the generation adapter for the settings.
func CreateGenerator(settings domain.LLMSettings) (driven.Generator, error) {
	switch settings.Provider {
	case domain.AIProviderOpenAI:
		return openaillm.New(openaillm.Config{
			APIKey: settings.APIKey,
			Model:  settings.Model,
		})

	case domain.AIProviderGoogle:
		return googlellm.New(googlellm.Config{
			APIKey: settings.APIKey,
			Model:  settings.Model,
		})

	case domain.AIProviderOffline:
		return offlinellm.New(), nil

	default:
		return nil, fmt.Errorf("%w: unsupported generation provider %q",
			domain.ErrConfiguration, settings.Provider)
	}
}

// CreateAndValidateEmbedder creates an embedder and, for network
// providers, validates connectivity with a short ping.
func CreateAndValidateEmbedder(settings domain.EmbeddingSettings) (driven.Embedder, error) {
	embedder, err := CreateEmbedder(settings)
	if err != nil {
		return nil, err
	}

	if settings.Provider.RequiresAPIKey() {
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		defer cancel()
		if err := embedder.Ping(ctx); err != nil {
			embedder.Close()
			return nil, err
		}
	}

	logger.Info("Embedding provider: %s (%s)", settings.Provider, embedder.ModelName())
	return embedder, nil
}

// CreateAndValidateGenerator creates a generator and, for network
// providers, validates connectivity with a short ping.
func CreateAndValidateGenerator(settings domain.LLMSettings) (driven.Generator, error) {
	generator, err := CreateGenerator(settings)
	if err != nil {
		return nil, err
	}

	if settings.Provider.RequiresAPIKey() {
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		defer cancel()
		if err := generator.Ping(ctx); err != nil {
			generator.Close()
			return nil, err
		}
	}

	logger.Info("Generation provider: %s (%s)", settings.Provider, generator.ModelName())
	return generator, nil
}
