package file

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/askdoc-ai/askdoc/internal/core/domain"
	"github.com/askdoc-ai/askdoc/internal/core/ports/driven"
	"github.com/askdoc-ai/askdoc/internal/logger"
)

// Environment variable names recognised by the resolver.
const (
	EnvOpenAIAPIKey         = "OPENAI_API_KEY"
	EnvGoogleAPIKey         = "GOOGLE_API_KEY"
	EnvEmbeddingsProvider   = "EMBEDDINGS_PROVIDER"
	EnvLLMProvider          = "LLM_PROVIDER"
	EnvOpenAIEmbeddingModel = "OPENAI_EMBEDDING_MODEL"
	EnvGoogleEmbeddingModel = "GOOGLE_EMBEDDING_MODEL"
	EnvFakeEmbeddingSize    = "FAKE_EMBEDDING_SIZE"
	EnvPgvectorURL          = "PGVECTOR_URL"
	EnvDatabaseURL          = "DATABASE_URL"
	EnvPgvectorCollection   = "PGVECTOR_COLLECTION"
)

// DefaultCollection is the collection used when none is configured.
const DefaultCollection = "documents"

// Overrides carries values set explicitly on the command line. Zero
// values mean "not set" and fall through to the next precedence level.
type Overrides struct {
	EmbeddingProvider string
	EmbeddingModel    string
	LLMProvider       string
	LLMModel          string
	TopK              int
	ChunkSize         int
	ChunkOverlap      int
	StoreBackend      string
	Collection        string
}

// Resolver combines command-line overrides, environment variables, the
// config file and built-in defaults into settings structs, in that
// precedence order.
type Resolver struct {
	store driven.ConfigStore
}

// NewResolver creates a resolver backed by the given config store.
// A .env file in the working directory is loaded into the environment
// first; absence is not an error.
func NewResolver(store driven.ConfigStore) *Resolver {
	if err := godotenv.Load(); err == nil {
		logger.Debug("Loaded .env file")
	}
	return &Resolver{store: store}
}

// EmbeddingSettings resolves the embedding provider configuration.
func (r *Resolver) EmbeddingSettings(o Overrides) (domain.EmbeddingSettings, error) {
	provider, err := r.resolveProvider(o.EmbeddingProvider, EnvEmbeddingsProvider, "embedding.provider")
	if err != nil {
		return domain.EmbeddingSettings{}, err
	}

	settings := domain.EmbeddingSettings{
		Provider: provider,
		APIKey:   r.apiKey(provider),
	}

	switch {
	case o.EmbeddingModel != "":
		settings.Model = o.EmbeddingModel
	case provider == domain.AIProviderOpenAI && os.Getenv(EnvOpenAIEmbeddingModel) != "":
		settings.Model = os.Getenv(EnvOpenAIEmbeddingModel)
	case provider == domain.AIProviderGoogle && os.Getenv(EnvGoogleEmbeddingModel) != "":
		settings.Model = os.Getenv(EnvGoogleEmbeddingModel)
	default:
		settings.Model = r.store.GetString("embedding.model")
	}

	if provider == domain.AIProviderOffline {
		if raw := os.Getenv(EnvFakeEmbeddingSize); raw != "" {
			size, err := strconv.Atoi(raw)
			if err != nil || size <= 0 {
				return domain.EmbeddingSettings{}, fmt.Errorf(
					"%w: %s must be a positive integer, got %q", domain.ErrConfiguration, EnvFakeEmbeddingSize, raw)
			}
			settings.Dimensions = size
		} else if size := r.store.GetInt("embedding.dimensions"); size > 0 {
			settings.Dimensions = size
		}
	}

	logger.Debug("Resolved embedding provider: %s", provider)
	return settings, nil
}

// LLMSettings resolves the generation provider configuration.
func (r *Resolver) LLMSettings(o Overrides) (domain.LLMSettings, error) {
	provider, err := r.resolveProvider(o.LLMProvider, EnvLLMProvider, "llm.provider")
	if err != nil {
		return domain.LLMSettings{}, err
	}

	settings := domain.LLMSettings{
		Provider: provider,
		APIKey:   r.apiKey(provider),
	}

	if o.LLMModel != "" {
		settings.Model = o.LLMModel
	} else {
		settings.Model = r.store.GetString("llm.model")
	}

	logger.Debug("Resolved LLM provider: %s", provider)
	return settings, nil
}

// ChunkingSettings resolves the chunker parameters.
func (r *Resolver) ChunkingSettings(o Overrides) domain.ChunkingSettings {
	settings := domain.ChunkingSettings{
		Size:    domain.DefaultChunkSize,
		Overlap: domain.DefaultChunkOverlap,
	}

	if size := r.store.GetInt("chunking.size"); size > 0 {
		settings.Size = size
	}
	if overlap := r.store.GetInt("chunking.overlap"); overlap > 0 {
		settings.Overlap = overlap
	}
	if o.ChunkSize > 0 {
		settings.Size = o.ChunkSize
	}
	if o.ChunkOverlap > 0 {
		settings.Overlap = o.ChunkOverlap
	}

	return settings
}

// TopK resolves the retrieval depth.
func (r *Resolver) TopK(o Overrides) int {
	if o.TopK > 0 {
		return o.TopK
	}
	if k := r.store.GetInt("retrieval.top_k"); k > 0 {
		return k
	}
	return domain.DefaultTopK
}

// StoreSettings resolves the vector store configuration. Without an
// explicit backend, pgvector is used when a connection URL is present
// and SQLite otherwise.
func (r *Resolver) StoreSettings(o Overrides) (domain.StoreSettings, error) {
	settings := domain.StoreSettings{
		ConnectionURL: firstNonEmpty(
			os.Getenv(EnvPgvectorURL),
			os.Getenv(EnvDatabaseURL),
			r.store.GetString("store.url"),
		),
		DataDir: r.store.GetString("store.data_dir"),
		Collection: firstNonEmpty(
			o.Collection,
			os.Getenv(EnvPgvectorCollection),
			r.store.GetString("store.collection"),
			DefaultCollection,
		),
	}

	backend := firstNonEmpty(o.StoreBackend, r.store.GetString("store.backend"))
	switch {
	case backend != "":
		settings.Backend = domain.StoreBackend(strings.ToLower(strings.TrimSpace(backend)))
		if !settings.Backend.IsValid() {
			return domain.StoreSettings{}, fmt.Errorf(
				"%w: unknown store backend %q", domain.ErrConfiguration, backend)
		}
	case settings.ConnectionURL != "":
		settings.Backend = domain.StoreBackendPgvector
	default:
		settings.Backend = domain.StoreBackendSQLite
	}

	return settings, nil
}

// resolveProvider applies the selection rules: an explicit choice wins
// and must be valid; otherwise credentials are probed in fixed order
// with offline as the terminal fallback.
func (r *Resolver) resolveProvider(explicit, envKey, configKey string) (domain.AIProvider, error) {
	choice := firstNonEmpty(explicit, os.Getenv(envKey), r.store.GetString(configKey))
	if choice != "" {
		normalized := strings.ToLower(strings.TrimSpace(choice))
		if normalized == "fake" {
			// Legacy alias for the offline provider.
			normalized = string(domain.AIProviderOffline)
		}
		provider := domain.AIProvider(normalized)
		if !provider.IsValid() {
			return "", fmt.Errorf("%w: unknown provider %q", domain.ErrConfiguration, choice)
		}
		return provider, nil
	}

	for _, provider := range domain.ProbeOrder {
		if !provider.RequiresAPIKey() || r.apiKey(provider) != "" {
			return provider, nil
		}
	}
	return domain.AIProviderOffline, nil
}

// apiKey returns the credential for a cloud provider, preferring the
// environment over the config file.
func (r *Resolver) apiKey(provider domain.AIProvider) string {
	switch provider {
	case domain.AIProviderOpenAI:
		return firstNonEmpty(os.Getenv(EnvOpenAIAPIKey), r.store.GetString("openai.api_key"))
	case domain.AIProviderGoogle:
		return firstNonEmpty(os.Getenv(EnvGoogleAPIKey), r.store.GetString("google.api_key"))
	default:
		return ""
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
