package domain

const unknownDescription = "Unknown"

// Default pipeline parameters.
const (
	// DefaultChunkSize is the window size in runes.
	DefaultChunkSize = 1000

	// DefaultChunkOverlap is the shared-rune count between adjacent windows.
	DefaultChunkOverlap = 150

	// DefaultTopK is the number of chunks retrieved per question.
	DefaultTopK = 10

	// DefaultOfflineDimensions is the vector size of the offline
	// embedding provider when none is configured.
	DefaultOfflineDimensions = 1536
)

// AIProvider identifies an embedding or generation backend.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderGoogle is the Google Generative Language cloud API.
	AIProviderGoogle AIProvider = "google"

	// AIProviderOffline is the deterministic, network-free stand-in
	// used for tests and as the terminal fallback.
	AIProviderOffline AIProvider = "offline"
)

// ProbeOrder is the fixed priority in which credentials are probed when
// no provider is selected explicitly. Offline is always usable, so the
// probe never fails.
var ProbeOrder = []AIProvider{AIProviderOpenAI, AIProviderGoogle, AIProviderOffline}

// IsValid returns true if the provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOpenAI, AIProviderGoogle, AIProviderOffline:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs a credential.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderGoogle
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderGoogle:
		return "Google Generative Language (cloud)"
	case AIProviderOffline:
		return "Offline (deterministic, network-free)"
	default:
		return unknownDescription
	}
}

// EmbeddingSettings holds embedding provider configuration.
// Components receive settings explicitly in constructors; nothing in
// the core reads ambient state.
type EmbeddingSettings struct {
	// Provider is the embedding backend.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// APIKey is the credential for cloud providers.
	APIKey string

	// Dimensions overrides the vector size where the provider allows it.
	Dimensions int
}

// IsConfigured returns true if the embedding provider is usable.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds generation provider configuration. Embedding and
// generation are independently configurable and need not match.
type LLMSettings struct {
	// Provider is the generation backend.
	Provider AIProvider

	// Model is the completion model name.
	Model string

	// APIKey is the credential for cloud providers.
	APIKey string
}

// IsConfigured returns true if the generation provider is usable.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// ChunkingSettings holds the two chunker parameters.
type ChunkingSettings struct {
	// Size is the window size in runes.
	Size int

	// Overlap is the shared-rune count between adjacent windows.
	// Must satisfy 0 < Overlap < Size.
	Overlap int
}

// StoreBackend identifies a vector store implementation.
type StoreBackend string

// Available vector store backends.
const (
	// StoreBackendPgvector is a PostgreSQL instance with the pgvector
	// extension, addressed by connection string.
	StoreBackendPgvector StoreBackend = "pgvector"

	// StoreBackendSQLite is a local SQLite database file.
	StoreBackendSQLite StoreBackend = "sqlite"

	// StoreBackendMemory is the in-process test backend.
	StoreBackendMemory StoreBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StoreBackend) IsValid() bool {
	switch b {
	case StoreBackendPgvector, StoreBackendSQLite, StoreBackendMemory:
		return true
	default:
		return false
	}
}

// StoreSettings holds vector store configuration. The core only issues
// CRUD against the store; its lifecycle is managed externally.
type StoreSettings struct {
	// Backend selects the implementation.
	Backend StoreBackend

	// ConnectionURL is the pgvector connection string.
	ConnectionURL string

	// DataDir is the directory holding the SQLite database file.
	DataDir string

	// Collection is the named partition all operations target.
	Collection string
}
