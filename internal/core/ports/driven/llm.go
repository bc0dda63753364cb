package driven

import "context"

// Generator sends a prompt to a text-completion backend and returns the
// raw answer text. It has the same provider shape and fallback policy
// as Embedder, configured independently.
//
// Implementations:
//   - OpenAI (chat completions)
//   - Google Generative Language (generateContent)
//   - Offline (deterministic canned response, no network)
type Generator interface {
	// Generate produces a completion for the prompt. Network failures
	// surface as retryable provider errors; auth and quota failures are
	// fatal (see domain.ProviderError).
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the completion model being used.
	ModelName() string

	// Ping validates the backend is reachable with a lightweight
	// request. Used at startup before committing to a provider.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness. Grounded answering runs at 0.
	Temperature float64
}
