// Package cli implements the askdoc command-line interface using cobra.
// Each command wires the configuration resolver and the provider
// factories into the core services, then delegates to the driving ports.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/askdoc-ai/askdoc/internal/adapters/driven/ai"
	"github.com/askdoc-ai/askdoc/internal/adapters/driven/config/file"
	"github.com/askdoc-ai/askdoc/internal/adapters/driven/vectorstore"
	"github.com/askdoc-ai/askdoc/internal/core/domain"
	"github.com/askdoc-ai/askdoc/internal/core/ports/driven"
	"github.com/askdoc-ai/askdoc/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "askdoc",
	Short: "Ask questions about an ingested document",
	Long: `askdoc indexes a plain-text document and answers questions about it.

Answers are grounded strictly in the ingested content: when the document
does not contain the requested information the assistant says so instead
of guessing.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// pipeline bundles the resolved providers for one command run.
type pipeline struct {
	embedder   driven.Embedder
	generator  driven.Generator
	store      driven.VectorStore
	collection string
	chunking   domain.ChunkingSettings
	topK       int

	closers []func() error
}

// Close releases all pipeline resources.
func (p *pipeline) Close() {
	for _, close := range p.closers {
		if err := close(); err != nil {
			logger.Warn("Closing pipeline component: %v", err)
		}
	}
}

// newPipeline builds the providers for a command. Swapped in tests.
var newPipeline = buildPipeline

// buildPipeline resolves configuration and constructs the embedder,
// the vector store and, when requested, the generator.
func buildPipeline(ctx context.Context, overrides file.Overrides, withGenerator bool) (*pipeline, error) {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return nil, err
	}
	resolver := file.NewResolver(configStore)

	embeddingSettings, err := resolver.EmbeddingSettings(overrides)
	if err != nil {
		return nil, err
	}

	storeSettings, err := resolver.StoreSettings(overrides)
	if err != nil {
		return nil, err
	}

	embedder, err := ai.CreateAndValidateEmbedder(embeddingSettings)
	if err != nil {
		return nil, err
	}

	p := &pipeline{
		embedder:   embedder,
		collection: storeSettings.Collection,
		chunking:   resolver.ChunkingSettings(overrides),
		topK:       resolver.TopK(overrides),
		closers:    []func() error{embedder.Close},
	}

	store, err := vectorstore.NewFactory().CreateStore(ctx, storeSettings)
	if err != nil {
		p.Close()
		return nil, err
	}
	p.store = store
	p.closers = append(p.closers, store.Close)

	if withGenerator {
		llmSettings, err := resolver.LLMSettings(overrides)
		if err != nil {
			p.Close()
			return nil, err
		}
		generator, err := ai.CreateAndValidateGenerator(llmSettings)
		if err != nil {
			p.Close()
			return nil, err
		}
		p.generator = generator
		p.closers = append(p.closers, generator.Close)
	}

	return p, nil
}
