package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/askdoc-ai/askdoc/internal/adapters/driven/config/file"
	"github.com/askdoc-ai/askdoc/internal/chunker"
	"github.com/askdoc-ai/askdoc/internal/core/domain"
	"github.com/askdoc-ai/askdoc/internal/core/services"
)

var (
	ingestSource       string
	ingestAppend       bool
	ingestProvider     string
	ingestCollection   string
	ingestChunkSize    int
	ingestChunkOverlap int
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Index a plain-text document",
	Long: `Splits a plain-text file into overlapping chunks, embeds each chunk
and stores the records in the configured collection. By default the
collection is rebuilt; use --append to accumulate instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestSource, "source", "", "source label stored with each chunk (defaults to the file name)")
	ingestCmd.Flags().BoolVar(&ingestAppend, "append", false, "append to the existing collection instead of recreating it")
	ingestCmd.Flags().StringVar(&ingestProvider, "provider", "", "embedding provider (openai, google, offline)")
	ingestCmd.Flags().StringVar(&ingestCollection, "collection", "", "target collection name")
	ingestCmd.Flags().IntVar(&ingestChunkSize, "chunk-size", 0, "chunk window size in characters")
	ingestCmd.Flags().IntVar(&ingestChunkOverlap, "chunk-overlap", 0, "overlap between adjacent chunks in characters")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	path := args[0]

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	overrides := file.Overrides{
		EmbeddingProvider: ingestProvider,
		Collection:        ingestCollection,
		ChunkSize:         ingestChunkSize,
		ChunkOverlap:      ingestChunkOverlap,
	}

	pipe, err := newPipeline(cmd.Context(), overrides, false)
	if err != nil {
		return err
	}
	defer pipe.Close()

	ch, err := chunker.New(pipe.chunking)
	if err != nil {
		return err
	}

	source := ingestSource
	if source == "" {
		source = filepath.Base(path)
	}

	ingester := services.NewIngesterService(ch, pipe.embedder, pipe.store, services.IngesterConfig{
		Collection: pipe.collection,
		Append:     ingestAppend,
	})

	count, err := ingester.Ingest(cmd.Context(), domain.Document{
		Source:  source,
		Content: string(content),
	})
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	cmd.Printf("Ingested %d chunks from %s into collection %q\n", count, source, pipe.collection)
	return nil
}
