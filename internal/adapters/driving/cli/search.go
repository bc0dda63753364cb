package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/askdoc-ai/askdoc/internal/adapters/driven/config/file"
	"github.com/askdoc-ai/askdoc/internal/core/domain"
	"github.com/askdoc-ai/askdoc/internal/core/services"
)

var (
	searchQuery      string
	searchTopK       int
	searchProvider   string
	searchCollection string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Inspect raw retrieval results",
	Long: `Runs similarity retrieval for a query and prints the matched chunks
with their scores, without generating an answer. Useful for checking
what context a question would receive.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "question or search term")
	searchCmd.Flags().IntVar(&searchTopK, "k", 5, "number of chunks to return")
	searchCmd.Flags().StringVar(&searchProvider, "provider", "", "embedding provider (openai, google, offline)")
	searchCmd.Flags().StringVar(&searchCollection, "collection", "", "collection to search")
	_ = searchCmd.MarkFlagRequired("query")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, _ []string) error {
	overrides := file.Overrides{
		EmbeddingProvider: searchProvider,
		Collection:        searchCollection,
	}

	pipe, err := newPipeline(cmd.Context(), overrides, false)
	if err != nil {
		return err
	}
	defer pipe.Close()

	retriever := services.NewRetrieverService(pipe.embedder, pipe.store, pipe.collection)

	results, err := retriever.Retrieve(cmd.Context(), searchQuery, searchTopK)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	cmd.Print(formatResults(results))
	return nil
}

// formatResults renders retrieved chunks for terminal inspection.
func formatResults(results []domain.RetrievedChunk) string {
	if len(results) == 0 {
		return "No results found.\n"
	}

	var b strings.Builder
	for i, result := range results {
		b.WriteString(strings.Repeat("=", 80) + "\n")
		fmt.Fprintf(&b, "Result %d | score=%.4f\n", i+1, result.Score)
		b.WriteString(strings.Repeat("-", 80) + "\n")
		b.WriteString(strings.TrimSpace(result.Content) + "\n")
		if len(result.Metadata) > 0 {
			b.WriteString("\nMetadata:\n")
			keys := make([]string, 0, len(result.Metadata))
			for key := range result.Metadata {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				fmt.Fprintf(&b, "- %s: %v\n", key, result.Metadata[key])
			}
		}
	}
	return b.String()
}
