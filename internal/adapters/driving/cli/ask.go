package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/askdoc-ai/askdoc/internal/adapters/driven/config/file"
	"github.com/askdoc-ai/askdoc/internal/core/ports/driven"
	"github.com/askdoc-ai/askdoc/internal/core/services"
)

var (
	askTopK              int
	askEmbeddingProvider string
	askLLMProvider       string
	askLLMModel          string
	askCollection        string
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask one question about the ingested document",
	Long: `Answers a single question using only the indexed document content.
When the document does not contain the requested information the
assistant replies with a fixed refusal instead of guessing.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVar(&askTopK, "k", 0, "number of chunks retrieved as context")
	askCmd.Flags().StringVar(&askEmbeddingProvider, "embedding-provider", "", "embedding provider (openai, google, offline)")
	askCmd.Flags().StringVar(&askLLMProvider, "llm-provider", "", "language model provider (openai, google, offline)")
	askCmd.Flags().StringVar(&askLLMModel, "llm-model", "", "provider-specific model name")
	askCmd.Flags().StringVar(&askCollection, "collection", "", "collection to search")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	overrides := file.Overrides{
		EmbeddingProvider: askEmbeddingProvider,
		LLMProvider:       askLLMProvider,
		LLMModel:          askLLMModel,
		TopK:              askTopK,
		Collection:        askCollection,
	}

	pipe, err := newPipeline(cmd.Context(), overrides, true)
	if err != nil {
		return err
	}
	defer pipe.Close()

	retriever := services.NewRetrieverService(pipe.embedder, pipe.store, pipe.collection)
	asker := services.NewAskerService(retriever, pipe.generator, pipe.topK, driven.GenerateOptions{})

	answer, err := asker.Ask(cmd.Context(), question)
	if err != nil {
		return fmt.Errorf("answering failed: %w", err)
	}

	cmd.Println(answer)
	return nil
}
