package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/askdoc-ai/askdoc/internal/adapters/driven/config/file"
	"github.com/askdoc-ai/askdoc/internal/adapters/driving/tui"
	"github.com/askdoc-ai/askdoc/internal/core/ports/driven"
	"github.com/askdoc-ai/askdoc/internal/core/ports/driving"
	"github.com/askdoc-ai/askdoc/internal/core/services"
)

var (
	chatTopK              int
	chatEmbeddingProvider string
	chatLLMProvider       string
	chatLLMModel          string
	chatCollection        string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive question shell",
	Long: `Opens an interactive shell for asking questions about the ingested
document. Questions are independent: no conversation history is kept
between them. Type /exit to quit.`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().IntVar(&chatTopK, "k", 0, "number of chunks retrieved as context")
	chatCmd.Flags().StringVar(&chatEmbeddingProvider, "embedding-provider", "", "embedding provider (openai, google, offline)")
	chatCmd.Flags().StringVar(&chatLLMProvider, "llm-provider", "", "language model provider (openai, google, offline)")
	chatCmd.Flags().StringVar(&chatLLMModel, "llm-model", "", "provider-specific model name")
	chatCmd.Flags().StringVar(&chatCollection, "collection", "", "collection to search")
	rootCmd.AddCommand(chatCmd)
}

// runShell starts the Bubble Tea program. Swapped in tests.
var runShell = func(asker driving.AskService) error {
	program := tea.NewProgram(tui.New(asker), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func runChat(cmd *cobra.Command, _ []string) error {
	overrides := file.Overrides{
		EmbeddingProvider: chatEmbeddingProvider,
		LLMProvider:       chatLLMProvider,
		LLMModel:          chatLLMModel,
		TopK:              chatTopK,
		Collection:        chatCollection,
	}

	pipe, err := newPipeline(cmd.Context(), overrides, true)
	if err != nil {
		return err
	}
	defer pipe.Close()

	retriever := services.NewRetrieverService(pipe.embedder, pipe.store, pipe.collection)
	asker := services.NewAskerService(retriever, pipe.generator, pipe.topK, driven.GenerateOptions{})

	if err := runShell(asker); err != nil {
		return fmt.Errorf("chat shell failed: %w", err)
	}
	return nil
}
