package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/askdoc-ai/askdoc/internal/adapters/driven/config/file"
	"github.com/askdoc-ai/askdoc/internal/core/ports/driven"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage persistent defaults",
	Long: `View and change the defaults stored in the config file.

Keys use dot notation, for example:
  embedding.provider, embedding.model, llm.provider, llm.model,
  chunking.size, chunking.overlap, retrieval.top_k,
  store.backend, store.url, store.collection

Flags and environment variables always override stored values.`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a stored value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Store a value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// newConfigStore opens the config store for the config command family.
// Swapped in tests.
var newConfigStore = func() (driven.ConfigStore, error) {
	return file.NewConfigStore("")
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	store, err := newConfigStore()
	if err != nil {
		return err
	}

	value, ok := store.Get(args[0])
	if !ok {
		return fmt.Errorf("key %q is not set", args[0])
	}
	cmd.Printf("%v\n", value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	store, err := newConfigStore()
	if err != nil {
		return err
	}

	key, raw := args[0], args[1]

	// Numeric values are stored as integers so keys like chunking.size
	// read back through GetInt.
	var value any = raw
	if n, err := strconv.Atoi(raw); err == nil {
		value = n
	}

	if err := store.Set(key, value); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	cmd.Printf("Set %s = %v\n", key, value)
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	store, err := newConfigStore()
	if err != nil {
		return err
	}

	cmd.Println(store.Path())
	return nil
}
