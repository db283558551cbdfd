package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docvault-cli/internal/core/domain"
)

var (
	searchTopK       int
	searchJSON       bool
	searchCollection string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed documents",
	Long: `Embeds the query and prints the stored chunks ranked by cosine
similarity, without involving the language model.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", 3, "number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringVar(&searchCollection, "collection", "", "restrict search to one collection")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := ensureSearch(); err != nil {
		return err
	}

	results, err := searchService.Search(cmd.Context(), args[0], domain.SearchOptions{
		TopK:       searchTopK,
		Collection: searchCollection,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, result := range results {
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, result.Collection, result.Score)
		cmd.Printf("      %s\n", result.Content)
		cmd.Println()
	}
	return nil
}
