package cli

import (
	"github.com/spf13/cobra"
)

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List indexed collections",
	Long:  `Lists the collections stored in the database, one per source document.`,
	Args:  cobra.NoArgs,
	RunE:  runCollections,
}

func init() {
	rootCmd.AddCommand(collectionsCmd)
}

func runCollections(cmd *cobra.Command, _ []string) error {
	if err := ensureStore(); err != nil {
		return err
	}

	names, err := docStore.ListCollections(cmd.Context())
	if err != nil {
		return err
	}

	if len(names) == 0 {
		cmd.Println("No collections. Run 'docvault index' first.")
		return nil
	}

	for _, name := range names {
		cmd.Println(name)
	}
	return nil
}
