package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command.
var deleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete transactions by ID",
	Long: `Delete one or more transactions by ID. IDs are shown by "kaikei list".

Example:
  kaikei delete 0b6d8c1e-4f0a-4a57-9d1e-2f3c4b5a6d7e`,
	Args: cobra.MinimumNArgs(1),
	Run:  runDelete,
}

func runDelete(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	b, _, closeStore := openBook(cfg)
	defer closeStore()

	for _, id := range args {
		err := b.Delete(context.Background(), id)
		exitOnError(err, "failed to delete transaction")
		fmt.Printf("Deleted %s\n", id)
	}
}
