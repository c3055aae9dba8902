package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/Morisan51/chonaikai-kaikei/pkg/book"
	"github.com/Morisan51/chonaikai-kaikei/pkg/report"
)

var listMonth string

// listCmd represents the list command.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions, newest first",
	Long: `List recorded transactions, newest first.

Example:
  kaikei list
  kaikei list --month 2025-04`,
	Run: runList,
}

func init() {
	listCmd.Flags().StringVar(&listMonth, "month", report.AllMonths, "Month to list (YYYY-MM or all)")
}

func runList(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	b, _, closeStore := openBook(cfg)
	defer closeStore()

	snap := mustLoad(b)
	err := printTransactions(os.Stdout, report.SelectMonth(snap.Transactions, listMonth))
	exitOnError(err, "failed to print transactions")
}

// mustLoad loads a snapshot and exits if the store could not be read.
func mustLoad(b *book.Book) book.Snapshot {
	snap := b.Load(context.Background())
	if snap.State == book.LoadFailed {
		exitOnError(snap.Err, "failed to load transactions")
	}
	return snap
}
