package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// summaryCmd represents the summary command.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show balance, monthly and per-category summaries",
	Long: `Show the balance, the monthly summary (newest month first) and the
per-category breakdown for income and expenses. Category bars are scaled to
the largest category; a negative net is marked with ▲.`,
	Run: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	b, _, closeStore := openBook(cfg)
	defer closeStore()

	snap := mustLoad(b)
	exitOnError(printSummary(os.Stdout, snap), "failed to print summary")
}
