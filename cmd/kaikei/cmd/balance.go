package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// balanceCmd represents the balance command.
var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show income, expense and net totals",
	Run:   runBalance,
}

func runBalance(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	b, _, closeStore := openBook(cfg)
	defer closeStore()

	snap := mustLoad(b)
	exitOnError(printBalance(os.Stdout, snap.Balance), "failed to print balance")
}
