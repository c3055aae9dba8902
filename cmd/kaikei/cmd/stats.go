package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Morisan51/chonaikai-kaikei/pkg/config"
	"github.com/Morisan51/chonaikai-kaikei/pkg/db"
	"github.com/Morisan51/chonaikai-kaikei/pkg/ledger"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display record store statistics",
	Long: `Display statistics about the record store.

Shows:
- Total number of income records
- Total number of expense records
- Last recorded timestamp (SQLite backend only)

Example:
  kaikei stats`,
	Run: runStats,
}

func runStats(cmd *cobra.Command, args []string) {
	slog.Debug("Loading configuration")

	cfg := loadConfig()
	b, s, closeStore := openBook(cfg)
	defer closeStore()

	var stats db.Stats
	if repo, ok := s.(*db.TransactionRepository); ok {
		dbStats, err := repo.GetStats(context.Background())
		exitOnError(err, "failed to get statistics")
		stats = *dbStats
	} else {
		for _, tx := range mustLoad(b).Transactions {
			switch tx.Type {
			case ledger.Income:
				stats.TotalIncome++
			case ledger.Expense:
				stats.TotalExpense++
			}
		}
	}

	// Display statistics
	fmt.Println("\n=== Ledger Statistics ===")
	fmt.Printf("Backend:          %s\n", cfg.Store.Backend)
	switch cfg.Store.Backend {
	case config.BackendSQLite, config.BackendBolt:
		fmt.Printf("Data directory:   %s\n", newPathResolver(cfg).GetDataDir())
	case config.BackendRemote:
		fmt.Printf("API URL:          %s\n", cfg.Store.APIURL)
	}
	fmt.Printf("Income records:   %d\n", stats.TotalIncome)
	fmt.Printf("Expense records:  %d\n", stats.TotalExpense)

	if stats.LastRecorded.Valid {
		fmt.Printf("Last recorded:    %s\n", stats.LastRecorded.String)
	} else {
		fmt.Printf("Last recorded:    (unknown)\n")
	}

	fmt.Println()
}
