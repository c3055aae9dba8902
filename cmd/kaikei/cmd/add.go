package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Morisan51/chonaikai-kaikei/pkg/ledger"
)

var (
	addDate     string
	addType     string
	addCategory string
	addAmount   string
	addNote     string
)

// addCmd represents the add command.
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an income or expense transaction",
	Long: `Record a transaction in the ledger.

The amount accepts thousands separators, a leading ¥, a trailing 円 and
full-width digits. The type accepts income/expense or 収入/支出.

Example:
  kaikei add --type income --category 町内会費 --amount 5000 --note "4月分"
  kaikei add --date 2025-04-20 --type 支出 --category 行事費 --amount ¥12,000`,
	Run: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addDate, "date", "", "Transaction date (YYYY-MM-DD) (default today)")
	addCmd.Flags().StringVar(&addType, "type", "", "income or expense (required)")
	addCmd.Flags().StringVar(&addCategory, "category", "", "Category (required)")
	addCmd.Flags().StringVar(&addAmount, "amount", "", "Amount in yen (required)")
	addCmd.Flags().StringVar(&addNote, "note", "", "Free-form note")

	addCmd.MarkFlagRequired("type")
	addCmd.MarkFlagRequired("category")
	addCmd.MarkFlagRequired("amount")
}

func runAdd(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	b, _, closeStore := openBook(cfg)
	defer closeStore()

	if addDate == "" {
		addDate = time.Now().Format("2006-01-02")
	}

	tx, err := b.Record(context.Background(), ledger.Input{
		Date:     addDate,
		Type:     addType,
		Category: addCategory,
		Amount:   addAmount,
		Note:     addNote,
	})
	exitOnError(err, "failed to record transaction")

	fmt.Printf("Recorded %s %s %s %s (id: %s)\n", tx.Date, tx.Type.Label(), tx.Category, yen(tx.Amount), tx.ID)
}
