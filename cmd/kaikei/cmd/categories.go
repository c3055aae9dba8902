package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Morisan51/chonaikai-kaikei/pkg/ledger"
)

// categoriesCmd represents the categories command.
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the category vocabulary",
	Long: `List the categories offered for income and expenses.

The defaults can be replaced with a YAML file (KAIKEI_CATEGORIES_FILE):

  income:
    - 町内会費
  expense:
    - 行事費`,
	Run: runCategories,
}

func runCategories(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	vocab, err := loadVocabulary(cfg)
	exitOnError(err, "failed to load categories")

	for _, t := range []ledger.Type{ledger.Income, ledger.Expense} {
		fmt.Printf("%s: %s\n", t.Label(), strings.Join(vocab.Categories(t), ", "))
	}
}
