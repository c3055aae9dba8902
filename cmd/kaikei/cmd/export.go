package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Morisan51/chonaikai-kaikei/pkg/report"
)

var (
	exportMonth  string
	exportLabel  string
	exportStdout bool
)

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export transactions as a CSV report",
	Long: `Export transactions as a UTF-8 CSV report (with BOM, for spreadsheet
tools). Rows are ordered oldest first and followed by income, expense and net
totals.

The file is written to the export directory (KAIKEI_EXPORT_DIR) and named
after the label, e.g. 町内会計_2025-04.csv.

Example:
  kaikei export --month 2025-04
  kaikei export --label 令和7年度
  kaikei export --month all --stdout > all.csv`,
	Run: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportMonth, "month", report.AllMonths, "Month to export (YYYY-MM or all)")
	exportCmd.Flags().StringVar(&exportLabel, "label", "", "Report label used in the file name (default derived from --month)")
	exportCmd.Flags().BoolVar(&exportStdout, "stdout", false, "Write the CSV to stdout instead of a file")
}

func runExport(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	b, _, closeStore := openBook(cfg)
	defer closeStore()

	doc, err := b.Export(context.Background(), exportMonth, exportLabel)
	if errors.Is(err, report.ErrEmptyInput) {
		fmt.Fprintln(os.Stderr, err)
		exit(1)
	}
	exitOnError(err, "failed to export transactions")

	if exportStdout {
		_, err := os.Stdout.Write(doc.Content)
		exitOnError(err, "failed to write CSV")
		return
	}

	path, err := report.NewFileWriter(newPathResolver(cfg)).Write(doc)
	exitOnError(err, "failed to write CSV")

	slog.Debug("CSV written", "path", path, "bytes", len(doc.Content))
	fmt.Println(path)
}
