// Package cmd provides CLI commands for kaikei.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Morisan51/chonaikai-kaikei/pkg/config"
)

var (
	cfgFile string
	debug   bool
	backend string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "kaikei",
	Short: "Income and expense ledger for a neighborhood association",
	Long: `kaikei records the income and expenses of a neighborhood association
(町内会) and produces balances, monthly summaries and CSV reports.

It supports:
- Recording and deleting transactions
- Balance, monthly and per-category summaries
- CSV export for spreadsheet tools
- SQLite, bbolt, in-memory or remote (HTTP) record stores
- Serving the ledger as a JSON API for the browser client

Example:
  kaikei add --type income --category 町内会費 --amount 5000
  kaikei summary
  kaikei export --month 2025-04`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger(debug)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "record store: sqlite, bolt, remote or memory (overrides KAIKEI_BACKEND)")

	// Add subcommands
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
}

// setupLogger installs the CLI's text logger on stderr.
func setupLogger(debug bool) {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
}

// loadConfig loads the configuration and applies global flag overrides.
func loadConfig() *config.Config {
	cfg, err := config.Load(cfgFile)
	exitOnError(err, "failed to load configuration")

	if backend != "" {
		if !config.ValidBackend(backend) {
			exitOnError(fmt.Errorf("unknown backend %q", backend), "invalid --backend")
		}
		cfg.Store.Backend = backend
	}

	if cfg.Debug && !debug {
		setupLogger(true)
	}

	return cfg
}

// exitHooks release resources before the process exits on an error path,
// where deferred calls do not run.
var exitHooks []func()

// osExit is replaced in tests.
var osExit = os.Exit

// onExit registers fn to run before exit.
func onExit(fn func()) {
	exitHooks = append(exitHooks, fn)
}

// exit runs the exit hooks in reverse order and terminates the process.
func exit(code int) {
	for i := len(exitHooks) - 1; i >= 0; i-- {
		exitHooks[i]()
	}
	exitHooks = nil
	osExit(code)
}

// Helper function to handle errors and exit.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		exit(1)
	}
}
