package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Morisan51/chonaikai-kaikei/pkg/api"
)

var servePort string

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the ledger as a JSON API",
	Long: `Serve the ledger over HTTP for the browser client and for other kaikei
instances using the remote backend.

Example:
  kaikei serve --port 8080
  KAIKEI_BACKEND=bolt kaikei serve`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (overrides PORT)")
}

func runServe(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	// Setup structured JSON logging.
	logLevel := slog.LevelInfo
	if debug || cfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	b, _, closeStore := openBook(cfg)
	defer closeStore()

	port := cfg.Server.Port
	if servePort != "" {
		port = servePort
	}
	addr := fmt.Sprintf(":%s", port)

	server := &http.Server{
		Addr: addr,
		Handler: api.NewRouter(b, api.RouterConfig{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			RequestLogging: true,
		}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Graceful shutdown.
	go func() {
		<-ctx.Done()

		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("starting kaikei API", "addr", addr, "backend", cfg.Store.Backend)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		exitOnError(err, "server error")
	}

	slog.Info("server stopped")
}
