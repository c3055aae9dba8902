// Package api exposes the ledger over JSON/HTTP for the browser client and
// for the remote record store.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Morisan51/chonaikai-kaikei/pkg/book"
)

// RouterConfig configures NewRouter.
type RouterConfig struct {
	// AllowedOrigins lists the CORS origins. Empty allows any origin.
	AllowedOrigins []string

	// RequestLogging enables chi's request logger.
	RequestLogging bool
}

// NewRouter builds the HTTP handler for the ledger API.
func NewRouter(b *book.Book, config RouterConfig) http.Handler {
	transactionsHandler := NewTransactionsHandler(b)
	summaryHandler := NewSummaryHandler(b)
	exportHandler := NewExportHandler(b)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if config.RequestLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(CORSMiddleware(config.AllowedOrigins))

	r.Route("/api/1", func(r chi.Router) {
		r.Get("/categories", summaryHandler.Categories)

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", transactionsHandler.List)
			r.Post("/", transactionsHandler.Create)
			r.Put("/{id}", transactionsHandler.Put)
			r.Delete("/{id}", transactionsHandler.Delete)
		})

		r.Get("/balance", summaryHandler.Balance)
		r.Get("/summary/monthly", summaryHandler.Monthly)
		r.Get("/summary/categories", summaryHandler.CategoryBreakdown)

		r.Get("/export", exportHandler.Export)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
