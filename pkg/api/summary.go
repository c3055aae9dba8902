package api

import (
	"net/http"

	"github.com/Morisan51/chonaikai-kaikei/pkg/aggregate"
	"github.com/Morisan51/chonaikai-kaikei/pkg/book"
	"github.com/Morisan51/chonaikai-kaikei/pkg/ledger"
)

// SummaryHandler serves the derived views of the ledger.
type SummaryHandler struct {
	book *book.Book
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(b *book.Book) *SummaryHandler {
	return &SummaryHandler{book: b}
}

// BalanceResponse represents the response from GET /api/1/balance.
type BalanceResponse struct {
	aggregate.Balance
	Negative bool `json:"negative"`
}

// CategoryBreakdownResponse represents the response from
// GET /api/1/summary/categories.
type CategoryBreakdownResponse struct {
	Type       ledger.Type                `json:"type"`
	NoData     bool                       `json:"no_data"`
	Categories []aggregate.CategoryAmount `json:"categories,omitempty"`
}

// Categories handles GET /api/1/categories.
func (h *SummaryHandler) Categories(w http.ResponseWriter, r *http.Request) {
	vocab := h.book.Factory().Vocabulary()

	writeJSON(w, http.StatusOK, map[string][]string{
		string(ledger.Income):  vocab.Categories(ledger.Income),
		string(ledger.Expense): vocab.Categories(ledger.Expense),
	})
}

// Balance handles GET /api/1/balance.
func (h *SummaryHandler) Balance(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.load(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, BalanceResponse{
		Balance:  snap.Balance,
		Negative: snap.Balance.IsNegative(),
	})
}

// Monthly handles GET /api/1/summary/monthly.
func (h *SummaryHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.load(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"months": snap.Monthly,
	})
}

// CategoryBreakdown handles GET /api/1/summary/categories?type=income|expense.
func (h *SummaryHandler) CategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	typ, err := ledger.ParseType(r.URL.Query().Get("type"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "type must be income or expense")
		return
	}

	snap, ok := h.load(w, r)
	if !ok {
		return
	}

	breakdown := snap.IncomeBreakdown
	if typ == ledger.Expense {
		breakdown = snap.ExpenseBreakdown
	}

	writeJSON(w, http.StatusOK, CategoryBreakdownResponse{
		Type:       typ,
		NoData:     breakdown.NoData(),
		Categories: breakdown.Rows,
	})
}

func (h *SummaryHandler) load(w http.ResponseWriter, r *http.Request) (book.Snapshot, bool) {
	snap := h.book.Load(r.Context())
	if snap.State == book.LoadFailed {
		writeStoreUnavailable(w, snap.Err)
		return snap, false
	}
	return snap, true
}
