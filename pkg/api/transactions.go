package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Morisan51/chonaikai-kaikei/pkg/book"
	"github.com/Morisan51/chonaikai-kaikei/pkg/ledger"
	"github.com/Morisan51/chonaikai-kaikei/pkg/store"
)

// TransactionsHandler handles transaction-related API endpoints.
type TransactionsHandler struct {
	book *book.Book
}

// NewTransactionsHandler creates a new TransactionsHandler.
func NewTransactionsHandler(b *book.Book) *TransactionsHandler {
	return &TransactionsHandler{book: b}
}

// CreateTransactionRequest is the body of POST /api/1/transactions.
// Fields are passed to the factory as entered.
type CreateTransactionRequest struct {
	Date     string      `json:"date"`
	Type     string      `json:"type"`
	Category string      `json:"category"`
	Amount   amountField `json:"amount"`
	Note     string      `json:"note"`
}

// amountField accepts either a JSON number or a string as typed by the user.
type amountField string

func (a *amountField) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(data, []byte(`"`)) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = amountField(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	*a = amountField(data)
	return nil
}

// List handles GET /api/1/transactions.
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	snap := h.book.Load(r.Context())
	if snap.State == book.LoadFailed {
		writeStoreUnavailable(w, snap.Err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": snap.Transactions,
	})
}

// Create handles POST /api/1/transactions.
func (h *TransactionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	tx, err := h.book.Record(r.Context(), ledger.Input{
		Date:     req.Date,
		Type:     req.Type,
		Category: req.Category,
		Amount:   string(req.Amount),
		Note:     req.Note,
	})
	if errors.Is(err, ledger.ErrValidation) {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", ledger.ErrValidation.Error())
		return
	}
	if err != nil {
		writeStoreUnavailable(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"transaction": tx,
	})
}

// Put handles PUT /api/1/transactions/{id}.
// The body is a complete record; it is stored as given.
func (h *TransactionsHandler) Put(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var tx ledger.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}
	if tx.ID == "" {
		tx.ID = id
	}
	if tx.ID != id {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Transaction ID does not match path")
		return
	}

	err := h.book.Put(r.Context(), tx)
	switch {
	case err == nil:
	case errors.Is(err, ledger.ErrValidation):
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", ledger.ErrValidation.Error())
		return
	case errors.Is(err, store.ErrDuplicateID):
		writeJSONError(w, http.StatusConflict, "conflict", "Transaction already exists")
		return
	default:
		writeStoreUnavailable(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"transaction": tx,
	})
}

// Delete handles DELETE /api/1/transactions/{id}.
func (h *TransactionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.book.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeJSONError(w, http.StatusNotFound, "not_found", "Transaction not found")
		return
	}
	if err != nil {
		writeStoreUnavailable(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeStoreUnavailable reports a record store failure. A failed read is
// never answered with an empty list.
func writeStoreUnavailable(w http.ResponseWriter, err error) {
	slog.Error("record store failure", "error", err)
	writeJSONError(w, http.StatusBadGateway, "store_unavailable", "Record store is unavailable")
}
