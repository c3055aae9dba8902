package remote

import (
	"fmt"

	"github.com/Morisan51/chonaikai-kaikei/pkg/ledger"
)

// TransactionsResponse represents the response from GET /api/1/transactions.
type TransactionsResponse struct {
	Transactions []ledger.Transaction `json:"transactions"`
}

// TransactionResponse represents a single transaction response.
type TransactionResponse struct {
	Transaction ledger.Transaction `json:"transaction"`
}

// ErrorResponse represents an error response from the ledger API.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// APIError is a non-success response that has no store-level meaning.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("ledger API error (status %d): %s - %s", e.StatusCode, e.Code, e.Description)
	}
	return fmt.Sprintf("ledger API error (status %d): %s", e.StatusCode, e.Code)
}
