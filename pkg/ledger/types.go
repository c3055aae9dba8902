// Package ledger provides the transaction model, the category vocabulary and
// the factory that turns raw input into well-formed transaction records.
package ledger

import (
	"errors"
	"sort"
	"strings"
)

// Type is the kind of a transaction.
type Type string

const (
	Income  Type = "income"
	Expense Type = "expense"
)

// ErrValidation is returned by the Factory when any input field is missing
// or invalid. It intentionally carries no per-field detail.
var ErrValidation = errors.New("入力内容に不備があります（日付・カテゴリ・金額を確認してください）")

// Transaction represents a single income or expense record.
type Transaction struct {
	ID       string `json:"id"`
	Date     string `json:"date"` // YYYY-MM-DD
	Type     Type   `json:"type"`
	Category string `json:"category"`
	Amount   int64  `json:"amount"` // JPY (integer)
	Note     string `json:"note"`
}

// Valid reports whether t is a known transaction type.
func (t Type) Valid() bool {
	return t == Income || t == Expense
}

// Label returns the display label used in lists and reports.
// Unknown types are returned as-is.
func (t Type) Label() string {
	switch t {
	case Income:
		return "収入"
	case Expense:
		return "支出"
	}
	return string(t)
}

// ParseType parses a transaction type from its wire value or display label.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "収入":
		return Income, nil
	case "expense", "支出":
		return Expense, nil
	}
	return "", ErrValidation
}

// Validate checks a complete record, including its ID.
// It applies the same rules as Factory.Create.
func (tx Transaction) Validate() error {
	if tx.ID == "" || strings.TrimSpace(tx.Date) == "" || strings.TrimSpace(tx.Category) == "" {
		return ErrValidation
	}
	if tx.Amount <= 0 || !tx.Type.Valid() {
		return ErrValidation
	}
	return nil
}

// MonthKey returns the YYYY-MM bucket of the transaction date.
func (tx Transaction) MonthKey() string {
	return MonthKey(tx.Date)
}

// MonthKey returns the first 7 characters of an ISO date (YYYY-MM).
// Shorter strings are returned unchanged.
func MonthKey(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}

// SortNewestFirst returns a copy of txs ordered by date descending.
// Records sharing a date keep their input order.
func SortNewestFirst(txs []Transaction) []Transaction {
	sorted := make([]Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})
	return sorted
}

// SortOldestFirst returns a copy of txs ordered by date ascending.
// Records sharing a date keep their input order.
func SortOldestFirst(txs []Transaction) []Transaction {
	sorted := make([]Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})
	return sorted
}
