// Package book ties the ledger together: it validates input through the
// factory, persists it through a store and derives balances, summaries and
// exports from what the store returns.
package book

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Morisan51/chonaikai-kaikei/pkg/aggregate"
	"github.com/Morisan51/chonaikai-kaikei/pkg/ledger"
	"github.com/Morisan51/chonaikai-kaikei/pkg/report"
	"github.com/Morisan51/chonaikai-kaikei/pkg/store"
)

// maxIDAttempts bounds how often Record draws a new ID after a collision.
const maxIDAttempts = 3

// LoadState describes the outcome of loading the transaction list.
type LoadState string

const (
	// LoadLoaded means the store returned at least one transaction.
	LoadLoaded LoadState = "loaded"

	// LoadEmpty means the store answered with no transactions.
	LoadEmpty LoadState = "empty"

	// LoadFailed means the store could not be read. The derived values are
	// zero and must not be shown as an empty ledger.
	LoadFailed LoadState = "failed"
)

// Snapshot is everything derived from one read of the store.
type Snapshot struct {
	State LoadState
	Err   error

	// Transactions are ordered newest first.
	Transactions     []ledger.Transaction
	Balance          aggregate.Balance
	Monthly          []aggregate.MonthlySummary
	IncomeBreakdown  aggregate.CategoryBreakdown
	ExpenseBreakdown aggregate.CategoryBreakdown
}

// Book is the ledger service.
type Book struct {
	store   store.Store
	factory *ledger.Factory
}

// New creates a Book on top of s, using f to build new records.
func New(s store.Store, f *ledger.Factory) *Book {
	return &Book{store: s, factory: f}
}

// Factory returns the factory used for new records.
func (b *Book) Factory() *ledger.Factory {
	return b.factory
}

// Record validates in, assigns an ID and stores the result.
// Nothing is stored when validation fails.
func (b *Book) Record(ctx context.Context, in ledger.Input) (ledger.Transaction, error) {
	for attempt := 1; ; attempt++ {
		tx, err := b.factory.Parse(in)
		if err != nil {
			return ledger.Transaction{}, err
		}

		err = b.store.Insert(ctx, tx)
		if err == nil {
			slog.InfoContext(ctx, "recorded transaction",
				"id", tx.ID,
				"date", tx.Date,
				"type", tx.Type,
				"category", tx.Category,
				"amount", tx.Amount,
			)
			return tx, nil
		}

		if !errors.Is(err, store.ErrDuplicateID) || attempt >= maxIDAttempts {
			return ledger.Transaction{}, fmt.Errorf("failed to record transaction: %w", err)
		}
		slog.WarnContext(ctx, "transaction id collision, retrying", "id", tx.ID, "attempt", attempt)
	}
}

// Put stores a complete record as given, keeping its ID.
func (b *Book) Put(ctx context.Context, tx ledger.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	if err := b.store.Insert(ctx, tx); err != nil {
		return fmt.Errorf("failed to store transaction: %w", err)
	}
	return nil
}

// Delete removes the transaction with the given ID.
func (b *Book) Delete(ctx context.Context, id string) error {
	if err := b.store.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", id, err)
	}
	slog.InfoContext(ctx, "deleted transaction", "id", id)
	return nil
}

// Load reads the store and derives every view from the same list.
// A read failure is reported through State and Err, not as an empty ledger.
func (b *Book) Load(ctx context.Context) Snapshot {
	txs, err := b.store.List(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load transactions", "error", err)
		return Snapshot{
			State:            LoadFailed,
			Err:              err,
			Transactions:     []ledger.Transaction{},
			Monthly:          []aggregate.MonthlySummary{},
			IncomeBreakdown:  aggregate.CategoryBreakdown{Type: ledger.Income},
			ExpenseBreakdown: aggregate.CategoryBreakdown{Type: ledger.Expense},
		}
	}

	return Derive(txs)
}

// Derive computes a snapshot from an already loaded list.
func Derive(txs []ledger.Transaction) Snapshot {
	state := LoadLoaded
	if len(txs) == 0 {
		state = LoadEmpty
	}

	return Snapshot{
		State:            state,
		Transactions:     ledger.SortNewestFirst(txs),
		Balance:          aggregate.ComputeBalance(txs),
		Monthly:          aggregate.ComputeMonthly(txs),
		IncomeBreakdown:  aggregate.ComputeCategoryBreakdown(txs, ledger.Income),
		ExpenseBreakdown: aggregate.ComputeCategoryBreakdown(txs, ledger.Expense),
	}
}

// Export renders the transactions of month (YYYY-MM, or report.AllMonths)
// as a CSV document. An empty label is derived from month.
// It returns report.ErrEmptyInput when the selection is empty.
func (b *Book) Export(ctx context.Context, month, label string) (*report.Document, error) {
	txs, err := b.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	if label == "" {
		label = report.LabelFor(month)
	}

	doc, err := report.ToCSV(report.SelectMonth(txs, month), label)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "exported transactions", "month", month, "file", doc.FileName)
	return doc, nil
}
