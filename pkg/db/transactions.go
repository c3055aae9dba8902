package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mattn/go-sqlite3"

	"github.com/Morisan51/chonaikai-kaikei/pkg/ledger"
	"github.com/Morisan51/chonaikai-kaikei/pkg/store"
)

// TransactionRepository stores ledger transactions in SQLite.
// It implements store.Store.
type TransactionRepository struct {
	conn *Connection
}

// NewTransactionRepository creates a new TransactionRepository instance.
func NewTransactionRepository(conn *Connection) *TransactionRepository {
	return &TransactionRepository{conn: conn}
}

// Insert stores a new transaction.
// It returns store.ErrDuplicateID if a record with the same ID exists.
func (r *TransactionRepository) Insert(ctx context.Context, tx ledger.Transaction) error {
	query := `
		INSERT INTO transactions (id, date, type, category, amount, note)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.conn.Exec(ctx, query,
		tx.ID,
		tx.Date,
		string(tx.Type),
		tx.Category,
		tx.Amount,
		tx.Note,
	)
	if isDuplicateID(err) {
		return store.ErrDuplicateID
	}
	if err != nil {
		return store.Wrap(store.OpInsert, fmt.Errorf("failed to insert transaction: %w", err))
	}

	slog.DebugContext(ctx, "transaction inserted", "id", tx.ID, "date", tx.Date, "amount", tx.Amount)
	return nil
}

// List returns all transactions, newest first.
// Transactions sharing a date are returned in insertion order.
func (r *TransactionRepository) List(ctx context.Context) ([]ledger.Transaction, error) {
	query := `
		SELECT id, date, type, category, amount, note
		FROM transactions
		ORDER BY date DESC, rowid ASC
	`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, store.Wrap(store.OpList, fmt.Errorf("failed to list transactions: %w", err))
	}
	defer rows.Close()

	txs := []ledger.Transaction{}
	for rows.Next() {
		var tx ledger.Transaction
		var typ string

		if err := rows.Scan(
			&tx.ID,
			&tx.Date,
			&typ,
			&tx.Category,
			&tx.Amount,
			&tx.Note,
		); err != nil {
			return nil, store.Wrap(store.OpList, fmt.Errorf("failed to scan transaction: %w", err))
		}

		tx.Type = ledger.Type(typ)
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Wrap(store.OpList, fmt.Errorf("failed to iterate transactions: %w", err))
	}

	return txs, nil
}

// DeleteByID deletes a transaction.
// It returns store.ErrNotFound if no record has the given ID.
func (r *TransactionRepository) DeleteByID(ctx context.Context, id string) error {
	query := `DELETE FROM transactions WHERE id = ?`

	result, err := r.conn.Exec(ctx, query, id)
	if err != nil {
		return store.Wrap(store.OpDelete, fmt.Errorf("failed to delete transaction: %w", err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return store.Wrap(store.OpDelete, fmt.Errorf("failed to get rows affected: %w", err))
	}
	if rows == 0 {
		return store.ErrNotFound
	}

	slog.DebugContext(ctx, "transaction deleted", "id", id)
	return nil
}

// Stats represents record store statistics.
type Stats struct {
	TotalIncome  int
	TotalExpense int
	LastRecorded sql.NullString
}

// GetStats retrieves record counts and the time of the latest insert.
func (r *TransactionRepository) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats

	err := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE type = 'income'`).Scan(&stats.TotalIncome)
	if err != nil {
		return nil, fmt.Errorf("failed to get income count: %w", err)
	}

	err = r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE type = 'expense'`).Scan(&stats.TotalExpense)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense count: %w", err)
	}

	err = r.conn.QueryRow(ctx, `SELECT MAX(created_at) FROM transactions`).Scan(&stats.LastRecorded)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get last recorded time: %w", err)
	}

	return &stats, nil
}

// isDuplicateID reports whether err is a primary key or unique violation.
// Other constraint failures, such as NOT NULL, are not id collisions.
func isDuplicateID(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
