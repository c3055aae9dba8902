// Package db provides the SQLite record store for ledger transactions.
package db

import "context"

// Schema defines the SQL statements to create database tables.
const Schema = `
-- Ledger transactions
-- Records are inserted once and deleted by id; they are never updated
CREATE TABLE IF NOT EXISTS transactions (
    id TEXT PRIMARY KEY,               -- opaque id assigned by the factory
    date TEXT NOT NULL,                -- YYYY-MM-DD
    type TEXT NOT NULL,                -- 'income' or 'expense'
    category TEXT NOT NULL,
    amount INTEGER NOT NULL,           -- Amount in JPY (integer)
    note TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_transactions_date
    ON transactions(date);
`

// InitializeSchema initializes the database schema.
// It creates all tables if they don't exist.
func InitializeSchema(conn *Connection) error {
	if _, err := conn.Exec(context.Background(), Schema); err != nil {
		return err
	}
	return nil
}
