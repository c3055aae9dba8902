// Package store defines the record store contract used by the ledger and an
// in-memory implementation of it.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Morisan51/chonaikai-kaikei/pkg/ledger"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateID is returned when inserting a record whose ID already exists.
	ErrDuplicateID = errors.New("duplicate record ID")
)

// Operation names used in Error.
const (
	OpList   = "list"
	OpInsert = "insert"
	OpDelete = "delete"
)

// Store is a durable collection of transactions.
type Store interface {
	// List returns all transactions, newest first.
	List(ctx context.Context) ([]ledger.Transaction, error)

	// Insert stores a new transaction.
	Insert(ctx context.Context, tx ledger.Transaction) error

	// DeleteByID removes the transaction with the given ID.
	DeleteByID(ctx context.Context, id string) error
}

// Error reports a failed store operation.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap returns err as an *Error for op. Nil stays nil, and an error that is
// already an *Error is returned unchanged.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	return &Error{Op: op, Err: err}
}
