// Package boltstore provides a bbolt-backed record store for ledger transactions.
package boltstore

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/Morisan51/chonaikai-kaikei/pkg/ledger"
	"github.com/Morisan51/chonaikai-kaikei/pkg/store"
)

// Bucket names.
const (
	// BucketTransactions maps an insertion sequence to a JSON-encoded transaction.
	BucketTransactions = "transactions"

	// BucketIDs maps a transaction ID to its insertion sequence.
	BucketIDs = "transaction_ids"
)

// Store represents the bbolt database wrapper.
// It implements store.Store.
type Store struct {
	db *bolt.DB
}

// New creates a new Store instance and initializes buckets.
func New(dbPath string) (*Store, error) {
	db, err := bolt.Open(dbPath, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range []string{BucketTransactions, BucketIDs} {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert stores a new transaction.
// It returns store.ErrDuplicateID if a record with the same ID exists.
func (s *Store) Insert(ctx context.Context, t ledger.Transaction) error {
	if err := ctx.Err(); err != nil {
		return store.Wrap(store.OpInsert, err)
	}

	data, err := json.Marshal(t)
	if err != nil {
		return store.Wrap(store.OpInsert, fmt.Errorf("failed to marshal transaction: %w", err))
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		ids := tx.Bucket([]byte(BucketIDs))
		if ids.Get([]byte(t.ID)) != nil {
			return store.ErrDuplicateID
		}

		b := tx.Bucket([]byte(BucketTransactions))
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		key := itob(seq)

		if err := b.Put(key, data); err != nil {
			return err
		}
		return ids.Put([]byte(t.ID), key)
	})
	if err == store.ErrDuplicateID {
		return err
	}
	return store.Wrap(store.OpInsert, err)
}

// List returns all transactions, newest first.
// Transactions sharing a date are returned in insertion order.
func (s *Store) List(ctx context.Context) ([]ledger.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.Wrap(store.OpList, err)
	}

	txs := []ledger.Transaction{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(BucketTransactions)).ForEach(func(k, v []byte) error {
			var t ledger.Transaction
			if err := json.Unmarshal(v, &t); err != nil {
				return fmt.Errorf("failed to unmarshal transaction: %w", err)
			}
			txs = append(txs, t)
			return nil
		})
	})
	if err != nil {
		return nil, store.Wrap(store.OpList, err)
	}

	return ledger.SortNewestFirst(txs), nil
}

// DeleteByID removes a transaction.
// It returns store.ErrNotFound if no record has the given ID.
func (s *Store) DeleteByID(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return store.Wrap(store.OpDelete, err)
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		ids := tx.Bucket([]byte(BucketIDs))
		key := ids.Get([]byte(id))
		if key == nil {
			return store.ErrNotFound
		}

		// key is only valid for the life of the transaction.
		if err := tx.Bucket([]byte(BucketTransactions)).Delete(append([]byte(nil), key...)); err != nil {
			return err
		}
		return ids.Delete([]byte(id))
	})
	if err == store.ErrNotFound {
		return err
	}
	return store.Wrap(store.OpDelete, err)
}

// itob converts a sequence number to a byte slice for use as a bbolt key.
func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
