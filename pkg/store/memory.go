package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/Morisan51/chonaikai-kaikei/pkg/ledger"
)

// Memory is an in-memory Store. Its contents are lost on exit.
type Memory struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]ledger.Transaction
}

// NewMemory creates a Memory store seeded with txs.
// It panics if two seed transactions share an ID.
func NewMemory(txs ...ledger.Transaction) *Memory {
	m := &Memory{byID: make(map[string]ledger.Transaction)}
	for _, tx := range txs {
		if err := m.Insert(context.Background(), tx); err != nil {
			panic(fmt.Sprintf("store: seeding transaction %q: %v", tx.ID, err))
		}
	}
	return m
}

// List implements Store.
func (m *Memory) List(ctx context.Context) ([]ledger.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, Wrap(OpList, err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	txs := make([]ledger.Transaction, 0, len(m.order))
	for _, id := range m.order {
		txs = append(txs, m.byID[id])
	}
	return ledger.SortNewestFirst(txs), nil
}

// Insert implements Store.
func (m *Memory) Insert(ctx context.Context, tx ledger.Transaction) error {
	if err := ctx.Err(); err != nil {
		return Wrap(OpInsert, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[tx.ID]; ok {
		return ErrDuplicateID
	}
	m.byID[tx.ID] = tx
	m.order = append(m.order, tx.ID)
	return nil
}

// DeleteByID implements Store.
func (m *Memory) DeleteByID(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return Wrap(OpDelete, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return ErrNotFound
	}
	delete(m.byID, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
