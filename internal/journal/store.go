// Package journal holds the in-memory sales journal and keeps it synchronized
// with a persistent store.
package journal

import (
	"context"
	"slices"
	"sync"

	"posjournal/internal/core"
	"posjournal/internal/kv"
	"posjournal/internal/log"
)

// Store is the ordered transaction collection, newest first.
//
// Every mutation rewrites the whole collection to the backend. The mutation
// and its write-through run under one lock, so concurrent callers cannot
// lose each other's updates.
type Store struct {
	mu      sync.Mutex
	backend kv.Backend
	key     string
	logger  *log.Logger
	items   []core.Transaction
	version uint64
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the storage key (default kv.TransactionsKey).
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithLogger sets the logger used for persistence failures.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) { s.logger = logger.WithComponent(log.ComponentJournal) }
}

// Open loads the collection from backend. It never fails: an empty,
// unreadable or corrupt payload starts an empty journal.
func Open(ctx context.Context, backend kv.Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		key:     kv.TransactionsKey,
		logger:  log.FromContext(ctx).WithComponent(log.ComponentJournal),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.items = loadSequence[core.Transaction](ctx, backend, s.key, s.logger)
	s.logger.DebugContext(ctx, "Journal loaded", log.FieldCount, len(s.items))
	return s
}

// Add inserts tx at the front of the collection and persists.
func (s *Store) Add(ctx context.Context, tx core.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = slices.Insert(s.items, 0, tx)
	s.version++
	s.persistLocked(ctx)

	s.logger.InfoContext(ctx, "Transaction added",
		log.NewFields().WithOperation(log.OpCreate).
			WithTransaction(tx.ID, tx.ProductName, tx.CategoryOrDefault(), tx.Total.String()).ToSlice()...)
}

// Remove deletes the transaction with the given id. It reports whether a
// transaction was removed; an unknown id is a no-op and writes nothing.
func (s *Store) Remove(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.items, func(tx core.Transaction) bool { return tx.ID == id })
	if i < 0 {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	s.version++
	s.persistLocked(ctx)

	s.logger.InfoContext(ctx, "Transaction removed", log.FieldOperation, log.OpDelete, log.FieldTransaction, id)
	return true
}

// All returns a copy of the collection, newest first.
func (s *Store) All() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Snapshot returns a copy of the collection together with the version it
// was taken at.
func (s *Store) Snapshot() ([]core.Transaction, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items), s.version
}

// Version increases on every mutation. It starts at 0 after Open.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

func (s *Store) persistLocked(ctx context.Context) {
	saveSequence(ctx, s.backend, s.key, s.items, s.logger)
}
