// Package dataset holds the current extraction result set. The store is the
// single owner of the "current dataset": each processing batch replaces it
// wholesale, it is never merged incrementally.
package dataset

import (
	"sync"

	"invotab/internal/domain"
)

// Store is a mutex-guarded container for the current flat row set. Writers
// swap the whole slice; concurrent batches serialize on the lock so the last
// completed batch wins without partial-write visibility.
type Store struct {
	mu   sync.RWMutex
	rows []domain.FlatRow
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Replace discards the current rows and installs the given set.
func (s *Store) Replace(rows []domain.FlatRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = rows
}

// Rows returns a copy of the current row set in insertion order.
func (s *Store) Rows() []domain.FlatRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.FlatRow, len(s.rows))
	copy(out, s.rows)
	return out
}

// Len returns the current row count.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// Clear empties the store.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = nil
}
