package calendar

import (
	"context"
	"sync"
)

// InMemoryStore is a volatile Store holding the calendar in process memory.
// It is safe for concurrent access and best suited for tests or ephemeral
// demo setups. Loads and saves exchange clones so callers never share the
// internal slice.
type InMemoryStore struct {
	mu  sync.RWMutex
	cal Calendar
}

// NewInMemoryStore constructs an empty in-memory calendar store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Load returns a clone of the current calendar.
func (s *InMemoryStore) Load(_ context.Context) (Calendar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cal.Clone(), nil
}

// Save replaces the calendar with a clone of the provided snapshot.
func (s *InMemoryStore) Save(_ context.Context, cal Calendar) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cal = cal.Clone()
	return nil
}
