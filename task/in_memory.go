package task

import (
	"sync"

	"github.com/hupe1980/a2acal/core"
)

// InMemoryStore is a volatile TaskStore implementation keeping tasks in a
// process local map keyed by context id. It is safe for concurrent access.
// Each returned task is cloned to prevent external mutation of internal
// state. Tasks are never removed; the store exposes no delete operation.
type InMemoryStore struct {
	mu    sync.RWMutex
	tasks map[string]*core.Task
}

// NewInMemoryStore constructs an empty in-memory task store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{tasks: make(map[string]*core.Task)}
}

// Get returns a clone of the task for the context id, or core.ErrTaskNotFound.
func (s *InMemoryStore) Get(contextID string) (*core.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[contextID]
	if !ok {
		return nil, core.ErrTaskNotFound
	}
	return t.Clone(), nil
}

// Save stores a clone of the provided task snapshot.
func (s *InMemoryStore) Save(task *core.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.ContextID] = task.Clone()
	return nil
}
