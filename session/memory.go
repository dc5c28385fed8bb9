package session

import (
	"sync"

	"github.com/nhnasim333/smart-task-manager/types"
)

// MemoryStore is an ephemeral in-memory Storage implementation for tests
// and short-lived tooling.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ types.Storage = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get returns the value for key and whether it was present.
func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]

	return value, ok, nil
}

// Set stores the value for key, replacing any previous value.
func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value

	return nil
}

// Remove deletes the value for key.
func (s *MemoryStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)

	return nil
}
