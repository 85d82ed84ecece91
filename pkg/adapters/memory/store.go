package memory

import (
	"context"
	"sync"

	"github.com/sjtrotter/dashbuddy/pkg/domain"
)

// Store implements ports.StateStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.State
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.State),
	}
}

// Save persists the state in memory.
func (s *Store) Save(ctx context.Context, slot string, state domain.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[slot] = state
	return nil
}

// Load retrieves the state from memory.
func (s *Store) Load(ctx context.Context, slot string) (domain.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.data[slot]
	if !ok {
		return domain.State{}, domain.ErrSessionNotFound
	}
	return state, nil
}

// Delete removes the state.
func (s *Store) Delete(ctx context.Context, slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, slot)
	return nil
}
