package memory

import (
	"context"
	"encoding/json"
	"maps"
	"sync"

	"github.com/teabag-labs/teabag-snap/internal/core/ports/driven"
)

// Ensure StateStore implements the interface.
var _ driven.StateStore = (*StateStore)(nil)

// StateStore is an in-memory implementation of driven.StateStore.
// It stands in for host storage in tests and one-shot commands.
type StateStore struct {
	mu    sync.RWMutex
	state map[string]json.RawMessage
}

// NewStateStore creates a new, empty in-memory state store.
func NewStateStore() *StateStore {
	return &StateStore{}
}

// Get returns a copy of the persisted state, or nil if nothing is persisted.
func (s *StateStore) Get(_ context.Context) (map[string]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil {
		return nil, nil
	}
	return maps.Clone(s.state), nil
}

// Update replaces the persisted state.
func (s *StateStore) Update(_ context.Context, state map[string]json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state == nil {
		state = map[string]json.RawMessage{}
	}
	s.state = maps.Clone(state)
	return nil
}

// Clear erases all persisted state.
func (s *StateStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = nil
	return nil
}
