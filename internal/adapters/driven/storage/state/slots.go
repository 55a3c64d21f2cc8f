package state

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/teabag-labs/teabag-snap/internal/core/ports/driven"
)

// Slots reads and writes named slots of a StateStore.
type Slots struct {
	store driven.StateStore
}

// NewSlots creates slot access over store.
func NewSlots(store driven.StateStore) *Slots {
	return &Slots{store: store}
}

// Get decodes slot key into v.
// Returns false if the state is empty or the slot is unset.
func (s *Slots) Get(ctx context.Context, key string, v any) (bool, error) {
	state, err := s.store.Get(ctx)
	if err != nil {
		return false, fmt.Errorf("reading state: %w", err)
	}
	if state == nil {
		return false, nil
	}

	raw, ok := state[key]
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return false, nil
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("unmarshalling slot %s: %w", key, err)
	}
	return true, nil
}

// Set writes v into slot key. A nil v removes the slot.
func (s *Slots) Set(ctx context.Context, key string, v any) error {
	var raw json.RawMessage
	if v != nil {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshalling slot %s: %w", key, err)
		}
		raw = data
	}
	return s.setRaw(ctx, key, raw)
}

// Clear removes slot key, keeping all other slots.
func (s *Slots) Clear(ctx context.Context, key string) error {
	return s.setRaw(ctx, key, nil)
}

// ClearAll erases the whole state.
func (s *Slots) ClearAll(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing state: %w", err)
	}
	return nil
}

func (s *Slots) setRaw(ctx context.Context, key string, raw json.RawMessage) error {
	state, err := s.store.Get(ctx)
	if err != nil {
		return fmt.Errorf("reading state: %w", err)
	}
	if state == nil {
		state = make(map[string]json.RawMessage)
	}

	if raw == nil || string(raw) == "null" {
		delete(state, key)
	} else {
		state[key] = raw
	}

	if err := s.store.Update(ctx, state); err != nil {
		return fmt.Errorf("updating state: %w", err)
	}
	return nil
}
