package driven

import (
	"context"
	"encoding/json"
)

// StateStore is the host's persistence mechanism: a single JSON object
// keyed by logical slots. Every call is one round trip to the host.
type StateStore interface {
	// Get returns the whole persisted state.
	// Returns nil if nothing has been persisted.
	Get(ctx context.Context) (map[string]json.RawMessage, error)

	// Update replaces the whole persisted state.
	Update(ctx context.Context, state map[string]json.RawMessage) error

	// Clear erases all persisted state.
	Clear(ctx context.Context) error
}
