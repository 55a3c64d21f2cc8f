package state

import (
	"context"

	"github.com/teabag-labs/teabag-snap/internal/core/domain"
	"github.com/teabag-labs/teabag-snap/internal/core/ports/driven"
)

// AuthKey is the slot holding the connected account's credential.
const AuthKey = "auth"

// Ensure CredentialStore implements the interface.
var _ driven.CredentialStore = (*CredentialStore)(nil)

// CredentialStore keeps the credential in the "auth" slot of the host state.
type CredentialStore struct {
	slots *Slots
}

// NewCredentialStore creates a credential store over store.
func NewCredentialStore(store driven.StateStore) *CredentialStore {
	return &CredentialStore{slots: NewSlots(store)}
}

// Get returns the stored credential, or nil if none is stored.
func (s *CredentialStore) Get(ctx context.Context) (*domain.AuthData, error) {
	var auth domain.AuthData
	found, err := s.slots.Get(ctx, AuthKey, &auth)
	if err != nil || !found {
		return nil, err
	}
	return &auth, nil
}

// Set replaces the stored credential. A nil credential removes it.
func (s *CredentialStore) Set(ctx context.Context, auth *domain.AuthData) error {
	if auth == nil {
		return s.slots.Clear(ctx, AuthKey)
	}
	return s.slots.Set(ctx, AuthKey, auth)
}

// Clear removes the stored credential.
func (s *CredentialStore) Clear(ctx context.Context) error {
	return s.slots.Clear(ctx, AuthKey)
}

// ClearAll erases all persisted state, not only the credential.
func (s *CredentialStore) ClearAll(ctx context.Context) error {
	return s.slots.ClearAll(ctx)
}
