package driven

import (
	"context"

	"github.com/teabag-labs/teabag-snap/internal/core/domain"
)

// CredentialStore persists the single credential of the connected account.
type CredentialStore interface {
	// Get returns the stored credential.
	// Returns nil if no credential is stored.
	Get(ctx context.Context) (*domain.AuthData, error)

	// Set replaces the stored credential. A nil credential removes it.
	Set(ctx context.Context, auth *domain.AuthData) error

	// Clear removes the stored credential only.
	Clear(ctx context.Context) error

	// ClearAll erases all persisted state, not only the credential.
	ClearAll(ctx context.Context) error
}
