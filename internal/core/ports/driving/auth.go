package driving

import (
	"context"

	"github.com/teabag-labs/teabag-snap/internal/core/domain"
)

// AuthSession hands out credentials fresh enough for the next request.
type AuthSession interface {
	// GetValidAuthData returns the stored credential, refreshing it first
	// when it expires within domain.AuthRefreshThreshold.
	// Returns nil if no credential is stored.
	GetValidAuthData(ctx context.Context) (*domain.AuthData, error)

	// RefreshAuth exchanges refreshToken for a new credential and stores it.
	RefreshAuth(ctx context.Context, refreshToken string) (*domain.AuthData, error)

	// Logout erases all stored state, not only the credential.
	Logout(ctx context.Context) error
}
