package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/teabag-labs/teabag-snap/internal/core/domain"
	"github.com/teabag-labs/teabag-snap/internal/core/ports/driven"
	"github.com/teabag-labs/teabag-snap/internal/core/ports/driving"
	"github.com/teabag-labs/teabag-snap/internal/logger"
)

// Ensure AuthSessionService implements the interface.
var _ driving.AuthSession = (*AuthSessionService)(nil)

var authLog = logger.New("[authSession]")

// AuthSessionService hands out credentials, refreshing them shortly
// before they expire.
type AuthSessionService struct {
	store     driven.CredentialStore
	requester *requester
	opts      options

	// refreshes collapses concurrent refreshes of the same refresh token
	// into one mutation.
	refreshes singleflight.Group
}

// NewAuthSessionService creates a session over the credential store.
// Refresh mutations are sent through transport without a bearer token.
func NewAuthSessionService(
	store driven.CredentialStore,
	transport driven.GraphQLTransport,
	opts ...Option,
) *AuthSessionService {
	o := newOptions(opts)
	return &AuthSessionService{
		store: store,
		requester: &requester{
			transport: transport,
			store:     store,
			observer:  o.observer,
		},
		opts: o,
	}
}

// GetValidAuthData returns the stored credential, refreshed first if it
// expires within the refresh threshold. Returns nil when not connected.
func (s *AuthSessionService) GetValidAuthData(ctx context.Context) (*domain.AuthData, error) {
	auth, err := s.store.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get auth: %w", err)
	}
	if auth == nil {
		authLog.Debug("No auth data stored")
		return nil, nil
	}

	if !auth.HasExpiry() {
		return auth, nil
	}
	if _, err := auth.ExpiresAt(); err != nil {
		authLog.Warn("Ignoring expiry: %v", err)
		return auth, nil
	}
	if !auth.NeedsRefresh(s.opts.now(), s.opts.threshold) {
		return auth, nil
	}

	authLog.Info("Token for %s expires at %s, refreshing", auth.Email, auth.Expires)
	return s.RefreshAuth(ctx, auth.RefreshToken)
}

// RefreshAuth exchanges refreshToken for a new credential and stores it.
// Concurrent calls with the same refresh token share one request.
// Cancelling ctx returns early but leaves the shared request running.
func (s *AuthSessionService) RefreshAuth(ctx context.Context, refreshToken string) (*domain.AuthData, error) {
	// The flight outlives any one caller, so a caller that gives up does
	// not fail the others sharing it.
	flight := s.refreshes.DoChan(refreshToken, func() (any, error) {
		return s.refresh(context.WithoutCancel(ctx), refreshToken)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-flight:
		if res.Shared {
			authLog.Debug("Joined in-flight refresh")
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.AuthData), nil
	}
}

func (s *AuthSessionService) refresh(ctx context.Context, refreshToken string) (*domain.AuthData, error) {
	op := domain.Operation{
		OperationName: opRefreshAuth,
		Query:         refreshAuthMutation,
		Variables:     map[string]any{"refreshToken": refreshToken},
	}

	resp, err := s.requester.do(ctx, op, "")
	if err != nil {
		s.opts.observer.ObserveRefresh(err)
		return nil, err
	}

	var payload struct {
		RefreshAuth *domain.AuthData `json:"refreshAuth"`
	}
	if err := resp.Decode(&payload); err != nil {
		err = fmt.Errorf("%w: %w", domain.ErrRefreshFailed, err)
		s.opts.observer.ObserveRefresh(err)
		return nil, err
	}
	if payload.RefreshAuth == nil {
		s.opts.observer.ObserveRefresh(domain.ErrRefreshFailed)
		return nil, domain.ErrRefreshFailed
	}

	if err := s.store.Set(ctx, payload.RefreshAuth); err != nil {
		err = fmt.Errorf("store refreshed auth: %w", err)
		s.opts.observer.ObserveRefresh(err)
		return nil, err
	}

	s.opts.observer.ObserveRefresh(nil)
	authLog.Info("Refreshed token for %s", payload.RefreshAuth.Email)
	return payload.RefreshAuth, nil
}

// Logout erases all stored state.
func (s *AuthSessionService) Logout(ctx context.Context) error {
	if err := s.store.ClearAll(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	authLog.Info("Logged out")
	return nil
}
