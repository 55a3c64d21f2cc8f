// Package auth exposes the stored credential as an oauth2.TokenSource.
package auth

import (
	"context"

	"golang.org/x/oauth2"

	"github.com/teabag-labs/teabag-snap/internal/core/domain"
)

// SessionProvider returns a credential that is valid for use now.
type SessionProvider interface {
	GetValidAuthData(ctx context.Context) (*domain.AuthData, error)
}

// TokenSourceAdapter adapts the auth session to oauth2.TokenSource, so
// any oauth2-aware HTTP client can call the label service as the
// connected account.
type TokenSourceAdapter struct {
	provider SessionProvider
	ctx      context.Context
}

// NewTokenSource creates an oauth2.TokenSource over provider. Each Token
// call goes through the session, which refreshes when needed.
func NewTokenSource(ctx context.Context, provider SessionProvider) oauth2.TokenSource {
	return &TokenSourceAdapter{
		provider: provider,
		ctx:      ctx,
	}
}

// Token implements oauth2.TokenSource.
func (t *TokenSourceAdapter) Token() (*oauth2.Token, error) {
	auth, err := t.provider.GetValidAuthData(t.ctx)
	if err != nil {
		return nil, err
	}
	if auth == nil || auth.Token == "" {
		return nil, domain.ErrNotAuthenticated
	}

	tok := &oauth2.Token{
		AccessToken:  auth.Token,
		TokenType:    "Bearer",
		RefreshToken: auth.RefreshToken,
	}
	if expiresAt, err := auth.ExpiresAt(); err == nil && auth.HasExpiry() {
		tok.Expiry = expiresAt
	}
	return tok, nil
}
