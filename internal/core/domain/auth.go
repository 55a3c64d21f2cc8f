package domain

import (
	"fmt"
	"time"
)

// AuthRefreshThreshold is how close to expiry a token may get before it
// must be refreshed instead of used.
const AuthRefreshThreshold = 10 * time.Minute

// AuthData is the credential of the connected account.
// At most one AuthData is persisted at a time; writing it replaces the
// previous one as a whole.
type AuthData struct {
	// ID is the account identifier issued by the label service.
	ID int64 `json:"id"`
	// Email is the display identifier of the connected account.
	Email string `json:"email"`
	// Token is the short-lived bearer credential.
	Token string `json:"token"`
	// RefreshToken is used solely to obtain a new Token.
	RefreshToken string `json:"refreshToken"`
	// Expires is the ISO-8601 expiry timestamp of Token.
	// Empty means the token is treated as non-expiring.
	Expires string `json:"expires,omitempty"`
}

// HasExpiry returns true if the credential carries an expiry timestamp.
func (a *AuthData) HasExpiry() bool {
	return a.Expires != ""
}

// expiryLayouts are the ISO-8601 forms accepted for Expires. Fractional
// seconds are accepted after any seconds field. Date-times without an
// offset are local time and date-only forms are UTC, as in ECMAScript.
var expiryLayouts = []struct {
	layout string
	local  bool
}{
	{layout: "2006-01-02T15:04:05Z07:00"},
	{layout: "2006-01-02T15:04:05Z0700"},
	{layout: "2006-01-02T15:04Z07:00"},
	{layout: "2006-01-02T15:04Z0700"},
	{layout: "2006-01-02T15:04:05", local: true},
	{layout: "2006-01-02T15:04", local: true},
	{layout: "2006-01-02"},
	{layout: "2006-01"},
	{layout: "2006"},
}

// ExpiresAt parses the expiry timestamp.
func (a *AuthData) ExpiresAt() (time.Time, error) {
	for _, l := range expiryLayouts {
		loc := time.UTC
		if l.local {
			loc = time.Local
		}
		if t, err := time.ParseInLocation(l.layout, a.Expires, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse expires %q: not an ISO-8601 timestamp", a.Expires)
}

// NeedsRefresh returns true if the token expires at or before now+threshold.
// Credentials without an expiry, or with an expiry that cannot be parsed,
// never need a refresh.
func (a *AuthData) NeedsRefresh(now time.Time, threshold time.Duration) bool {
	if !a.HasExpiry() {
		return false
	}
	expiresAt, err := a.ExpiresAt()
	if err != nil {
		return false
	}
	return !expiresAt.After(now.Add(threshold))
}

// BearerToken returns the token if one is set.
func (a *AuthData) BearerToken() string {
	if a == nil {
		return ""
	}
	return a.Token
}
