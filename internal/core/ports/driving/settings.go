package driving

import "github.com/teabag-labs/teabag-snap/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get resolves current application settings.
	// Missing required settings return domain.ErrMissingConfig.
	Get() (*domain.AppSettings, error)

	// Set persists a single setting to the config file.
	Set(key, value string) error

	// Keys returns the recognised setting keys.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
