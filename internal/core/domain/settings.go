package domain

import (
	"strings"
	"time"
)

const unknownDescription = "Unknown"

// Environment is the deployment stage the snap runs in.
type Environment string

// Available environments.
const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentStaging     Environment = "staging"
	EnvironmentProduction  Environment = "production"
)

// IsValid returns true if the environment is recognised.
func (e Environment) IsValid() bool {
	switch e {
	case EnvironmentDevelopment, EnvironmentStaging, EnvironmentProduction:
		return true
	default:
		return false
	}
}

// IsProduction returns true for the production environment.
func (e Environment) IsProduction() bool {
	return e == EnvironmentProduction
}

// IsDevelopment returns true for the development environment.
func (e Environment) IsDevelopment() bool {
	return e == EnvironmentDevelopment
}

// String returns the string representation.
func (e Environment) String() string {
	return string(e)
}

// Description returns a human-readable description of the environment.
func (e Environment) Description() string {
	switch e {
	case EnvironmentDevelopment:
		return "Development (verbose logging)"
	case EnvironmentStaging:
		return "Staging"
	case EnvironmentProduction:
		return "Production (logging disabled)"
	default:
		return unknownDescription
	}
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Environment selects logging behaviour.
	Environment Environment

	// APIURL is the base URL of the label service.
	APIURL string

	// SnapHome is the page where users connect their account.
	SnapHome string

	// HTTPTimeout bounds a single GraphQL round trip.
	HTTPTimeout time.Duration

	// RateLimit caps outbound requests per second. Zero disables the cap.
	RateLimit float64

	// DataDir holds the persisted snap state. Empty means ~/.teabag/data.
	DataDir string

	// Verbose forces debug logging regardless of Environment.
	Verbose bool
}

// GraphQLEndpoint returns the URL of the GraphQL endpoint.
func (s AppSettings) GraphQLEndpoint() string {
	return strings.TrimRight(s.APIURL, "/") + "/graphql"
}

// LoggingEnabled returns true if log output should be written.
func (s AppSettings) LoggingEnabled() bool {
	return s.Verbose || !s.Environment.IsProduction()
}

// DefaultAppSettings returns settings with sensible defaults.
// APIURL, SnapHome and Environment have no default and must be configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		HTTPTimeout: 30 * time.Second,
		RateLimit:   0,
	}
}

// AllEnvironments returns all available environments.
func AllEnvironments() []Environment {
	return []Environment{
		EnvironmentDevelopment,
		EnvironmentStaging,
		EnvironmentProduction,
	}
}
