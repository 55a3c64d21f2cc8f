package services

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/teabag-labs/teabag-snap/internal/core/domain"
	"github.com/teabag-labs/teabag-snap/internal/core/ports/driven"
	"github.com/teabag-labs/teabag-snap/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyEnvironment = "node_env"
	KeyAPIURL      = "api_url"
	KeySnapHome    = "snap_home"
	KeyHTTPTimeout = "http_timeout"
	KeyRateLimit   = "rate_limit"
	KeyDataDir     = "data_dir"
	KeyVerbose     = "verbose"
)

type settingKind int

const (
	kindString settingKind = iota
	kindNumber
	kindBoolean
)

// setting maps a config key to the environment variable that overrides it.
type setting struct {
	key      string
	env      string
	kind     settingKind
	required bool
}

var settingTable = []setting{
	{key: KeyEnvironment, env: "NODE_ENV", kind: kindString, required: true},
	{key: KeyAPIURL, env: "API_URL", kind: kindString, required: true},
	{key: KeySnapHome, env: "SNAP_HOME", kind: kindString, required: true},
	{key: KeyHTTPTimeout, env: "TEABAG_HTTP_TIMEOUT", kind: kindNumber},
	{key: KeyRateLimit, env: "TEABAG_RATE_LIMIT", kind: kindNumber},
	{key: KeyDataDir, env: "TEABAG_DATA_DIR", kind: kindString},
	{key: KeyVerbose, env: "TEABAG_VERBOSE", kind: kindBoolean},
}

// SettingsService resolves settings from the environment, then the
// config file, then defaults.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service.
// A nil lookupEnv reads the process environment.
func NewSettingsService(configStore driven.ConfigStore, lookupEnv func(string) (string, bool)) *SettingsService {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   lookupEnv,
	}
}

// Get resolves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := domain.DefaultAppSettings()

	env, err := s.resolveString(settingFor(KeyEnvironment), "")
	if err != nil {
		return nil, err
	}
	settings.Environment = domain.Environment(env)
	if !settings.Environment.IsValid() {
		return nil, fmt.Errorf("%w: NODE_ENV %q is not one of development, staging or production",
			domain.ErrInvalidConfig, env)
	}

	if settings.APIURL, err = s.resolveString(settingFor(KeyAPIURL), ""); err != nil {
		return nil, err
	}
	if settings.SnapHome, err = s.resolveString(settingFor(KeySnapHome), ""); err != nil {
		return nil, err
	}
	if settings.DataDir, err = s.resolveString(settingFor(KeyDataDir), settings.DataDir); err != nil {
		return nil, err
	}

	timeout, err := s.resolveNumber(settingFor(KeyHTTPTimeout), settings.HTTPTimeout.Seconds())
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("%w: TEABAG_HTTP_TIMEOUT must be positive", domain.ErrInvalidConfig)
	}
	settings.HTTPTimeout = time.Duration(timeout * float64(time.Second))

	if settings.RateLimit, err = s.resolveNumber(settingFor(KeyRateLimit), settings.RateLimit); err != nil {
		return nil, err
	}
	if settings.RateLimit < 0 {
		return nil, fmt.Errorf("%w: TEABAG_RATE_LIMIT must not be negative", domain.ErrInvalidConfig)
	}

	if settings.Verbose, err = s.resolveBoolean(settingFor(KeyVerbose), settings.Verbose); err != nil {
		return nil, err
	}

	return &settings, nil
}

// Set converts value to the setting's type and persists it.
func (s *SettingsService) Set(key, value string) error {
	st, ok := lookupSetting(key)
	if !ok {
		return fmt.Errorf("%w: unknown setting %q (valid: %s)",
			domain.ErrInvalidInput, key, strings.Join(s.Keys(), ", "))
	}

	var converted any
	switch st.kind {
	case kindNumber:
		n, err := parseNumber(st.env, value)
		if err != nil {
			return err
		}
		converted = n
	case kindBoolean:
		b, err := parseBoolean(st.env, value)
		if err != nil {
			return err
		}
		converted = b
	default:
		if key == KeyEnvironment && !domain.Environment(value).IsValid() {
			return fmt.Errorf("%w: invalid environment %q", domain.ErrInvalidInput, value)
		}
		converted = value
	}

	if err := s.configStore.Set(key, converted); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

// Keys returns the recognised setting keys.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingTable))
	for i, st := range settingTable {
		keys[i] = st.key
	}
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// EnvVar returns the environment variable that overrides key.
func EnvVar(key string) string {
	st, _ := lookupSetting(key)
	return st.env
}

func (s *SettingsService) resolveString(st setting, defaultVal string) (string, error) {
	if v, ok := s.lookupEnv(st.env); ok && v != "" {
		return v, nil
	}
	if v := s.configStore.GetString(st.key); v != "" {
		return v, nil
	}
	if st.required && defaultVal == "" {
		return "", fmt.Errorf("%w: Missing required env var %s", domain.ErrMissingConfig, st.env)
	}
	return defaultVal, nil
}

func (s *SettingsService) resolveNumber(st setting, defaultVal float64) (float64, error) {
	if v, ok := s.lookupEnv(st.env); ok && v != "" {
		return parseNumber(st.env, v)
	}
	val, ok := s.configStore.Get(st.key)
	if !ok {
		return defaultVal, nil
	}
	if str, isStr := val.(string); isStr {
		return parseNumber(st.env, str)
	}
	return s.configStore.GetFloat(st.key), nil
}

func (s *SettingsService) resolveBoolean(st setting, defaultVal bool) (bool, error) {
	if v, ok := s.lookupEnv(st.env); ok && v != "" {
		return parseBoolean(st.env, v)
	}
	val, ok := s.configStore.Get(st.key)
	if !ok {
		return defaultVal, nil
	}
	if str, isStr := val.(string); isStr {
		return parseBoolean(st.env, str)
	}
	return s.configStore.GetBool(st.key), nil
}

func lookupSetting(key string) (setting, bool) {
	for _, st := range settingTable {
		if st.key == key {
			return st, true
		}
	}
	return setting{}, false
}

func settingFor(key string) setting {
	st, _ := lookupSetting(key)
	return st
}

func parseNumber(name, val string) (float64, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil || math.IsNaN(n) {
		return 0, fmt.Errorf("%w: Env var %s is not a number", domain.ErrInvalidConfig, name)
	}
	return n, nil
}

func parseBoolean(name, val string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("%w: Env var %s is not a boolean", domain.ErrInvalidConfig, name)
	}
}
