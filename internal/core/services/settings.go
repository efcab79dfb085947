package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/tahnau/immich-smart-albums/internal/core/domain"
	"github.com/tahnau/immich-smart-albums/internal/core/ports/driven"
	"github.com/tahnau/immich-smart-albums/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyServerURL  = "server.url"
	keyAPIKey     = "server.api_key"
	keySmartLimit = "search.default_smart_limit"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	pinger      driven.Pinger
}

// NewSettingsService creates a new settings service. The pinger is
// optional; without one, Validate only checks that the connection is
// configured.
func NewSettingsService(configStore driven.ConfigStore, pinger driven.Pinger) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		pinger:      pinger,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (domain.Settings, error) {
	defaults := domain.DefaultSettings()

	return domain.Settings{
		ServerURL:  s.configStore.GetString(keyServerURL),
		APIKey:     s.configStore.GetString(keyAPIKey),
		SmartLimit: s.getInt(keySmartLimit, defaults.SmartLimit),
	}, nil
}

// SetServerURL updates the Immich server URL. The URL is normalised
// without a trailing slash so path joins stay predictable.
func (s *SettingsService) SetServerURL(raw string) error {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if raw == "" {
		return fmt.Errorf("server URL must not be empty")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid server URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("server URL must use http or https, got %q", raw)
	}

	if err := s.configStore.Set(keyServerURL, raw); err != nil {
		return fmt.Errorf("save server URL: %w", err)
	}
	return nil
}

// SetAPIKey updates the API key.
func (s *SettingsService) SetAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("API key must not be empty")
	}
	if err := s.configStore.Set(keyAPIKey, key); err != nil {
		return fmt.Errorf("save API key: %w", err)
	}
	return nil
}

// SetSmartLimit updates the default smart search result cap.
func (s *SettingsService) SetSmartLimit(limit int) error {
	if limit <= 0 {
		return fmt.Errorf("smart search limit must be positive, got %d", limit)
	}
	if err := s.configStore.Set(keySmartLimit, limit); err != nil {
		return fmt.Errorf("save smart limit: %w", err)
	}
	return nil
}

// Validate checks the configured connection, pinging the server when a
// pinger is available.
func (s *SettingsService) Validate(ctx context.Context) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	if !settings.Configured() {
		return fmt.Errorf("server connection is not configured: set %s and %s", keyServerURL, keyAPIKey)
	}
	if s.pinger == nil {
		return nil
	}
	if err := s.pinger.Ping(ctx); err != nil {
		return fmt.Errorf("ping server: %w", err)
	}
	return nil
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// getInt reads an int config value, falling back to defaultVal when the
// key is unset or zero.
func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}
