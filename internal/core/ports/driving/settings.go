package driving

import (
	"context"

	"github.com/tahnau/immich-smart-albums/internal/core/domain"
)

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (domain.Settings, error)

	// SetServerURL updates the Immich server URL.
	SetServerURL(url string) error

	// SetAPIKey updates the API key.
	SetAPIKey(key string) error

	// SetSmartLimit updates the default smart search result cap.
	SetSmartLimit(limit int) error

	// Validate checks the configured connection by pinging the server.
	Validate(ctx context.Context) error

	// Path returns the configuration file path.
	Path() string
}
