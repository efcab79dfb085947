package domain

// DefaultSmartLimit is the result cap applied to smart searches that do
// not carry an explicit limit. Smart search ranks by similarity, so an
// uncapped query would page through the entire library.
const DefaultSmartLimit = 200

// Settings holds the persisted application settings.
type Settings struct {
	// ServerURL is the base URL of the Immich server, without a
	// trailing /api.
	ServerURL string

	// APIKey authenticates requests against the server.
	APIKey string

	// SmartLimit is the default result cap for smart searches.
	SmartLimit int
}

// DefaultSettings returns settings with sensible defaults. The server
// connection is left unconfigured; users set it via the config command,
// environment variables or flags.
func DefaultSettings() Settings {
	return Settings{
		SmartLimit: DefaultSmartLimit,
	}
}

// Configured returns true if the server connection is set up.
func (s Settings) Configured() bool {
	return s.ServerURL != "" && s.APIKey != ""
}
