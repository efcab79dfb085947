// Package cli implements the command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tahnau/immich-smart-albums/internal/adapters/driven/config/file"
	"github.com/tahnau/immich-smart-albums/internal/adapters/driven/jsonpath"
	"github.com/tahnau/immich-smart-albums/internal/connectors/immich"
	"github.com/tahnau/immich-smart-albums/internal/core/ports/driving"
	"github.com/tahnau/immich-smart-albums/internal/core/services"
	"github.com/tahnau/immich-smart-albums/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Environment variables consulted when the matching flag is not given.
const (
	envServerURL = "IMMICH_SERVER_URL"
	envAPIKey    = "IMMICH_API_KEY" //nolint:gosec // G101: env var name, not a credential
)

// Persistent flags.
var (
	serverFlag  string
	apiKeyFlag  string
	verboseFlag bool
)

// Services the commands run against. wireServices builds the real ones
// once the persistent flags are parsed; tests inject mocks directly.
var (
	settingsService  driving.SettingsService
	selectionService driving.SelectionService
	catalogService   driving.CatalogService

	configStore    *file.ConfigStore
	resolvedServer string
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "immich-smart-albums",
	Short: "Select Immich assets with searches and filters",
	Long: `immich-smart-albums selects assets on an Immich server by combining
metadata searches, smart searches, person searches and local JSONPath
filters with set algebra, then prints the selection or adds it to an
album.

The server connection comes from --server/--key, the IMMICH_SERVER_URL
and IMMICH_API_KEY environment variables, or the config file, in that
order.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)
		return wireServices(cmd)
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "",
		"Immich server URL (overrides environment and config)")
	rootCmd.PersistentFlags().StringVar(&apiKeyFlag, "key", "",
		"Immich API key (overrides environment and config)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"log how the selection is put together")
}

// wireServices builds the services behind the commands. Settings are
// wired for every command so config management works offline; the API
// client is built only for commands that talk to the server.
func wireServices(cmd *cobra.Command) error {
	switch cmd.Name() {
	case "version", "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return nil
	}
	if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
		return nil
	}

	if settingsService == nil {
		store, err := file.NewConfigStore("")
		if err != nil {
			return fmt.Errorf("open config store: %w", err)
		}
		configStore = store
		settingsService = services.NewSettingsService(store, nil)
	}

	if !commandNeedsAPI(cmd) {
		return nil
	}
	if selectionService != nil && catalogService != nil {
		return nil
	}

	serverURL, apiKey, err := resolveConnection()
	if err != nil {
		return err
	}

	client, err := immich.NewClient(immich.Config{ServerURL: serverURL, APIKey: apiKey})
	if err != nil {
		return fmt.Errorf("build client: %w", err)
	}

	resolvedServer = client.ServerURL()
	filters := services.NewFilterService(jsonpath.NewMatcher())
	selectionService = services.NewSelectionService(client, filters)
	catalogService = services.NewCatalogService(client, client)
	if configStore != nil {
		// From here on, validation pings the live server.
		settingsService = services.NewSettingsService(configStore, client)
	}
	return nil
}

// commandNeedsAPI reports whether the command talks to the server.
func commandNeedsAPI(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "select", "albums", "people", "users", "whoami":
		return true
	case "validate":
		return cmd.Parent() != nil && cmd.Parent().Name() == "config"
	default:
		return false
	}
}

// resolveConnection resolves the server URL and API key, flags winning
// over environment variables winning over the config file.
func resolveConnection() (string, string, error) {
	settings, err := settingsService.Get()
	if err != nil {
		return "", "", fmt.Errorf("load settings: %w", err)
	}

	serverURL := serverFlag
	if serverURL == "" {
		serverURL = os.Getenv(envServerURL)
	}
	if serverURL == "" {
		serverURL = settings.ServerURL
	}

	apiKey := apiKeyFlag
	if apiKey == "" {
		apiKey = os.Getenv(envAPIKey)
	}
	if apiKey == "" {
		apiKey = settings.APIKey
	}

	if serverURL == "" || apiKey == "" {
		return "", "", errors.New("server connection is not configured: " +
			"pass --server and --key, set IMMICH_SERVER_URL and IMMICH_API_KEY, " +
			"or run 'immich-smart-albums config set server' and 'config set api-key'")
	}
	return serverURL, apiKey, nil
}
