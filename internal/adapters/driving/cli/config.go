package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the server connection settings",
	Long: `View and change the stored settings: server URL, API key and the
default smart search result cap. Settings live in
~/.immich-smart-albums/config.toml.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE:  runConfigPath,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the server connection",
	Long:  `Resolves the server connection and performs an authenticated request against it.`,
	RunE:  runConfigValidate,
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change a setting",
}

var configSetServerCmd = &cobra.Command{
	Use:   "server <url>",
	Short: "Set the Immich server URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigSetServer,
}

var configSetAPIKeyCmd = &cobra.Command{
	Use:   "api-key",
	Short: "Set the API key",
	Long:  `Prompts for the API key. Input stays hidden on a terminal.`,
	RunE:  runConfigSetAPIKey,
}

var configSetSmartLimitCmd = &cobra.Command{
	Use:   "smart-limit <n>",
	Short: "Set the default smart search result cap",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigSetSmartLimit,
}

func init() {
	configSetCmd.AddCommand(configSetServerCmd)
	configSetCmd.AddCommand(configSetAPIKeyCmd)
	configSetCmd.AddCommand(configSetSmartLimitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Server]")
	if settings.ServerURL != "" {
		cmd.Printf("  URL: %s\n", settings.ServerURL)
	} else {
		cmd.Printf("  URL: (not set)\n")
	}
	if settings.APIKey != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(settings.APIKey))
	} else {
		cmd.Printf("  API Key: (not set)\n")
	}
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Default smart result limit: %d\n", settings.SmartLimit)
	cmd.Println()

	cmd.Printf("Config file: %s\n", settingsService.Path())

	if !settings.Configured() {
		cmd.Println()
		cmd.Println("Run 'immich-smart-albums config set server <url>' and " +
			"'immich-smart-albums config set api-key' to connect.")
	}
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	cmd.Println(settingsService.Path())
	return nil
}

func runConfigValidate(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Validate(context.Background()); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	cmd.Println("Configuration is valid, server reachable.")
	return nil
}

func runConfigSetServer(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.SetServerURL(args[0]); err != nil {
		return err
	}
	cmd.Println("Server URL saved.")
	return nil
}

func runConfigSetAPIKey(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Print("Enter API key: ")
	key := readPassword()
	cmd.Println()
	if key == "" {
		return errors.New("API key must not be empty")
	}

	if err := settingsService.SetAPIKey(key); err != nil {
		return err
	}
	cmd.Println("API key saved.")
	return nil
}

func runConfigSetSmartLimit(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	limit, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("smart limit must be a number, got %q", args[0])
	}
	if err := settingsService.SetSmartLimit(limit); err != nil {
		return err
	}
	cmd.Printf("Default smart result limit set to %d.\n", limit)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
