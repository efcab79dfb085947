package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tahnau/immich-smart-albums/internal/ui"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List user accounts",
	Long:  `Lists every user account on the server. Requires an admin API key.`,
	RunE:  runUsers,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the account behind the API key",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func runUsers(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	users, err := catalogService.Users(context.Background())
	if err != nil {
		return err
	}
	if len(users) == 0 {
		cmd.Println("No users found.")
		return nil
	}

	tbl := ui.NewTable("NAME", "EMAIL", "ID")
	for _, user := range users {
		tbl.AddRow(user.Name, user.Email, user.ID)
	}
	cmd.Println(tbl.Render(cmd.OutOrStdout()))
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	me, err := catalogService.Me(context.Background())
	if err != nil {
		return err
	}

	line := fmt.Sprintf("%s <%s> (%s)", me.Name, me.Email, me.ID)
	if me.IsAdmin {
		line += " [admin]"
	}
	cmd.Println(line)
	return nil
}
