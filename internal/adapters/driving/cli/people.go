package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/tahnau/immich-smart-albums/internal/ui"
)

var peopleCmd = &cobra.Command{
	Use:   "people",
	Short: "List named people",
	Long: `Lists recognised people that carry a name, for use with the person
search flags. People hidden in the server UI are included; faces the
server has not named yet are skipped.`,
	RunE: runPeople,
}

func init() {
	rootCmd.AddCommand(peopleCmd)
}

func runPeople(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	people, err := catalogService.People(context.Background())
	if err != nil {
		return err
	}

	tbl := ui.NewTable("NAME", "ID")
	for _, person := range people {
		if person.Name == "" {
			continue
		}
		tbl.AddRow(person.Name, person.ID)
	}
	if tbl.Len() == 0 {
		cmd.Println("No named people found.")
		return nil
	}
	cmd.Println(tbl.Render(cmd.OutOrStdout()))
	return nil
}
