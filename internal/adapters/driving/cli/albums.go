package cli

import (
	"context"
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tahnau/immich-smart-albums/internal/ui"
)

var albumsCmd = &cobra.Command{
	Use:   "albums",
	Short: "List albums on the server",
	Long:  `Lists every album the API key can see, owned and shared alike.`,
	RunE:  runAlbums,
}

func init() {
	rootCmd.AddCommand(albumsCmd)
}

func runAlbums(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	albums, err := catalogService.Albums(context.Background())
	if err != nil {
		return err
	}
	if len(albums) == 0 {
		cmd.Println("No albums found.")
		return nil
	}

	tbl := ui.NewTable("NAME", "ID", "ASSETS", "SHARED")
	for _, album := range albums {
		tbl.AddRow(album.Name, album.ID, strconv.Itoa(album.AssetCount), yesNo(album.Shared))
	}
	cmd.Println(tbl.Render(cmd.OutOrStdout()))
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
