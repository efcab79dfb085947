package immich

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/tahnau/immich-smart-albums/internal/core/domain"
)

// albumChunkSize is how many asset IDs one album update carries.
const albumChunkSize = 500

// albumResponse is the slice of the albums API response the tool needs.
type albumResponse struct {
	ID         string `json:"id"`
	AlbumName  string `json:"albumName"`
	Shared     bool   `json:"shared"`
	AssetCount int    `json:"assetCount"`
	UpdatedAt  string `json:"updatedAt"`
	Owner      struct {
		Name string `json:"name"`
	} `json:"owner"`
}

// albumAddResult is one entry of the bulk add response.
type albumAddResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// AllAlbums returns every album visible to the API key. The server
// splits the listing by shared flag, so both halves are fetched and
// merged, deduplicated by id.
func (c *Client) AllAlbums(ctx context.Context) ([]domain.Album, error) {
	var albums []domain.Album
	seen := make(map[string]bool)

	for _, shared := range []string{"true", "false"} {
		var page []albumResponse
		query := url.Values{"shared": []string{shared}}
		if err := c.get(ctx, "/api/albums", query, &page); err != nil {
			return nil, fmt.Errorf("list albums (shared=%s): %w", shared, err)
		}
		for _, a := range page {
			if seen[a.ID] {
				continue
			}
			seen[a.ID] = true
			albums = append(albums, domain.Album{
				ID:         a.ID,
				Name:       a.AlbumName,
				Owner:      a.Owner.Name,
				Shared:     a.Shared,
				AssetCount: a.AssetCount,
				UpdatedAt:  a.UpdatedAt,
			})
		}
	}

	return albums, nil
}

// AddToAlbum adds the given asset IDs to an album in chunks and returns
// how many the server accepted. Assets already in the album are reported
// unsuccessful by the server and not counted. A failing chunk does not
// stop the remaining chunks; the errors are joined and returned at the
// end alongside the count.
func (c *Client) AddToAlbum(ctx context.Context, albumID string, assetIDs []string) (int, error) {
	path := fmt.Sprintf("/api/albums/%s/assets", albumID)

	added := 0
	var errs []error
	for start := 0; start < len(assetIDs); start += albumChunkSize {
		end := start + albumChunkSize
		if end > len(assetIDs) {
			end = len(assetIDs)
		}
		chunk := assetIDs[start:end]

		var results []albumAddResult
		body := map[string]any{"ids": chunk}
		if err := c.put(ctx, path, body, &results); err != nil {
			errs = append(errs, fmt.Errorf("add assets %d-%d: %w", start+1, end, err))
			continue
		}
		for _, r := range results {
			if r.Success {
				added++
			}
		}
	}

	return added, errors.Join(errs...)
}
