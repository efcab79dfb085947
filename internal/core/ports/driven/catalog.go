package driven

import (
	"context"

	"github.com/tahnau/immich-smart-albums/internal/core/domain"
)

// CatalogAPI lists the server-side entities that selections reference:
// albums, recognised people and user accounts.
type CatalogAPI interface {
	// AllAlbums returns every album visible to the API key, both owned
	// and shared.
	AllAlbums(ctx context.Context) ([]domain.Album, error)

	// People returns all recognised people, including hidden ones.
	People(ctx context.Context) ([]domain.Person, error)

	// Users returns all user accounts on the server.
	Users(ctx context.Context) ([]domain.User, error)

	// Me returns the account that owns the API key.
	Me(ctx context.Context) (*domain.User, error)
}

// AlbumWriter adds assets to an existing album.
type AlbumWriter interface {
	// AddToAlbum adds the given asset IDs to the album and returns the
	// number of assets the server actually accepted. Assets already in
	// the album are skipped by the server and not counted.
	AddToAlbum(ctx context.Context, albumID string, assetIDs []string) (int, error)
}
