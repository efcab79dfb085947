package driving

import (
	"context"

	"github.com/tahnau/immich-smart-albums/internal/core/domain"
)

// CatalogService exposes server-side entities and resolves the names
// users type into the IDs the API wants.
type CatalogService interface {
	// Albums returns every album visible to the API key.
	Albums(ctx context.Context) ([]domain.Album, error)

	// People returns all recognised people, including hidden ones.
	People(ctx context.Context) ([]domain.Person, error)

	// Users returns all user accounts on the server.
	Users(ctx context.Context) ([]domain.User, error)

	// Me returns the account that owns the API key.
	Me(ctx context.Context) (*domain.User, error)

	// ResolvePersonIDs maps person names or UUIDs to person IDs.
	// A name shared by several people resolves to all of them. An
	// identifier that matches nobody yields domain.ErrPersonNotFound.
	ResolvePersonIDs(ctx context.Context, identifiers []string) ([]string, error)

	// ResolveAlbumID maps an album name or UUID to an album ID. Names
	// must match exactly one album: domain.ErrAlbumNotFound when none
	// matches, domain.ErrAlbumAmbiguous when several do.
	ResolveAlbumID(ctx context.Context, nameOrID string) (string, error)

	// AddToAlbum adds the asset IDs to the album and returns how many
	// the server accepted.
	AddToAlbum(ctx context.Context, albumID string, assetIDs []string) (int, error)
}
