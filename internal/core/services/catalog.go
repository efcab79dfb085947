package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tahnau/immich-smart-albums/internal/core/domain"
	"github.com/tahnau/immich-smart-albums/internal/core/ports/driven"
	"github.com/tahnau/immich-smart-albums/internal/core/ports/driving"
	"github.com/tahnau/immich-smart-albums/internal/logger"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// CatalogService lists server entities and resolves the names users
// type into the IDs the API wants.
type CatalogService struct {
	api    driven.CatalogAPI
	writer driven.AlbumWriter
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(api driven.CatalogAPI, writer driven.AlbumWriter) *CatalogService {
	return &CatalogService{
		api:    api,
		writer: writer,
	}
}

// Albums returns every album visible to the API key.
func (s *CatalogService) Albums(ctx context.Context) ([]domain.Album, error) {
	albums, err := s.api.AllAlbums(ctx)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	return albums, nil
}

// People returns all recognised people, including hidden ones.
func (s *CatalogService) People(ctx context.Context) ([]domain.Person, error) {
	people, err := s.api.People(ctx)
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	return people, nil
}

// Users returns all user accounts on the server.
func (s *CatalogService) Users(ctx context.Context) ([]domain.User, error) {
	users, err := s.api.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Me returns the account that owns the API key.
func (s *CatalogService) Me(ctx context.Context) (*domain.User, error) {
	me, err := s.api.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	return me, nil
}

// ResolvePersonIDs maps person names or UUIDs to person IDs. UUIDs pass
// through without a lookup, so searches keep working when face data is
// unnamed. Names match case-insensitively; a name carried by several
// people resolves to all of them. An identifier that matches nobody
// fails the whole resolution: a silently dropped person would quietly
// change what a selection means.
func (s *CatalogService) ResolvePersonIDs(ctx context.Context, identifiers []string) ([]string, error) {
	if len(identifiers) == 0 {
		return nil, nil
	}

	var people []domain.Person
	fetched := false

	resolved := make([]string, 0, len(identifiers))
	for _, ident := range identifiers {
		if id, err := uuid.Parse(ident); err == nil {
			logger.Debug("Identifier %q is a UUID, using it directly", ident)
			resolved = append(resolved, id.String())
			continue
		}

		// Fetch the people list once, and only when a name actually
		// needs resolving.
		if !fetched {
			var err error
			people, err = s.api.People(ctx)
			if err != nil {
				return nil, fmt.Errorf("list people: %w", err)
			}
			fetched = true
		}

		ids := personIDsByName(people, ident)
		if len(ids) == 0 {
			return nil, fmt.Errorf("person %q: %w", ident, domain.ErrPersonNotFound)
		}
		if len(ids) > 1 {
			logger.Warn("Found %d people named %q, resolving to all of them", len(ids), ident)
		}
		for _, id := range ids {
			logger.Debug("Resolved person name %q to ID %s", ident, id)
		}
		resolved = append(resolved, ids...)
	}
	return resolved, nil
}

// personIDsByName returns the IDs of every person carrying this name,
// compared case-insensitively, in listing order. Unnamed people never
// match, so an empty identifier cannot pull in unrecognised faces.
func personIDsByName(people []domain.Person, name string) []string {
	var ids []string
	for _, p := range people {
		if p.Name == "" {
			continue
		}
		if strings.EqualFold(p.Name, name) {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// ResolveAlbumID maps an album name or UUID to an album ID. Names must
// match exactly one album; adding assets to "the first album called
// Holiday" is not something to guess at.
func (s *CatalogService) ResolveAlbumID(ctx context.Context, nameOrID string) (string, error) {
	if id, err := uuid.Parse(nameOrID); err == nil {
		return id.String(), nil
	}

	albums, err := s.api.AllAlbums(ctx)
	if err != nil {
		return "", fmt.Errorf("list albums: %w", err)
	}

	var matches []domain.Album
	for _, a := range albums {
		if a.Name == nameOrID {
			matches = append(matches, a)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("album %q: %w", nameOrID, domain.ErrAlbumNotFound)
	case 1:
		logger.Debug("Resolved album name %q to ID %s", nameOrID, matches[0].ID)
		return matches[0].ID, nil
	default:
		ids := make([]string, len(matches))
		for i, a := range matches {
			ids[i] = a.ID
		}
		return "", fmt.Errorf("album %q matches %d albums (%s): %w",
			nameOrID, len(matches), strings.Join(ids, ", "), domain.ErrAlbumAmbiguous)
	}
}

// AddToAlbum adds the asset IDs to the album and returns how many the
// server accepted.
func (s *CatalogService) AddToAlbum(ctx context.Context, albumID string, assetIDs []string) (int, error) {
	if len(assetIDs) == 0 {
		return 0, nil
	}
	added, err := s.writer.AddToAlbum(ctx, albumID, assetIDs)
	if err != nil {
		return added, fmt.Errorf("add to album: %w", err)
	}
	return added, nil
}
