package driven

import (
	"context"

	"github.com/tahnau/immich-smart-albums/internal/core/domain"
)

// AssetSearcher executes a single search query against the server and
// returns every asset the query yields, draining pagination internally.
//
// Search does not return an error: a failing page is absorbed into the
// report and the assets accumulated before the failure are kept. Callers
// decide what a partial result means for them.
type AssetSearcher interface {
	// Search runs the query to completion and reports how it went.
	Search(ctx context.Context, query domain.Query) ([]domain.Asset, domain.QueryReport)
}
