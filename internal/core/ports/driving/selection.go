package driving

import (
	"context"

	"github.com/tahnau/immich-smart-albums/internal/core/domain"
)

// SelectionService resolves selection requests into asset IDs.
type SelectionService interface {
	// Select runs every criterion in the request, combines the results
	// and returns the selected asset IDs in insertion order.
	Select(ctx context.Context, req domain.SelectionRequest) (*domain.SelectionResult, error)
}
