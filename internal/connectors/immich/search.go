package immich

import (
	"context"

	"github.com/tahnau/immich-smart-albums/internal/core/domain"
)

// searchPageSize is the fixed page size for search pagination.
const searchPageSize = 100

// searchResponse is the slice of the search API response the pipeline
// needs. NextPage is null on the last page; its value is otherwise
// unused because the page counter is maintained locally.
type searchResponse struct {
	Assets struct {
		Items    []map[string]any `json:"items"`
		NextPage any              `json:"nextPage"`
	} `json:"assets"`
}

// Search runs one query to completion, draining pagination.
//
// A failing page ends the query early: the assets accumulated so far are
// returned and the report is flagged Partial. Results are deduplicated
// by id; items without an id are dropped. ResultLimit caps the
// accumulated results in arrival order and is never exceeded.
func (c *Client) Search(ctx context.Context, query domain.Query) ([]domain.Asset, domain.QueryReport) {
	report := domain.QueryReport{
		Label:    query.Label,
		Category: query.Category,
	}
	endpoint := searchEndpoint(query.Category)

	var assets []domain.Asset
	seen := make(map[string]bool)

	for page := 1; ; page++ {
		select {
		case <-ctx.Done():
			report.Partial = true
			report.Failure = ctx.Err().Error()
			report.Fetched = len(assets)
			return assets, report
		default:
		}

		var result searchResponse
		if err := c.post(ctx, endpoint, searchPayload(query.Payload, page), &result); err != nil {
			report.Partial = true
			report.Failure = err.Error()
			report.Fetched = len(assets)
			return assets, report
		}
		report.Pages++

		for _, item := range result.Assets.Items {
			id, ok := item["id"].(string)
			if !ok || id == "" || seen[id] {
				continue
			}
			seen[id] = true
			assets = append(assets, domain.Asset{ID: id, Raw: item})
		}

		if query.ResultLimit > 0 && len(assets) >= query.ResultLimit {
			assets = assets[:query.ResultLimit]
			break
		}
		if result.Assets.NextPage == nil {
			break
		}
	}

	report.Fetched = len(assets)
	return assets, report
}

// searchEndpoint maps a category to its API path. Person queries go
// through metadata search with a personIds payload.
func searchEndpoint(category domain.Category) string {
	if category == domain.CategorySmart {
		return "/api/search/smart"
	}
	return "/api/search/metadata"
}

// searchPayload builds one page's request body. Pagination keys override
// any caller-supplied values; resultLimit is interpreted locally and
// never sent to the server.
func searchPayload(base map[string]any, page int) map[string]any {
	payload := make(map[string]any, len(base)+3)
	for k, v := range base {
		if k == "resultLimit" {
			continue
		}
		payload[k] = v
	}
	payload["page"] = page
	payload["size"] = searchPageSize
	payload["withExif"] = true
	return payload
}
