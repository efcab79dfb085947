package immich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahnau/immich-smart-albums/internal/core/domain"
)

// searchPage writes one page of search results. nextPage < 0 marks the
// last page (encoded as null).
func searchPage(w http.ResponseWriter, nextPage int, ids ...string) {
	items := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		items = append(items, map[string]any{"id": id, "type": "IMAGE"})
	}
	assets := map[string]any{"items": items, "nextPage": nil}
	if nextPage >= 0 {
		assets["nextPage"] = fmt.Sprintf("%d", nextPage)
	}
	json.NewEncoder(w).Encode(map[string]any{"assets": assets})
}

func assetIDs(assets []domain.Asset) []string {
	ids := make([]string, 0, len(assets))
	for _, a := range assets {
		ids = append(ids, a.ID)
	}
	return ids
}

func TestClient_Search(t *testing.T) {
	t.Run("drains a single page", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/search/metadata", r.URL.Path)
			searchPage(w, -1, "a1", "a2")
		})

		assets, report := client.Search(context.Background(), domain.Query{
			Category: domain.CategoryMetadata,
			Payload:  map[string]any{"city": "Helsinki"},
			Label:    "city",
		})

		assert.Equal(t, []string{"a1", "a2"}, assetIDs(assets))
		assert.Equal(t, "city", report.Label)
		assert.Equal(t, domain.CategoryMetadata, report.Category)
		assert.Equal(t, 1, report.Pages)
		assert.Equal(t, 2, report.Fetched)
		assert.False(t, report.Partial)
	})

	t.Run("follows nextPage until the server stops", func(t *testing.T) {
		pages := 0
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			pages++
			switch pages {
			case 1:
				searchPage(w, 2, "a1", "a2")
			case 2:
				searchPage(w, 3, "a3")
			default:
				searchPage(w, -1, "a4")
			}
		})

		assets, report := client.Search(context.Background(), domain.Query{
			Category: domain.CategoryMetadata,
		})

		assert.Equal(t, []string{"a1", "a2", "a3", "a4"}, assetIDs(assets))
		assert.Equal(t, 3, report.Pages)
		assert.Equal(t, 4, report.Fetched)
	})

	t.Run("injects pagination keys and strips resultLimit", func(t *testing.T) {
		var got map[string]any
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			searchPage(w, -1, "a1")
		})

		client.Search(context.Background(), domain.Query{
			Category:    domain.CategoryMetadata,
			Payload:     map[string]any{"city": "Oulu", "page": 99, "size": 5, "resultLimit": 7},
			ResultLimit: 7,
		})

		assert.Equal(t, "Oulu", got["city"])
		assert.Equal(t, float64(1), got["page"])
		assert.Equal(t, float64(searchPageSize), got["size"])
		assert.Equal(t, true, got["withExif"])
		assert.NotContains(t, got, "resultLimit")
	})

	t.Run("smart queries hit the smart endpoint", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/search/smart", r.URL.Path)
			searchPage(w, -1, "a1")
		})

		client.Search(context.Background(), domain.Query{
			Category: domain.CategorySmart,
			Payload:  map[string]any{"query": "sunset at the beach"},
		})
	})

	t.Run("person queries go through metadata search", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/search/metadata", r.URL.Path)
			searchPage(w, -1, "a1")
		})

		client.Search(context.Background(), domain.Query{
			Category: domain.CategoryPerson,
			Payload:  map[string]any{"personIds": []string{"p1"}},
		})
	})

	t.Run("result limit truncates and stops paging", func(t *testing.T) {
		pages := 0
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			pages++
			base := (pages - 1) * 3
			searchPage(w, pages+1,
				fmt.Sprintf("a%d", base+1), fmt.Sprintf("a%d", base+2), fmt.Sprintf("a%d", base+3))
		})

		assets, report := client.Search(context.Background(), domain.Query{
			Category:    domain.CategorySmart,
			Payload:     map[string]any{"query": "dogs"},
			ResultLimit: 5,
		})

		assert.Equal(t, []string{"a1", "a2", "a3", "a4", "a5"}, assetIDs(assets))
		assert.Equal(t, 2, pages, "should stop fetching once the limit is reached")
		assert.Equal(t, 5, report.Fetched)
		assert.False(t, report.Partial)
	})

	t.Run("deduplicates repeated ids across pages", func(t *testing.T) {
		pages := 0
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			pages++
			if pages == 1 {
				searchPage(w, 2, "a1", "a2")
			} else {
				searchPage(w, -1, "a2", "a3")
			}
		})

		assets, report := client.Search(context.Background(), domain.Query{
			Category: domain.CategoryMetadata,
		})

		assert.Equal(t, []string{"a1", "a2", "a3"}, assetIDs(assets))
		assert.Equal(t, 3, report.Fetched)
	})

	t.Run("drops items without an id", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"assets": map[string]any{
					"items":    []map[string]any{{"id": "a1"}, {"type": "IMAGE"}, {"id": ""}},
					"nextPage": nil,
				},
			})
		})

		assets, _ := client.Search(context.Background(), domain.Query{
			Category: domain.CategoryMetadata,
		})

		assert.Equal(t, []string{"a1"}, assetIDs(assets))
	})

	t.Run("keeps accumulated assets when a page fails", func(t *testing.T) {
		pages := 0
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			pages++
			if pages == 1 {
				searchPage(w, 2, "a1", "a2")
				return
			}
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message": "search blew up"}`))
		})

		assets, report := client.Search(context.Background(), domain.Query{
			Category: domain.CategoryMetadata,
			Label:    "flaky",
		})

		assert.Equal(t, []string{"a1", "a2"}, assetIDs(assets))
		assert.True(t, report.Partial)
		assert.Contains(t, report.Failure, "search blew up")
		assert.Equal(t, 1, report.Pages)
		assert.Equal(t, 2, report.Fetched)
	})

	t.Run("missing assets key ends pagination", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		})

		assets, report := client.Search(context.Background(), domain.Query{
			Category: domain.CategoryMetadata,
		})

		assert.Empty(t, assets)
		assert.False(t, report.Partial)
		assert.Equal(t, 1, report.Pages)
	})

	t.Run("cancelled context stops between pages", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			searchPage(w, 2, "a1")
		})

		assets, report := client.Search(ctx, domain.Query{
			Category: domain.CategoryMetadata,
		})

		assert.Empty(t, assets)
		assert.True(t, report.Partial)
		assert.Contains(t, report.Failure, "context canceled")
	})

	t.Run("raw payload is preserved on returned assets", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"assets": map[string]any{
					"items": []map[string]any{
						{"id": "a1", "exifInfo": map[string]any{"city": "Turku"}},
					},
					"nextPage": nil,
				},
			})
		})

		assets, _ := client.Search(context.Background(), domain.Query{
			Category: domain.CategoryMetadata,
		})

		require.Len(t, assets, 1)
		exif, ok := assets[0].Raw["exifInfo"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Turku", exif["city"])
	})
}
