package immich

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_AllAlbums(t *testing.T) {
	t.Run("merges shared and owned albums", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/albums", r.URL.Path)
			switch r.URL.Query().Get("shared") {
			case "true":
				w.Write([]byte(`[
					{"id": "al1", "albumName": "Family", "shared": true,
					 "assetCount": 12, "owner": {"name": "Alice"}}
				]`))
			case "false":
				w.Write([]byte(`[
					{"id": "al2", "albumName": "Travel", "shared": false,
					 "assetCount": 3, "owner": {"name": "Bob"}}
				]`))
			default:
				t.Errorf("unexpected shared value %q", r.URL.Query().Get("shared"))
			}
		})

		albums, err := client.AllAlbums(context.Background())

		require.NoError(t, err)
		require.Len(t, albums, 2)
		assert.Equal(t, "al1", albums[0].ID)
		assert.Equal(t, "Family", albums[0].Name)
		assert.Equal(t, "Alice", albums[0].Owner)
		assert.True(t, albums[0].Shared)
		assert.Equal(t, 12, albums[0].AssetCount)
		assert.Equal(t, "Travel", albums[1].Name)
	})

	t.Run("deduplicates albums listed in both halves", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"id": "al1", "albumName": "Family"}]`))
		})

		albums, err := client.AllAlbums(context.Background())

		require.NoError(t, err)
		assert.Len(t, albums, 1)
	})

	t.Run("propagates listing errors", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message": "Invalid API key"}`))
		})

		_, err := client.AllAlbums(context.Background())

		require.Error(t, err)
		assert.True(t, IsUnauthorized(err))
	})
}

func TestClient_People(t *testing.T) {
	t.Run("drains pagination until the advertised total", func(t *testing.T) {
		requests := 0
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			requests++
			require.Equal(t, "/api/people", r.URL.Path)
			assert.Equal(t, "true", r.URL.Query().Get("withHidden"))
			switch r.URL.Query().Get("page") {
			case "1":
				w.Write([]byte(`{"total": 3, "people": [
					{"id": "p1", "name": "Alice", "isHidden": false},
					{"id": "p2", "name": "Bob", "isHidden": false}
				]}`))
			case "2":
				w.Write([]byte(`{"total": 3, "people": [
					{"id": "p3", "name": "", "isHidden": true}
				]}`))
			default:
				t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
			}
		})

		people, err := client.People(context.Background())

		require.NoError(t, err)
		require.Len(t, people, 3)
		assert.Equal(t, 2, requests)
		assert.Equal(t, "Alice", people[0].Name)
		assert.True(t, people[2].Hidden)
	})

	t.Run("an empty page ends pagination without a total", func(t *testing.T) {
		requests := 0
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			requests++
			if r.URL.Query().Get("page") == "1" {
				w.Write([]byte(`{"people": [{"id": "p1", "name": "Alice"}]}`))
				return
			}
			w.Write([]byte(`{"people": []}`))
		})

		people, err := client.People(context.Background())

		require.NoError(t, err)
		assert.Len(t, people, 1)
		assert.Equal(t, 2, requests)
	})

	t.Run("propagates listing errors", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := client.People(context.Background())

		assert.Error(t, err)
	})
}

func TestClient_Users(t *testing.T) {
	t.Run("lists all accounts", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/users", r.URL.Path)
			w.Write([]byte(`[
				{"id": "u1", "name": "Alice", "email": "alice@example.com", "isAdmin": true},
				{"id": "u2", "name": "Bob", "email": "bob@example.com", "isAdmin": false}
			]`))
		})

		users, err := client.Users(context.Background())

		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "alice@example.com", users[0].Email)
		assert.True(t, users[0].IsAdmin)
		assert.False(t, users[1].IsAdmin)
	})

	t.Run("surfaces forbidden for non-admin keys", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"message": "Forbidden"}`))
		})

		_, err := client.Users(context.Background())

		require.Error(t, err)
		assert.True(t, IsForbidden(err))
	})
}

func TestClient_Me(t *testing.T) {
	t.Run("returns the key owner", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/users/me", r.URL.Path)
			w.Write([]byte(`{"id": "u1", "name": "Alice", "email": "alice@example.com",
				"isAdmin": false, "updatedAt": "2025-06-01T12:00:00Z"}`))
		})

		me, err := client.Me(context.Background())

		require.NoError(t, err)
		require.NotNil(t, me)
		assert.Equal(t, "u1", me.ID)
		assert.Equal(t, "Alice", me.Name)
		assert.Equal(t, "2025-06-01T12:00:00Z", me.UpdatedAt)
	})
}

func TestClient_AddToAlbum(t *testing.T) {
	t.Run("counts accepted assets", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/albums/al1/assets", r.URL.Path)
			require.Equal(t, http.MethodPut, r.Method)

			var body struct {
				IDs []string `json:"ids"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, []string{"a1", "a2", "a3"}, body.IDs)

			w.Write([]byte(`[
				{"id": "a1", "success": true},
				{"id": "a2", "success": true},
				{"id": "a3", "success": false, "error": "duplicate"}
			]`))
		})

		added, err := client.AddToAlbum(context.Background(), "al1", []string{"a1", "a2", "a3"})

		require.NoError(t, err)
		assert.Equal(t, 2, added)
	})

	t.Run("splits large batches into chunks", func(t *testing.T) {
		var chunkSizes []int
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			var body struct {
				IDs []string `json:"ids"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			chunkSizes = append(chunkSizes, len(body.IDs))

			results := make([]map[string]any, 0, len(body.IDs))
			for _, id := range body.IDs {
				results = append(results, map[string]any{"id": id, "success": true})
			}
			json.NewEncoder(w).Encode(results)
		})

		ids := make([]string, 1100)
		for i := range ids {
			ids[i] = "asset"
		}

		added, err := client.AddToAlbum(context.Background(), "al1", ids)

		require.NoError(t, err)
		assert.Equal(t, 1100, added)
		assert.Equal(t, []int{500, 500, 100}, chunkSizes)
	})

	t.Run("a failing chunk does not stop the rest", func(t *testing.T) {
		requests := 0
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			requests++
			if requests == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"message": "transient"}`))
				return
			}
			var body struct {
				IDs []string `json:"ids"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			results := make([]map[string]any, 0, len(body.IDs))
			for _, id := range body.IDs {
				results = append(results, map[string]any{"id": id, "success": true})
			}
			json.NewEncoder(w).Encode(results)
		})

		ids := make([]string, 600)
		for i := range ids {
			ids[i] = "asset"
		}

		added, err := client.AddToAlbum(context.Background(), "al1", ids)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "add assets 1-500")
		assert.Equal(t, 100, added)
		assert.Equal(t, 2, requests)
	})

	t.Run("no assets means no request", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected for an empty batch")
		})

		added, err := client.AddToAlbum(context.Background(), "al1", nil)

		require.NoError(t, err)
		assert.Zero(t, added)
	})
}
