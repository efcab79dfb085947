package immich

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient creates a client pointed at an httptest server.
// The throttle is opened wide so tests never wait on the bucket.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{
		ServerURL:         srv.URL,
		APIKey:            "test-key",
		RequestsPerSecond: 1000,
		Burst:             100,
	})
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	t.Run("creates client with defaults", func(t *testing.T) {
		client, err := NewClient(Config{
			ServerURL: "https://photos.example.com",
			APIKey:    "key",
		})

		require.NoError(t, err)
		require.NotNil(t, client)
		assert.Equal(t, "https://photos.example.com", client.ServerURL())
	})

	t.Run("strips trailing slash from server URL", func(t *testing.T) {
		client, err := NewClient(Config{
			ServerURL: "https://photos.example.com/",
			APIKey:    "key",
		})

		require.NoError(t, err)
		assert.Equal(t, "https://photos.example.com", client.ServerURL())
	})

	t.Run("rejects missing server URL", func(t *testing.T) {
		_, err := NewClient(Config{APIKey: "key"})

		assert.ErrorIs(t, err, ErrNoServerURL)
	})

	t.Run("rejects blank API key", func(t *testing.T) {
		_, err := NewClient(Config{ServerURL: "https://photos.example.com", APIKey: "   "})

		assert.ErrorIs(t, err, ErrNoAPIKey)
	})
}

func TestClient_Headers(t *testing.T) {
	t.Run("sends API key and JSON headers on every request", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			w.Write([]byte(`{"id": "u1"}`))
		})

		err := client.Ping(context.Background())

		assert.NoError(t, err)
	})
}

func TestClient_Ping(t *testing.T) {
	t.Run("succeeds against a healthy server", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/users/me", r.URL.Path)
			w.Write([]byte(`{"id": "u1", "name": "Test User"}`))
		})

		err := client.Ping(context.Background())

		assert.NoError(t, err)
	})

	t.Run("surfaces an invalid API key", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message": "Invalid API key", "error": "Unauthorized", "statusCode": 401}`))
		})

		err := client.Ping(context.Background())

		require.Error(t, err)
		assert.True(t, IsUnauthorized(err))
		assert.Contains(t, err.Error(), "Invalid API key")
	})

	t.Run("surfaces an unreachable server", func(t *testing.T) {
		client, err := NewClient(Config{
			ServerURL: "http://127.0.0.1:1",
			APIKey:    "key",
		})
		require.NoError(t, err)

		err = client.Ping(context.Background())

		assert.Error(t, err)
	})
}

func TestClient_APIError(t *testing.T) {
	t.Run("wraps non-2xx responses with status and message", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message": "Not found", "statusCode": 404}`))
		})

		_, err := client.Me(context.Background())

		require.Error(t, err)
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, 404, apiErr.StatusCode)
		assert.Equal(t, "Not found", apiErr.Message)
		assert.Contains(t, apiErr.URL, "/api/users/me")
	})

	t.Run("falls back to raw body for non-JSON errors", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("upstream gone"))
		})

		_, err := client.Me(context.Background())

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "upstream gone", apiErr.Message)
	})

	t.Run("falls back to status text for empty bodies", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := client.Me(context.Background())

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "Internal Server Error", apiErr.Message)
	})
}

func TestAPIError_Error(t *testing.T) {
	t.Run("formats status, message and URL", func(t *testing.T) {
		err := &APIError{
			StatusCode: 404,
			Message:    "Not found",
			URL:        "https://photos.example.com/api/albums",
		}

		assert.Equal(t,
			"immich: API error 404: Not found (URL: https://photos.example.com/api/albums)",
			err.Error())
	})
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		notFound     bool
		unauthorized bool
		forbidden    bool
		rateLimited  bool
	}{
		{
			name:     "404 is not found",
			err:      &APIError{StatusCode: 404},
			notFound: true,
		},
		{
			name:         "401 is unauthorized",
			err:          &APIError{StatusCode: 401},
			unauthorized: true,
		},
		{
			name:      "403 is forbidden",
			err:       &APIError{StatusCode: 403},
			forbidden: true,
		},
		{
			name:        "429 is rate limited",
			err:         &APIError{StatusCode: 429},
			rateLimited: true,
		},
		{
			name: "generic error matches nothing",
			err:  errors.New("boom"),
		},
		{
			name: "nil error matches nothing",
			err:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.notFound, IsNotFound(tt.err))
			assert.Equal(t, tt.unauthorized, IsUnauthorized(tt.err))
			assert.Equal(t, tt.forbidden, IsForbidden(tt.err))
			assert.Equal(t, tt.rateLimited, IsRateLimited(tt.err))
		})
	}
}

func TestRateLimiter(t *testing.T) {
	t.Run("applies defaults for non-positive values", func(t *testing.T) {
		rl := NewRateLimiter(0, 0)

		require.NotNil(t, rl)
		err := rl.Wait(context.Background())
		assert.NoError(t, err)
	})

	t.Run("wait respects context cancellation", func(t *testing.T) {
		rl := NewRateLimiter(0.001, 1)
		ctx, cancel := context.WithCancel(context.Background())

		// Drain the single burst token, then cancel while waiting.
		require.NoError(t, rl.Wait(ctx))
		cancel()

		err := rl.Wait(ctx)

		assert.Error(t, err)
	})
}
