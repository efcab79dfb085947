package immich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tahnau/immich-smart-albums/internal/core/ports/driven"
)

// Ensure Client implements the server-facing ports.
var (
	_ driven.AssetSearcher = (*Client)(nil)
	_ driven.CatalogAPI    = (*Client)(nil)
	_ driven.AlbumWriter   = (*Client)(nil)
	_ driven.Pinger        = (*Client)(nil)
)

// maxErrorBody caps how much of an error response is read for the message.
const maxErrorBody = 4096

// Client talks to an Immich server's REST API.
//
// Every request carries the x-api-key header and passes through the
// client's rate limiter. A Client is safe for concurrent use.
type Client struct {
	http      *http.Client
	serverURL string
	apiKey    string
	limiter   *RateLimiter
}

// NewClient creates a client for the given server.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.ServerURL) == "" {
		return nil, ErrNoServerURL
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNoAPIKey
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		http:      &http.Client{Timeout: cfg.Timeout},
		serverURL: strings.TrimRight(cfg.ServerURL, "/"),
		apiKey:    cfg.APIKey,
		limiter:   NewRateLimiter(cfg.RequestsPerSecond, cfg.Burst),
	}, nil
}

// ServerURL returns the normalised server base URL.
func (c *Client) ServerURL() string {
	return c.serverURL
}

// Ping performs a cheap authenticated request to verify that the server
// is reachable and the API key works.
func (c *Client) Ping(ctx context.Context) error {
	var me userResponse
	if err := c.get(ctx, "/api/users/me", nil, &me); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// get issues a GET request and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// post issues a POST request with a JSON body and decodes the response into out.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// put issues a PUT request with a JSON body and decodes the response into out.
func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// do sends one rate-limited request. Non-2xx responses become an
// *APIError carrying the server's message.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.serverURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader = http.NoBody
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(raw, resp.StatusCode),
			URL:        reqURL,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
