package immich

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Immich-specific errors.
var (
	// ErrNoServerURL indicates the client was built without a server URL.
	ErrNoServerURL = errors.New("immich: server URL is required")

	// ErrNoAPIKey indicates the client was built without an API key.
	ErrNoAPIKey = errors.New("immich: API key is required")
)

// APIError represents an Immich API error response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("immich: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}

// IsUnauthorized checks if the error indicates an invalid or missing API key.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401
	}
	return false
}

// IsForbidden checks if the error indicates a forbidden resource.
// Listing all users, for example, requires an admin API key.
func IsForbidden(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 403
	}
	return false
}

// IsRateLimited checks if the error indicates request throttling, which
// usually comes from a reverse proxy in front of the server.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}
	return false
}

// errorMessage extracts a readable message from an error response body.
// Immich wraps errors as {"message": ..., "error": ..., "statusCode": ...};
// anything else falls back to the raw body or the standard status text.
func errorMessage(body []byte, statusCode int) string {
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return msg
	}
	return http.StatusText(statusCode)
}
