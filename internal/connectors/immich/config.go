package immich

import "time"

// Default configuration values.
const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRequestsPerSecond is the default proactive throttle rate.
	DefaultRequestsPerSecond = 10

	// DefaultBurst is the default throttle burst size.
	DefaultBurst = 5
)

// Config holds connection settings for an Immich server.
type Config struct {
	// ServerURL is the server base URL, e.g. https://photos.example.com.
	// A trailing slash is stripped.
	ServerURL string

	// APIKey authenticates every request via the x-api-key header.
	APIKey string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing requests (default: 10).
	RequestsPerSecond float64

	// Burst is the throttle burst size (default: 5).
	Burst int
}
