package immich

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter throttles requests to the Immich server.
//
// Self-hosted Immich does not advertise quota headers the way hosted APIs
// do, so the limiter is purely proactive: a token bucket keeps bursts of
// page fetches from flooding the instance while a selection runs.
type RateLimiter struct {
	bucket *rate.Limiter
}

// NewRateLimiter creates a token-bucket limiter.
// Non-positive values fall back to the defaults.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = DefaultRequestsPerSecond
	}
	if burst <= 0 {
		burst = DefaultBurst
	}

	return &RateLimiter{
		bucket: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Wait blocks until the next request may be sent.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.bucket.Wait(ctx)
}
