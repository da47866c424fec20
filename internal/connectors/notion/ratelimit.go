package notion

import (
	"context"

	"golang.org/x/time/rate"
)

const (
	// DefaultRequestsPerSecond is Notion's published average rate limit.
	DefaultRequestsPerSecond = 3
)

// RateLimiter throttles API calls with a token bucket so the fetcher stays
// under the CMS's rate limit proactively instead of reacting to 429s.
type RateLimiter struct {
	bucket *rate.Limiter
}

// NewRateLimiter creates a limiter at the given requests-per-second rate.
// Zero or negative rates fall back to the default.
func NewRateLimiter(rps float64) *RateLimiter {
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}
	return &RateLimiter{
		bucket: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Wait blocks until it's safe to make a request or the context is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.bucket.Wait(ctx)
}

// Limit returns the configured requests-per-second rate.
func (r *RateLimiter) Limit() float64 {
	return float64(r.bucket.Limit())
}
