package forecast

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimitedSource wraps a Source with rate limiting.
type RateLimitedSource struct {
	source  Source
	limiter *rate.Limiter
	name    string
}

// NewRateLimitedSource creates a new rate limited forecast source.
// rps is the maximum requests per second allowed (can be fractional for less
// than 1 request per second); burst is the maximum burst size allowed.
func NewRateLimitedSource(source Source, rps float64, burst int) *RateLimitedSource {
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedSource{
		source:  source,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		name:    fmt.Sprintf("%s [Rate Limited]", source.Name()),
	}
}

// Fetch waits for limiter permission or context cancellation before
// forwarding to the underlying source.
func (r *RateLimitedSource) Fetch(ctx context.Context, loc Location) (Series, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return Series{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.source.Fetch(ctx, loc)
}

func (r *RateLimitedSource) Name() string { return r.name }

var _ Source = (*RateLimitedSource)(nil)
