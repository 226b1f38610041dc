package amd

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/papana-farm/metdash/internal/models"
)

// ErrRateLimitWait marks a request that never left the process because the limiter wait failed.
var ErrRateLimitWait = errors.New("rate limit wait")

// RateLimitedClient keeps the request rate towards AMD under a fixed budget.
type RateLimitedClient struct {
	limiter *rate.Limiter
	wrapped client
}

func NewRateLimitedClient(perSecond float64, burst int, wrapped client) *RateLimitedClient {
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedClient{
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
		wrapped: wrapped,
	}
}

func (r *RateLimitedClient) Fetch(ctx context.Context, q models.Query) (models.Grid, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return models.Grid{}, fmt.Errorf("%w: %w", ErrRateLimitWait, err)
	}
	return r.wrapped.Fetch(ctx, q)
}
