package amd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/papana-farm/metdash/internal/models"
)

type client interface {
	Fetch(ctx context.Context, q models.Query) (models.Grid, error)
}

type BreakerConfig struct {
	TimeInterval time.Duration
	TimeTimeOut  time.Duration
	RepeatNumber uint32
}

// BreakerClient opens after RepeatNumber consecutive provider failures and fails fast
// until TimeTimeOut has passed.
type BreakerClient struct {
	name    string
	cb      *gobreaker.CircuitBreaker
	wrapped client
}

func NewBreakerClient(name string, cfg BreakerConfig, wrapped client) *BreakerClient {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    cfg.TimeInterval,
		Timeout:     cfg.TimeTimeOut,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.RepeatNumber
		},
		IsSuccessful: providerHealthy,
	}
	return &BreakerClient{
		name:    name,
		cb:      gobreaker.NewCircuitBreaker(settings),
		wrapped: wrapped,
	}
}

// providerHealthy decides what counts against the provider. A caller that went away or a
// limiter wait that never reached AMD says nothing about AMD. A deadline does: the fetch
// timeout is ours and firing it means AMD was too slow.
func providerHealthy(err error) bool {
	return err == nil ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, ErrRateLimitWait)
}

func (b *BreakerClient) Fetch(ctx context.Context, q models.Query) (models.Grid, error) {
	// A request cancelled before it starts must not occupy the half-open trial slot.
	if err := ctx.Err(); errors.Is(err, context.Canceled) {
		return models.Grid{}, err
	}

	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.wrapped.Fetch(ctx, q)
	})
	if err != nil {
		return models.Grid{}, fmt.Errorf("%s unavailable: %w", b.name, err)
	}
	grid, ok := result.(models.Grid)
	if !ok {
		return models.Grid{}, fmt.Errorf("%s returned unexpected result", b.name)
	}
	return grid, nil
}

func (b *BreakerClient) State() string {
	return b.cb.State().String()
}
