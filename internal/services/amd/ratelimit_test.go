package amd_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/papana-farm/metdash/internal/models"
	"github.com/papana-farm/metdash/internal/services/amd"
)

func TestRateLimitedClient_PassesThroughWithinBurst(t *testing.T) {
	q := inaQuery(t)
	wrapped := new(mockWrapped)
	wrapped.On("Fetch", mock.Anything, q).Return(models.Grid{Name: "気温"}, nil).Twice()

	rl := amd.NewRateLimitedClient(1, 2, wrapped)

	for i := 0; i < 2; i++ {
		grid, err := rl.Fetch(context.Background(), q)
		require.NoError(t, err)
		assert.Equal(t, "気温", grid.Name)
	}
	wrapped.AssertExpectations(t)
}

func TestRateLimitedClient_HonoursCancelledContext(t *testing.T) {
	q := inaQuery(t)
	wrapped := new(mockWrapped)
	wrapped.On("Fetch", mock.Anything, q).Return(models.Grid{}, nil).Once()

	// One token per hour: the second call cannot be served before ctx is cancelled.
	rl := amd.NewRateLimitedClient(1.0/3600, 1, wrapped)

	_, err := rl.Fetch(context.Background(), q)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = rl.Fetch(ctx, q)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit wait")
	assert.ErrorIs(t, err, amd.ErrRateLimitWait)
	assert.ErrorIs(t, err, context.Canceled)
	wrapped.AssertNumberOfCalls(t, "Fetch", 1)
}
