package amd_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/papana-farm/metdash/internal/models"
	"github.com/papana-farm/metdash/internal/services/amd"
)

var breakerCfg = amd.BreakerConfig{
	TimeInterval: 30 * time.Second,
	TimeTimeOut:  15 * time.Second,
	RepeatNumber: 5,
}

const breakerName = "AMD"

type mockWrapped struct {
	mock.Mock
}

func (m *mockWrapped) Fetch(ctx context.Context, q models.Query) (models.Grid, error) {
	args := m.Called(ctx, q)
	data, ok := args.Get(0).(models.Grid)
	if !ok {
		return models.Grid{}, args.Error(1)
	}
	return data, args.Error(1)
}

func TestBreakerClient_Success(t *testing.T) {
	q := inaQuery(t)
	wrapped := new(mockWrapped)
	expected := models.Grid{Name: "気温", Unit: "℃"}

	wrapped.On("Fetch", mock.Anything, q).Return(expected, nil).Once()

	bc := amd.NewBreakerClient(breakerName, breakerCfg, wrapped)

	data, err := bc.Fetch(context.Background(), q)
	assert.NoError(t, err)
	assert.Equal(t, expected, data)
	assert.Equal(t, "closed", bc.State())

	wrapped.AssertExpectations(t)
}

func TestBreakerClient_UnderlyingErrorBeforeTrip(t *testing.T) {
	q := inaQuery(t)
	wrapped := new(mockWrapped)
	underlyingErr := errors.New("service down")

	wrapped.On("Fetch", mock.Anything, q).Return(models.Grid{}, underlyingErr).Once()

	bc := amd.NewBreakerClient(breakerName, breakerCfg, wrapped)

	data, err := bc.Fetch(context.Background(), q)
	assert.Error(t, err)
	assert.ErrorIs(t, err, underlyingErr)
	assert.Empty(t, data)
	assert.Contains(t, err.Error(), breakerName+" unavailable: "+underlyingErr.Error())

	wrapped.AssertNumberOfCalls(t, "Fetch", 1)
}

func TestBreakerClient_TripCircuitAfterFiveFailures(t *testing.T) {
	q := inaQuery(t)
	wrapped := new(mockWrapped)
	underlyingErr := errors.New("timeout")

	wrapped.On("Fetch", mock.Anything, q).Return(models.Grid{}, underlyingErr).Times(5)

	bc := amd.NewBreakerClient(breakerName, breakerCfg, wrapped)

	for i := 1; i <= 5; i++ {
		_, err := bc.Fetch(context.Background(), q)
		assert.Error(t, err, "call #%d should error before trip", i)
		assert.Contains(t, err.Error(), breakerName+" unavailable: "+underlyingErr.Error())
	}

	_, err := bc.Fetch(context.Background(), q)
	assert.Error(t, err)
	assert.True(t,
		strings.Contains(err.Error(), "circuit breaker is open"),
		"6th call should return open-circuit error",
	)
	assert.Equal(t, "open", bc.State())

	wrapped.AssertExpectations(t)
	wrapped.AssertNumberOfCalls(t, "Fetch", 5)
}

// ctxAwareProvider is healthy but honours cancellation the way the HTTP client does.
type ctxAwareProvider struct {
	calls int
}

func (p *ctxAwareProvider) Fetch(ctx context.Context, _ models.Query) (models.Grid, error) {
	p.calls++
	if err := ctx.Err(); err != nil {
		return models.Grid{}, err
	}
	return models.Grid{Name: "気温"}, nil
}

func TestBreakerClient_CancelledCallersDoNotTrip(t *testing.T) {
	q := inaQuery(t)
	provider := &ctxAwareProvider{}
	bc := amd.NewBreakerClient(breakerName, breakerCfg, provider)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	for i := 0; i < 10; i++ {
		_, err := bc.Fetch(cancelled, q)
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, "closed", bc.State())
	assert.Zero(t, provider.calls, "cancelled requests never reach the provider")

	grid, err := bc.Fetch(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, "気温", grid.Name)
}

func TestBreakerClient_CancellationMidFlightIsNotAFailure(t *testing.T) {
	q := inaQuery(t)
	wrapped := new(mockWrapped)
	wrapped.On("Fetch", mock.Anything, q).
		Return(models.Grid{}, fmt.Errorf("Get \"http://amd/hourly\": %w", context.Canceled)).Times(6)

	bc := amd.NewBreakerClient(breakerName, breakerCfg, wrapped)

	for i := 0; i < 6; i++ {
		_, err := bc.Fetch(context.Background(), q)
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, "closed", bc.State())
	wrapped.AssertNumberOfCalls(t, "Fetch", 6)
}

func TestBreakerClient_RateLimitWaitIsNotAFailure(t *testing.T) {
	q := inaQuery(t)
	wrapped := new(mockWrapped)
	wrapped.On("Fetch", mock.Anything, q).
		Return(models.Grid{}, fmt.Errorf("%w: %w", amd.ErrRateLimitWait, errors.New("would exceed context deadline"))).Times(6)

	bc := amd.NewBreakerClient(breakerName, breakerCfg, wrapped)

	for i := 0; i < 6; i++ {
		_, err := bc.Fetch(context.Background(), q)
		assert.ErrorIs(t, err, amd.ErrRateLimitWait)
	}
	assert.Equal(t, "closed", bc.State())
}

func TestBreakerClient_FetchTimeoutCountsAsFailure(t *testing.T) {
	q := inaQuery(t)
	wrapped := new(mockWrapped)
	wrapped.On("Fetch", mock.Anything, q).Return(models.Grid{}, context.DeadlineExceeded).Times(5)

	bc := amd.NewBreakerClient(breakerName, breakerCfg, wrapped)

	for i := 0; i < 5; i++ {
		_, err := bc.Fetch(context.Background(), q)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	}
	assert.Equal(t, "open", bc.State())
}
