package observations

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/papana-farm/metdash/internal/models"
)

const recordTimeout = 5 * time.Second

type provider interface {
	Fetch(ctx context.Context, q models.Query) (models.Grid, error)
}

type fetchRecorder interface {
	Insert(ctx context.Context, rec models.FetchRecord) (int64, error)
}

type fetchObserver interface {
	ObserveFetch(variable string, ok bool, rows int, d time.Duration)
}

// Service performs one provider round trip per trigger and never caches the series.
type Service struct {
	logger   zerolog.Logger
	provider provider
	recorder fetchRecorder
	observer fetchObserver
	timeout  time.Duration
	now      func() time.Time
}

func NewService(
	logger zerolog.Logger,
	p provider,
	recorder fetchRecorder,
	observer fetchObserver,
	timeout time.Duration,
) *Service {
	return &Service{
		logger:   logger.With().Str("component", "ObservationService").Logger(),
		provider: p,
		recorder: recorder,
		observer: observer,
		timeout:  timeout,
		now:      time.Now,
	}
}

// Fetch never returns an error: every failure is folded into a Failure result.
func (s *Service) Fetch(ctx context.Context, sessionID string, q models.Query) models.FetchResult {
	start := s.now()

	s.logger.Info().
		Ctx(ctx).
		Str("place", q.Place).
		Str("variable", string(q.Variable)).
		Str("timedomain", q.TimeDomain.String()).
		Str("lalodomain", q.BoundingBox.String()).
		Msg("fetching hourly data")

	result := s.fetch(ctx, q)
	dur := s.now().Sub(start)

	if result.OK {
		s.logger.Info().Ctx(ctx).Int("rows", result.Series.Len()).Dur("duration", dur).Msg("fetch succeeded")
	} else {
		s.logger.Error().Ctx(ctx).Err(result.Err).Dur("duration", dur).Msg("fetch failed")
	}

	s.record(ctx, sessionID, result, start, dur)
	return result
}

func (s *Service) fetch(ctx context.Context, q models.Query) models.FetchResult {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	grid, err := s.provider.Fetch(ctx, q)
	if err != nil {
		return models.Failure(q, err)
	}

	series, err := models.ReduceToPoint(grid)
	if err != nil {
		return models.Failure(q, err)
	}
	return models.Success(q, series)
}

func (s *Service) record(ctx context.Context, sessionID string, r models.FetchResult, start time.Time, dur time.Duration) {
	rows := 0
	errText := ""
	if r.OK {
		rows = r.Series.Len()
	} else if r.Err != nil {
		errText = r.Err.Error()
	}

	s.observer.ObserveFetch(string(r.Query.Variable), r.OK, rows, dur)

	// The audit row is written even when the client has already gone away.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	_, err := s.recorder.Insert(ctx, models.FetchRecord{
		SessionID:  sessionID,
		Place:      r.Query.Place,
		Variable:   r.Query.Variable,
		TimeDomain: r.Query.TimeDomain.String(),
		Bbox:       r.Query.BoundingBox.String(),
		OK:         r.OK,
		Rows:       rows,
		Error:      errText,
		Duration:   dur,
		CreatedAt:  start,
	})
	if err != nil {
		s.logger.Warn().Ctx(ctx).Err(err).Msg("failed to record fetch")
	}
}
