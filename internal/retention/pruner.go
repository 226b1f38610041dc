package retention

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const timeoutDuration = 30 * time.Second

type fetchLogPruner interface {
	Prune(ctx context.Context, before time.Time) (int64, error)
}

// Pruner periodically removes fetch log records older than the retention window.
type Pruner struct {
	repo      fetchLogPruner
	logger    zerolog.Logger
	cron      *cron.Cron
	cancel    context.CancelFunc
	spec      string
	retention time.Duration
	now       func() time.Time
}

func New(repo fetchLogPruner, logger zerolog.Logger, spec string, retention time.Duration) *Pruner {
	logger = logger.With().Str("component", "FetchLogPruner").Logger()
	return &Pruner{
		repo:      repo,
		logger:    logger,
		cron:      cron.New(cron.WithSeconds()),
		spec:      spec,
		retention: retention,
		now:       time.Now,
	}
}

// Start schedules the prune job. An invalid cron spec is returned without starting anything.
func (p *Pruner) Start(ctx context.Context) error {
	if p.retention <= 0 {
		return errors.New("retention window must be positive")
	}

	ctx, cancel := context.WithCancel(ctx)

	if _, err := p.cron.AddFunc(p.spec, func() { p.RunOnce(ctx) }); err != nil {
		cancel()
		p.logger.Error().Err(err).Str("spec", p.spec).Msg("failed to schedule prune job")
		return err
	}

	p.cancel = cancel
	p.cron.Start()
	p.logger.Info().Str("spec", p.spec).Dur("retention", p.retention).Msg("fetch log pruner started")
	return nil
}

// Stop cancels the job context and waits for a running prune to finish.
func (p *Pruner) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	stopCtx := p.cron.Stop()
	<-stopCtx.Done()
	p.logger.Info().Msg("fetch log pruner stopped")
}

// RunOnce deletes every record older than now minus the retention window.
func (p *Pruner) RunOnce(ctx context.Context) int64 {
	ctx, cancel := context.WithTimeout(ctx, timeoutDuration)
	defer cancel()

	cutoff := p.now().Add(-p.retention)
	n, err := p.repo.Prune(ctx, cutoff)
	if err != nil {
		p.logger.Error().Err(err).Time("cutoff", cutoff).Msg("error pruning fetch log")
		return 0
	}

	p.logger.Info().Int64("deleted", n).Time("cutoff", cutoff).Msg("pruned fetch log")
	return n
}
