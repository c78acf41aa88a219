package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// TrashPurger removes trashed tasks deleted before a cutoff.
type TrashPurger interface {
	PurgeExpired(ctx context.Context, cutoff time.Time) int
}

// JanitorConfig controls how often the trash is swept and how long trashed
// tasks are retained.
type JanitorConfig struct {
	Interval  time.Duration
	Retention time.Duration
}

// Janitor periodically purges trashed tasks older than the retention period.
type Janitor struct {
	purger TrashPurger
	logger *zap.Logger
	cron   *cron.Cron
	cfg    JanitorConfig
	now    func() time.Time
}

func NewJanitor(purger TrashPurger, logger *zap.Logger, cfg JanitorConfig) *Janitor {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	j := &Janitor{
		purger: purger,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithSeconds()),
		now:    time.Now,
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	if _, err := j.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		j.Sweep(ctx)
	}); err != nil {
		logger.Error("failed to schedule trash sweep", zap.String("schedule", schedule), zap.Error(err))
	}

	return j
}

// Enabled reports whether a retention period is configured.
func (j *Janitor) Enabled() bool {
	return j != nil && j.cfg.Retention > 0 && j.purger != nil
}

// Start launches the cron scheduler when retention is enabled.
func (j *Janitor) Start() {
	if !j.Enabled() {
		return
	}
	j.cron.Start()
	j.logger.Info("trash janitor started",
		zap.Duration("interval", j.cfg.Interval),
		zap.Duration("retention", j.cfg.Retention))
}

// Stop gracefully stops the scheduler.
func (j *Janitor) Stop(ctx context.Context) {
	if !j.Enabled() {
		return
	}
	stopCtx := j.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	j.logger.Info("trash janitor stopped")
}

// Sweep purges expired trash synchronously and returns the number of purged tasks.
func (j *Janitor) Sweep(ctx context.Context) int {
	if !j.Enabled() {
		return 0
	}
	cutoff := j.now().Add(-j.cfg.Retention)
	n := j.purger.PurgeExpired(ctx, cutoff)
	if n > 0 {
		j.logger.Info("expired trash purged", zap.Int("purged", n), zap.Time("cutoff", cutoff))
	}
	return n
}
