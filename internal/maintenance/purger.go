// Package maintenance runs background housekeeping: used and expired
// verification codes are deleted on a schedule.
package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ErlanBelekov/blog-platform/internal/metrics"
	"github.com/ErlanBelekov/blog-platform/internal/repository"
	"github.com/robfig/cron/v3"
)

const purgeBatchSize = 500

// Purger deletes expired and used verification codes on a cron schedule.
type Purger struct {
	codes    repository.VerificationCodeRepository
	schedule cron.Schedule
	logger   *slog.Logger
}

// NewPurger parses the cron expression (standard 5-field specs and
// descriptors like "@every 10m" are accepted) and returns a purger.
func NewPurger(codes repository.VerificationCodeRepository, cronExpr string, logger *slog.Logger) (*Purger, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("parse purge cron %q: %w", cronExpr, err)
	}

	return &Purger{
		codes:    codes,
		schedule: schedule,
		logger:   logger.With("component", "purger"),
	}, nil
}

// Start runs purge cycles until ctx is cancelled.
func (p *Purger) Start(ctx context.Context) {
	p.logger.Info("purger started")

	for {
		next := p.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			p.logger.Info("purger shut down")
			return
		case <-timer.C:
			p.purge(ctx)
		}
	}
}

func (p *Purger) purge(ctx context.Context) {
	start := time.Now()

	var total int64
	for {
		deleted, err := p.codes.DeleteExpired(ctx, time.Now(), purgeBatchSize)
		if err != nil {
			p.logger.Error("purge verification codes", "error", err)
			break
		}
		total += deleted
		if deleted < purgeBatchSize {
			break
		}
	}

	metrics.PurgeCycleDuration.Observe(time.Since(start).Seconds())
	if total > 0 {
		metrics.CodesPurgedTotal.Add(float64(total))
		p.logger.Info("purged verification codes", "count", total)
	}
}
