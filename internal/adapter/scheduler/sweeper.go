// Package scheduler runs the periodic expiry sweep over abandoned checkouts.
package scheduler

import (
	"context"
	"time"

	"github.com/MikeRez0/studiocheckout/internal/core/port"
	"go.uber.org/zap"
)

const DefaultInterval = time.Minute

type Sweeper struct {
	expirer  port.OrderExpirer
	interval time.Duration
	logger   *zap.Logger
	clock    func() time.Time
}

func NewSweeper(expirer port.OrderExpirer, interval time.Duration, logger *zap.Logger) *Sweeper {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Sweeper{
		expirer:  expirer,
		interval: interval,
		logger:   logger,
		clock:    time.Now,
	}
}

// Run sweeps once right away, picking up orders a previous process left open,
// then on every tick until ctx is done.
func (s *Sweeper) Run(ctx context.Context) {
	s.logger.Info("Expiry sweeper started", zap.Duration("interval", s.interval))

	s.SweepOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Expiry sweeper stopped")
			return
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

// SweepOnce expires stale orders in batches until a batch comes back empty.
func (s *Sweeper) SweepOnce(ctx context.Context) int {
	total := 0
	for ctx.Err() == nil {
		n, err := s.expirer.ExpireStale(ctx, s.clock())
		if err != nil {
			s.logger.Error("Expire stale orders", zap.Error(err))
			break
		}
		if n == 0 {
			break
		}
		total += n
	}

	if total > 0 {
		s.logger.Info("Stale orders expired", zap.Int("count", total))
	}
	return total
}
