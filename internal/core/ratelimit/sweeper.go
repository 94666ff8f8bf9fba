package ratelimit

import (
	"context"
	"time"

	"codenest/internal/platform/logger"
)

// SweeperConfig controls the background eviction loop
type SweeperConfig struct {
	// Every is the sweep interval; defaults to 5 minutes
	Every time.Duration
	// Retention is the max age kept in any window log; defaults to 1 hour
	Retention time.Duration
}

// Sweeper periodically evicts stale entries from one or more trackers so
// memory stays bounded for actors that stopped sending requests
type Sweeper struct {
	cfg      SweeperConfig
	trackers []*Tracker
	log      logger.Logger
}

// NewSweeper constructs a Sweeper over the given trackers
func NewSweeper(cfg SweeperConfig, trackers ...*Tracker) *Sweeper {
	if cfg.Every <= 0 {
		cfg.Every = 5 * time.Minute
	}
	if cfg.Retention <= 0 {
		cfg.Retention = time.Hour
	}
	return &Sweeper{cfg: cfg, trackers: trackers, log: *logger.Named("ratelimit")}
}

// Run sweeps on a fixed interval until ctx is cancelled
// runs independently of request traffic
func (s *Sweeper) Run(ctx context.Context) error {
	t := time.NewTicker(s.cfg.Every)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			removed := 0
			for _, tr := range s.trackers {
				removed += tr.Sweep(s.cfg.Retention)
			}
			s.log.Debug().
				Int("actors_removed", removed).
				Dur("retention", s.cfg.Retention).
				Msg("rate limit sweep done")
		}
	}
}
