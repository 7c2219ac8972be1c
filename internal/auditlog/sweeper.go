package auditlog

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Sweeper periodically purges calculation entries older than the retention
// window. A zero retention disables sweeping entirely.
type Sweeper struct {
	Store     Store
	Retention time.Duration
	Interval  time.Duration
	Logger    zerolog.Logger
}

// Run blocks, sweeping on every tick until the context is cancelled.
func (s Sweeper) Run(ctx context.Context) {
	if s.Store == nil || s.Retention <= 0 {
		return
	}
	interval := s.Interval
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

// SweepOnce removes entries past retention and logs the outcome.
func (s Sweeper) SweepOnce(ctx context.Context) {
	cutoff := time.Now().Add(-s.Retention)
	purged, err := s.Store.PurgeCalculationsBefore(ctx, cutoff)
	if err != nil {
		s.Logger.Error().Err(err).Msg("purge calculation log")
		return
	}
	if purged > 0 {
		s.Logger.Info().Int64("purged", purged).Time("cutoff", cutoff).Msg("calculation log retention sweep")
	}
}
