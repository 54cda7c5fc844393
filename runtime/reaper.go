package runtime

import (
	"context"
	"log/slog"
	"time"
)

// Reaper periodically removes never-joined sessions that outlived their TTL.
type Reaper struct {
	log      *slog.Logger
	registry *SessionRegistry
	ttl      time.Duration
	interval time.Duration
}

func NewReaper(log *slog.Logger, registry *SessionRegistry, ttl, interval time.Duration) *Reaper {
	return &Reaper{log: log, registry: registry, ttl: ttl, interval: interval}
}

// Run blocks until the context is cancelled.
func (r *Reaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info("reaper stopped")
			return
		case <-ticker.C:
			if removed := r.registry.Reap(r.ttl); removed > 0 {
				r.log.Info("sessions reaped", "count", removed)
			}
		}
	}
}
