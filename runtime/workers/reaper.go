package workers

import (
	"context"
	"log/slog"
	"time"

	"sala-api/services"
)

// ReaperWorker sweeps the room on a fixed interval and evicts
// participants whose lastStatus went stale.
type ReaperWorker struct {
	log      *slog.Logger
	room     services.IRoomService
	interval time.Duration
}

func NewReaperWorker(log *slog.Logger, room services.IRoomService, interval time.Duration) *ReaperWorker {
	return &ReaperWorker{log: log, room: room, interval: interval}
}

// Run executes the sweep loop. A failed sweep is logged and retried on the
// next tick; only context cancellation stops the loop.
func (w *ReaperWorker) Run(ctx context.Context) error {
	w.log.Info("Starting reaper worker", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			removed, err := w.room.ReapInactive(ctx)
			if err != nil {
				w.log.Error("Failed to sweep inactive participants", "err", err)
				continue
			}
			if removed > 0 {
				w.log.Info("Removed inactive participants", "count", removed)
			}
		}
	}
}
