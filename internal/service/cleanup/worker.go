package cleanup

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// IdleCleaner is implemented by game.SessionManager.
type IdleCleaner interface {
	CleanupIdle(now time.Time, maxIdle time.Duration) int
}

type Worker struct {
	Sessions IdleCleaner
	Interval time.Duration
	MaxIdle  time.Duration
}

func NewWorker(sessions IdleCleaner, interval, maxIdle time.Duration) *Worker {
	return &Worker{Sessions: sessions, Interval: interval, MaxIdle: maxIdle}
}

// Start runs one cleanup pass right away and then one per interval until ctx
// is cancelled. It blocks, so callers usually run it in a goroutine.
func (w *Worker) Start(ctx context.Context) {
	log.Info().Str("component", "CLEANUP").Dur("interval", w.Interval).Msg("background worker started")
	w.runCleanup()

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("component", "CLEANUP").Msg("background worker stopped")
			return
		case <-ticker.C:
			w.runCleanup()
		}
	}
}

// runCleanup executes the actual cleanup logic
func (w *Worker) runCleanup() int {
	removed := w.Sessions.CleanupIdle(time.Now(), w.MaxIdle)
	log.Debug().Str("component", "CLEANUP").Int("removed", removed).Msg("cleanup pass finished")
	return removed
}
