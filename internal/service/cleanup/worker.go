package cleanup

import (
	"context"
	"log"
	"time"
)

// IdleSessionCleaner is what the worker prunes.
type IdleSessionCleaner interface {
	CleanupIdleSessions(maxIdle time.Duration) int
}

type Worker struct {
	Sessions IdleSessionCleaner
	Interval time.Duration
	MaxIdle  time.Duration
}

func NewWorker(sessions IdleSessionCleaner, interval, maxIdle time.Duration) *Worker {
	return &Worker{Sessions: sessions, Interval: interval, MaxIdle: maxIdle}
}

// Start runs one cleanup right away and then every Interval until ctx is done.
func (w *Worker) Start(ctx context.Context) {
	log.Println("[CLEANUP] Background worker started")

	w.runCleanup()

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[CLEANUP] Background worker stopped")
			return
		case <-ticker.C:
			w.runCleanup()
		}
	}
}

// runCleanup executes the actual cleanup logic
func (w *Worker) runCleanup() int {
	removed := w.Sessions.CleanupIdleSessions(w.MaxIdle)
	if removed > 0 {
		log.Printf("[CLEANUP] Removed %d idle sessions", removed)
	}
	return removed
}
