package workers

import (
	"context"
	"sync"
	"time"

	"github.com/kioskops/fleetconfig/internal/logger"
)

// refreshTimeout bounds one snapshot reload against a slow store.
const refreshTimeout = 30 * time.Second

// RefreshWorker periodically reloads the fleet snapshot from the store so
// that an instance converges on changes applied through another one.
type RefreshWorker struct {
	reloader Reloader
	interval time.Duration
	logger   *logger.Logger

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewRefreshWorker constructs a refresh worker. A non-positive interval
// disables it.
func NewRefreshWorker(reloader Reloader, interval time.Duration, log *logger.Logger) *RefreshWorker {
	return &RefreshWorker{
		reloader: reloader,
		interval: interval,
		logger:   log,
		done:     make(chan struct{}),
	}
}

// Run starts the refresh loop in its own goroutine.
func (w *RefreshWorker) Run() {
	if w.interval <= 0 {
		w.logger.Info().Msg("snapshot refresh worker disabled")
		return
	}

	w.logger.Info().Dur("interval", w.interval).Msg("snapshot refresh worker started")

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.done:
				return
			case <-ticker.C:
				w.refresh()
			}
		}
	}()
}

// Stop terminates the refresh loop and waits for it to finish.
func (w *RefreshWorker) Stop() {
	w.stopOnce.Do(func() { close(w.done) })
	w.wg.Wait()
}

func (w *RefreshWorker) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if err := w.reloader.Reload(ctx); err != nil {
		w.logger.Err(err).Msg("snapshot refresh failed")
		return
	}

	w.logger.Debug().Msg("snapshot refreshed")
}
