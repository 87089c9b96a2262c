// Package workers provides the background workers of the service and an
// aggregate to run them in a unified way.
package workers

import "context"

// Worker is implemented by every background worker. Run starts the
// worker's goroutine and returns immediately; Stop blocks until the worker
// has finished.
type Worker interface {
	Run()
	Stop()
}

// Reloader refreshes an in-memory snapshot from its backing store. The
// service layer's Services satisfies it.
type Reloader interface {
	Reload(ctx context.Context) error
}
