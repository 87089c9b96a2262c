package workers

// Workers aggregates the background workers of the service.
type Workers struct {
	workers []Worker
}

// NewWorkers bundles the given workers.
func NewWorkers(ws ...Worker) *Workers {
	return &Workers{workers: ws}
}

// Run starts every worker in registration order.
func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

// Stop stops every worker and waits for each to finish.
func (w *Workers) Stop() {
	for _, worker := range w.workers {
		worker.Stop()
	}
}
