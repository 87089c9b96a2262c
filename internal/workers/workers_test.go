package workers

import (
	"context"
	"testing"
	"time"

	"github.com/kioskops/fleetconfig/internal/logger"
)

// mockWorker tracks how many times Run and Stop were called.
type mockWorker struct {
	runCount  int
	stopCount int
}

func (m *mockWorker) Run()  { m.runCount++ }
func (m *mockWorker) Stop() { m.stopCount++ }

func TestWorkers_RunAndStop_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ws := NewWorkers(w1, w2, w3)
	ws.Run()
	ws.Stop()

	for i, w := range []*mockWorker{w1, w2, w3} {
		if w.runCount != 1 {
			t.Errorf("worker[%d]: expected runCount=1, got %d", i, w.runCount)
		}
		if w.stopCount != 1 {
			t.Errorf("worker[%d]: expected stopCount=1, got %d", i, w.stopCount)
		}
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := NewWorkers()

	// Should not panic on empty workers list
	ws.Run()
	ws.Stop()
}

// signalingReloader signals on a channel every time Reload is called.
type signalingReloader struct {
	reloaded chan struct{}
}

func (r *signalingReloader) Reload(context.Context) error {
	select {
	case r.reloaded <- struct{}{}:
	default:
	}
	return nil
}

func TestRefreshWorker_Reloads(t *testing.T) {
	reloader := &signalingReloader{reloaded: make(chan struct{}, 1)}

	worker := NewRefreshWorker(reloader, 5*time.Millisecond, logger.Nop())
	worker.Run()
	defer worker.Stop()

	select {
	case <-reloader.reloaded:
	case <-time.After(2 * time.Second):
		t.Fatal("expected at least one reload within 2s")
	}
}

func TestRefreshWorker_DisabledWithoutInterval(t *testing.T) {
	reloader := &signalingReloader{reloaded: make(chan struct{}, 1)}

	worker := NewRefreshWorker(reloader, 0, logger.Nop())
	worker.Run()
	worker.Stop()

	select {
	case <-reloader.reloaded:
		t.Fatal("disabled worker must never reload")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRefreshWorker_StopIsIdempotent(t *testing.T) {
	reloader := &signalingReloader{reloaded: make(chan struct{}, 1)}

	worker := NewRefreshWorker(reloader, time.Millisecond, logger.Nop())
	worker.Run()
	worker.Stop()
	worker.Stop()
}
