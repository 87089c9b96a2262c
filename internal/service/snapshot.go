package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/kioskops/fleetconfig/internal/store"
	"github.com/kioskops/fleetconfig/models"
)

// fleetState is the in-memory snapshot the services read from. Reads take
// the RWMutex in read mode and compute purely over the maps; mutations
// write through to the store first and then update the snapshot, so the
// maps never get ahead of durable state.
type fleetState struct {
	mu        sync.RWMutex
	global    models.GlobalConfig
	kiosks    map[string]models.Kiosk
	overrides map[string]models.KioskOverride
	pins      map[string]models.PinAssignment

	// kioskLocks serializes configuration mutations per kiosk; the empty
	// ID serializes global-default mutations. pinMu serializes all PIN
	// mutations in one queue because PIN uniqueness spans scopes.
	kioskLocks sync.Map
	pinMu      sync.Mutex
}

func newFleetState() *fleetState {
	return &fleetState{
		kiosks:    make(map[string]models.Kiosk),
		overrides: make(map[string]models.KioskOverride),
		pins:      make(map[string]models.PinAssignment),
	}
}

// pinKey builds the map key of one PIN assignment slot.
func pinKey(scope models.PinScope, kioskID string) string {
	return string(scope) + "/" + kioskID
}

// load replaces the snapshot with the current store contents. Safe to call
// concurrently with readers; they see either the old or the new snapshot.
func (s *fleetState) load(ctx context.Context, storages store.Storages) error {
	global, err := storages.ConfigRepository.GetGlobalConfig(ctx)
	if err != nil {
		return fmt.Errorf("loading global config: %w", err)
	}

	kioskList, err := storages.KioskRepository.ListKiosks(ctx)
	if err != nil {
		return fmt.Errorf("loading kiosks: %w", err)
	}

	overrides, err := storages.ConfigRepository.ListOverrides(ctx)
	if err != nil {
		return fmt.Errorf("loading overrides: %w", err)
	}

	assignments, err := storages.PinRepository.ListPinAssignments(ctx)
	if err != nil {
		return fmt.Errorf("loading pin assignments: %w", err)
	}

	kiosks := make(map[string]models.Kiosk, len(kioskList))
	for _, kiosk := range kioskList {
		kiosks[kiosk.KioskID] = kiosk
	}

	pins := make(map[string]models.PinAssignment, len(assignments))
	for _, assignment := range assignments {
		pins[pinKey(assignment.Scope, assignment.KioskID)] = assignment
	}

	s.mu.Lock()
	s.global = global
	s.kiosks = kiosks
	s.overrides = overrides
	s.pins = pins
	s.mu.Unlock()

	return nil
}

// mutationLock returns the mutex serializing configuration mutations of one
// kiosk. The empty ID is the global-default queue.
func (s *fleetState) mutationLock(kioskID string) *sync.Mutex {
	actual, _ := s.kioskLocks.LoadOrStore(kioskID, &sync.Mutex{})
	return actual.(*sync.Mutex)
}

func (s *fleetState) hasKiosk(kioskID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.kiosks[kioskID]
	return ok
}
