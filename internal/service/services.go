// Package service implements the configuration core: override resolution,
// schedule-aware effective config, the kiosk registry, and the PIN
// registry.
//
// All services share one in-memory fleet snapshot. Reads are pure over the
// snapshot and never touch storage; mutations validate, write through to
// the store, then update the snapshot.
package service

import (
	"context"
	"fmt"

	"github.com/kioskops/fleetconfig/internal/config"
	"github.com/kioskops/fleetconfig/internal/logger"
	"github.com/kioskops/fleetconfig/internal/store"
	"github.com/kioskops/fleetconfig/internal/validators"
)

// Services aggregates the service layer behind its interfaces.
type Services struct {
	OverrideResolver OverrideResolver
	KioskService     KioskService
	PinRegistry      PinRegistry

	state    *fleetState
	storages store.Storages
}

// NewServices loads the fleet snapshot from storages and wires the three
// services over it.
func NewServices(ctx context.Context, storages store.Storages, cfg *config.StructuredConfig, log *logger.Logger) (*Services, error) {
	state := newFleetState()
	if err := state.load(ctx, storages); err != nil {
		return nil, fmt.Errorf("loading fleet snapshot: %w", err)
	}

	return &Services{
		OverrideResolver: NewOverrideResolver(state, storages.ConfigRepository, validators.NewOverridePayloadValidator(), log),
		KioskService:     NewKioskService(state, storages.KioskRepository, log),
		PinRegistry:      NewPinRegistry(state, storages.PinRepository, NewFixedTTLPolicy(cfg.App.SessionTTL), log),
		state:            state,
		storages:         storages,
	}, nil
}

// Reload refreshes the in-memory snapshot from storage. The refresh worker
// calls this periodically so replicas converge on changes applied through
// another instance.
func (s *Services) Reload(ctx context.Context) error {
	return s.state.load(ctx, s.storages)
}
