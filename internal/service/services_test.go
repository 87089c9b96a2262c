package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kioskops/fleetconfig/internal/config"
	"github.com/kioskops/fleetconfig/internal/logger"
	"github.com/kioskops/fleetconfig/internal/store"
	"github.com/kioskops/fleetconfig/models"
)

func newTestServices(t *testing.T) (*Services, store.Storages) {
	t.Helper()

	memory := store.NewMemoryStore()
	storages := store.Storages{
		KioskRepository:  memory,
		ConfigRepository: memory,
		PinRepository:    memory,
	}

	cfg := &config.StructuredConfig{App: config.App{SessionTTL: time.Hour}}

	services, err := NewServices(context.Background(), storages, cfg, logger.Nop())
	require.NoError(t, err)

	_, err = services.KioskService.RegisterKiosk(context.Background(), models.Kiosk{KioskID: "kiosk-1", Name: "Lobby"})
	require.NoError(t, err)

	return services, storages
}

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestServicesReload(t *testing.T) {
	services, storages := newTestServices(t)
	ctx := context.Background()

	// Simulate another instance writing an override straight to the store.
	payload := mustJSON(t, models.StatusConfig{State: models.StateMeeting})
	require.NoError(t, storages.ConfigRepository.PutOverride(ctx, "kiosk-1", models.DomainStatus, payload))

	effective, err := services.OverrideResolver.ComputeEffective(ctx, "kiosk-1")
	require.NoError(t, err)
	require.Equal(t, 0, effective.OverrideCount, "snapshot must not see the write before reload")

	require.NoError(t, services.Reload(ctx))

	effective, err = services.OverrideResolver.ComputeEffective(ctx, "kiosk-1")
	require.NoError(t, err)
	require.Equal(t, 1, effective.OverrideCount)
	require.Equal(t, models.StateMeeting, effective.Status.State)
}
