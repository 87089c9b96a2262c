package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kioskops/fleetconfig/models"
)

func mondaySchedule(t *testing.T) json.RawMessage {
	t.Helper()

	s := models.WeeklySchedule{Timezone: "America/New_York"}
	s.Days[1] = models.DaySchedule{
		Enabled: true,
		Slots:   []models.TimeSlot{{Start: "09:00", End: "17:00"}},
	}
	return mustJSON(t, s)
}

func TestSetOverrideScopeTransitions(t *testing.T) {
	services, _ := newTestServices(t)
	resolver := services.OverrideResolver
	ctx := context.Background()

	effective, err := resolver.ComputeEffective(ctx, "kiosk-1")
	require.NoError(t, err)
	assert.Equal(t, models.ScopeGlobal, effective.Scope)
	assert.Equal(t, 0, effective.OverrideCount)

	state, err := resolver.SetOverride(ctx, "kiosk-1", models.DomainStatus,
		mustJSON(t, models.StatusConfig{State: models.StateMeeting, Message: "Back soon"}))
	require.NoError(t, err)
	assert.Equal(t, models.ScopeIndividual, state.Scope)
	assert.Equal(t, 1, state.OverrideCount)

	state, err = resolver.SetOverride(ctx, "kiosk-1", models.DomainBranding,
		mustJSON(t, models.BrandingConfig{ProductName: "Lobby Kiosk"}))
	require.NoError(t, err)
	assert.Equal(t, 2, state.OverrideCount)

	// Re-setting an already overridden domain must not change the count.
	state, err = resolver.SetOverride(ctx, "kiosk-1", models.DomainStatus,
		mustJSON(t, models.StatusConfig{State: models.StateBRB}))
	require.NoError(t, err)
	assert.Equal(t, 2, state.OverrideCount)

	state, err = resolver.RemoveOverride(ctx, "kiosk-1", models.DomainStatus)
	require.NoError(t, err)
	assert.Equal(t, models.ScopeIndividual, state.Scope)
	assert.Equal(t, 1, state.OverrideCount)

	state, err = resolver.RemoveOverride(ctx, "kiosk-1", models.DomainBranding)
	require.NoError(t, err)
	assert.Equal(t, models.ScopeGlobal, state.Scope)
	assert.Equal(t, 0, state.OverrideCount)
}

func TestRemoveAbsentOverrideIsNoop(t *testing.T) {
	services, _ := newTestServices(t)
	ctx := context.Background()

	state, err := services.OverrideResolver.RemoveOverride(ctx, "kiosk-1", models.DomainSchedule)
	require.NoError(t, err)
	assert.Equal(t, models.ScopeGlobal, state.Scope)
	assert.Equal(t, 0, state.OverrideCount)
}

func TestSetOverrideUnknownKiosk(t *testing.T) {
	services, _ := newTestServices(t)
	ctx := context.Background()

	_, err := services.OverrideResolver.SetOverride(ctx, "ghost", models.DomainStatus,
		mustJSON(t, models.StatusConfig{State: models.StateOpen}))
	assert.ErrorIs(t, err, ErrUnknownKiosk)

	_, err = services.OverrideResolver.ComputeEffective(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUnknownKiosk)
}

func TestSetOverrideUnknownDomain(t *testing.T) {
	services, _ := newTestServices(t)

	_, err := services.OverrideResolver.SetOverride(context.Background(), "kiosk-1", "wallpaper",
		json.RawMessage(`{}`))
	assert.ErrorIs(t, err, ErrUnknownDomain)
}

func TestSetOverrideInvalidPayload(t *testing.T) {
	services, _ := newTestServices(t)
	resolver := services.OverrideResolver
	ctx := context.Background()

	tests := []struct {
		name    string
		domain  models.Domain
		payload json.RawMessage
	}{
		{
			name:    "unknown json field",
			domain:  models.DomainStatus,
			payload: json.RawMessage(`{"state":"open","wallpaper":"blue"}`),
		},
		{
			name:    "unrecognized display state",
			domain:  models.DomainStatus,
			payload: json.RawMessage(`{"state":"party"}`),
		},
		{
			name:    "empty product name",
			domain:  models.DomainBranding,
			payload: json.RawMessage(`{"productName":""}`),
		},
		{
			name:   "overlapping slots",
			domain: models.DomainSchedule,
			payload: func() json.RawMessage {
				s := models.WeeklySchedule{Timezone: "UTC"}
				s.Days[1] = models.DaySchedule{
					Enabled: true,
					Slots: []models.TimeSlot{
						{Start: "09:00", End: "12:00"},
						{Start: "11:00", End: "17:00"},
					},
				}
				return mustJSON(t, s)
			}(),
		},
		{
			name:    "malformed json",
			domain:  models.DomainBranding,
			payload: json.RawMessage(`{"productName":`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolver.SetOverride(ctx, "kiosk-1", tt.domain, tt.payload)
			assert.ErrorIs(t, err, ErrValidation)

			effective, err := resolver.ComputeEffective(ctx, "kiosk-1")
			require.NoError(t, err)
			assert.Equal(t, 0, effective.OverrideCount, "rejected payload must not be stored")
		})
	}
}

func TestComputeEffectiveMergesPerDomain(t *testing.T) {
	services, _ := newTestServices(t)
	resolver := services.OverrideResolver
	ctx := context.Background()

	_, err := services.KioskService.RegisterKiosk(ctx, models.Kiosk{KioskID: "kiosk-2", Name: "Annex"})
	require.NoError(t, err)

	err = resolver.SetGlobalDefault(ctx, models.DomainBranding,
		mustJSON(t, models.BrandingConfig{ProductName: "Fleet Default", PrimaryColor: "#003366"}))
	require.NoError(t, err)

	_, err = resolver.SetOverride(ctx, "kiosk-1", models.DomainStatus,
		mustJSON(t, models.StatusConfig{State: models.StateLunch, Message: "Out to lunch"}))
	require.NoError(t, err)

	effective, err := resolver.ComputeEffective(ctx, "kiosk-1")
	require.NoError(t, err)
	assert.Equal(t, models.StateLunch, effective.Status.State, "overridden domain comes from the override")
	assert.Equal(t, "Fleet Default", effective.Branding.ProductName, "untouched domain falls back to global")
	assert.Equal(t, models.ScopeIndividual, effective.Scope)

	other, err := resolver.ComputeEffective(ctx, "kiosk-2")
	require.NoError(t, err)
	assert.Equal(t, models.ScopeGlobal, other.Scope, "override on one kiosk must not leak to another")
	assert.Equal(t, "Fleet Default", other.Branding.ProductName)
}

func TestSetGlobalDefaultVisibleUnderOverride(t *testing.T) {
	services, _ := newTestServices(t)
	resolver := services.OverrideResolver
	ctx := context.Background()

	_, err := resolver.SetOverride(ctx, "kiosk-1", models.DomainSchedule, mondaySchedule(t))
	require.NoError(t, err)

	// A later global schedule change must not shine through the override.
	global := models.WeeklySchedule{Timezone: "UTC"}
	global.Days[3] = models.DaySchedule{
		Enabled: true,
		Slots:   []models.TimeSlot{{Start: "08:00", End: "16:00"}},
	}
	require.NoError(t, resolver.SetGlobalDefault(ctx, models.DomainSchedule, mustJSON(t, global)))

	effective, err := resolver.ComputeEffective(ctx, "kiosk-1")
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", effective.Schedule.Timezone)

	_, err = resolver.RemoveOverride(ctx, "kiosk-1", models.DomainSchedule)
	require.NoError(t, err)

	effective, err = resolver.ComputeEffective(ctx, "kiosk-1")
	require.NoError(t, err)
	assert.Equal(t, "UTC", effective.Schedule.Timezone, "removal falls back to the current global value")
}

func TestSetOverrideWritesThrough(t *testing.T) {
	services, storages := newTestServices(t)
	ctx := context.Background()

	_, err := services.OverrideResolver.SetOverride(ctx, "kiosk-1", models.DomainStatus,
		mustJSON(t, models.StatusConfig{State: models.StateUnavailable}))
	require.NoError(t, err)

	stored, err := storages.ConfigRepository.GetOverrides(ctx, "kiosk-1")
	require.NoError(t, err)
	require.NotNil(t, stored.Status)
	assert.Equal(t, models.StateUnavailable, stored.Status.State)
}
