package store

import (
	"context"
	"errors"
	"testing"

	"github.com/kioskops/fleetconfig/models"
)

func TestMemoryStore_Kiosks(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	created, err := m.CreateKiosk(ctx, models.Kiosk{KioskID: "kiosk-1", Name: "Lobby"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be assigned")
	}

	if _, err := m.CreateKiosk(ctx, models.Kiosk{KioskID: "kiosk-1"}); !errors.Is(err, ErrKioskAlreadyExists) {
		t.Fatalf("expected ErrKioskAlreadyExists, got %v", err)
	}

	if _, err := m.GetKiosk(ctx, "ghost"); !errors.Is(err, ErrKioskNotFound) {
		t.Fatalf("expected ErrKioskNotFound, got %v", err)
	}

	kiosks, err := m.ListKiosks(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(kiosks) != 1 {
		t.Fatalf("expected 1 kiosk, got %d", len(kiosks))
	}
}

func TestMemoryStore_GlobalConfigDefaults(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	cfg, err := m.GetGlobalConfig(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Status.State != models.DefaultGlobalConfig().Status.State {
		t.Errorf("fresh store must yield defaults, got %q", cfg.Status.State)
	}

	if err := m.PutGlobalDomain(ctx, models.DomainStatus, []byte(`{"state":"meeting"}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err = m.GetGlobalConfig(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Status.State != models.StateMeeting {
		t.Errorf("expected stored status, got %q", cfg.Status.State)
	}
}

func TestMemoryStore_Overrides(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	if err := m.PutOverride(ctx, "kiosk-1", models.DomainStatus, []byte(`{"state":"brb"}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.PutOverride(ctx, "kiosk-1", models.DomainBranding, []byte(`{"productName":"Lobby"}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	override, err := m.GetOverrides(ctx, "kiosk-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if override.Count() != 2 {
		t.Fatalf("expected 2 fragments, got %d", override.Count())
	}

	all, err := m.ListOverrides(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 1 || all["kiosk-1"].Count() != 2 {
		t.Fatalf("unexpected override listing: %+v", all)
	}

	if err := m.DeleteOverride(ctx, "kiosk-1", models.DomainStatus); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	override, err = m.GetOverrides(ctx, "kiosk-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if override.Count() != 1 || override.Status != nil {
		t.Fatalf("expected status fragment removed, got %+v", override)
	}

	// Deleting an absent fragment is a no-op.
	if err := m.DeleteOverride(ctx, "ghost", models.DomainStatus); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMemoryStore_PinUniquenessBackstop(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	global := models.PinAssignment{Scope: models.PinScopeGlobal, Pin: "123456"}
	if err := m.PutPinAssignment(ctx, global); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Re-putting the same slot with the same pin is an update, not a conflict.
	if err := m.PutPinAssignment(ctx, global); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := m.PutPinAssignment(ctx, models.PinAssignment{
		Scope:   models.PinScopeKiosk,
		KioskID: "kiosk-1",
		Pin:     "123456",
	})
	if !errors.Is(err, ErrPinAlreadyAssigned) {
		t.Fatalf("expected ErrPinAlreadyAssigned, got %v", err)
	}

	if err := m.DeletePinAssignment(ctx, models.PinScopeGlobal, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The freed pin value is assignable again.
	err = m.PutPinAssignment(ctx, models.PinAssignment{
		Scope:   models.PinScopeKiosk,
		KioskID: "kiosk-1",
		Pin:     "123456",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assignments, err := m.ListPinAssignments(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(assignments) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(assignments))
	}
}
