package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kioskops/fleetconfig/models"
)

// OverrideResolver manages per-kiosk configuration overrides against the
// global defaults and computes each kiosk's effective configuration.
//
// Read operations are safe for an unbounded number of concurrent callers
// and never touch storage; mutations write through to the config store and
// are serialized per kiosk.
type OverrideResolver interface {
	// SetOverride validates and stores one domain fragment for a kiosk and
	// returns the kiosk's updated scope summary.
	SetOverride(ctx context.Context, kioskID string, domain models.Domain, payload json.RawMessage) (models.OverrideState, error)

	// RemoveOverride deletes one domain fragment. Removing an absent
	// fragment is a no-op, not an error.
	RemoveOverride(ctx context.Context, kioskID string, domain models.Domain) (models.OverrideState, error)

	// ComputeEffective returns the merged per-kiosk view: for each domain
	// the override when present, else the global default.
	ComputeEffective(ctx context.Context, kioskID string) (models.EffectiveConfig, error)

	// SetGlobalDefault validates and stores the fleet-wide default payload
	// of one domain.
	SetGlobalDefault(ctx context.Context, domain models.Domain, payload json.RawMessage) error
}

// KioskService manages the registry of known kiosks.
type KioskService interface {
	RegisterKiosk(ctx context.Context, kiosk models.Kiosk) (models.Kiosk, error)
	GetKiosk(ctx context.Context, kioskID string) (models.Kiosk, error)
	ListKiosks(ctx context.Context) ([]models.Kiosk, error)
}

// PinRegistry validates and enforces uniqueness of admin PINs across the
// global/per-kiosk namespace and resolves which scope a presented PIN
// grants.
type PinRegistry interface {
	// SetGlobalPin assigns (or, with an empty pin, clears) the global
	// admin PIN.
	SetGlobalPin(ctx context.Context, pin string) error

	// SetKioskPin assigns (or, with an empty pin, clears) the admin PIN of
	// one kiosk.
	SetKioskPin(ctx context.Context, kioskID, pin string) error

	// ValidatePin checks a candidate PIN without side effects. The editing
	// assignment identifies which slot is being changed so its own current
	// value is not reported as a conflict. The rules are identical to the
	// setters', so interactive feedback never diverges from commit
	// behavior.
	ValidatePin(ctx context.Context, pin string, editing models.PinAssignment) models.PinValidation

	// TestPin resolves which scope's assignment matches pin under the
	// optional kiosk context (empty kioskID means none) and returns the
	// granted permission set with its expiry.
	TestPin(ctx context.Context, pin string, kioskID string) (models.PinGrant, error)
}

// ExpiryPolicy computes the expiry of a PIN grant. The registry never owns
// TTL policy; deployments plug in their own.
type ExpiryPolicy interface {
	ExpiresAt(now time.Time, scope models.PinScope) time.Time
}
