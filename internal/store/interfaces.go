// Package store implements the durable ConfigStore collaborator of the
// configuration core: kiosk registry, global and per-kiosk configuration
// fragments, and PIN assignments.
//
// Three backends exist: PostgreSQL (fleet deployments), SQLite (single-site
// deployments), and an in-memory store used in tests. The pure services
// never talk to a database directly; they hold an in-memory snapshot and
// write through these interfaces.
package store

import (
	"context"

	"github.com/kioskops/fleetconfig/models"
)

// KioskRepository manages the registry of known kiosks.
type KioskRepository interface {
	CreateKiosk(ctx context.Context, kiosk models.Kiosk) (models.Kiosk, error)
	GetKiosk(ctx context.Context, kioskID string) (models.Kiosk, error)
	ListKiosks(ctx context.Context) ([]models.Kiosk, error)
}

// ConfigRepository stores the global defaults and the per-kiosk,
// per-domain override fragments. Payloads are the canonical JSON encodings
// of the typed domain payloads; they are validated before they get here.
type ConfigRepository interface {
	GetGlobalConfig(ctx context.Context) (models.GlobalConfig, error)
	PutGlobalDomain(ctx context.Context, domain models.Domain, payload []byte) error

	GetOverrides(ctx context.Context, kioskID string) (models.KioskOverride, error)
	ListOverrides(ctx context.Context) (map[string]models.KioskOverride, error)
	PutOverride(ctx context.Context, kioskID string, domain models.Domain, payload []byte) error
	DeleteOverride(ctx context.Context, kioskID string, domain models.Domain) error
}

// PinRepository stores admin PIN assignments. The cross-scope uniqueness
// rule is enforced by the service layer before commit; SQL backends keep a
// unique index as a backstop.
type PinRepository interface {
	ListPinAssignments(ctx context.Context) ([]models.PinAssignment, error)
	PutPinAssignment(ctx context.Context, assignment models.PinAssignment) error
	DeletePinAssignment(ctx context.Context, scope models.PinScope, kioskID string) error
}
