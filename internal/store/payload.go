package store

import (
	"fmt"

	"github.com/kioskops/fleetconfig/models"
)

// applyGlobalDomain overlays one stored domain payload onto cfg. Rows are
// written from validated, canonically encoded payloads, so a decode failure
// here means the stored data is corrupt.
func applyGlobalDomain(cfg *models.GlobalConfig, domain models.Domain, payload []byte) error {
	if !domain.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownConfigDomain, domain)
	}

	value, err := models.UnmarshalDomainPayload(domain, payload)
	if err != nil {
		return fmt.Errorf("decoding stored %q payload: %w", domain, err)
	}

	switch domain {
	case models.DomainStatus:
		cfg.Status = value.(models.StatusConfig)
	case models.DomainSchedule:
		cfg.Schedule = value.(models.WeeklySchedule)
	case models.DomainOfficeHours:
		cfg.OfficeHours = value.(models.OfficeHoursConfig)
	case models.DomainBranding:
		cfg.Branding = value.(models.BrandingConfig)
	}

	return nil
}

// applyOverrideDomain decodes one stored override row into the typed
// fragment slot of the override set.
func applyOverrideDomain(override *models.KioskOverride, domain models.Domain, payload []byte) error {
	if !domain.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownConfigDomain, domain)
	}

	value, err := models.UnmarshalDomainPayload(domain, payload)
	if err != nil {
		return fmt.Errorf("decoding stored %q payload: %w", domain, err)
	}

	return override.Set(domain, value)
}
