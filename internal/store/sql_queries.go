// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Kioskops

package store

const (
	createKiosk = `
		INSERT INTO kiosks (kiosk_id, name, location)
		VALUES ($1, $2, $3)
		RETURNING kiosk_id, name, location, created_at, updated_at;`

	getKiosk = `
		SELECT kiosk_id, name, location, created_at, updated_at
		FROM kiosks
		WHERE kiosk_id = $1;`

	listKiosks = `
		SELECT kiosk_id, name, location, created_at, updated_at
		FROM kiosks
		ORDER BY kiosk_id;`

	getGlobalConfig = `
		SELECT domain, payload
		FROM global_config;`

	putGlobalDomain = `
		INSERT INTO global_config (domain, payload)
		VALUES ($1, $2)
		ON CONFLICT (domain)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = now();`

	getOverrides = `
		SELECT domain, payload
		FROM kiosk_overrides
		WHERE kiosk_id = $1;`

	listOverrides = `
		SELECT kiosk_id, domain, payload
		FROM kiosk_overrides;`

	putOverride = `
		INSERT INTO kiosk_overrides (kiosk_id, domain, payload)
		VALUES ($1, $2, $3)
		ON CONFLICT (kiosk_id, domain)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = now();`

	deleteOverride = `
		DELETE FROM kiosk_overrides
		WHERE kiosk_id = $1 AND domain = $2;`

	listPinAssignments = `
		SELECT scope, kiosk_id, pin
		FROM pin_assignments;`

	putPinAssignment = `
		INSERT INTO pin_assignments (scope, kiosk_id, pin)
		VALUES ($1, $2, $3)
		ON CONFLICT (scope, kiosk_id)
		DO UPDATE SET pin = EXCLUDED.pin, updated_at = now();`

	deletePinAssignment = `
		DELETE FROM pin_assignments
		WHERE scope = $1 AND kiosk_id = $2;`
)
