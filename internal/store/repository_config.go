package store

import (
	"context"
	"fmt"

	"github.com/kioskops/fleetconfig/internal/logger"
	"github.com/kioskops/fleetconfig/models"
)

// configRepository is the PostgreSQL-backed implementation of
// [ConfigRepository]. Global defaults live in the global_config table (one
// row per domain); override fragments live in kiosk_overrides keyed by
// (kiosk_id, domain).
type configRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewConfigRepository constructs a [ConfigRepository] backed by the provided
// database connection and logger.
func NewConfigRepository(db *DB, logger *logger.Logger) ConfigRepository {
	logger.Debug().Msg("creating config repository")
	return &configRepository{
		db:     db,
		logger: logger,
	}
}

// GetGlobalConfig returns the fleet defaults: [models.DefaultGlobalConfig]
// overlaid with every stored global domain row. A fresh database therefore
// yields a usable configuration.
func (r *configRepository) GetGlobalConfig(ctx context.Context) (models.GlobalConfig, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, getGlobalConfig)
	if err != nil {
		log.Err(err).Str("func", "*configRepository.GetGlobalConfig").Msg("error executing query")
		return models.GlobalConfig{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	cfg := models.DefaultGlobalConfig()
	for rows.Next() {
		var domain models.Domain
		var payload []byte
		if err := rows.Scan(&domain, &payload); err != nil {
			log.Err(err).Str("func", "*configRepository.GetGlobalConfig").Msg("error scanning rows")
			return models.GlobalConfig{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if err := applyGlobalDomain(&cfg, domain, payload); err != nil {
			return models.GlobalConfig{}, err
		}
	}
	if err := rows.Err(); err != nil {
		return models.GlobalConfig{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return cfg, nil
}

// PutGlobalDomain upserts the stored default payload of one domain.
func (r *configRepository) PutGlobalDomain(ctx context.Context, domain models.Domain, payload []byte) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, putGlobalDomain, domain, payload); err != nil {
		log.Err(err).Str("func", "*configRepository.PutGlobalDomain").Str("domain", string(domain)).Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// GetOverrides returns the override fragments of one kiosk. A kiosk with no
// overrides yields the zero value, not an error.
func (r *configRepository) GetOverrides(ctx context.Context, kioskID string) (models.KioskOverride, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, getOverrides, kioskID)
	if err != nil {
		log.Err(err).Str("func", "*configRepository.GetOverrides").Msg("error executing query")
		return models.KioskOverride{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var override models.KioskOverride
	for rows.Next() {
		var domain models.Domain
		var payload []byte
		if err := rows.Scan(&domain, &payload); err != nil {
			log.Err(err).Str("func", "*configRepository.GetOverrides").Msg("error scanning rows")
			return models.KioskOverride{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if err := applyOverrideDomain(&override, domain, payload); err != nil {
			return models.KioskOverride{}, err
		}
	}
	if err := rows.Err(); err != nil {
		return models.KioskOverride{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return override, nil
}

// ListOverrides returns the override fragments of the whole fleet keyed by
// kiosk ID. Kiosks without overrides are absent from the result.
func (r *configRepository) ListOverrides(ctx context.Context) (map[string]models.KioskOverride, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listOverrides)
	if err != nil {
		log.Err(err).Str("func", "*configRepository.ListOverrides").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	overrides := make(map[string]models.KioskOverride)
	for rows.Next() {
		var kioskID string
		var domain models.Domain
		var payload []byte
		if err := rows.Scan(&kioskID, &domain, &payload); err != nil {
			log.Err(err).Str("func", "*configRepository.ListOverrides").Msg("error scanning rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		override := overrides[kioskID]
		if err := applyOverrideDomain(&override, domain, payload); err != nil {
			return nil, err
		}
		overrides[kioskID] = override
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return overrides, nil
}

// PutOverride upserts the payload of one (kiosk, domain) fragment.
func (r *configRepository) PutOverride(ctx context.Context, kioskID string, domain models.Domain, payload []byte) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, putOverride, kioskID, domain, payload); err != nil {
		log.Err(err).Str("func", "*configRepository.PutOverride").Str("kiosk_id", kioskID).Str("domain", string(domain)).Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// DeleteOverride removes one (kiosk, domain) fragment. Deleting an absent
// fragment is a no-op.
func (r *configRepository) DeleteOverride(ctx context.Context, kioskID string, domain models.Domain) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteOverride, kioskID, domain); err != nil {
		log.Err(err).Str("func", "*configRepository.DeleteOverride").Str("kiosk_id", kioskID).Str("domain", string(domain)).Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
