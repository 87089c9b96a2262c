package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/kioskops/fleetconfig/internal/logger"
	"github.com/kioskops/fleetconfig/models"
)

// kioskRepository is the PostgreSQL-backed implementation of
// [KioskRepository].
type kioskRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewKioskRepository constructs a [KioskRepository] backed by the provided
// database connection and logger.
func NewKioskRepository(db *DB, logger *logger.Logger) KioskRepository {
	logger.Debug().Msg("creating kiosk repository")
	return &kioskRepository{
		db:     db,
		logger: logger,
	}
}

// CreateKiosk registers a new kiosk and returns the persisted record with
// server-assigned timestamps.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrKioskAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *kioskRepository) CreateKiosk(ctx context.Context, kiosk models.Kiosk) (models.Kiosk, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createKiosk, kiosk.KioskID, kiosk.Name, kiosk.Location)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*kioskRepository.CreateKiosk").Msg("error: row is nil")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Kiosk{}, ErrKioskAlreadyExists
		default:
			return models.Kiosk{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	var created models.Kiosk
	if err := row.Scan(&created.KioskID, &created.Name, &created.Location, &created.CreatedAt, &created.UpdatedAt); err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Kiosk{}, ErrKioskAlreadyExists
		}
		log.Err(err).Str("func", "*kioskRepository.CreateKiosk").Msg("error: scanning error")
		return models.Kiosk{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return created, nil
}

// GetKiosk retrieves a registered kiosk by its ID, returning
// [ErrKioskNotFound] when the ID is unknown.
func (r *kioskRepository) GetKiosk(ctx context.Context, kioskID string) (models.Kiosk, error) {
	log := logger.FromContext(ctx)

	var kiosk models.Kiosk
	row := r.db.QueryRowContext(ctx, getKiosk, kioskID)
	if err := row.Scan(&kiosk.KioskID, &kiosk.Name, &kiosk.Location, &kiosk.CreatedAt, &kiosk.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Kiosk{}, ErrKioskNotFound
		}
		log.Err(err).Str("func", "*kioskRepository.GetKiosk").Msg("error: scanning error")
		return models.Kiosk{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return kiosk, nil
}

// ListKiosks returns every registered kiosk ordered by ID.
func (r *kioskRepository) ListKiosks(ctx context.Context) ([]models.Kiosk, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listKiosks)
	if err != nil {
		log.Err(err).Str("func", "*kioskRepository.ListKiosks").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var kiosks []models.Kiosk
	for rows.Next() {
		var kiosk models.Kiosk
		if err := rows.Scan(&kiosk.KioskID, &kiosk.Name, &kiosk.Location, &kiosk.CreatedAt, &kiosk.UpdatedAt); err != nil {
			log.Err(err).Str("func", "*kioskRepository.ListKiosks").Msg("error scanning rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		kiosks = append(kiosks, kiosk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return kiosks, nil
}
