package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/kioskops/fleetconfig/internal/logger"
	"github.com/kioskops/fleetconfig/models"
)

// pinRepository is the PostgreSQL-backed implementation of [PinRepository].
// Assignments are keyed by (scope, kiosk_id); kiosk_id is the empty string
// for the global assignment. A unique index on the pin column backstops the
// service-level conflict scan.
type pinRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPinRepository constructs a [PinRepository] backed by the provided
// database connection and logger.
func NewPinRepository(db *DB, logger *logger.Logger) PinRepository {
	logger.Debug().Msg("creating pin repository")
	return &pinRepository{
		db:     db,
		logger: logger,
	}
}

// ListPinAssignments returns every live assignment, including cleared ones
// persisted with an empty pin value.
func (r *pinRepository) ListPinAssignments(ctx context.Context) ([]models.PinAssignment, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listPinAssignments)
	if err != nil {
		log.Err(err).Str("func", "*pinRepository.ListPinAssignments").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var assignments []models.PinAssignment
	for rows.Next() {
		var assignment models.PinAssignment
		if err := rows.Scan(&assignment.Scope, &assignment.KioskID, &assignment.Pin); err != nil {
			log.Err(err).Str("func", "*pinRepository.ListPinAssignments").Msg("error scanning rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		assignments = append(assignments, assignment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return assignments, nil
}

// PutPinAssignment upserts the assignment for (scope, kiosk).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) on the pin index →
//     [ErrPinAlreadyAssigned].
//   - Any other driver-level error → wrapped [ErrExecutingQuery].
func (r *pinRepository) PutPinAssignment(ctx context.Context, assignment models.PinAssignment) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, putPinAssignment, assignment.Scope, assignment.KioskID, assignment.Pin); err != nil {
		log.Err(err).Str("func", "*pinRepository.PutPinAssignment").Str("scope", string(assignment.Scope)).Msg("error executing statement")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return ErrPinAlreadyAssigned
		default:
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	return nil
}

// DeletePinAssignment removes the assignment for (scope, kiosk). Deleting an
// absent assignment is a no-op.
func (r *pinRepository) DeletePinAssignment(ctx context.Context, scope models.PinScope, kioskID string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deletePinAssignment, scope, kioskID); err != nil {
		log.Err(err).Str("func", "*pinRepository.DeletePinAssignment").Str("scope", string(scope)).Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
