package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"

	"github.com/kioskops/fleetconfig/internal/config"
	"github.com/kioskops/fleetconfig/internal/logger"
	"github.com/kioskops/fleetconfig/models"
)

// sqliteSchema is applied at connection time; SQLite deployments are
// single-file and do not run the goose migration set.
const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS kiosks (
		kiosk_id   TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		location   TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS global_config (
		domain     TEXT PRIMARY KEY,
		payload    BLOB NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS kiosk_overrides (
		kiosk_id   TEXT NOT NULL,
		domain     TEXT NOT NULL,
		payload    BLOB NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (kiosk_id, domain)
	);

	CREATE TABLE IF NOT EXISTS pin_assignments (
		scope      TEXT NOT NULL,
		kiosk_id   TEXT NOT NULL DEFAULT '',
		pin        TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (scope, kiosk_id)
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_pin_assignments_pin
		ON pin_assignments (pin) WHERE pin <> '';`

// SQLiteStore implements all three repositories on an embedded SQLite
// database, for single-site deployments that have no PostgreSQL at hand.
// Queries are built with squirrel.
type SQLiteStore struct {
	db      *sql.DB
	logger  *logger.Logger
	builder sq.StatementBuilderType
}

// NewConnectSQLite opens (creating if needed) the SQLite database at the
// configured path and ensures the schema exists.
func NewConnectSQLite(ctx context.Context, cfg config.DB, log *logger.Logger) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error opening sqlite database")
		return nil, fmt.Errorf("error opening sqlite database: %w", err)
	}

	// go-sqlite3 serializes writes; a single connection avoids SQLITE_BUSY.
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("error connecting sqlite database: %w", err)
	}

	if _, err := conn.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, fmt.Errorf("error creating sqlite schema: %w", err)
	}
	log.Info().Str("func", "NewConnectSQLite").Str("path", cfg.DSN).Msg("connected to sqlite database")

	return &SQLiteStore{
		db:      conn,
		logger:  log,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func sqliteConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// CreateKiosk implements [KioskRepository].
func (s *SQLiteStore) CreateKiosk(ctx context.Context, kiosk models.Kiosk) (models.Kiosk, error) {
	query, args, err := s.builder.
		Insert("kiosks").
		Columns("kiosk_id", "name", "location").
		Values(kiosk.KioskID, kiosk.Name, kiosk.Location).
		ToSql()
	if err != nil {
		return models.Kiosk{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		if sqliteConstraintViolation(err) {
			return models.Kiosk{}, ErrKioskAlreadyExists
		}
		return models.Kiosk{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return s.GetKiosk(ctx, kiosk.KioskID)
}

// GetKiosk implements [KioskRepository].
func (s *SQLiteStore) GetKiosk(ctx context.Context, kioskID string) (models.Kiosk, error) {
	query, args, err := s.builder.
		Select("kiosk_id", "name", "location", "created_at", "updated_at").
		From("kiosks").
		Where(sq.Eq{"kiosk_id": kioskID}).
		ToSql()
	if err != nil {
		return models.Kiosk{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var kiosk models.Kiosk
	row := s.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&kiosk.KioskID, &kiosk.Name, &kiosk.Location, &kiosk.CreatedAt, &kiosk.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Kiosk{}, ErrKioskNotFound
		}
		return models.Kiosk{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return kiosk, nil
}

// ListKiosks implements [KioskRepository].
func (s *SQLiteStore) ListKiosks(ctx context.Context) ([]models.Kiosk, error) {
	query, args, err := s.builder.
		Select("kiosk_id", "name", "location", "created_at", "updated_at").
		From("kiosks").
		OrderBy("kiosk_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var kiosks []models.Kiosk
	for rows.Next() {
		var kiosk models.Kiosk
		if err := rows.Scan(&kiosk.KioskID, &kiosk.Name, &kiosk.Location, &kiosk.CreatedAt, &kiosk.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		kiosks = append(kiosks, kiosk)
	}

	return kiosks, rows.Err()
}

// GetGlobalConfig implements [ConfigRepository].
func (s *SQLiteStore) GetGlobalConfig(ctx context.Context) (models.GlobalConfig, error) {
	query, args, err := s.builder.Select("domain", "payload").From("global_config").ToSql()
	if err != nil {
		return models.GlobalConfig{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return models.GlobalConfig{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	cfg := models.DefaultGlobalConfig()
	for rows.Next() {
		var domain models.Domain
		var payload []byte
		if err := rows.Scan(&domain, &payload); err != nil {
			return models.GlobalConfig{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if err := applyGlobalDomain(&cfg, domain, payload); err != nil {
			return models.GlobalConfig{}, err
		}
	}

	return cfg, rows.Err()
}

// PutGlobalDomain implements [ConfigRepository].
func (s *SQLiteStore) PutGlobalDomain(ctx context.Context, domain models.Domain, payload []byte) error {
	query, args, err := s.builder.
		Insert("global_config").
		Columns("domain", "payload").
		Values(domain, payload).
		Suffix("ON CONFLICT (domain) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

// GetOverrides implements [ConfigRepository].
func (s *SQLiteStore) GetOverrides(ctx context.Context, kioskID string) (models.KioskOverride, error) {
	query, args, err := s.builder.
		Select("domain", "payload").
		From("kiosk_overrides").
		Where(sq.Eq{"kiosk_id": kioskID}).
		ToSql()
	if err != nil {
		return models.KioskOverride{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return models.KioskOverride{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var override models.KioskOverride
	for rows.Next() {
		var domain models.Domain
		var payload []byte
		if err := rows.Scan(&domain, &payload); err != nil {
			return models.KioskOverride{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if err := applyOverrideDomain(&override, domain, payload); err != nil {
			return models.KioskOverride{}, err
		}
	}

	return override, rows.Err()
}

// ListOverrides implements [ConfigRepository].
func (s *SQLiteStore) ListOverrides(ctx context.Context) (map[string]models.KioskOverride, error) {
	query, args, err := s.builder.
		Select("kiosk_id", "domain", "payload").
		From("kiosk_overrides").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	overrides := make(map[string]models.KioskOverride)
	for rows.Next() {
		var kioskID string
		var domain models.Domain
		var payload []byte
		if err := rows.Scan(&kioskID, &domain, &payload); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		override := overrides[kioskID]
		if err := applyOverrideDomain(&override, domain, payload); err != nil {
			return nil, err
		}
		overrides[kioskID] = override
	}

	return overrides, rows.Err()
}

// PutOverride implements [ConfigRepository].
func (s *SQLiteStore) PutOverride(ctx context.Context, kioskID string, domain models.Domain, payload []byte) error {
	query, args, err := s.builder.
		Insert("kiosk_overrides").
		Columns("kiosk_id", "domain", "payload").
		Values(kioskID, domain, payload).
		Suffix("ON CONFLICT (kiosk_id, domain) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

// DeleteOverride implements [ConfigRepository].
func (s *SQLiteStore) DeleteOverride(ctx context.Context, kioskID string, domain models.Domain) error {
	query, args, err := s.builder.
		Delete("kiosk_overrides").
		Where(sq.Eq{"kiosk_id": kioskID, "domain": domain}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

// ListPinAssignments implements [PinRepository].
func (s *SQLiteStore) ListPinAssignments(ctx context.Context) ([]models.PinAssignment, error) {
	query, args, err := s.builder.
		Select("scope", "kiosk_id", "pin").
		From("pin_assignments").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var assignments []models.PinAssignment
	for rows.Next() {
		var assignment models.PinAssignment
		if err := rows.Scan(&assignment.Scope, &assignment.KioskID, &assignment.Pin); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		assignments = append(assignments, assignment)
	}

	return assignments, rows.Err()
}

// PutPinAssignment implements [PinRepository].
func (s *SQLiteStore) PutPinAssignment(ctx context.Context, assignment models.PinAssignment) error {
	query, args, err := s.builder.
		Insert("pin_assignments").
		Columns("scope", "kiosk_id", "pin").
		Values(assignment.Scope, assignment.KioskID, assignment.Pin).
		Suffix("ON CONFLICT (scope, kiosk_id) DO UPDATE SET pin = excluded.pin, updated_at = CURRENT_TIMESTAMP").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		if sqliteConstraintViolation(err) {
			return ErrPinAlreadyAssigned
		}
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

// DeletePinAssignment implements [PinRepository].
func (s *SQLiteStore) DeletePinAssignment(ctx context.Context, scope models.PinScope, kioskID string) error {
	query, args, err := s.builder.
		Delete("pin_assignments").
		Where(sq.Eq{"scope": scope, "kiosk_id": kioskID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}
