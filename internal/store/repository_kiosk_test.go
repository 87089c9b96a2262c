package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kioskops/fleetconfig/internal/logger"
	"github.com/kioskops/fleetconfig/models"
)

func newTestKioskRepo(t *testing.T) (*kioskRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &kioskRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestCreateKiosk_Success(t *testing.T) {
	repo, mock, db := newTestKioskRepo(t)
	defer db.Close()

	ctx := context.Background()
	kiosk := models.Kiosk{KioskID: "kiosk-1", Name: "Lobby", Location: "Floor 1"}

	now := time.Now()

	rows := sqlmock.
		NewRows([]string{"kiosk_id", "name", "location", "created_at", "updated_at"}).
		AddRow(kiosk.KioskID, kiosk.Name, kiosk.Location, now, now)

	mock.ExpectQuery("INSERT INTO kiosks").
		WithArgs(kiosk.KioskID, kiosk.Name, kiosk.Location).
		WillReturnRows(rows)

	created, err := repo.CreateKiosk(ctx, kiosk)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.KioskID != kiosk.KioskID {
		t.Errorf("expected kiosk ID %s, got %s", kiosk.KioskID, created.KioskID)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected server-assigned created_at")
	}
}

func TestCreateKiosk_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestKioskRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO kiosks").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateKiosk(context.Background(), models.Kiosk{KioskID: "kiosk-1"})
	if !errors.Is(err, ErrKioskAlreadyExists) {
		t.Fatalf("expected ErrKioskAlreadyExists, got %v", err)
	}
}

func TestCreateKiosk_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestKioskRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO kiosks").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateKiosk(context.Background(), models.Kiosk{KioskID: "kiosk-1"})
	if err == nil || !strings.Contains(err.Error(), "db network error") {
		t.Fatalf("expected wrapped DB error, got %v", err)
	}
}

func TestGetKiosk_NotFound(t *testing.T) {
	repo, mock, db := newTestKioskRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT kiosk_id, name, location, created_at, updated_at").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetKiosk(context.Background(), "ghost")
	if !errors.Is(err, ErrKioskNotFound) {
		t.Fatalf("expected ErrKioskNotFound, got %v", err)
	}
}

func TestListKiosks_Success(t *testing.T) {
	repo, mock, db := newTestKioskRepo(t)
	defer db.Close()

	now := time.Now()

	rows := sqlmock.
		NewRows([]string{"kiosk_id", "name", "location", "created_at", "updated_at"}).
		AddRow("kiosk-1", "Lobby", "Floor 1", now, now).
		AddRow("kiosk-2", "Annex", "Floor 2", now, now)

	mock.ExpectQuery("SELECT kiosk_id, name, location, created_at, updated_at").
		WillReturnRows(rows)

	kiosks, err := repo.ListKiosks(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(kiosks) != 2 {
		t.Fatalf("expected 2 kiosks, got %d", len(kiosks))
	}
	if kiosks[0].KioskID != "kiosk-1" || kiosks[1].KioskID != "kiosk-2" {
		t.Errorf("unexpected kiosk order: %v", kiosks)
	}
}

func TestListKiosks_QueryError(t *testing.T) {
	repo, mock, db := newTestKioskRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT kiosk_id").
		WillReturnError(errors.New("db is down"))

	_, err := repo.ListKiosks(context.Background())
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}
