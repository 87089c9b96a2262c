package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/kioskops/fleetconfig/internal/logger"
	"github.com/kioskops/fleetconfig/models"
)

func newTestConfigRepo(t *testing.T) (*configRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &configRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestGetGlobalConfig_EmptyTableYieldsDefaults(t *testing.T) {
	repo, mock, db := newTestConfigRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT domain, payload").
		WillReturnRows(sqlmock.NewRows([]string{"domain", "payload"}))

	cfg, err := repo.GetGlobalConfig(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	defaults := models.DefaultGlobalConfig()
	if cfg.Status.State != defaults.Status.State {
		t.Errorf("expected default status %q, got %q", defaults.Status.State, cfg.Status.State)
	}
	if cfg.Branding.ProductName != defaults.Branding.ProductName {
		t.Errorf("expected default product name %q, got %q", defaults.Branding.ProductName, cfg.Branding.ProductName)
	}
}

func TestGetGlobalConfig_OverlaysStoredRows(t *testing.T) {
	repo, mock, db := newTestConfigRepo(t)
	defer db.Close()

	rows := sqlmock.
		NewRows([]string{"domain", "payload"}).
		AddRow("status", []byte(`{"state":"meeting","message":"Back soon"}`)).
		AddRow("branding", []byte(`{"productName":"Front Desk"}`))

	mock.ExpectQuery("SELECT domain, payload").
		WillReturnRows(rows)

	cfg, err := repo.GetGlobalConfig(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Status.State != models.StateMeeting {
		t.Errorf("expected stored status, got %q", cfg.Status.State)
	}
	if cfg.Branding.ProductName != "Front Desk" {
		t.Errorf("expected stored branding, got %q", cfg.Branding.ProductName)
	}
}

func TestGetGlobalConfig_CorruptPayload(t *testing.T) {
	repo, mock, db := newTestConfigRepo(t)
	defer db.Close()

	rows := sqlmock.
		NewRows([]string{"domain", "payload"}).
		AddRow("status", []byte(`not json`))

	mock.ExpectQuery("SELECT domain, payload").
		WillReturnRows(rows)

	if _, err := repo.GetGlobalConfig(context.Background()); err == nil {
		t.Fatal("expected decode error for corrupt payload, got nil")
	}
}

func TestPutGlobalDomain_Success(t *testing.T) {
	repo, mock, db := newTestConfigRepo(t)
	defer db.Close()

	payload := []byte(`{"state":"open"}`)

	mock.ExpectExec("INSERT INTO global_config").
		WithArgs(models.DomainStatus, payload).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.PutGlobalDomain(context.Background(), models.DomainStatus, payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetOverrides_BuildsFragmentSet(t *testing.T) {
	repo, mock, db := newTestConfigRepo(t)
	defer db.Close()

	rows := sqlmock.
		NewRows([]string{"domain", "payload"}).
		AddRow("status", []byte(`{"state":"brb"}`)).
		AddRow("branding", []byte(`{"productName":"Lobby Kiosk"}`))

	mock.ExpectQuery("SELECT domain, payload").
		WithArgs("kiosk-1").
		WillReturnRows(rows)

	override, err := repo.GetOverrides(context.Background(), "kiosk-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if override.Count() != 2 {
		t.Fatalf("expected 2 fragments, got %d", override.Count())
	}
	if override.Status == nil || override.Status.State != models.StateBRB {
		t.Errorf("unexpected status fragment: %+v", override.Status)
	}
	if override.Schedule != nil {
		t.Error("schedule fragment must be absent")
	}
}

func TestListOverrides_GroupsByKiosk(t *testing.T) {
	repo, mock, db := newTestConfigRepo(t)
	defer db.Close()

	rows := sqlmock.
		NewRows([]string{"kiosk_id", "domain", "payload"}).
		AddRow("kiosk-1", "status", []byte(`{"state":"lunch"}`)).
		AddRow("kiosk-1", "branding", []byte(`{"productName":"Lobby"}`)).
		AddRow("kiosk-2", "status", []byte(`{"state":"closed"}`))

	mock.ExpectQuery("SELECT kiosk_id, domain, payload").
		WillReturnRows(rows)

	overrides, err := repo.ListOverrides(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(overrides) != 2 {
		t.Fatalf("expected 2 kiosks, got %d", len(overrides))
	}
	if overrides["kiosk-1"].Count() != 2 {
		t.Errorf("expected 2 fragments for kiosk-1, got %d", overrides["kiosk-1"].Count())
	}
	if overrides["kiosk-2"].Count() != 1 {
		t.Errorf("expected 1 fragment for kiosk-2, got %d", overrides["kiosk-2"].Count())
	}
}

func TestPutAndDeleteOverride(t *testing.T) {
	repo, mock, db := newTestConfigRepo(t)
	defer db.Close()

	payload := []byte(`{"state":"meeting"}`)

	mock.ExpectExec("INSERT INTO kiosk_overrides").
		WithArgs("kiosk-1", models.DomainStatus, payload).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.PutOverride(context.Background(), "kiosk-1", models.DomainStatus, payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("DELETE FROM kiosk_overrides").
		WithArgs("kiosk-1", models.DomainStatus).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteOverride(context.Background(), "kiosk-1", models.DomainStatus); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPutOverride_ExecError(t *testing.T) {
	repo, mock, db := newTestConfigRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO kiosk_overrides").
		WillReturnError(errors.New("db is down"))

	err := repo.PutOverride(context.Background(), "kiosk-1", models.DomainStatus, []byte(`{}`))
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}
