package store

import (
	"context"
	"fmt"

	"github.com/kioskops/fleetconfig/internal/config"
	"github.com/kioskops/fleetconfig/internal/logger"
	"github.com/kioskops/fleetconfig/migrations"
)

// Storages bundles the three repositories a running service needs. All
// fields are backed by the same driver.
type Storages struct {
	KioskRepository  KioskRepository
	ConfigRepository ConfigRepository
	PinRepository    PinRepository
}

// NewStorages constructs the repository set for the configured driver.
// PostgreSQL backends run the embedded goose migrations on startup; SQLite
// backends create their schema at connect time.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (Storages, error) {
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		db, err := NewConnectPostgres(ctx, cfg.DB, log)
		if err != nil {
			return Storages{}, err
		}
		if err := migrations.Migrate(db.DB); err != nil {
			return Storages{}, err
		}
		return Storages{
			KioskRepository:  NewKioskRepository(db, log),
			ConfigRepository: NewConfigRepository(db, log),
			PinRepository:    NewPinRepository(db, log),
		}, nil

	case config.DriverSQLite:
		sqlite, err := NewConnectSQLite(ctx, cfg.DB, log)
		if err != nil {
			return Storages{}, err
		}
		return Storages{
			KioskRepository:  sqlite,
			ConfigRepository: sqlite,
			PinRepository:    sqlite,
		}, nil

	case config.DriverMemory:
		memory := NewMemoryStore()
		return Storages{
			KioskRepository:  memory,
			ConfigRepository: memory,
			PinRepository:    memory,
		}, nil

	default:
		return Storages{}, fmt.Errorf("unknown store driver %q", cfg.DB.Driver)
	}
}
