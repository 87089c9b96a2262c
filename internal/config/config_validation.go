// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Kioskops

package config

// Store driver names accepted by [StructuredConfig.validate].
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// startup invariants.
//
// Returns nil if the configuration is valid, or one of the sentinel errors
// from errors.go otherwise.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Storage.DB.Driver {
	case DriverPostgres, DriverSQLite:
		if cfg.Storage.DB.DSN == "" {
			return ErrInvalidStorageConfigs
		}
	case DriverMemory:
	default:
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.SessionTTL <= 0 {
		return ErrInvalidAppConfigs
	}

	return nil
}
