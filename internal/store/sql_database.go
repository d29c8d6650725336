// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-stack-keeper/internal/config"
	"github.com/MKhiriev/go-stack-keeper/internal/logger"
	"github.com/MKhiriev/go-stack-keeper/migrations"
)

// DB wraps a *sql.DB together with the driver name it was opened with and a
// dialect-aware error classificator. Repositories embed it and never touch
// driver packages directly.
type DB struct {
	*sql.DB
	driver             string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Open connects to the database named by cfg.DatabaseURL, dispatching on the
// URL scheme: postgres:// and postgresql:// open a PostgreSQL connection via
// the pgx driver; sqlite:// opens a file-backed SQLite database.
func Open(ctx context.Context, cfg config.Storage, log *logger.Logger) (*DB, error) {
	switch {
	case strings.HasPrefix(cfg.DatabaseURL, "postgres://"),
		strings.HasPrefix(cfg.DatabaseURL, "postgresql://"):
		return NewConnectPostgres(ctx, cfg, log)
	case strings.HasPrefix(cfg.DatabaseURL, "sqlite://"):
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, cfg.DatabaseURL)
	}
}

// Migrate brings the connected database up to the latest schema version
// using the migration set matching the driver.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}
