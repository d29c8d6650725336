// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migrations embeds the schema migrations and applies them with
// goose. Each supported database dialect carries its own migration set,
// because identity columns and timestamp defaults differ between
// PostgreSQL and SQLite.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// Migrate brings db up to the latest schema version using the migration
// set for dialect ("pgx" or "sqlite3").
func Migrate(db *sql.DB, dialect string) error {
	goose.SetBaseFS(embedMigrations)

	dir, gooseDialect, err := migrationSet(dialect)
	if err != nil {
		return err
	}

	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

func migrationSet(dialect string) (dir string, gooseDialect string, err error) {
	switch dialect {
	case "pgx", "postgres":
		return "postgres", "postgres", nil
	case "sqlite3", "sqlite":
		return "sqlite", "sqlite3", nil
	}
	return "", "", fmt.Errorf("migration error: unsupported dialect %q", dialect)
}
