// Package store persists registrations in the relational store.
//
// The database is a secondary record: the orchestrator tolerates every
// failure here. Postgres is the managed deployment target; SQLite serves
// local development and tests.
package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"symposium/internal/platform/config"
	"symposium/internal/registration"
	"symposium/pkg/platform/sentinel"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Store is the full persistence surface used by the service and the export.
type Store interface {
	Insert(ctx context.Context, reg *registration.Registration) error
	// List returns every registration, newest first.
	List(ctx context.Context) ([]*registration.Registration, error)
	Ping(ctx context.Context) error
	Close() error
}

// Open connects to the configured database. It returns sentinel.ErrNotConfigured
// when no URL is set so callers can tell missing credentials from data errors.
func Open(ctx context.Context, cfg config.DatabaseConfig) (Store, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("open registrations store: %w", sentinel.ErrNotConfigured)
	}
	switch cfg.Driver {
	case config.DriverSQLite:
		return OpenSQLite(ctx, cfg.URL)
	case config.DriverPostgres:
		return OpenPostgres(cfg.URL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Schema returns the DDL for driver.
func Schema(driver string) (string, error) {
	b, err := schemaFS.ReadFile("schema/" + driver + ".sql")
	if err != nil {
		return "", fmt.Errorf("read %s schema: %w", driver, err)
	}
	return string(b), nil
}

func collect(rows *sql.Rows, scan func() (*registration.Registration, error)) ([]*registration.Registration, error) {
	var out []*registration.Registration
	for rows.Next() {
		reg, err := scan()
		if err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		out = append(out, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate registrations: %w", err)
	}
	return out, nil
}
