// Package migrations bootstraps the SQLite task store schema from embedded SQL files.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/slok/task-cli/internal/log"
)

//go:embed sql/*.sql
var schemaFiles embed.FS

// Schema applies and removes the tasks table on a SQLite connection.
type Schema struct {
	db     *sql.DB
	logger log.Logger
}

// NewSchema returns a schema manager for db.
func NewSchema(db *sql.DB, logger log.Logger) (*Schema, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	if logger == nil {
		logger = log.Noop
	}

	return &Schema{db: db, logger: logger.WithValues(log.Kv{"svc": "storage.SQLiteSchema"})}, nil
}

// Ensure creates the tasks table when missing, an up to date database is left untouched.
func (s *Schema) Ensure(ctx context.Context) error {
	return s.run(ctx, "ensure", func(m *migrate.Migrate) error { return m.Up() })
}

// Drop removes the tasks table and everything in it.
func (s *Schema) Drop(ctx context.Context) error {
	return s.run(ctx, "drop", func(m *migrate.Migrate) error { return m.Down() })
}

// Version returns the applied schema version, 0 when nothing has been applied.
func (s *Schema) Version(ctx context.Context) (uint, error) {
	var version uint
	err := s.run(ctx, "version", func(m *migrate.Migrate) error {
		v, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			return nil
		}
		if err != nil {
			return err
		}
		if dirty {
			return fmt.Errorf("schema version %d is dirty", v)
		}
		version = v
		return nil
	})

	return version, err
}

func (s *Schema) run(ctx context.Context, action string, fn func(m *migrate.Migrate) error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	src, err := iofs.New(schemaFiles, "sql")
	if err != nil {
		return fmt.Errorf("could not read embedded schema: %w", err)
	}
	defer func() {
		if err := src.Close(); err != nil {
			s.logger.Warningf("could not close schema source: %s", err)
		}
	}()

	// The driver is not closed, closing it would close the caller's connection.
	driver, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create schema driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("could not prepare schema %s: %w", action, err)
	}

	if err := fn(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("schema %s failed: %w", action, err)
	}

	s.logger.Debugf("Schema %s done", action)
	return nil
}
