package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"
)

// MigrationStatus is one embedded migration and whether it is applied.
type MigrationStatus struct {
	Version   int64
	Name      string
	Applied   bool
	AppliedAt time.Time
}

func provider(db *sql.DB, driver string) (*goose.Provider, error) {
	var dialect goose.Dialect
	switch driver {
	case "sqlite":
		dialect = goose.DialectSQLite3
	case "pgx":
		dialect = goose.DialectPostgres
	default:
		return nil, fmt.Errorf("no migration dialect for driver %q", driver)
	}

	migrations, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	return goose.NewProvider(dialect, db, migrations)
}

// RunMigrations applies every pending migration.
func RunMigrations(ctx context.Context, db *sql.DB, driver string) error {
	p, err := provider(db, driver)
	if err != nil {
		return err
	}

	results, err := p.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, err := p.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	slog.Info("schema up to date", "applied", len(results), "version", version)
	return nil
}

// MigrateDown rolls back the most recent migration.
func MigrateDown(ctx context.Context, db *sql.DB, driver string) error {
	p, err := provider(db, driver)
	if err != nil {
		return err
	}

	result, err := p.Down(ctx)
	if errors.Is(err, goose.ErrNoNextVersion) {
		return errors.New("no migration to roll back")
	}
	if err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}

	slog.Info("rolled back migration", "version", result.Source.Version, "duration", result.Duration)
	return nil
}

// Version reports the currently applied schema version.
func Version(ctx context.Context, db *sql.DB, driver string) (int64, error) {
	p, err := provider(db, driver)
	if err != nil {
		return 0, err
	}
	return p.GetDBVersion(ctx)
}

// Status lists the embedded migrations in version order.
func Status(ctx context.Context, db *sql.DB, driver string) ([]MigrationStatus, error) {
	p, err := provider(db, driver)
	if err != nil {
		return nil, err
	}

	statuses, err := p.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration status: %w", err)
	}

	out := make([]MigrationStatus, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, MigrationStatus{
			Version:   s.Source.Version,
			Name:      filepath.Base(s.Source.Path),
			Applied:   s.State == goose.StateApplied,
			AppliedAt: s.AppliedAt,
		})
	}
	return out, nil
}
