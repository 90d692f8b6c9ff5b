package db

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Init connects without touching the schema. driver is "sqlite" or "pgx".
func Init(driver, connection string) (*sqlx.DB, error) {
	if driver == "sqlite" {
		err := ensureSQLiteDir(connection)
		if err != nil {
			return nil, err
		}
	}

	db, err := sqlx.Connect(driver, connection)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	slog.Info("database connected", "driver", driver)
	return db, nil
}

// ensureSQLiteDir creates the directory of a file database, e.g. data/ for
// data/homerender.db.
func ensureSQLiteDir(connection string) error {
	path, _, _ := strings.Cut(connection, "?")
	path = strings.TrimPrefix(path, "file:")
	if path == "" || path == ":memory:" {
		return nil
	}

	err := os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// Open connects and brings the schema up to date. It is the one-time
// initialization step run before the server accepts requests.
func Open(driver, connection string) (*sqlx.DB, error) {
	database, err := Init(driver, connection)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	err = RunMigrations(ctx, database.DB, driver)
	if err != nil {
		_ = database.Close()
		return nil, err
	}

	return database, nil
}
