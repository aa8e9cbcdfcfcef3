package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// MigrationsDir returns the migrations subdirectory for driver.
func MigrationsDir(driver string) (string, error) {
	switch driver {
	case DriverPostgres:
		return "postgresql", nil
	case DriverMySQL:
		return "mysql", nil
	default:
		return "", fmt.Errorf("unsupported driver %q", driver)
	}
}

// FindMigrationsPath walks up from the working directory until it finds
// migrations/<dir> for driver.
func FindMigrationsPath(driver string) (string, error) {
	sub, err := MigrationsDir(driver)
	if err != nil {
		return "", err
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	for {
		path := filepath.Join(dir, "migrations", sub)
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("migrations directory not found for %s (started from %s)", driver, dir)
		}
		dir = parent
	}
}

// Migrate applies all pending migrations found at migrationsPath to db.
// It returns true when at least one migration ran.
//
// The migrate instance is not closed: closing it would close db, which is
// owned by the caller.
func Migrate(db *sql.DB, driver, migrationsPath string) (bool, error) {
	var (
		instance migratedb.Driver
		err      error
	)
	switch driver {
	case DriverPostgres:
		instance, err = postgres.WithInstance(db, &postgres.Config{})
	case DriverMySQL:
		instance, err = mysql.WithInstance(db, &mysql.Config{})
	default:
		return false, fmt.Errorf("unsupported driver %q", driver)
	}
	if err != nil {
		return false, fmt.Errorf("failed to create migrate driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, driver, instance)
	if err != nil {
		return false, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return false, nil
		}
		return false, fmt.Errorf("failed to run migrations: %w", err)
	}

	return true, nil
}
