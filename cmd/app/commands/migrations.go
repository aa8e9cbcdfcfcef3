package commands

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/stakwork/fieldcrypt/internal/database"
)

// RunMigrations applies pending migrations for driver. The migrations
// directory is found by walking up from the working directory.
func RunMigrations(db *sql.DB, logger *slog.Logger, driver string) error {
	path, err := database.FindMigrationsPath(driver)
	if err != nil {
		return fmt.Errorf("failed to locate migrations: %w", err)
	}

	logger.Info("running database migrations",
		slog.String("driver", driver),
		slog.String("path", path),
	)

	applied, err := database.Migrate(db, driver, path)
	if err != nil {
		return err
	}

	if !applied {
		logger.Info("database already up to date")
		return nil
	}

	logger.Info("migrations completed successfully")
	return nil
}
