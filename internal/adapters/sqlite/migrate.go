package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"

	"expensetracker/pkg/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	msgMigrationsApplied = "sqlite migrations applied"
	msgNoNewMigrations   = "sqlite schema is up to date"
	errCreateDriver      = "create sqlite migration driver"
	errCreateSource      = "create iofs source"
	errCreateMigrate     = "create migrate instance"
	errRunMigrations     = "run sqlite migrations"
)

// RunMigrations применяет встроенные миграции к открытой базе.
// Экземпляр migrate не закрывается: его Close закрыл бы и db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	log := logger.Log(ctx).With(zap.String("component", "sqlite-migrate"))

	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("%s: %w", errCreateDriver, err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("%s: %w", errCreateSource, err)
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			log.Warn(ctx, "failed to close migration source", zap.Error(closeErr))
		}
	}()

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("%s: %w", errCreateMigrate, err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Debug(ctx, msgNoNewMigrations)
			return nil
		}
		return fmt.Errorf("%s: %w", errRunMigrations, err)
	}

	log.Info(ctx, msgMigrationsApplied)
	return nil
}
