package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	_ "github.com/lib/pq"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"github.com/fastygo/tasklist/internal/config"
)

// slotsMigrationsTable keeps the slot table's history apart from any other
// migrations living in the same database.
const slotsMigrationsTable = "tasklist_schema_migrations"

// ErrDirtySchema is returned when a previous slot table migration stopped halfway.
var ErrDirtySchema = errors.New("state_slots schema is dirty, fix it by hand and force the version")

// MigrateSlots brings the state_slots table up to date and returns the
// migration version the database is at. Disabled migrations report 0.
func MigrateSlots(db config.DatabaseConfig, cfg config.MigrationsConfig, logger *zap.Logger) (uint, error) {
	if !cfg.Enabled {
		return 0, nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	sqlDB, err := sql.Open("postgres", db.URL)
	if err != nil {
		return 0, fmt.Errorf("open database: %w", err)
	}
	defer sqlDB.Close()

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{MigrationsTable: slotsMigrationsTable})
	if err != nil {
		return 0, fmt.Errorf("migration driver: %w", err)
	}

	source := "file://" + filepath.ToSlash(cfg.Path)
	m, err := migrate.NewWithDatabaseInstance(source, db.Name, driver)
	if err != nil {
		return 0, fmt.Errorf("load migrations from %s: %w", cfg.Path, err)
	}
	defer m.Close()

	if _, dirty, err := m.Version(); err == nil && dirty {
		return 0, ErrDirtySchema
	}

	switch err := m.Up(); {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Debug("state_slots schema up to date")
	case err != nil:
		return 0, fmt.Errorf("apply migrations: %w", err)
	}

	version, _, err := m.Version()
	if err != nil {
		return 0, fmt.Errorf("read migration version: %w", err)
	}
	logger.Info("state_slots schema ready", zap.Uint("version", version), zap.String("path", cfg.Path))
	return version, nil
}
