package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	_ "github.com/newrelic/go-agent/v3/integrations/nrpq" // Registers "nrpostgres" driver
	"github.com/newrelic/go-agent/v3/newrelic"

	"rideshare/internal/config"
	"rideshare/internal/logger"
)

// NewDatabase creates a new PostgreSQL connection pool.
// If nrApp is provided, it uses the New Relic instrumented driver for SQL tracing.
func NewDatabase(ctx context.Context, cfg config.DatabaseConfig, nrApp *newrelic.Application) (*sql.DB, error) {
	driverName := "postgres"
	if nrApp != nil {
		driverName = "nrpostgres"
	}

	db, err := sql.Open(driverName, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database with %s: %w", driverName, err)
	}

	// Admin review and ride posting are low-volume; a small pool is enough.
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// RunMigrations applies pending schema migrations from cfg.Path.
func RunMigrations(cfg config.MigrationsConfig, db config.DatabaseConfig, log logger.Logger) error {
	if !cfg.Enabled {
		log.Info("migrations disabled")
		return nil
	}

	m, err := migrate.New("file://"+cfg.Path, db.URL())
	if err != nil {
		return fmt.Errorf("migration init: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("no migrations to apply")
			return nil
		}
		return fmt.Errorf("migration up: %w", err)
	}

	version, _, _ := m.Version()
	log.Info("migrations applied", logger.Int64("version", int64(version)))
	return nil
}
