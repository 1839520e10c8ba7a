package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/ROHITHC1526/CyberGuardBOT/migrations"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open connects to the configured store and verifies the connection.
func Open(driver, dataSourceName string, logger *zap.Logger) (*sqlx.DB, error) {
	switch driver {
	case DriverPostgres:
		return NewPostgresDB(dataSourceName, logger)
	case DriverSQLite:
		return NewSQLiteDB(dataSourceName, logger)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// NewPostgresDB establishes a new connection to the PostgreSQL database.
func NewPostgresDB(dataSourceName string, logger *zap.Logger) (*sqlx.DB, error) {
	db, err := sqlx.Connect(DriverPostgres, dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	logger.Info("Successfully connected to the database!", zap.String("driver", DriverPostgres))
	return db, nil
}

// NewSQLiteDB opens a file-backed SQLite database. Used for local runs and tests.
func NewSQLiteDB(path string, logger *zap.Logger) (*sqlx.DB, error) {
	db, err := sqlx.Connect(DriverSQLite, sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	logger.Info("Successfully connected to the database!", zap.String("driver", DriverSQLite), zap.String("path", path))
	return db, nil
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=busy_timeout(5000)&_time_format=sqlite"
}

// MigrateDB runs the embedded migrations for the given driver.
func MigrateDB(db *sqlx.DB, driver string, logger *zap.Logger) error {
	var (
		instance database.Driver
		err      error
	)
	switch driver {
	case DriverPostgres:
		instance, err = postgres.WithInstance(db.DB, &postgres.Config{})
	case DriverSQLite:
		instance, err = sqlite.WithInstance(db.DB, &sqlite.Config{})
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return fmt.Errorf("couldn't get database instance for running migrations: %w", err)
	}

	source, err := iofs.New(migrations.FS, driver)
	if err != nil {
		return fmt.Errorf("couldn't open migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "cyberguard_bot", instance)
	if err != nil {
		return fmt.Errorf("couldn't create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("couldn't run database migration: %w", err)
	}

	logger.Info("Database migration was run successfully", zap.String("driver", driver))
	return nil
}
