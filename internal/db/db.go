package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/troia-reservas/internal/config"
	"github.com/BruksfildServices01/troia-reservas/internal/logger"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

func NewDB(cfg *config.Config, lg *logger.Logger) *gorm.DB {
	db, err := Open(cfg.DBUrl)
	if err != nil {
		lg.Fatal("DATABASE", fmt.Sprintf("failed to connect database: %v", err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		lg.Fatal("DATABASE", fmt.Sprintf("failed to get sql.DB: %v", err))
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	version, err := Migrate(sqlDB)
	if err != nil {
		lg.Fatal("DATABASE", fmt.Sprintf("failed to migrate: %v", err))
	}
	lg.LogDatabase("MIGRATE", "schema_migrations", fmt.Sprintf("schema at version %d", version))

	return db
}

func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(gormlogger.Warn),
	})
}

// Migrate applies the embedded migrations and returns the resulting version.
// The migrate instance is not closed: closing it would close sqlDB too.
func Migrate(sqlDB *sql.DB) (uint, error) {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return 0, fmt.Errorf("open migrations: %w", err)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return 0, fmt.Errorf("create postgres migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return 0, fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("run migrations: %w", err)
	}

	version, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, fmt.Errorf("read migration version: %w", err)
	}
	return version, nil
}
