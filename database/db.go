// database/db.go - Database Connection (PostgreSQL, SQLite for local runs and tests)
package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqlitePrefix = "sqlite://"

var db *gorm.DB

// InitDB opens the shared connection and runs migrations.
func InitDB(dsn string, verbose bool) error {
	conn, err := Open(dsn, verbose)
	if err != nil {
		return err
	}
	if err := RunMigrations(conn); err != nil {
		return err
	}
	db = conn
	return nil
}

// Open connects to dsn. A "sqlite://" prefix selects SQLite, anything else
// is handed to the Postgres driver.
func Open(dsn string, verbose bool) (*gorm.DB, error) {
	level := logger.Warn
	if verbose {
		level = logger.Info
	}

	var dialector gorm.Dialector
	isSQLite := strings.HasPrefix(dsn, sqlitePrefix)
	if isSQLite {
		dialector = sqlite.Open(strings.TrimPrefix(dsn, sqlitePrefix))
	} else {
		dialector = postgres.Open(dsn)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: newGormLogger(level),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if isSQLite {
		// A single connection keeps in-memory databases alive and serialises writers.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	log.Info().Bool("sqlite", isSQLite).Msg("✅ database connected")
	return conn, nil
}

// GetDB returns the shared connection.
func GetDB() *gorm.DB {
	if db == nil {
		log.Fatal().Msg("Database not initialized. Call InitDB() first.")
	}
	return db
}

// CloseDB closes the shared connection.
func CloseDB() error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	log.Info().Msg("Database connection closed")
	return nil
}
