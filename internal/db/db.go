package db

import (
	"errors"
	"log"
	"time"

	"nadebook/internal/config"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open connects to the SQLite store with write-ahead logging and foreign
// keys enabled. WAL keeps concurrent readers unblocked by the single writer.
func Open(cfg config.Config) (*gorm.DB, error) {
	if cfg.DatabasePath == "" {
		return nil, errors.New("database path is not set")
	}
	dsn := cfg.DatabasePath + "?_journal_mode=WAL&_foreign_keys=1&_busy_timeout=5000"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetimeSeconds) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.DBConnMaxIdleTimeSeconds) * time.Second)
	return conn, nil
}

// Migrate runs GORM auto-migrations for the core tables.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return errors.New("db connection is nil")
	}
	if err := conn.AutoMigrate(
		&Account{},
		&Bookmark{},
		&Submission{},
		&FrameReport{},
		&LineupReport{},
	); err != nil {
		return err
	}
	log.Println("database migration complete")
	return nil
}
