package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect opens a GORM connection. Postgres DSNs are recognized by scheme;
// anything else is treated as a SQLite path for local development.
func Connect(dsn string) (*gorm.DB, error) {
	// TranslateError turns driver-specific unique violations into
	// gorm.ErrDuplicatedKey, which the services rely on under races.
	gormCfg := &gorm.Config{TranslateError: true}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		log.Printf("[database] connecting to PostgreSQL")
		return gorm.Open(postgres.Open(dsn), gormCfg)
	}

	log.Printf("[database] using SQLite at %s", dsn)
	return gorm.Open(sqlite.Open(dsn), gormCfg)
}
