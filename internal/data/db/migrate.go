package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/movies-etl/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(types.Models()...)
}

// EnsureSchema creates the Postgres schema the tables live in. SQLite has no schemas.
func EnsureSchema(db *gorm.DB, schema string) error {
	if schema == "" || db.Dialector.Name() != DriverPostgres {
		return nil
	}
	if err := db.Exec(fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %q;`, schema)).Error; err != nil {
		return fmt.Errorf("create schema %s: %w", schema, err)
	}
	return nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	if err := EnsureSchema(s.db, s.schema); err != nil {
		s.log.Error("Schema creation failed", "error", err)
		return err
	}
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}
