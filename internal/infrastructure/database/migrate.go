package database

import (
	"fmt"

	migrate "github.com/rubenv/sql-migrate"
	"gorm.io/gorm"
)

// DefaultMigrationsDir is resolved relative to the working directory
const DefaultMigrationsDir = "migrations"

// MigrationRecord is one row of `minuteme migrate status`
type MigrationRecord struct {
	ID      string
	Applied bool
}

func source(dir string) *migrate.FileMigrationSource {
	if dir == "" {
		dir = DefaultMigrationsDir
	}
	return &migrate.FileMigrationSource{Dir: dir}
}

// MigrateUp applies pending migrations and returns how many ran
func MigrateUp(db *gorm.DB, dir string) (int, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get db connection during migrate up: %w", err)
	}
	n, err := migrate.Exec(sqlDB, "postgres", source(dir), migrate.Up)
	if err != nil {
		return 0, fmt.Errorf("failed to apply migrations: %w", err)
	}
	return n, nil
}

// MigrateDown rolls back at most steps migrations
func MigrateDown(db *gorm.DB, dir string, steps int) (int, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get db connection during migrate down: %w", err)
	}
	n, err := migrate.ExecMax(sqlDB, "postgres", source(dir), migrate.Down, steps)
	if err != nil {
		return 0, fmt.Errorf("failed to roll back migrations: %w", err)
	}
	return n, nil
}

// MigrationStatus lists every known migration with its applied flag
func MigrationStatus(db *gorm.DB, dir string) ([]MigrationRecord, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get db connection: %w", err)
	}
	known, err := source(dir).FindMigrations()
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}
	applied, err := migrate.GetMigrationRecords(sqlDB, "postgres")
	if err != nil {
		return nil, fmt.Errorf("failed to read migration records: %w", err)
	}
	done := make(map[string]bool, len(applied))
	for _, rec := range applied {
		done[rec.Id] = true
	}
	out := make([]MigrationRecord, 0, len(known))
	for _, m := range known {
		out = append(out, MigrationRecord{ID: m.Id, Applied: done[m.Id]})
	}
	return out, nil
}
