// Package testutil builds throwaway stores backed by real SQLite files.
package testutil

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm/logger"

	"household-expenses/internal/config"
	"household-expenses/internal/storage"
)

// Config returns a sqlite configuration pointing into t's temp dir.
func Config(t *testing.T) config.Config {
	t.Helper()
	cfg := config.New()
	cfg.Driver = config.DriverSQLite
	cfg.SQLitePath = filepath.Join(t.TempDir(), "test.db")
	cfg.GinMode = "test"
	return cfg
}

// NewStore returns a migrated, empty store. It is closed on cleanup.
func NewStore(t *testing.T) *storage.Store {
	t.Helper()
	cfg := Config(t)

	dsn, err := cfg.MigrationDSN()
	if err != nil {
		t.Fatalf("migration dsn: %v", err)
	}
	if err := storage.RunMigrations(cfg.Driver, dsn); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	db, err := storage.Open(cfg, logger.Discard)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	store := storage.New(db)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
