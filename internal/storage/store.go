// Package storage persists people, categories and transactions with gorm
// and owns the schema migrations.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"household-expenses/internal/config"
	"household-expenses/models"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Open connects gorm to the configured database. SQLite gets a single
// connection so writers never contend for the file lock.
func Open(cfg config.Config, lg logger.Interface) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverMySQL:
		dialector = mysql.Open(cfg.DSN())
	case config.DriverSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
		dialector = sqlite.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: lg})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	if cfg.Driver == config.DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}
	return db, nil
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// lookup resolves references inside whatever gorm session it wraps,
// including an open transaction. On MySQL the rows read are share-locked
// so a concurrent delete waits until the transaction ends.
type lookup struct{ db *gorm.DB }

func (l lookup) query(ctx context.Context) *gorm.DB {
	db := l.db.WithContext(ctx)
	if db.Dialector.Name() == config.DriverMySQL {
		db = db.Clauses(clause.Locking{Strength: "SHARE"})
	}
	return db
}

func (l lookup) FindPerson(ctx context.Context, id uint) (*models.Person, error) {
	var p models.Person
	if err := findOne(l.query(ctx), &p, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find person %d: %w", id, err)
	}
	return &p, nil
}

func (l lookup) FindCategory(ctx context.Context, id uint) (*models.Category, error) {
	var c models.Category
	if err := findOne(l.query(ctx), &c, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find category %d: %w", id, err)
	}
	return &c, nil
}

// findOne loads the row with primary key id into dest, returning
// gorm.ErrRecordNotFound when there is none.
func findOne(db *gorm.DB, dest any, id uint) error {
	res := db.Limit(1).Find(dest, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
