package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"household-expenses/internal/config"
	applog "household-expenses/internal/log"
	"household-expenses/internal/storage"
	"household-expenses/models"
)

const slowQuery = 200 * time.Millisecond

func initDB(ctx context.Context, cfg config.Config, logger *slog.Logger) (*gorm.DB, error) {
	db, err := storage.Open(cfg, applog.NewGormLogger(logger, slowQuery))
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	dsn, err := cfg.MigrationDSN()
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	if err := storage.RunMigrations(cfg.Driver, dsn); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if cfg.SeedDev {
		if err := seedDevData(ctx, db); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
		applog.WithComponent(logger, applog.ComponentStorage).Info("development data ready", applog.FieldOperation, applog.OpSeed)
	}
	return db, nil
}

// seedDevData fills an empty database with a small household: one adult,
// one minor, a category per purpose and a few transactions.
func seedDevData(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&models.Person{}).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return nil
		}
		if err := tx.Model(&models.Category{}).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return nil
		}

		people := []models.Person{
			{Name: "Maria Silva", Age: 42},
			{Name: "Pedro Silva", Age: 15},
		}
		if err := tx.Create(&people).Error; err != nil {
			return err
		}
		cats := []models.Category{
			{Description: "Mercado", Purpose: models.PurposeExpense},
			{Description: "Salário", Purpose: models.PurposeIncome},
			{Description: "Presentes", Purpose: models.PurposeBoth},
		}
		if err := tx.Create(&cats).Error; err != nil {
			return err
		}

		txs := []models.Transaction{
			{Description: "Salário de maio", Amount: decimal.RequireFromString("5200.00"), Kind: models.KindIncome, PersonID: people[0].ID, CategoryID: cats[1].ID},
			{Description: "Compras do mês", Amount: decimal.RequireFromString("873.45"), Kind: models.KindExpense, PersonID: people[0].ID, CategoryID: cats[0].ID},
			{Description: "Presente de aniversário", Amount: decimal.RequireFromString("60.00"), Kind: models.KindExpense, PersonID: people[1].ID, CategoryID: cats[2].ID},
		}
		return tx.Create(&txs).Error
	})
}
