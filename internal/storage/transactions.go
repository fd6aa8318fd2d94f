package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"household-expenses/internal/ledger"
	"household-expenses/models"
)

// CreateTransaction validates and inserts in within one store transaction.
// On any rejection nothing is written. The returned record carries its
// person and category.
func (s *Store) CreateTransaction(ctx context.Context, in ledger.TransactionInput) (models.Transaction, error) {
	if err := in.Validate(); err != nil {
		return models.Transaction{}, err
	}

	var out models.Transaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		checked, err := ledger.Validate(ctx, lookup{db: tx}, in)
		if err != nil {
			return err
		}

		t := checked.Transaction
		if err := tx.Create(&t).Error; err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}
		t.Person = &checked.Person
		t.Category = &checked.Category
		out = t
		return nil
	})
	if err != nil {
		return models.Transaction{}, err
	}
	return out, nil
}

func (s *Store) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	list := []models.Transaction{}
	err := s.db.WithContext(ctx).
		Preload("Person").
		Preload("Category").
		Order("id").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return list, nil
}

func (s *Store) GetTransaction(ctx context.Context, id uint) (models.Transaction, error) {
	var t models.Transaction
	err := findOne(s.db.WithContext(ctx).Preload("Person").Preload("Category"), &t, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Transaction{}, ledger.NotFound(ledger.EntityTransaction)
		}
		return models.Transaction{}, fmt.Errorf("get transaction %d: %w", id, err)
	}
	return t, nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Transaction{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete transaction %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ledger.NotFound(ledger.EntityTransaction)
	}
	return nil
}

// CountTransactions returns how many transactions are stored.
func (s *Store) CountTransactions(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Transaction{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}
