package storage

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"household-expenses/internal/ledger"
	"household-expenses/models"
)

// Totals reads people and transactions from one snapshot and aggregates them.
func (s *Store) Totals(ctx context.Context) (ledger.Report, error) {
	var (
		people []models.Person
		txs    []models.Transaction
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("id").Find(&people).Error; err != nil {
			return fmt.Errorf("load people: %w", err)
		}
		if err := tx.Select("id", "valor", "tipo", "pessoa_id").Find(&txs).Error; err != nil {
			return fmt.Errorf("load transactions: %w", err)
		}
		return nil
	})
	if err != nil {
		return ledger.Report{}, err
	}
	return ledger.ComputeTotals(people, txs), nil
}
