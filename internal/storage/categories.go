package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"household-expenses/internal/ledger"
	"household-expenses/models"
)

const msgCategoryInUse = "Categoria possui transações vinculadas e não pode ser excluída"

func (s *Store) CreateCategory(ctx context.Context, in ledger.CategoryInput) (models.Category, error) {
	if err := in.Validate(); err != nil {
		return models.Category{}, err
	}
	c := in.Model()
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return models.Category{}, fmt.Errorf("insert category: %w", err)
	}
	return c, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	list := []models.Category{}
	if err := s.db.WithContext(ctx).Order("id").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return list, nil
}

func (s *Store) GetCategory(ctx context.Context, id uint) (models.Category, error) {
	var c models.Category
	if err := findOne(s.db.WithContext(ctx), &c, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Category{}, ledger.NotFound(ledger.EntityCategory)
		}
		return models.Category{}, fmt.Errorf("get category %d: %w", id, err)
	}
	return c, nil
}

// DeleteCategory removes an unused category. A category still referenced by
// any transaction is left alone and a conflict is returned.
func (s *Store) DeleteCategory(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Category
		if err := findOne(tx, &c, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ledger.NotFound(ledger.EntityCategory)
			}
			return fmt.Errorf("get category %d: %w", id, err)
		}

		var inUse int64
		if err := tx.Model(&models.Transaction{}).Where("categoria_id = ?", id).Count(&inUse).Error; err != nil {
			return fmt.Errorf("count transactions of category %d: %w", id, err)
		}
		if inUse > 0 {
			return ledger.Conflict(ledger.EntityCategory, msgCategoryInUse)
		}

		if err := tx.Delete(&models.Category{}, id).Error; err != nil {
			return fmt.Errorf("delete category %d: %w", id, err)
		}
		return nil
	})
}
