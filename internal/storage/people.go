package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"household-expenses/internal/ledger"
	"household-expenses/models"
)

func (s *Store) CreatePerson(ctx context.Context, in ledger.PersonInput) (models.Person, error) {
	if err := in.Validate(); err != nil {
		return models.Person{}, err
	}
	p := in.Model()
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return models.Person{}, fmt.Errorf("insert person: %w", err)
	}
	return p, nil
}

func (s *Store) ListPeople(ctx context.Context) ([]models.Person, error) {
	list := []models.Person{}
	if err := s.db.WithContext(ctx).Order("id").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	return list, nil
}

func (s *Store) GetPerson(ctx context.Context, id uint) (models.Person, error) {
	var p models.Person
	if err := findOne(s.db.WithContext(ctx), &p, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Person{}, ledger.NotFound(ledger.EntityPerson)
		}
		return models.Person{}, fmt.Errorf("get person %d: %w", id, err)
	}
	return p, nil
}

// DeletePerson removes the person and every transaction they own in one
// transaction. It returns how many transactions went with them.
func (s *Store) DeletePerson(ctx context.Context, id uint) (int64, error) {
	var removed int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Person
		if err := findOne(tx, &p, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ledger.NotFound(ledger.EntityPerson)
			}
			return fmt.Errorf("get person %d: %w", id, err)
		}

		res := tx.Where("pessoa_id = ?", id).Delete(&models.Transaction{})
		if res.Error != nil {
			return fmt.Errorf("delete transactions of person %d: %w", id, res.Error)
		}
		removed = res.RowsAffected

		if err := tx.Delete(&models.Person{}, id).Error; err != nil {
			return fmt.Errorf("delete person %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
