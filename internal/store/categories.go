package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Kaidothouse/expense-tracker/internal/models"

	"gorm.io/gorm"
)

// ListCategories returns all categories owned by ownerID, name ascending.
func (s *Store) ListCategories(ownerID uint) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Where("user_id = ?", ownerID).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// GetCategory returns a single category owned by ownerID.
func (s *Store) GetCategory(ownerID, id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND user_id = ?", id, ownerID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &category, nil
}

// hasDuplicateCategory reports whether another category with the same
// (name, type) exists for ownerID. excludeID skips the category being
// updated; pass 0 on create.
func (s *Store) hasDuplicateCategory(ownerID uint, name, ctype string, excludeID uint) (bool, error) {
	q := s.db.Model(&models.Category{}).
		Where("user_id = ? AND name = ? AND type = ?", ownerID, name, ctype)
	if excludeID != 0 {
		q = q.Where("id != ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check duplicate category: %w", err)
	}
	return count > 0, nil
}

// CreateCategory validates and inserts a category; duplicate (user,
// name, type) fails with ErrConflict.
func (s *Store) CreateCategory(ownerID uint, in CategoryInput) (*models.Category, error) {
	if errs := in.validate(); len(errs) > 0 {
		return nil, errs
	}
	name := strings.TrimSpace(in.Name)

	dup, err := s.hasDuplicateCategory(ownerID, name, in.Type, 0)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, ErrConflict
	}

	category := models.Category{
		UserID: ownerID,
		Name:   name,
		Type:   in.Type,
		Color:  in.Color,
		Icon:   in.Icon,
	}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &category, nil
}

// UpdateCategory overwrites a category owned by ownerID, keeping the
// (user, name, type) uniqueness rule against the other categories.
func (s *Store) UpdateCategory(ownerID, id uint, in CategoryInput) (*models.Category, error) {
	category, err := s.GetCategory(ownerID, id)
	if err != nil {
		return nil, err
	}

	if errs := in.validate(); len(errs) > 0 {
		return nil, errs
	}
	name := strings.TrimSpace(in.Name)

	dup, err := s.hasDuplicateCategory(ownerID, name, in.Type, id)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, ErrConflict
	}

	category.Name = name
	category.Type = in.Type
	category.Color = in.Color
	category.Icon = in.Icon

	if err := s.db.Save(category).Error; err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return category, nil
}

// DeleteCategory removes a category owned by ownerID. Entries linked to
// it keep their history with a nulled category reference; the
// disassociation and the delete are two sequential statements, not one
// transaction.
func (s *Store) DeleteCategory(ownerID, id uint) error {
	if _, err := s.GetCategory(ownerID, id); err != nil {
		return err
	}

	if err := s.db.Model(&models.Expense{}).
		Where("category_id = ? AND user_id = ?", id, ownerID).
		Update("category_id", nil).Error; err != nil {
		return fmt.Errorf("detach expenses: %w", err)
	}

	if err := s.db.Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&models.Category{}).Error; err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
