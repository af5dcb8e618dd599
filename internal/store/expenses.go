package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/Kaidothouse/expense-tracker/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ExpenseRecord is a ledger entry annotated with its category, when one
// is linked. CategoryName/CategoryColor are nil for uncategorized rows.
type ExpenseRecord struct {
	ID            uint            `json:"id"`
	UserID        uint            `json:"userId"`
	CategoryID    *uint           `json:"categoryId"`
	Amount        decimal.Decimal `json:"amount"`
	Description   *string         `json:"description"`
	Date          string          `json:"date"`
	Type          string          `json:"type"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	CategoryName  *string         `json:"categoryName"`
	CategoryColor *string         `json:"categoryColor"`
}

const expenseRecordColumns = `expenses.id, expenses.user_id, expenses.category_id,
	expenses.amount, expenses.description, expenses.date, expenses.type,
	expenses.created_at, expenses.updated_at,
	categories.name AS category_name, categories.color AS category_color`

// checkCategoryOwnership verifies that categoryID belongs to ownerID.
// The check and the subsequent write are separate statements; a category
// deleted in between leaves the entry uncategorized, not rejected.
func (s *Store) checkCategoryOwnership(ownerID uint, categoryID uint) error {
	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("id = ? AND user_id = ?", categoryID, ownerID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check category: %w", err)
	}
	if count == 0 {
		return ErrInvalidReference
	}
	return nil
}

// CreateExpense validates and inserts a new ledger entry for ownerID.
func (s *Store) CreateExpense(ownerID uint, in ExpenseInput) (*models.Expense, error) {
	if errs := in.validate(); len(errs) > 0 {
		return nil, errs
	}
	if in.CategoryID != nil {
		if err := s.checkCategoryOwnership(ownerID, *in.CategoryID); err != nil {
			return nil, err
		}
	}

	expense := models.Expense{
		UserID:      ownerID,
		CategoryID:  in.CategoryID,
		Amount:      in.Amount,
		Description: in.Description,
		Date:        in.Date,
		Type:        in.Type,
	}
	if err := s.db.Create(&expense).Error; err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return &expense, nil
}

// GetExpense returns a single annotated entry owned by ownerID.
func (s *Store) GetExpense(ownerID, id uint) (*ExpenseRecord, error) {
	var rec ExpenseRecord
	err := s.db.Table("expenses").
		Select(expenseRecordColumns).
		Joins("LEFT JOIN categories ON categories.id = expenses.category_id").
		Where("expenses.id = ? AND expenses.user_id = ?", id, ownerID).
		Take(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return &rec, nil
}

// ListExpenses returns annotated entries owned by ownerID matching the
// filter, most recent date first, tie-broken by descending id. Limit
// defaults to and is capped at the store's page bounds.
func (s *Store) ListExpenses(ownerID uint, filter ExpenseFilter, limit, offset int) ([]ExpenseRecord, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}
	if offset < 0 {
		offset = 0
	}

	q := s.db.Table("expenses").
		Select(expenseRecordColumns).
		Joins("LEFT JOIN categories ON categories.id = expenses.category_id").
		Where("expenses.user_id = ?", ownerID)
	q = filter.apply(q)

	records := make([]ExpenseRecord, 0, limit)
	if err := q.Order("expenses.date DESC, expenses.id DESC").
		Limit(limit).
		Offset(offset).
		Scan(&records).Error; err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return records, nil
}

// ExportExpenses returns the caller's complete ledger, newest first,
// for file export. No paging: exports cover everything.
func (s *Store) ExportExpenses(ownerID uint) ([]ExpenseRecord, error) {
	var records []ExpenseRecord
	if err := s.db.Table("expenses").
		Select(expenseRecordColumns).
		Joins("LEFT JOIN categories ON categories.id = expenses.category_id").
		Where("expenses.user_id = ?", ownerID).
		Order("expenses.date DESC, expenses.id DESC").
		Scan(&records).Error; err != nil {
		return nil, fmt.Errorf("export expenses: %w", err)
	}
	return records, nil
}

// UpdateExpense re-validates and overwrites an entry owned by ownerID.
func (s *Store) UpdateExpense(ownerID, id uint, in ExpenseInput) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Where("id = ? AND user_id = ?", id, ownerID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find expense: %w", err)
	}

	if errs := in.validate(); len(errs) > 0 {
		return nil, errs
	}
	if in.CategoryID != nil {
		if err := s.checkCategoryOwnership(ownerID, *in.CategoryID); err != nil {
			return nil, err
		}
	}

	expense.CategoryID = in.CategoryID
	expense.Amount = in.Amount
	expense.Description = in.Description
	expense.Date = in.Date
	expense.Type = in.Type

	if err := s.db.Save(&expense).Error; err != nil {
		return nil, fmt.Errorf("update expense: %w", err)
	}
	return &expense, nil
}

// DeleteExpense permanently removes an entry owned by ownerID.
func (s *Store) DeleteExpense(ownerID, id uint) error {
	res := s.db.Where("id = ? AND user_id = ?", id, ownerID).Delete(&models.Expense{})
	if res.Error != nil {
		return fmt.Errorf("delete expense: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
