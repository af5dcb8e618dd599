package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Kaidothouse/expense-tracker/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetUser returns the user with the given id.
func (s *Store) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// GetMonthlyBudget returns the user's configured monthly budget.
func (s *Store) GetMonthlyBudget(userID uint) (decimal.Decimal, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return decimal.Zero, err
	}
	return user.MonthlyBudget, nil
}

// SetMonthlyBudget updates the user's monthly budget; the amount must
// be non-negative.
func (s *Store) SetMonthlyBudget(userID uint, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ValidationErrors{{Field: "amount", Message: "must be at least 0"}}
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return ValidationErrors{{Field: "amount", Message: "too large"}}
	}
	res := s.db.Model(&models.User{}).Where("id = ?", userID).
		Update("monthly_budget", amount)
	if res.Error != nil {
		return fmt.Errorf("set monthly budget: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ProfileInput carries the updatable profile fields; empty values are
// left unchanged.
type ProfileInput struct {
	Username string
	Email    string
}

// UpdateProfile updates username and/or email for the user.
func (s *Store) UpdateProfile(userID uint, in ProfileInput) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	var errs ValidationErrors
	username := strings.TrimSpace(in.Username)
	if username != "" && len(username) < 3 {
		errs = append(errs, FieldError{Field: "username", Message: "must be at least 3 characters"})
	}
	email := strings.TrimSpace(in.Email)
	if email != "" && !strings.Contains(email, "@") {
		errs = append(errs, FieldError{Field: "email", Message: "must be a valid email address"})
	}
	if len(errs) > 0 {
		return nil, errs
	}

	if username != "" {
		user.Username = username
	}
	if email != "" {
		user.Email = email
	}
	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

// UpdatePasswordHash replaces the user's stored credential.
func (s *Store) UpdatePasswordHash(userID uint, hash string) error {
	res := s.db.Model(&models.User{}).Where("id = ?", userID).
		Update("password_hash", hash)
	if res.Error != nil {
		return fmt.Errorf("update password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
