package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents application user.
type User struct {
	ID            uint            `gorm:"primaryKey"`
	Email         string          `gorm:"size:255;uniqueIndex;not null"`
	Username      string          `gorm:"size:64;uniqueIndex;not null"`
	PasswordHash  string          `gorm:"size:255;not null"`
	MonthlyBudget decimal.Decimal `gorm:"type:decimal(10,2);default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
