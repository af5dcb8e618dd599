package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single ledger entry, income or expense.
// Amount is always positive; direction is carried by Type.
// Date is a plain calendar date (YYYY-MM-DD), no time component.
type Expense struct {
	ID          uint            `gorm:"primaryKey"`
	UserID      uint            `gorm:"index;not null"`
	CategoryID  *uint           `gorm:"index"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Description string          `gorm:"size:255"`
	Date        string          `gorm:"type:date;index;not null"`
	Type        string          `gorm:"size:16;index;not null"` // income / expense
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
