package models

import "time"

// Category represents a user-defined income/expense bucket.
// Name is unique per (user, name, type); the same name may exist once
// as income and once as expense.
type Category struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	Name      string    `gorm:"size:100;not null"`
	Type      string    `gorm:"size:16;index;not null"` // income / expense
	Color     string    `gorm:"size:7"`                 // #RRGGBB
	Icon      string    `gorm:"size:50"`
	CreatedAt time.Time
}
