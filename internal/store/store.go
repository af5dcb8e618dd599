// Package store is the access layer over the ledger database. Every
// query and mutation is scoped to an owning user id; cross-user access
// always surfaces as ErrNotFound or ErrInvalidReference, never as
// another user's data.
package store

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"gorm.io/gorm"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"

	// DateLayout is the calendar-date format used throughout the ledger.
	DateLayout = "2006-01-02"

	// DefaultLimit and MaxLimit bound expense list pages.
	DefaultLimit = 50
	MaxLimit     = 100
)

// maxAmount guards the DECIMAL(10,2) column range.
var maxAmount = decimal.NewFromInt(100_000_000)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Store wraps a pooled database handle plus the list page bounds. It
// holds no mutable state; it is safe for concurrent use by independent
// requests.
type Store struct {
	db           *gorm.DB
	defaultLimit int
	maxLimit     int
}

// Option adjusts a Store at construction time.
type Option func(*Store)

// WithPageBounds overrides the default and maximum list page sizes.
// Non-positive values keep the package defaults.
func WithPageBounds(def, max int) Option {
	return func(s *Store) {
		if def > 0 {
			s.defaultLimit = def
		}
		if max > 0 {
			s.maxLimit = max
		}
	}
}

func New(db *gorm.DB, opts ...Option) *Store {
	s := &Store{db: db, defaultLimit: DefaultLimit, maxLimit: MaxLimit}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PageBounds reports the default and maximum list page sizes.
func (s *Store) PageBounds() (def, max int) {
	return s.defaultLimit, s.maxLimit
}

// ValidType reports whether t is one of the two ledger entry types.
func ValidType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ExpenseInput carries the writable fields of a ledger entry.
type ExpenseInput struct {
	Amount      decimal.Decimal
	Description string
	Date        string
	Type        string
	CategoryID  *uint
}

func (in ExpenseInput) validate() ValidationErrors {
	var errs ValidationErrors
	if !in.Amount.IsPositive() {
		errs = append(errs, FieldError{Field: "amount", Message: "must be greater than 0"})
	} else if in.Amount.GreaterThanOrEqual(maxAmount) {
		errs = append(errs, FieldError{Field: "amount", Message: "too large"})
	}
	if utf8.RuneCountInString(in.Description) > 255 {
		errs = append(errs, FieldError{Field: "description", Message: "must be at most 255 characters"})
	}
	if !ValidDate(in.Date) {
		errs = append(errs, FieldError{Field: "date", Message: "must be a valid YYYY-MM-DD date"})
	}
	if !ValidType(in.Type) {
		errs = append(errs, FieldError{Field: "type", Message: "must be income or expense"})
	}
	return errs
}

// CategoryInput carries the writable fields of a category.
type CategoryInput struct {
	Name  string
	Type  string
	Color string
	Icon  string
}

func (in CategoryInput) validate() ValidationErrors {
	var errs ValidationErrors
	name := strings.TrimSpace(in.Name)
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "must not be empty"})
	} else if utf8.RuneCountInString(name) > 100 {
		errs = append(errs, FieldError{Field: "name", Message: "must be at most 100 characters"})
	}
	if !ValidType(in.Type) {
		errs = append(errs, FieldError{Field: "type", Message: "must be income or expense"})
	}
	if in.Color != "" && !colorPattern.MatchString(in.Color) {
		errs = append(errs, FieldError{Field: "color", Message: "must be a #RRGGBB color"})
	}
	if utf8.RuneCountInString(in.Icon) > 50 {
		errs = append(errs, FieldError{Field: "icon", Message: "must be at most 50 characters"})
	}
	return errs
}

// ExpenseFilter narrows expense queries. Zero values mean "no filter";
// date bounds are inclusive.
type ExpenseFilter struct {
	StartDate  string
	EndDate    string
	Type       string
	CategoryID uint
}

// apply appends the filter conditions to a query over the expenses table.
func (f ExpenseFilter) apply(q *gorm.DB) *gorm.DB {
	if f.StartDate != "" {
		q = q.Where("expenses.date >= ?", f.StartDate)
	}
	if f.EndDate != "" {
		q = q.Where("expenses.date <= ?", f.EndDate)
	}
	if f.Type != "" {
		q = q.Where("expenses.type = ?", f.Type)
	}
	if f.CategoryID != 0 {
		q = q.Where("expenses.category_id = ?", f.CategoryID)
	}
	return q
}
