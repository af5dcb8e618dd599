// Package stats derives read-only views from the ledger: the
// current-period budget snapshot, multi-month trend series, the
// recent-transactions view and filtered monthly summaries. Nothing here
// mutates state and nothing is cached; concurrent writers may change
// results between calls (read-committed, not snapshot-isolated).
package stats

import (
	"time"

	"github.com/Kaidothouse/expense-tracker/internal/store"

	"github.com/shopspring/decimal"
)

const (
	// MinMonths and MaxMonths bound the trend series span.
	MinMonths     = 1
	MaxMonths     = 12
	DefaultMonths = 6

	// MinRecent and MaxRecent bound the recent-transactions view.
	MinRecent     = 1
	MaxRecent     = 20
	DefaultRecent = 5

	monthLayout = "2006-01"
)

// Engine computes aggregations over a ledger store.
type Engine struct {
	store *store.Store
	now   func() time.Time
}

func New(s *store.Store) *Engine {
	return &Engine{store: s, now: time.Now}
}

// NewWithNow constructs an engine with a fixed clock, for tests.
func NewWithNow(s *store.Store, now func() time.Time) *Engine {
	return &Engine{store: s, now: now}
}

// PeriodSnapshot is the budget status of one calendar month.
type PeriodSnapshot struct {
	MonthlyBudget    decimal.Decimal       `json:"monthlyBudget"`
	TotalSpent       decimal.Decimal       `json:"totalSpent"`
	TotalIncome      decimal.Decimal       `json:"totalIncome"`
	Remaining        decimal.Decimal       `json:"remaining"`
	PercentUsed      float64               `json:"percentUsed"`
	CategorySpending []store.CategorySpend `json:"categorySpending"`
	Month            string                `json:"month"`
}

// CurrentPeriod computes the budget snapshot for a calendar month.
// month is YYYY-MM and defaults to the month containing now. remaining
// is budget minus spend; percentUsed is defined as 0 when the budget is
// 0 so a zero budget never divides.
func (e *Engine) CurrentPeriod(ownerID uint, month string) (*PeriodSnapshot, error) {
	if month == "" {
		month = e.now().Format(monthLayout)
	}
	t, err := time.Parse(monthLayout, month)
	if err != nil {
		return nil, store.ValidationErrors{{Field: "month", Message: "must be a valid YYYY-MM month"}}
	}
	firstDay, lastDay := store.MonthWindow(t)

	budget, err := e.store.GetMonthlyBudget(ownerID)
	if err != nil {
		return nil, err
	}
	totals, err := e.store.SumByType(ownerID, firstDay, lastDay)
	if err != nil {
		return nil, err
	}
	breakdown, err := e.store.CategorySpending(ownerID, firstDay, lastDay)
	if err != nil {
		return nil, err
	}

	percentUsed := 0.0
	if budget.IsPositive() {
		percentUsed, _ = totals.TotalExpense.
			Div(budget).
			Mul(decimal.NewFromInt(100)).
			Float64()
	}

	return &PeriodSnapshot{
		MonthlyBudget:    budget,
		TotalSpent:       totals.TotalExpense,
		TotalIncome:      totals.TotalIncome,
		Remaining:        budget.Sub(totals.TotalExpense),
		PercentUsed:      percentUsed,
		CategorySpending: breakdown,
		Month:            month,
	}, nil
}

// Trends returns per-month expense/income totals for the months
// calendar months ending at the current one, ascending by YYYY-MM key.
// months defaults to DefaultMonths and must be within [1, 12]. Months
// without entries produce no row; consumers must handle sparse series.
func (e *Engine) Trends(ownerID uint, months int) ([]store.MonthTotals, error) {
	if months == 0 {
		months = DefaultMonths
	}
	if months < MinMonths || months > MaxMonths {
		return nil, store.ValidationErrors{{Field: "months", Message: "must be between 1 and 12"}}
	}

	now := e.now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -(months - 1), 0)
	startDate := first.Format(store.DateLayout)
	endDate := now.Format(store.DateLayout)

	return e.store.MonthlyTotals(ownerID, startDate, endDate)
}

// Recent returns the newest limit ledger entries annotated with their
// categories. limit defaults to DefaultRecent and must be within
// [1, 20].
func (e *Engine) Recent(ownerID uint, limit int) ([]store.RecentExpense, error) {
	if limit == 0 {
		limit = DefaultRecent
	}
	if limit < MinRecent || limit > MaxRecent {
		return nil, store.ValidationErrors{{Field: "limit", Message: "must be between 1 and 20"}}
	}
	return e.store.RecentExpenses(ownerID, limit)
}

// MonthlySummary returns per-month income/expense/net rows for the
// filtered entry set, newest month first.
func (e *Engine) MonthlySummary(ownerID uint, filter store.ExpenseFilter) ([]store.MonthSummary, error) {
	return e.store.MonthlySummary(ownerID, filter)
}
