package store

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Aggregation queries underneath the stats engine. Every result here is
// derived from the expenses table at call time; nothing is materialized.

// TypeTotals is the income/expense split for a date window.
type TypeTotals struct {
	TotalExpense decimal.Decimal
	TotalIncome  decimal.Decimal
}

// SumByType sums amounts per type for ownerID within [startDate, endDate].
func (s *Store) SumByType(ownerID uint, startDate, endDate string) (TypeTotals, error) {
	var totals TypeTotals
	err := s.db.Raw(`
		SELECT
			COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0) AS total_expense,
			COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0) AS total_income
		FROM expenses
		WHERE user_id = ? AND date >= ? AND date <= ?`,
		ownerID, startDate, endDate).Scan(&totals).Error
	if err != nil {
		return TypeTotals{}, fmt.Errorf("sum by type: %w", err)
	}
	return totals, nil
}

// CategorySpend is one row of the per-category expense breakdown.
type CategorySpend struct {
	ID     uint            `json:"id"`
	Name   string          `json:"name"`
	Color  string          `json:"color"`
	Icon   string          `json:"icon"`
	Amount decimal.Decimal `json:"amount"`
}

// CategorySpending sums expense amounts per expense-type category of
// ownerID within [startDate, endDate], highest spend first. Categories
// with no matching entries appear with a zero amount.
func (s *Store) CategorySpending(ownerID uint, startDate, endDate string) ([]CategorySpend, error) {
	var rows []CategorySpend
	err := s.db.Raw(`
		SELECT
			c.id,
			c.name,
			c.color,
			c.icon,
			COALESCE(SUM(e.amount), 0) AS amount
		FROM categories c
		LEFT JOIN expenses e ON c.id = e.category_id
			AND e.user_id = ?
			AND e.date >= ?
			AND e.date <= ?
			AND e.type = 'expense'
		WHERE c.user_id = ? AND c.type = 'expense'
		GROUP BY c.id, c.name, c.color, c.icon
		ORDER BY amount DESC`,
		ownerID, startDate, endDate, ownerID).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("category spending: %w", err)
	}
	return rows, nil
}

// MonthTotals is one month of the trend series.
type MonthTotals struct {
	Month   string          `json:"month"`
	Expense decimal.Decimal `json:"expense"`
	Income  decimal.Decimal `json:"income"`
}

// MonthlyTotals groups ownerID's entries within [startDate, endDate] by
// YYYY-MM, ascending. Months with no entries produce no row.
func (s *Store) MonthlyTotals(ownerID uint, startDate, endDate string) ([]MonthTotals, error) {
	var rows []MonthTotals
	err := s.db.Raw(`
		SELECT
			strftime('%Y-%m', date) AS month,
			SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END) AS expense,
			SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END) AS income
		FROM expenses
		WHERE user_id = ? AND date >= ? AND date <= ?
		GROUP BY month
		ORDER BY month ASC`,
		ownerID, startDate, endDate).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("monthly totals: %w", err)
	}
	return rows, nil
}

// MonthSummary is one month of the filtered summary series.
type MonthSummary struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// MonthlySummary groups the filtered entry set of ownerID by YYYY-MM,
// newest month first, with income, expense and net per month.
func (s *Store) MonthlySummary(ownerID uint, filter ExpenseFilter) ([]MonthSummary, error) {
	q := s.db.Table("expenses").
		Select(`strftime('%Y-%m', expenses.date) AS month,
			SUM(CASE WHEN expenses.type = 'income' THEN expenses.amount ELSE 0 END) AS income,
			SUM(CASE WHEN expenses.type = 'expense' THEN expenses.amount ELSE 0 END) AS expense,
			SUM(CASE WHEN expenses.type = 'income' THEN expenses.amount ELSE -expenses.amount END) AS net`).
		Where("expenses.user_id = ?", ownerID)
	q = filter.apply(q)

	var rows []MonthSummary
	if err := q.Group("month").Order("month DESC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("monthly summary: %w", err)
	}
	return rows, nil
}

// RecentExpense is one row of the recent-transactions view.
type RecentExpense struct {
	ID            uint            `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Description   *string         `json:"description"`
	Date          string          `json:"date"`
	Type          string          `json:"type"`
	CategoryName  *string         `json:"categoryName"`
	CategoryColor *string         `json:"categoryColor"`
	CategoryIcon  *string         `json:"categoryIcon"`
}

// RecentExpenses returns the newest limit entries of ownerID, date
// descending, tie-broken by descending id, annotated with their
// category when one is linked.
func (s *Store) RecentExpenses(ownerID uint, limit int) ([]RecentExpense, error) {
	var rows []RecentExpense
	err := s.db.Raw(`
		SELECT
			e.id,
			e.amount,
			e.description,
			e.date,
			e.type,
			c.name AS category_name,
			c.color AS category_color,
			c.icon AS category_icon
		FROM expenses e
		LEFT JOIN categories c ON e.category_id = c.id
		WHERE e.user_id = ?
		ORDER BY e.date DESC, e.id DESC
		LIMIT ?`,
		ownerID, limit).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("recent expenses: %w", err)
	}
	return rows, nil
}

// MonthWindow returns the inclusive first/last calendar days of the
// month containing t.
func MonthWindow(t time.Time) (string, string) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)
	return first.Format(DateLayout), last.Format(DateLayout)
}
