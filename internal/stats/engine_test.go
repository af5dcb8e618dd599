package stats

import (
	"testing"
	"time"

	"github.com/Kaidothouse/expense-tracker/internal/models"
	"github.com/Kaidothouse/expense-tracker/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestLedger(t *testing.T) (*store.Store, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Category{}, &models.Expense{}))
	return store.New(db), db
}

func addUser(t *testing.T, db *gorm.DB, name string, budget int64) uint {
	t.Helper()
	user := models.User{
		Email:         name + "@example.com",
		Username:      name,
		PasswordHash:  "irrelevant",
		MonthlyBudget: decimal.NewFromInt(budget),
	}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

func addCategory(t *testing.T, s *store.Store, ownerID uint, name string) uint {
	t.Helper()
	category, err := s.CreateCategory(ownerID, store.CategoryInput{Name: name, Type: store.TypeExpense})
	require.NoError(t, err)
	return category.ID
}

func addEntry(t *testing.T, s *store.Store, ownerID uint, amount float64, date, entryType string, categoryID *uint) uint {
	t.Helper()
	expense, err := s.CreateExpense(ownerID, store.ExpenseInput{
		Amount:     decimal.NewFromFloat(amount),
		Date:       date,
		Type:       entryType,
		CategoryID: categoryID,
	})
	require.NoError(t, err)
	return expense.ID
}

func TestCurrentPeriodSnapshot(t *testing.T) {
	ledger, db := newTestLedger(t)
	userID := addUser(t, db, "alice", 2000)

	addEntry(t, ledger, userID, 500, "2026-02-01", store.TypeExpense, nil)
	addEntry(t, ledger, userID, 300, "2026-02-15", store.TypeExpense, nil)
	addEntry(t, ledger, userID, 1000, "2026-02-01", store.TypeIncome, nil)
	// outside the window
	addEntry(t, ledger, userID, 999, "2026-01-31", store.TypeExpense, nil)

	engine := New(ledger)
	snapshot, err := engine.CurrentPeriod(userID, "2026-02")
	require.NoError(t, err)

	require.True(t, snapshot.TotalSpent.Equal(decimal.NewFromInt(800)))
	require.True(t, snapshot.TotalIncome.Equal(decimal.NewFromInt(1000)))
	require.True(t, snapshot.Remaining.Equal(decimal.NewFromInt(1200)))
	require.Equal(t, 40.0, snapshot.PercentUsed)
	require.Equal(t, "2026-02", snapshot.Month)
}

func TestCurrentPeriodZeroBudget(t *testing.T) {
	ledger, db := newTestLedger(t)
	userID := addUser(t, db, "alice", 0)
	addEntry(t, ledger, userID, 123.45, "2026-02-10", store.TypeExpense, nil)

	snapshot, err := New(ledger).CurrentPeriod(userID, "2026-02")
	require.NoError(t, err)
	// defined as 0 when there is no budget, never a division by zero
	require.Equal(t, 0.0, snapshot.PercentUsed)
	require.True(t, snapshot.Remaining.Equal(decimal.NewFromFloat(-123.45)))
}

func TestCurrentPeriodInvalidMonth(t *testing.T) {
	ledger, db := newTestLedger(t)
	userID := addUser(t, db, "alice", 0)

	_, err := New(ledger).CurrentPeriod(userID, "2026-13")
	_, ok := store.AsValidationErrors(err)
	require.True(t, ok)
}

func TestCategoryBreakdownPartition(t *testing.T) {
	ledger, db := newTestLedger(t)
	userID := addUser(t, db, "alice", 2000)

	food := addCategory(t, ledger, userID, "Food")
	addCategory(t, ledger, userID, "Rent") // no spend this month

	addEntry(t, ledger, userID, 500.25, "2026-02-01", store.TypeExpense, &food)
	addEntry(t, ledger, userID, 100.50, "2026-02-02", store.TypeExpense, &food)
	addEntry(t, ledger, userID, 49.25, "2026-02-03", store.TypeExpense, nil) // uncategorized

	snapshot, err := New(ledger).CurrentPeriod(userID, "2026-02")
	require.NoError(t, err)

	require.Len(t, snapshot.CategorySpending, 2)
	require.Equal(t, "Food", snapshot.CategorySpending[0].Name)
	require.True(t, snapshot.CategorySpending[0].Amount.Equal(decimal.NewFromFloat(600.75)))
	// zero-spend categories still appear, after the spenders
	require.Equal(t, "Rent", snapshot.CategorySpending[1].Name)
	require.True(t, snapshot.CategorySpending[1].Amount.IsZero())

	// categorized sums plus the uncategorized residual partition the total
	categorized := decimal.Zero
	for _, cs := range snapshot.CategorySpending {
		categorized = categorized.Add(cs.Amount)
	}
	residual := snapshot.TotalSpent.Sub(categorized)
	require.True(t, residual.Equal(decimal.NewFromFloat(49.25)))
}

func TestTrendsWindowAndOrdering(t *testing.T) {
	ledger, db := newTestLedger(t)
	userID := addUser(t, db, "alice", 0)

	addEntry(t, ledger, userID, 10, "2025-10-05", store.TypeExpense, nil)
	addEntry(t, ledger, userID, 50, "2026-01-20", store.TypeIncome, nil)
	addEntry(t, ledger, userID, 20, "2026-03-01", store.TypeExpense, nil)
	// before the six-month window
	addEntry(t, ledger, userID, 77, "2025-08-15", store.TypeExpense, nil)

	now := func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }
	engine := NewWithNow(ledger, now)

	rows, err := engine.Trends(userID, 6)
	require.NoError(t, err)

	// sparse: only months with entries, ascending, never more than asked
	require.Len(t, rows, 3)
	require.Equal(t, "2025-10", rows[0].Month)
	require.Equal(t, "2026-01", rows[1].Month)
	require.Equal(t, "2026-03", rows[2].Month)
	require.True(t, rows[1].Income.Equal(decimal.NewFromInt(50)))
	require.True(t, rows[1].Expense.IsZero())

	single, err := engine.Trends(userID, 1)
	require.NoError(t, err)
	require.Len(t, single, 1)
	require.Equal(t, "2026-03", single[0].Month)

	// 0 means "not given": defaults to six months
	byDefault, err := engine.Trends(userID, 0)
	require.NoError(t, err)
	require.Len(t, byDefault, 3)
}

func TestTrendsRejectsOutOfRangeMonths(t *testing.T) {
	ledger, db := newTestLedger(t)
	userID := addUser(t, db, "alice", 0)
	engine := New(ledger)

	for _, months := range []int{-1, 13, 100} {
		_, err := engine.Trends(userID, months)
		_, ok := store.AsValidationErrors(err)
		require.True(t, ok, "months=%d should be rejected", months)
	}
}

func TestRecentViewAnnotationAndBounds(t *testing.T) {
	ledger, db := newTestLedger(t)
	userID := addUser(t, db, "alice", 0)
	food := addCategory(t, ledger, userID, "Food")

	categorized := addEntry(t, ledger, userID, 10, "2026-02-10", store.TypeExpense, &food)
	bare := addEntry(t, ledger, userID, 20, "2026-02-10", store.TypeExpense, nil)
	addEntry(t, ledger, userID, 30, "2026-01-01", store.TypeIncome, nil)

	engine := New(ledger)
	rows, err := engine.Recent(userID, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// same date: higher id wins
	require.Equal(t, bare, rows[0].ID)
	require.Nil(t, rows[0].CategoryName)
	require.Equal(t, categorized, rows[1].ID)
	require.NotNil(t, rows[1].CategoryName)
	require.Equal(t, "Food", *rows[1].CategoryName)

	for _, limit := range []int{-1, 21} {
		_, err := engine.Recent(userID, limit)
		_, ok := store.AsValidationErrors(err)
		require.True(t, ok, "limit=%d should be rejected", limit)
	}

	byDefault, err := engine.Recent(userID, 0)
	require.NoError(t, err)
	require.Len(t, byDefault, 3)
}

func TestMonthlySummarySeries(t *testing.T) {
	ledger, db := newTestLedger(t)
	userID := addUser(t, db, "alice", 0)
	food := addCategory(t, ledger, userID, "Food")

	addEntry(t, ledger, userID, 100, "2026-01-10", store.TypeExpense, &food)
	addEntry(t, ledger, userID, 400, "2026-01-15", store.TypeIncome, nil)
	addEntry(t, ledger, userID, 250, "2026-02-05", store.TypeExpense, nil)

	engine := New(ledger)
	rows, err := engine.MonthlySummary(userID, store.ExpenseFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// newest month first, net = income - expense
	require.Equal(t, "2026-02", rows[0].Month)
	require.True(t, rows[0].Net.Equal(decimal.NewFromInt(-250)))
	require.Equal(t, "2026-01", rows[1].Month)
	require.True(t, rows[1].Income.Equal(decimal.NewFromInt(400)))
	require.True(t, rows[1].Expense.Equal(decimal.NewFromInt(100)))
	require.True(t, rows[1].Net.Equal(decimal.NewFromInt(300)))

	filtered, err := engine.MonthlySummary(userID, store.ExpenseFilter{CategoryID: food})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, "2026-01", filtered[0].Month)
}
