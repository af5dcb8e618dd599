package store

import (
	"strconv"
	"strings"
	"testing"

	"github.com/Kaidothouse/expense-tracker/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestStore opens an isolated in-memory ledger. The pool is pinned
// to one connection: each sqlite :memory: connection is its own
// database.
func newTestStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Category{}, &models.Expense{}))
	return New(db), db
}

func createTestUser(t *testing.T, db *gorm.DB, name string, budget int64) uint {
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

func createTestCategory(t *testing.T, s *Store, ownerID uint, name, ctype string) *models.Category {
	t.Helper()
	category, err := s.CreateCategory(ownerID, CategoryInput{Name: name, Type: ctype})
	require.NoError(t, err)
	return category
}

func createTestExpense(t *testing.T, s *Store, ownerID uint, amount float64, date, ctype string, categoryID *uint) *models.Expense {
	t.Helper()
	expense, err := s.CreateExpense(ownerID, ExpenseInput{
		Amount:     decimal.NewFromFloat(amount),
		Date:       date,
		Type:       ctype,
		CategoryID: categoryID,
	})
	require.NoError(t, err)
	return expense
}

func TestCreateExpenseValidation(t *testing.T) {
	s, db := newTestStore(t)
	userID := createTestUser(t, db, "alice", 0)

	_, err := s.CreateExpense(userID, ExpenseInput{
		Amount: decimal.Zero,
		Date:   "not-a-date",
		Type:   "transfer",
	})
	verrs, ok := AsValidationErrors(err)
	require.True(t, ok)

	fields := make(map[string]bool)
	for _, fe := range verrs {
		fields[fe.Field] = true
	}
	require.True(t, fields["amount"])
	require.True(t, fields["date"])
	require.True(t, fields["type"])
}

func TestDescriptionLengthCountsRunes(t *testing.T) {
	s, db := newTestStore(t)
	userID := createTestUser(t, db, "alice", 0)

	// 255 characters, each 3 bytes in UTF-8
	multibyte := strings.Repeat("日", 255)
	expense, err := s.CreateExpense(userID, ExpenseInput{
		Amount:      decimal.NewFromInt(10),
		Description: multibyte,
		Date:        "2026-02-01",
		Type:        TypeExpense,
	})
	require.NoError(t, err)
	require.Equal(t, multibyte, expense.Description)

	_, err = s.CreateExpense(userID, ExpenseInput{
		Amount:      decimal.NewFromInt(10),
		Description: strings.Repeat("日", 256),
		Date:        "2026-02-01",
		Type:        TypeExpense,
	})
	verrs, ok := AsValidationErrors(err)
	require.True(t, ok)
	require.Equal(t, "description", verrs[0].Field)
}

func TestCreateExpenseCrossUserCategory(t *testing.T) {
	s, db := newTestStore(t)
	alice := createTestUser(t, db, "alice", 0)
	bob := createTestUser(t, db, "bob", 0)
	category := createTestCategory(t, s, alice, "Food", TypeExpense)

	_, err := s.CreateExpense(bob, ExpenseInput{
		Amount:     decimal.NewFromInt(10),
		Date:       "2026-02-01",
		Type:       TypeExpense,
		CategoryID: &category.ID,
	})
	require.ErrorIs(t, err, ErrInvalidReference)
}

func TestPageBoundsOption(t *testing.T) {
	_, db := newTestStore(t)
	s := New(db, WithPageBounds(2, 3))
	userID := createTestUser(t, db, "alice", 0)
	for day := 1; day <= 4; day++ {
		createTestExpense(t, s, userID, 10, "2026-02-0"+strconv.Itoa(day), TypeExpense, nil)
	}

	def, max := s.PageBounds()
	require.Equal(t, 2, def)
	require.Equal(t, 3, max)

	records, err := s.ListExpenses(userID, ExpenseFilter{}, 0, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)

	records, err = s.ListExpenses(userID, ExpenseFilter{}, 10, 0)
	require.NoError(t, err)
	require.Len(t, records, 3)
}

func TestListExpensesOrderAndFilter(t *testing.T) {
	s, db := newTestStore(t)
	userID := createTestUser(t, db, "alice", 0)
	food := createTestCategory(t, s, userID, "Food", TypeExpense)

	first := createTestExpense(t, s, userID, 10, "2026-02-10", TypeExpense, &food.ID)
	second := createTestExpense(t, s, userID, 20, "2026-02-10", TypeExpense, nil)
	older := createTestExpense(t, s, userID, 30, "2026-01-05", TypeIncome, nil)

	records, err := s.ListExpenses(userID, ExpenseFilter{}, 0, 0)
	require.NoError(t, err)
	require.Len(t, records, 3)
	// newest date first, same-date ties broken by descending id
	require.Equal(t, second.ID, records[0].ID)
	require.Equal(t, first.ID, records[1].ID)
	require.Equal(t, older.ID, records[2].ID)

	require.NotNil(t, records[1].CategoryName)
	require.Equal(t, "Food", *records[1].CategoryName)
	require.Nil(t, records[0].CategoryName)

	byType, err := s.ListExpenses(userID, ExpenseFilter{Type: TypeIncome}, 0, 0)
	require.NoError(t, err)
	require.Len(t, byType, 1)
	require.Equal(t, older.ID, byType[0].ID)

	byCategory, err := s.ListExpenses(userID, ExpenseFilter{CategoryID: food.ID}, 0, 0)
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	require.Equal(t, first.ID, byCategory[0].ID)

	// date bounds are inclusive
	window, err := s.ListExpenses(userID, ExpenseFilter{StartDate: "2026-01-05", EndDate: "2026-02-10"}, 0, 0)
	require.NoError(t, err)
	require.Len(t, window, 3)

	paged, err := s.ListExpenses(userID, ExpenseFilter{}, 2, 2)
	require.NoError(t, err)
	require.Len(t, paged, 1)
	require.Equal(t, older.ID, paged[0].ID)
}

func TestListExpensesOwnershipScoping(t *testing.T) {
	s, db := newTestStore(t)
	alice := createTestUser(t, db, "alice", 0)
	bob := createTestUser(t, db, "bob", 0)
	createTestExpense(t, s, alice, 10, "2026-02-01", TypeExpense, nil)

	records, err := s.ListExpenses(bob, ExpenseFilter{}, 0, 0)
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestUpdateExpense(t *testing.T) {
	s, db := newTestStore(t)
	alice := createTestUser(t, db, "alice", 0)
	bob := createTestUser(t, db, "bob", 0)
	expense := createTestExpense(t, s, alice, 10, "2026-02-01", TypeExpense, nil)

	_, err := s.UpdateExpense(bob, expense.ID, ExpenseInput{
		Amount: decimal.NewFromInt(15),
		Date:   "2026-02-02",
		Type:   TypeExpense,
	})
	require.ErrorIs(t, err, ErrNotFound)

	updated, err := s.UpdateExpense(alice, expense.ID, ExpenseInput{
		Amount: decimal.NewFromInt(15),
		Date:   "2026-02-02",
		Type:   TypeIncome,
	})
	require.NoError(t, err)
	require.True(t, updated.Amount.Equal(decimal.NewFromInt(15)))
	require.Equal(t, "2026-02-02", updated.Date)
	require.Equal(t, TypeIncome, updated.Type)
}

func TestDeleteExpense(t *testing.T) {
	s, db := newTestStore(t)
	alice := createTestUser(t, db, "alice", 0)
	bob := createTestUser(t, db, "bob", 0)
	expense := createTestExpense(t, s, alice, 10, "2026-02-01", TypeExpense, nil)

	require.ErrorIs(t, s.DeleteExpense(bob, expense.ID), ErrNotFound)
	require.NoError(t, s.DeleteExpense(alice, expense.ID))
	require.ErrorIs(t, s.DeleteExpense(alice, expense.ID), ErrNotFound)
}

func TestCategoryNameUniquePerUserAndType(t *testing.T) {
	s, db := newTestStore(t)
	alice := createTestUser(t, db, "alice", 0)
	bob := createTestUser(t, db, "bob", 0)

	createTestCategory(t, s, alice, "Consulting", TypeExpense)

	_, err := s.CreateCategory(alice, CategoryInput{Name: "Consulting", Type: TypeExpense})
	require.ErrorIs(t, err, ErrConflict)

	// same name is fine for the other type, and for another user
	_, err = s.CreateCategory(alice, CategoryInput{Name: "Consulting", Type: TypeIncome})
	require.NoError(t, err)
	_, err = s.CreateCategory(bob, CategoryInput{Name: "Consulting", Type: TypeExpense})
	require.NoError(t, err)
}

func TestUpdateCategoryConflict(t *testing.T) {
	s, db := newTestStore(t)
	alice := createTestUser(t, db, "alice", 0)
	food := createTestCategory(t, s, alice, "Food", TypeExpense)
	createTestCategory(t, s, alice, "Rent", TypeExpense)

	_, err := s.UpdateCategory(alice, food.ID, CategoryInput{Name: "Rent", Type: TypeExpense})
	require.ErrorIs(t, err, ErrConflict)

	// keeping its own name is not a conflict
	updated, err := s.UpdateCategory(alice, food.ID, CategoryInput{Name: "Food", Type: TypeExpense, Color: "#F97316"})
	require.NoError(t, err)
	require.Equal(t, "#F97316", updated.Color)
}

func TestDeleteCategoryDetachesExpenses(t *testing.T) {
	s, db := newTestStore(t)
	alice := createTestUser(t, db, "alice", 0)
	food := createTestCategory(t, s, alice, "Food", TypeExpense)
	expense := createTestExpense(t, s, alice, 10, "2026-02-01", TypeExpense, &food.ID)

	require.NoError(t, s.DeleteCategory(alice, food.ID))

	// history survives with a nulled category reference
	record, err := s.GetExpense(alice, expense.ID)
	require.NoError(t, err)
	require.Nil(t, record.CategoryID)
	require.Nil(t, record.CategoryName)

	_, err = s.GetCategory(alice, food.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMonthlyBudget(t *testing.T) {
	s, db := newTestStore(t)
	alice := createTestUser(t, db, "alice", 0)

	err := s.SetMonthlyBudget(alice, decimal.NewFromInt(-1))
	_, ok := AsValidationErrors(err)
	require.True(t, ok)

	require.NoError(t, s.SetMonthlyBudget(alice, decimal.NewFromInt(2000)))
	budget, err := s.GetMonthlyBudget(alice)
	require.NoError(t, err)
	require.True(t, budget.Equal(decimal.NewFromInt(2000)))

	require.ErrorIs(t, s.SetMonthlyBudget(999, decimal.NewFromInt(1)), ErrNotFound)
}
