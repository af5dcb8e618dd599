// expensectl is the maintenance CLI: it seeds a demo account and can
// fill it with sample ledger data for local development.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/Kaidothouse/expense-tracker/internal/config"
	"github.com/Kaidothouse/expense-tracker/internal/database"
	"github.com/Kaidothouse/expense-tracker/internal/models"
	"github.com/Kaidothouse/expense-tracker/internal/store"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:           "expensectl",
		Short:         "Maintenance tooling for the expense tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to config file")

	rootCmd.AddCommand(seedCmd(), sampleDataCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func openDB() (*gorm.DB, error) {
	_ = godotenv.Load()
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	db, err := database.Init(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the demo user and default categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}

			userID, err := ensureDemoUser(db)
			if err != nil {
				return err
			}

			defaults := []models.Category{
				{Name: "Rent", Type: store.TypeExpense, Color: "#7C3AED"},
				{Name: "Food", Type: store.TypeExpense, Color: "#F97316"},
				{Name: "Utilities", Type: store.TypeExpense, Color: "#22C55E"},
				{Name: "Shopping", Type: store.TypeExpense, Color: "#EC4899"},
				{Name: "Transportation", Type: store.TypeExpense, Color: "#EAB308"},
				{Name: "Entertainment", Type: store.TypeExpense, Color: "#8B5CF6"},
				{Name: "Healthcare", Type: store.TypeExpense, Color: "#14B8A6"},
				{Name: "Other", Type: store.TypeExpense, Color: "#94A3B8"},
				{Name: "Salary", Type: store.TypeIncome, Color: "#38BDF8"},
				{Name: "Freelance", Type: store.TypeIncome, Color: "#4ADE80"},
			}
			ledger := store.New(db)
			for _, cat := range defaults {
				_, err := ledger.CreateCategory(userID, store.CategoryInput{
					Name:  cat.Name,
					Type:  cat.Type,
					Color: cat.Color,
				})
				if err != nil && !errors.Is(err, store.ErrConflict) {
					return err
				}
			}

			fmt.Printf("seed data inserted for user %d\n", userID)
			return nil
		},
	}
}

func ensureDemoUser(db *gorm.DB) (uint, error) {
	var user models.User
	err := db.Where("email = ?", "demo@expense-tracker.com").First(&user).Error
	if err == nil {
		return user.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	user = models.User{
		Email:         "demo@expense-tracker.com",
		Username:      "demo",
		PasswordHash:  string(hash),
		MonthlyBudget: decimal.NewFromInt(2000),
	}
	if err := db.Create(&user).Error; err != nil {
		return 0, err
	}
	return user.ID, nil
}

type sampleEntry struct {
	description string
	amount      float64
	category    string
	entryType   string
	date        string
}

func sampleDataCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sample-data",
		Short: "Fill the demo account with sample ledger entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}

			userID, err := ensureDemoUser(db)
			if err != nil {
				return err
			}
			ledger := store.New(db)

			categories, err := ledger.ListCategories(userID)
			if err != nil {
				return err
			}
			categoryIDs := make(map[string]uint, len(categories))
			for _, cat := range categories {
				categoryIDs[cat.Name] = cat.ID
			}

			inserted := 0
			for _, entry := range sampleEntries {
				input := store.ExpenseInput{
					Amount:      decimal.NewFromFloat(entry.amount),
					Description: entry.description,
					Date:        entry.date,
					Type:        entry.entryType,
				}
				if id, ok := categoryIDs[entry.category]; ok {
					input.CategoryID = &id
				}
				if _, err := ledger.CreateExpense(userID, input); err != nil {
					return err
				}
				inserted++
			}

			fmt.Printf("inserted %d sample entries for user %d\n", inserted, userID)
			return nil
		},
	}
}

// Two months of data so the dashboard trends have something to show.
var sampleEntries = []sampleEntry{
	{"Grocery Store", 150.00, "Food", store.TypeExpense, "2026-02-15"},
	{"Restaurant Dinner", 85.50, "Food", store.TypeExpense, "2026-02-14"},
	{"Coffee Shop", 25.00, "Food", store.TypeExpense, "2026-02-13"},
	{"Fast Food Lunch", 15.75, "Food", store.TypeExpense, "2026-02-12"},
	{"Bakery", 30.00, "Food", store.TypeExpense, "2026-02-10"},
	{"Clothing Purchase", 200.00, "Shopping", store.TypeExpense, "2026-02-08"},
	{"Electronics Store", 150.00, "Shopping", store.TypeExpense, "2026-02-07"},
	{"Online Shopping", 75.50, "Shopping", store.TypeExpense, "2026-02-05"},
	{"Movie Tickets", 45.00, "Entertainment", store.TypeExpense, "2026-02-16"},
	{"Concert Tickets", 120.00, "Entertainment", store.TypeExpense, "2026-02-09"},
	{"Streaming Services", 35.00, "Entertainment", store.TypeExpense, "2026-02-01"},
	{"Gas Station", 60.00, "Transportation", store.TypeExpense, "2026-02-17"},
	{"Uber Ride", 25.00, "Transportation", store.TypeExpense, "2026-02-15"},
	{"Parking Fee", 15.00, "Transportation", store.TypeExpense, "2026-02-11"},
	{"Car Maintenance", 350.00, "Transportation", store.TypeExpense, "2026-02-06"},
	{"Electric Bill", 120.00, "Utilities", store.TypeExpense, "2026-02-01"},
	{"Internet Bill", 80.00, "Utilities", store.TypeExpense, "2026-02-01"},
	{"Water Bill", 45.00, "Utilities", store.TypeExpense, "2026-02-01"},
	{"Phone Bill", 55.00, "Utilities", store.TypeExpense, "2026-02-01"},
	{"Doctor Visit", 150.00, "Healthcare", store.TypeExpense, "2026-02-04"},
	{"Pharmacy", 45.50, "Healthcare", store.TypeExpense, "2026-02-04"},
	{"Gift for Friend", 50.00, "Other", store.TypeExpense, "2026-02-14"},
	{"Miscellaneous", 25.00, "Other", store.TypeExpense, "2026-02-12"},
	{"Monthly Salary", 4500.00, "Salary", store.TypeIncome, "2026-02-01"},
	{"Freelance Project", 800.00, "Freelance", store.TypeIncome, "2026-02-10"},
	{"Grocery Store", 180.00, "Food", store.TypeExpense, "2026-01-15"},
	{"Restaurant", 120.00, "Food", store.TypeExpense, "2026-01-20"},
	{"Shopping Mall", 300.00, "Shopping", store.TypeExpense, "2026-01-10"},
	{"Gas Station", 80.00, "Transportation", store.TypeExpense, "2026-01-25"},
	{"Electric Bill", 110.00, "Utilities", store.TypeExpense, "2026-01-01"},
	{"Monthly Salary", 4500.00, "Salary", store.TypeIncome, "2026-01-01"},
}
