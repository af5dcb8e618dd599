package router

import (
	"net/http"

	"github.com/Kaidothouse/expense-tracker/internal/config"
	"github.com/Kaidothouse/expense-tracker/internal/handler"
	"github.com/Kaidothouse/expense-tracker/internal/middleware"
	"github.com/Kaidothouse/expense-tracker/internal/stats"
	"github.com/Kaidothouse/expense-tracker/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Setup configures the Gin engine and mounts the API routes.
func Setup(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.RequestID())

	ledger := store.New(db,
		store.WithPageBounds(cfg.App.DefaultPageSize, cfg.App.MaxPageSize))
	engine := stats.New(ledger)

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Server is running"})
	})

	// everything below requires a resolved caller
	protected := api.Group("")
	protected.Use(middleware.Auth(middleware.ResolverFromConfig(cfg.Auth)))

	expenseHandler := handler.NewExpenseHandler(ledger, engine)
	protected.GET("/expenses", expenseHandler.List)
	protected.GET("/expenses/summary/monthly", expenseHandler.SummaryMonthly)
	protected.GET("/expenses/:id", expenseHandler.Get)
	protected.POST("/expenses", expenseHandler.Create)
	protected.PUT("/expenses/:id", expenseHandler.Update)
	protected.DELETE("/expenses/:id", expenseHandler.Delete)

	exportHandler := handler.NewExportHandler(ledger)
	protected.GET("/expenses/export/csv", exportHandler.CSV)
	protected.GET("/expenses/export/xlsx", exportHandler.XLSX)

	categoryHandler := handler.NewCategoryHandler(ledger)
	protected.GET("/categories", categoryHandler.List)
	protected.GET("/categories/:id", categoryHandler.Get)
	protected.POST("/categories", categoryHandler.Create)
	protected.PUT("/categories/:id", categoryHandler.Update)
	protected.DELETE("/categories/:id", categoryHandler.Delete)

	budgetHandler := handler.NewBudgetHandler(ledger, engine)
	protected.GET("/budget/current", budgetHandler.Current)
	protected.PUT("/budget/monthly", budgetHandler.UpdateMonthly)
	protected.GET("/budget/trends", budgetHandler.Trends)
	protected.GET("/budget/recent", budgetHandler.Recent)

	userHandler := handler.NewUserHandler(ledger)
	protected.GET("/users/profile", userHandler.GetProfile)
	protected.PUT("/users/profile", userHandler.UpdateProfile)
	protected.PUT("/users/password", userHandler.ChangePassword)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})

	return r
}
