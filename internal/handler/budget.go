package handler

import (
	"net/http"

	"github.com/Kaidothouse/expense-tracker/internal/middleware"
	"github.com/Kaidothouse/expense-tracker/internal/stats"
	"github.com/Kaidothouse/expense-tracker/internal/store"
	"github.com/Kaidothouse/expense-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// BudgetHandler serves the dashboard aggregation endpoints.
type BudgetHandler struct {
	Store  *store.Store
	Engine *stats.Engine
}

func NewBudgetHandler(s *store.Store, e *stats.Engine) *BudgetHandler {
	return &BudgetHandler{Store: s, Engine: e}
}

type categorySpendResp struct {
	ID     uint    `json:"id"`
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	Icon   string  `json:"icon"`
	Amount float64 `json:"amount"`
}

type periodResp struct {
	MonthlyBudget    float64             `json:"monthlyBudget"`
	TotalSpent       float64             `json:"totalSpent"`
	TotalIncome      float64             `json:"totalIncome"`
	Remaining        float64             `json:"remaining"`
	PercentUsed      float64             `json:"percentUsed"`
	CategorySpending []categorySpendResp `json:"categorySpending"`
	Month            string              `json:"month"`
}

// Current returns the caller's budget snapshot for one calendar month
// (the current one unless ?month=YYYY-MM says otherwise).
func (h *BudgetHandler) Current(c *gin.Context) {
	snapshot, err := h.Engine.CurrentPeriod(middleware.CallerID(c), c.Query("month"))
	if err != nil {
		writeStoreError(c, err, "User not found")
		return
	}

	breakdown := make([]categorySpendResp, 0, len(snapshot.CategorySpending))
	for _, cs := range snapshot.CategorySpending {
		breakdown = append(breakdown, categorySpendResp{
			ID:     cs.ID,
			Name:   cs.Name,
			Color:  cs.Color,
			Icon:   cs.Icon,
			Amount: cs.Amount.InexactFloat64(),
		})
	}

	util.Data(c, http.StatusOK, periodResp{
		MonthlyBudget:    snapshot.MonthlyBudget.InexactFloat64(),
		TotalSpent:       snapshot.TotalSpent.InexactFloat64(),
		TotalIncome:      snapshot.TotalIncome.InexactFloat64(),
		Remaining:        snapshot.Remaining.InexactFloat64(),
		PercentUsed:      snapshot.PercentUsed,
		CategorySpending: breakdown,
		Month:            snapshot.Month,
	})
}

type budgetReq struct {
	Amount float64 `json:"amount"`
}

// UpdateMonthly sets the caller's monthly budget.
func (h *BudgetHandler) UpdateMonthly(c *gin.Context) {
	var req budgetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.ValidationFailed(c, store.ValidationErrors{
			{Field: "body", Message: "malformed JSON body"},
		})
		return
	}

	amount := decimal.NewFromFloat(req.Amount)
	if err := h.Store.SetMonthlyBudget(middleware.CallerID(c), amount); err != nil {
		writeStoreError(c, err, "User not found")
		return
	}
	util.Data(c, http.StatusOK, gin.H{"monthlyBudget": req.Amount})
}

// Trends returns the sparse per-month expense/income series for the
// last ?months calendar months (1-12, default 6).
func (h *BudgetHandler) Trends(c *gin.Context) {
	var errs store.ValidationErrors
	months := parseBoundedInt(c, "months", stats.MinMonths, stats.MaxMonths, stats.DefaultMonths, &errs)
	if len(errs) > 0 {
		util.ValidationFailed(c, errs)
		return
	}

	rows, err := h.Engine.Trends(middleware.CallerID(c), months)
	if err != nil {
		writeStoreError(c, err, "User not found")
		return
	}

	type trendRow struct {
		Month   string  `json:"month"`
		Expense float64 `json:"expense"`
		Income  float64 `json:"income"`
	}
	out := make([]trendRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, trendRow{
			Month:   r.Month,
			Expense: r.Expense.InexactFloat64(),
			Income:  r.Income.InexactFloat64(),
		})
	}
	util.Data(c, http.StatusOK, out)
}

// Recent returns the caller's ?limit newest entries (1-20, default 5)
// with category annotations.
func (h *BudgetHandler) Recent(c *gin.Context) {
	var errs store.ValidationErrors
	limit := parseBoundedInt(c, "limit", stats.MinRecent, stats.MaxRecent, stats.DefaultRecent, &errs)
	if len(errs) > 0 {
		util.ValidationFailed(c, errs)
		return
	}

	rows, err := h.Engine.Recent(middleware.CallerID(c), limit)
	if err != nil {
		writeStoreError(c, err, "User not found")
		return
	}

	type recentRow struct {
		ID            uint    `json:"id"`
		Amount        float64 `json:"amount"`
		Description   *string `json:"description"`
		Date          string  `json:"date"`
		Type          string  `json:"type"`
		CategoryName  *string `json:"categoryName"`
		CategoryColor *string `json:"categoryColor"`
		CategoryIcon  *string `json:"categoryIcon"`
	}
	out := make([]recentRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, recentRow{
			ID:            r.ID,
			Amount:        r.Amount.InexactFloat64(),
			Description:   r.Description,
			Date:          r.Date,
			Type:          r.Type,
			CategoryName:  r.CategoryName,
			CategoryColor: r.CategoryColor,
			CategoryIcon:  r.CategoryIcon,
		})
	}
	util.Data(c, http.StatusOK, out)
}
