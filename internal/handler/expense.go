package handler

import (
	"net/http"
	"time"

	"github.com/Kaidothouse/expense-tracker/internal/middleware"
	"github.com/Kaidothouse/expense-tracker/internal/models"
	"github.com/Kaidothouse/expense-tracker/internal/stats"
	"github.com/Kaidothouse/expense-tracker/internal/store"
	"github.com/Kaidothouse/expense-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ExpenseHandler serves the ledger-entry endpoints.
type ExpenseHandler struct {
	Store  *store.Store
	Engine *stats.Engine
}

func NewExpenseHandler(s *store.Store, e *stats.Engine) *ExpenseHandler {
	return &ExpenseHandler{Store: s, Engine: e}
}

type expenseReq struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Type        string  `json:"type"`
	CategoryID  *uint   `json:"categoryId"`
}

func (r expenseReq) toInput() store.ExpenseInput {
	return store.ExpenseInput{
		Amount:      decimal.NewFromFloat(r.Amount),
		Description: r.Description,
		Date:        r.Date,
		Type:        r.Type,
		CategoryID:  r.CategoryID,
	}
}

type expenseResp struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"userId"`
	CategoryID  *uint     `json:"categoryId"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toExpenseResp(e *models.Expense) expenseResp {
	return expenseResp{
		ID:          e.ID,
		UserID:      e.UserID,
		CategoryID:  e.CategoryID,
		Amount:      e.Amount.InexactFloat64(),
		Description: e.Description,
		Date:        e.Date,
		Type:        e.Type,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

type expenseRecordResp struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"userId"`
	CategoryID    *uint     `json:"categoryId"`
	Amount        float64   `json:"amount"`
	Description   *string   `json:"description"`
	Date          string    `json:"date"`
	Type          string    `json:"type"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	CategoryName  *string   `json:"categoryName"`
	CategoryColor *string   `json:"categoryColor"`
}

func toExpenseRecordResp(r *store.ExpenseRecord) expenseRecordResp {
	return expenseRecordResp{
		ID:            r.ID,
		UserID:        r.UserID,
		CategoryID:    r.CategoryID,
		Amount:        r.Amount.InexactFloat64(),
		Description:   r.Description,
		Date:          r.Date,
		Type:          r.Type,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		CategoryName:  r.CategoryName,
		CategoryColor: r.CategoryColor,
	}
}

// List returns the caller's entries matching the filter query
// parameters, newest first, with their category annotations.
func (h *ExpenseHandler) List(c *gin.Context) {
	filter, errs := parseExpenseFilter(c)
	defaultLimit, maxLimit := h.Store.PageBounds()
	limit := parseBoundedInt(c, "limit", 1, maxLimit, defaultLimit, &errs)
	offset := parseOffset(c, &errs)
	if len(errs) > 0 {
		util.ValidationFailed(c, errs)
		return
	}

	records, err := h.Store.ListExpenses(middleware.CallerID(c), filter, limit, offset)
	if err != nil {
		writeStoreError(c, err, "Expense not found")
		return
	}

	items := make([]expenseRecordResp, 0, len(records))
	for i := range records {
		items = append(items, toExpenseRecordResp(&records[i]))
	}
	util.Page(c, items, limit, offset)
}

// SummaryMonthly returns per-month income/expense/net rows for the
// caller's filtered entry set, newest month first.
func (h *ExpenseHandler) SummaryMonthly(c *gin.Context) {
	filter, errs := parseExpenseFilter(c)
	if len(errs) > 0 {
		util.ValidationFailed(c, errs)
		return
	}

	rows, err := h.Engine.MonthlySummary(middleware.CallerID(c), filter)
	if err != nil {
		writeStoreError(c, err, "Expense not found")
		return
	}

	type monthRow struct {
		Month   string  `json:"month"`
		Income  float64 `json:"income"`
		Expense float64 `json:"expense"`
		Net     float64 `json:"net"`
	}
	out := make([]monthRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, monthRow{
			Month:   r.Month,
			Income:  r.Income.InexactFloat64(),
			Expense: r.Expense.InexactFloat64(),
			Net:     r.Net.InexactFloat64(),
		})
	}
	util.Data(c, http.StatusOK, out)
}

// Get returns a single entry owned by the caller.
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	record, err := h.Store.GetExpense(middleware.CallerID(c), id)
	if err != nil {
		writeStoreError(c, err, "Expense not found")
		return
	}
	util.Data(c, http.StatusOK, toExpenseRecordResp(record))
}

// Create inserts a new ledger entry for the caller.
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req expenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.ValidationFailed(c, store.ValidationErrors{
			{Field: "body", Message: "malformed JSON body"},
		})
		return
	}

	expense, err := h.Store.CreateExpense(middleware.CallerID(c), req.toInput())
	if err != nil {
		writeStoreError(c, err, "Expense not found")
		return
	}
	util.Data(c, http.StatusCreated, toExpenseResp(expense))
}

// Update overwrites an entry owned by the caller.
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req expenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.ValidationFailed(c, store.ValidationErrors{
			{Field: "body", Message: "malformed JSON body"},
		})
		return
	}

	expense, err := h.Store.UpdateExpense(middleware.CallerID(c), id, req.toInput())
	if err != nil {
		writeStoreError(c, err, "Expense not found")
		return
	}
	util.Data(c, http.StatusOK, toExpenseResp(expense))
}

// Delete permanently removes an entry owned by the caller.
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.Store.DeleteExpense(middleware.CallerID(c), id); err != nil {
		writeStoreError(c, err, "Expense not found")
		return
	}
	c.Status(http.StatusNoContent)
}
