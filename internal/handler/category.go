package handler

import (
	"net/http"
	"time"

	"github.com/Kaidothouse/expense-tracker/internal/middleware"
	"github.com/Kaidothouse/expense-tracker/internal/models"
	"github.com/Kaidothouse/expense-tracker/internal/store"
	"github.com/Kaidothouse/expense-tracker/internal/util"

	"github.com/gin-gonic/gin"
)

// CategoryHandler serves the category endpoints.
type CategoryHandler struct {
	Store *store.Store
}

func NewCategoryHandler(s *store.Store) *CategoryHandler {
	return &CategoryHandler{Store: s}
}

type categoryReq struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

func (r categoryReq) toInput() store.CategoryInput {
	return store.CategoryInput{
		Name:  r.Name,
		Type:  r.Type,
		Color: r.Color,
		Icon:  r.Icon,
	}
}

type categoryResp struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"userId"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"createdAt"`
}

func toCategoryResp(cat *models.Category) categoryResp {
	return categoryResp{
		ID:        cat.ID,
		UserID:    cat.UserID,
		Name:      cat.Name,
		Type:      cat.Type,
		Color:     cat.Color,
		Icon:      cat.Icon,
		CreatedAt: cat.CreatedAt,
	}
}

// List returns all of the caller's categories, name ascending.
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.Store.ListCategories(middleware.CallerID(c))
	if err != nil {
		writeStoreError(c, err, "Category not found")
		return
	}
	items := make([]categoryResp, 0, len(categories))
	for i := range categories {
		items = append(items, toCategoryResp(&categories[i]))
	}
	util.Data(c, http.StatusOK, items)
}

// Get returns one category owned by the caller.
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	category, err := h.Store.GetCategory(middleware.CallerID(c), id)
	if err != nil {
		writeStoreError(c, err, "Category not found")
		return
	}
	util.Data(c, http.StatusOK, toCategoryResp(category))
}

// Create inserts a new category for the caller.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.ValidationFailed(c, store.ValidationErrors{
			{Field: "body", Message: "malformed JSON body"},
		})
		return
	}

	category, err := h.Store.CreateCategory(middleware.CallerID(c), req.toInput())
	if err != nil {
		writeStoreError(c, err, "Category not found")
		return
	}
	util.Data(c, http.StatusCreated, toCategoryResp(category))
}

// Update overwrites a category owned by the caller.
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.ValidationFailed(c, store.ValidationErrors{
			{Field: "body", Message: "malformed JSON body"},
		})
		return
	}

	category, err := h.Store.UpdateCategory(middleware.CallerID(c), id, req.toInput())
	if err != nil {
		writeStoreError(c, err, "Category not found")
		return
	}
	util.Data(c, http.StatusOK, toCategoryResp(category))
}

// Delete removes a category owned by the caller; its entries stay,
// disassociated.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.Store.DeleteCategory(middleware.CallerID(c), id); err != nil {
		writeStoreError(c, err, "Category not found")
		return
	}
	c.Status(http.StatusNoContent)
}
