package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Kaidothouse/expense-tracker/internal/store"
	"github.com/Kaidothouse/expense-tracker/internal/util"

	"github.com/gin-gonic/gin"
)

// writeStoreError maps access-layer failures onto the boundary contract:
// field errors -> 400 list, missing/foreign rows -> 404, duplicate
// categories -> 409, cross-user category references -> 400. Anything
// else is logged with detail and reported as an opaque 500.
func writeStoreError(c *gin.Context, err error, notFoundMsg string) {
	if verrs, ok := store.AsValidationErrors(err); ok {
		util.ValidationFailed(c, verrs)
		return
	}
	switch {
	case errors.Is(err, store.ErrNotFound):
		util.Message(c, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, store.ErrConflict):
		util.Message(c, http.StatusConflict, "Category already exists")
	case errors.Is(err, store.ErrInvalidReference):
		util.Message(c, http.StatusBadRequest, "Invalid category")
	default:
		log.Printf("internal error [%s %s] request=%s: %v",
			c.Request.Method, c.Request.URL.Path, c.GetString("requestID"), err)
		util.Message(c, http.StatusInternalServerError, "Internal Server Error")
	}
}

// parseIDParam reads a positive integer :id path parameter.
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		util.ValidationFailed(c, store.ValidationErrors{
			{Field: "id", Message: "must be a positive integer"},
		})
		return 0, false
	}
	return uint(id), true
}

// parseExpenseFilter reads the shared filter query parameters,
// collecting every invalid field instead of stopping at the first.
func parseExpenseFilter(c *gin.Context) (store.ExpenseFilter, store.ValidationErrors) {
	var (
		filter store.ExpenseFilter
		errs   store.ValidationErrors
	)

	if v := c.Query("startDate"); v != "" {
		if !store.ValidDate(v) {
			errs = append(errs, store.FieldError{Field: "startDate", Message: "must be a valid YYYY-MM-DD date"})
		} else {
			filter.StartDate = v
		}
	}
	if v := c.Query("endDate"); v != "" {
		if !store.ValidDate(v) {
			errs = append(errs, store.FieldError{Field: "endDate", Message: "must be a valid YYYY-MM-DD date"})
		} else {
			filter.EndDate = v
		}
	}
	if v := c.Query("type"); v != "" {
		if !store.ValidType(v) {
			errs = append(errs, store.FieldError{Field: "type", Message: "must be income or expense"})
		} else {
			filter.Type = v
		}
	}
	if v := c.Query("categoryId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil || id == 0 {
			errs = append(errs, store.FieldError{Field: "categoryId", Message: "must be a positive integer"})
		} else {
			filter.CategoryID = uint(id)
		}
	}

	return filter, errs
}

// parseOffset reads the optional non-negative offset query parameter.
func parseOffset(c *gin.Context, errs *store.ValidationErrors) int {
	v := c.Query("offset")
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		*errs = append(*errs, store.FieldError{Field: "offset", Message: "must be a non-negative integer"})
		return 0
	}
	return n
}

// parseBoundedInt reads an optional integer query parameter, rejecting
// values outside [min, max]. Returns fallback when absent.
func parseBoundedInt(c *gin.Context, name string, min, max, fallback int, errs *store.ValidationErrors) int {
	v := c.Query(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < min || n > max {
		*errs = append(*errs, store.FieldError{
			Field:   name,
			Message: "must be an integer between " + strconv.Itoa(min) + " and " + strconv.Itoa(max),
		})
		return fallback
	}
	return n
}
