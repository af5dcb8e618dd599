package handler

import (
	"encoding/csv"
	"fmt"
	"time"

	"github.com/Kaidothouse/expense-tracker/internal/middleware"
	"github.com/Kaidothouse/expense-tracker/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler streams the caller's full ledger as CSV or XLSX.
type ExportHandler struct {
	Store *store.Store
}

func NewExportHandler(s *store.Store) *ExportHandler {
	return &ExportHandler{Store: s}
}

var exportHeader = []string{"Date", "Type", "Category", "Amount", "Description"}

func exportRow(r *store.ExpenseRecord) []string {
	category := ""
	if r.CategoryName != nil {
		category = *r.CategoryName
	}
	description := ""
	if r.Description != nil {
		description = *r.Description
	}
	return []string{r.Date, r.Type, category, r.Amount.String(), description}
}

// CSV exports the ledger as a CSV attachment.
func (h *ExportHandler) CSV(c *gin.Context) {
	records, err := h.Store.ExportExpenses(middleware.CallerID(c))
	if err != nil {
		writeStoreError(c, err, "Expense not found")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"expenses_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	_ = writer.Write(exportHeader)
	for i := range records {
		_ = writer.Write(exportRow(&records[i]))
	}
}

// XLSX exports the ledger as an Excel workbook.
func (h *ExportHandler) XLSX(c *gin.Context) {
	records, err := h.Store.ExportExpenses(middleware.CallerID(c))
	if err != nil {
		writeStoreError(c, err, "Expense not found")
		return
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Expenses"
	index, err := f.NewSheet(sheet)
	if err != nil {
		writeStoreError(c, err, "Expense not found")
		return
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheet, cell, title)
	}
	for i := range records {
		row := exportRow(&records[i])
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			_ = f.SetCellValue(sheet, cell, value)
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"expenses_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		writeStoreError(c, err, "Expense not found")
	}
}
