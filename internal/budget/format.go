// Package budget converts normalized transactions into the ledger's display
// schema and filters out rows the ledger already holds.
package budget

import (
	"strconv"
	"strings"

	"github.com/chan22222/budget/internal/models"
)

// ToBudgetFormat maps transactions onto ledger display rows, preserving
// input order. The day-of-month is extracted from the ISO date without a
// leading zero; a date with no separator passes through unchanged as a
// non-date display value. The full date is retained for month bucketing.
func ToBudgetFormat(transactions []models.Transaction) []models.BudgetRow {
	rows := make([]models.BudgetRow, 0, len(transactions))
	for _, tx := range transactions {
		rows = append(rows, models.BudgetRow{
			Day:           dayOfMonth(tx.Date),
			Category:      tx.Category,
			Subcategory:   tx.Subcategory,
			Description:   tx.Description,
			IncomeAmount:  models.FormatAmount(tx.IncomeAmount),
			ExpenseAmount: models.FormatAmount(tx.ExpenseAmount),
			PaymentMethod: tx.PaymentMethod,
			ExpenseType:   tx.ExpenseType,
			Memo:          tx.Memo,
			FullDate:      tx.Date,
		})
	}
	return rows
}

func dayOfMonth(date string) string {
	if !strings.Contains(date, "-") {
		return date
	}
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return date
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil {
		return date
	}
	return strconv.Itoa(n)
}

// MonthSheet returns the ledger sheet name for a budget row ("1월".."12월"),
// derived from the retained full date. Rows without a parseable month
// return "" and cannot be synced.
func MonthSheet(row models.BudgetRow) string {
	parts := strings.Split(row.FullDate, "-")
	if len(parts) != 3 {
		return ""
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return ""
	}
	return strconv.Itoa(month) + "월"
}
