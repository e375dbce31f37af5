// Package export renders expense history into portable report formats.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"expenseflow/internal/core"
)

// WriteExpensesCSV writes a summary section followed by one line per expense,
// oldest data first as provided. Amounts are plain decimals in the profile's
// currency.
func WriteExpensesCSV(w io.Writer, profile core.Profile, cats []core.Category, expenses []core.Expense) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	catByID := make(map[string]core.Category, len(cats))
	for _, c := range cats {
		catByID[c.ID] = c
	}

	var totalCents int64
	for _, e := range expenses {
		totalCents += e.Amount.Cents
	}
	avg := core.Money{}
	if len(expenses) > 0 {
		avg.Cents = totalCents / int64(len(expenses))
	}

	header := [][]string{
		{"Expense Report"},
		{"User", profile.DisplayName},
		{"Currency", profile.Currency},
		{"Generated", time.Now().Format("2006-01-02 15:04:05")},
		{},
		{"SUMMARY"},
		{"Total Spent", core.Money{Cents: totalCents}.Format()},
		{"Total Expenses", strconv.Itoa(len(expenses))},
		{"Average Expense", avg.Format()},
		{},
		{"EXPENSES"},
		{"Date", "Category", "Amount", "Note"},
	}
	for _, row := range header {
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for _, e := range expenses {
		categoryName := e.CategoryID
		if c, ok := catByID[e.CategoryID]; ok {
			categoryName = c.Name
		}
		row := []string{
			e.Date.String(),
			categoryName,
			e.Amount.Format(),
			e.Note,
		}
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("write expense row: %w", err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}
