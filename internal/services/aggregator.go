package services

import (
	"sort"

	"expenseflow/internal/core"
	"expenseflow/internal/storage"
)

// BuildSpendingSummary assembles per-category totals into a window summary.
// Percent shares are computed against the window total; the breakdown is
// ordered by descending spend. An empty categoryFilter keeps every category.
func BuildSpendingSummary(w core.Window, start, end core.Date, totals []storage.CategoryTotalRow, cats []core.Category, categoryFilter string) core.SpendingSummary {
	catByID := make(map[string]core.Category, len(cats))
	for _, c := range cats {
		catByID[c.ID] = c
	}

	summary := core.SpendingSummary{
		Window: w,
		Start:  start,
		End:    end,
	}

	var kept []storage.CategoryTotalRow
	for _, t := range totals {
		if categoryFilter != "" && t.CategoryID != categoryFilter {
			continue
		}
		kept = append(kept, t)
		summary.Total.Cents += t.TotalCents
	}

	for _, t := range kept {
		b := core.CategoryBreakdown{
			Category: catByID[t.CategoryID],
			Total:    core.Money{Cents: t.TotalCents},
		}
		if summary.Total.Cents > 0 {
			b.Percent = float64(t.TotalCents) / float64(summary.Total.Cents) * 100
		}
		summary.Breakdown = append(summary.Breakdown, b)
	}

	sort.Slice(summary.Breakdown, func(i, j int) bool {
		return summary.Breakdown[i].Total.Cents > summary.Breakdown[j].Total.Cents
	})

	return summary
}

// BuildBudgetStatuses measures each budget ceiling against the month's
// spending. A category-less budget is the whole-account ceiling and is
// measured against total spend; category budgets only against their own
// category. Ratio carries the raw percentage (may exceed 100); Percent is
// clamped for progress-bar rendering.
func BuildBudgetStatuses(budgets []core.Budget, totals []storage.CategoryTotalRow) []core.BudgetStatus {
	spentByCategory := make(map[string]int64, len(totals))
	var overall int64
	for _, t := range totals {
		spentByCategory[t.CategoryID] = t.TotalCents
		overall += t.TotalCents
	}

	out := make([]core.BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		spent := overall
		if b.CategoryID != "" {
			spent = spentByCategory[b.CategoryID]
		}

		status := core.BudgetStatus{
			Budget: b,
			Spent:  core.Money{Cents: spent},
		}
		if b.Amount.Cents > 0 {
			status.Ratio = float64(spent) / float64(b.Amount.Cents) * 100
		}
		status.Percent = status.Ratio
		if status.Percent > 100 {
			status.Percent = 100
		}
		out = append(out, status)
	}
	return out
}
