package core

// CategoryBreakdown is one category's share of spending inside a window.
type CategoryBreakdown struct {
	Category Category
	Total    Money
	Percent  float64 // share of the window total, 0-100
}

// SpendingSummary aggregates spending over a window.
type SpendingSummary struct {
	Window    Window
	Start     Date
	End       Date
	Total     Money
	Breakdown []CategoryBreakdown
}

// BudgetStatus is a budget row joined with the spending measured against it.
// Ratio is the raw percentage of the ceiling consumed and may exceed 100;
// Percent is clamped to 100 for progress-bar rendering.
type BudgetStatus struct {
	Budget  Budget
	Spent   Money
	Ratio   float64
	Percent float64
}

// OverBudget reports whether spending has exceeded the ceiling.
func (s BudgetStatus) OverBudget() bool {
	return s.Ratio > 100
}

// AchievementStatus merges a catalog definition with per-user unlock state.
type AchievementStatus struct {
	Definition AchievementDefinition
	Earned     bool
	Unlock     *UserAchievement
}
