package services

import "expenseflow/internal/core"

// Metrics is the snapshot of qualifying user numbers an achievement is
// evaluated against.
type Metrics struct {
	CurrentStreak     int
	TotalTransactions int64
}

// EvaluateAchievements returns the definitions newly satisfied by the given
// metrics, preserving catalog order. Definitions in the earned set are
// skipped, which makes repeated evaluation with unchanged metrics yield
// nothing — the caller appends one unlock record per returned definition.
func EvaluateAchievements(defs []core.AchievementDefinition, earned map[string]bool, m Metrics) []core.AchievementDefinition {
	var unlocked []core.AchievementDefinition
	for _, def := range defs {
		if earned[def.ID] {
			continue
		}
		if requirementMet(def, m) {
			unlocked = append(unlocked, def)
		}
	}
	return unlocked
}

func requirementMet(def core.AchievementDefinition, m Metrics) bool {
	switch def.RequirementType {
	case core.RequirementStreak:
		return m.CurrentStreak >= def.RequirementValue
	case core.RequirementTransactionCount:
		return m.TotalTransactions >= int64(def.RequirementValue)
	default:
		// budget_success has no evaluation policy defined upstream yet.
		// Unknown requirement kinds never unlock and never error.
		return false
	}
}
