// Package services provides the rules layer between the store and the UI
// collaborator: streak continuity, achievement evaluation, spending
// aggregation, and the tracker orchestration that ties them together.
package services

import "expenseflow/internal/core"

// StreakState mirrors the streak columns of the user profile.
type StreakState struct {
	Current    int
	Longest    int
	LastLogged *core.Date
}

// AdvanceStreak computes the streak state after an expense is logged on
// today. Pure and deterministic; the caller persists the result as a single
// atomic update.
//
// Rules, in order:
//   - already logged today: unchanged (multiple expenses on one day never
//     re-increment)
//   - logged yesterday: streak continues, current + 1
//   - anything else (never logged, gap of more than one day, or a stored
//     date in the future): streak restarts at 1
//
// Longest never decreases. The returned bool reports whether state changed.
func AdvanceStreak(state StreakState, today core.Date) (StreakState, bool) {
	if state.LastLogged != nil && state.LastLogged.Equal(today) {
		return state, false
	}

	next := 1
	if state.LastLogged != nil && state.LastLogged.AddDays(1).Equal(today) {
		next = state.Current + 1
	}

	longest := state.Longest
	if next > longest {
		longest = next
	}

	return StreakState{
		Current:    next,
		Longest:    longest,
		LastLogged: &today,
	}, true
}
