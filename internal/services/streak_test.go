package services

import (
	"testing"

	"expenseflow/internal/core"
)

func datePtr(d core.Date) *core.Date { return &d }

func TestAdvanceStreak(t *testing.T) {
	today := core.NewDate(2025, 2, 11)

	tests := []struct {
		name        string
		state       StreakState
		today       core.Date
		wantCurrent int
		wantLongest int
		wantChanged bool
	}{
		{
			name:        "first ever log starts at 1",
			state:       StreakState{},
			today:       today,
			wantCurrent: 1,
			wantLongest: 1,
			wantChanged: true,
		},
		{
			name:        "already logged today is a no-op",
			state:       StreakState{Current: 4, Longest: 6, LastLogged: datePtr(today)},
			today:       today,
			wantCurrent: 4,
			wantLongest: 6,
			wantChanged: false,
		},
		{
			name:        "logged yesterday continues the streak",
			state:       StreakState{Current: 4, Longest: 6, LastLogged: datePtr(core.NewDate(2025, 2, 10))},
			today:       today,
			wantCurrent: 5,
			wantLongest: 6,
			wantChanged: true,
		},
		{
			name:        "continuation can set a new longest",
			state:       StreakState{Current: 6, Longest: 6, LastLogged: datePtr(core.NewDate(2025, 2, 10))},
			today:       today,
			wantCurrent: 7,
			wantLongest: 7,
			wantChanged: true,
		},
		{
			name:        "two day gap resets to 1",
			state:       StreakState{Current: 9, Longest: 9, LastLogged: datePtr(core.NewDate(2025, 2, 9))},
			today:       today,
			wantCurrent: 1,
			wantLongest: 9,
			wantChanged: true,
		},
		{
			name:        "long gap resets to 1",
			state:       StreakState{Current: 3, Longest: 12, LastLogged: datePtr(core.NewDate(2024, 11, 2))},
			today:       today,
			wantCurrent: 1,
			wantLongest: 12,
			wantChanged: true,
		},
		{
			name:        "stored date in the future resets to 1",
			state:       StreakState{Current: 5, Longest: 5, LastLogged: datePtr(core.NewDate(2025, 2, 15))},
			today:       today,
			wantCurrent: 1,
			wantLongest: 5,
			wantChanged: true,
		},
		{
			name:        "continuation across a month boundary",
			state:       StreakState{Current: 2, Longest: 2, LastLogged: datePtr(core.NewDate(2025, 1, 31))},
			today:       core.NewDate(2025, 2, 1),
			wantCurrent: 3,
			wantLongest: 3,
			wantChanged: true,
		},
		{
			name:        "continuation across a year boundary",
			state:       StreakState{Current: 10, Longest: 10, LastLogged: datePtr(core.NewDate(2024, 12, 31))},
			today:       core.NewDate(2025, 1, 1),
			wantCurrent: 11,
			wantLongest: 11,
			wantChanged: true,
		},
		{
			name:        "continuation over a leap day",
			state:       StreakState{Current: 1, Longest: 4, LastLogged: datePtr(core.NewDate(2024, 2, 28))},
			today:       core.NewDate(2024, 2, 29),
			wantCurrent: 2,
			wantLongest: 4,
			wantChanged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, changed := AdvanceStreak(tt.state, tt.today)
			if changed != tt.wantChanged {
				t.Fatalf("changed = %v, want %v", changed, tt.wantChanged)
			}
			if next.Current != tt.wantCurrent {
				t.Errorf("Current = %d, want %d", next.Current, tt.wantCurrent)
			}
			if next.Longest != tt.wantLongest {
				t.Errorf("Longest = %d, want %d", next.Longest, tt.wantLongest)
			}
			if changed {
				if next.LastLogged == nil || !next.LastLogged.Equal(tt.today) {
					t.Errorf("LastLogged = %v, want %s", next.LastLogged, tt.today)
				}
			}
		})
	}
}

// Longest streak must never decrease, whatever sequence of days is replayed.
func TestAdvanceStreakLongestMonotonic(t *testing.T) {
	days := []core.Date{
		core.NewDate(2025, 1, 1),
		core.NewDate(2025, 1, 2),
		core.NewDate(2025, 1, 3),
		core.NewDate(2025, 1, 7),  // gap, reset
		core.NewDate(2025, 1, 8),
		core.NewDate(2025, 1, 8),  // same day twice
		core.NewDate(2025, 1, 20), // gap, reset
	}

	state := StreakState{}
	prevLongest := 0
	for _, d := range days {
		state, _ = AdvanceStreak(state, d)
		if state.Longest < prevLongest {
			t.Fatalf("longest decreased from %d to %d at %s", prevLongest, state.Longest, d)
		}
		if state.Longest < state.Current {
			t.Fatalf("longest %d below current %d at %s", state.Longest, state.Current, d)
		}
		prevLongest = state.Longest
	}

	if state.Longest != 3 {
		t.Fatalf("final longest = %d, want 3", state.Longest)
	}
	if state.Current != 1 {
		t.Fatalf("final current = %d, want 1", state.Current)
	}
}

// End to end: log day 1, same day again, next day, then after a 3-day gap.
func TestAdvanceStreakScenario(t *testing.T) {
	day1 := core.NewDate(2025, 3, 1)

	state, changed := AdvanceStreak(StreakState{}, day1)
	if !changed || state.Current != 1 || state.Longest != 1 {
		t.Fatalf("day 1: got %+v changed=%v", state, changed)
	}

	state, changed = AdvanceStreak(state, day1)
	if changed || state.Current != 1 {
		t.Fatalf("same day: got %+v changed=%v", state, changed)
	}

	state, changed = AdvanceStreak(state, day1.AddDays(1))
	if !changed || state.Current != 2 || state.Longest != 2 {
		t.Fatalf("day 2: got %+v changed=%v", state, changed)
	}

	state, changed = AdvanceStreak(state, day1.AddDays(5))
	if !changed || state.Current != 1 || state.Longest != 2 {
		t.Fatalf("after gap: got %+v changed=%v", state, changed)
	}
}
