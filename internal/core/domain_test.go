package core

import (
	"testing"
	"time"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2025, 1, 1), true},
		{NewDate(2025, 12, 31), true},
		{Date{Time: time.Time{}}, false}, // zero time
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestDateCalendarMath(t *testing.T) {
	d := NewDate(2025, 3, 1)
	if got := d.AddDays(-1); !got.Equal(NewDate(2025, 2, 28)) {
		t.Fatalf("AddDays(-1) = %s, want 2025-02-28", got)
	}
	if got := NewDate(2024, 2, 28).AddDays(1); !got.Equal(NewDate(2024, 2, 29)) {
		t.Fatalf("leap day: got %s, want 2024-02-29", got)
	}
	if got := NewDate(2025, 12, 31).AddDays(1); !got.Equal(NewDate(2026, 1, 1)) {
		t.Fatalf("year boundary: got %s, want 2026-01-01", got)
	}
	if NewDate(2025, 1, 2).Before(NewDate(2025, 1, 1)) {
		t.Fatalf("Before inverted")
	}
}

func TestDateOfStripsClock(t *testing.T) {
	// A late-evening instant must map to the same calendar day regardless of
	// its clock time.
	ts := time.Date(2025, 6, 15, 23, 59, 59, 0, time.Local)
	if got := DateOf(ts); !got.Equal(NewDate(2025, 6, 15)) {
		t.Fatalf("DateOf = %s, want 2025-06-15", got)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-02-11")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.String() != "2025-02-11" {
		t.Fatalf("round trip = %s", d.String())
	}
	if _, err := ParseDate("11/02/2025"); err == nil {
		t.Fatalf("expected error for non-ISO date")
	}
	if _, err := ParseDate("2025-13-01"); err == nil {
		t.Fatalf("expected error for month 13")
	}
}

func TestValidateMonth(t *testing.T) {
	cases := []struct {
		month string
		ok    bool
	}{
		{"2025-01", true},
		{"2025-12", true},
		{"2025-13", false},
		{"2025-00", false},
		{"2025-1", false},
		{"202501", false},
		{"", false},
	}
	for _, tc := range cases {
		err := ValidateMonth(tc.month)
		if tc.ok && err != nil {
			t.Fatalf("%q expected ok, got %v", tc.month, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q expected error", tc.month)
		}
	}
}

func TestWindowStart(t *testing.T) {
	today := NewDate(2025, 6, 15)
	cases := []struct {
		w    Window
		want Date
	}{
		{WindowWeek, NewDate(2025, 6, 9)}, // 7 days inclusive of today
		{WindowMonth, NewDate(2025, 6, 1)},
		{WindowYear, NewDate(2025, 1, 1)},
	}
	for _, tc := range cases {
		if got := tc.w.Start(today); !got.Equal(tc.want) {
			t.Fatalf("%s start = %s, want %s", tc.w, got, tc.want)
		}
	}

	// Week window spanning a month boundary.
	if got := WindowWeek.Start(NewDate(2025, 3, 3)); !got.Equal(NewDate(2025, 2, 25)) {
		t.Fatalf("week across month = %s, want 2025-02-25", got)
	}
}

func TestParseWindow(t *testing.T) {
	for _, good := range []string{"week", "month", "year"} {
		if _, err := ParseWindow(good); err != nil {
			t.Fatalf("%q expected ok, got %v", good, err)
		}
	}
	if _, err := ParseWindow("quarter"); err == nil {
		t.Fatalf("expected error for unknown window")
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		CategoryID: "cat-1",
		Amount:     Money{Cents: 100},
		Note:       "coffee",
		Date:       NewDate(2025, 1, 1),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Expense{
		{CategoryID: "", Amount: Money{Cents: 1}, Date: NewDate(2025, 1, 1)},
		{CategoryID: "c", Amount: Money{Cents: 0}, Date: NewDate(2025, 1, 1)},
		{CategoryID: "c", Amount: Money{Cents: -5}, Date: NewDate(2025, 1, 1)},
		{CategoryID: "c", Amount: Money{Cents: 1}, Date: Date{Time: time.Time{}}},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}

	long := good
	for len(long.Note) <= 200 {
		long.Note += "xxxxxxxxxx"
	}
	if err := long.Validate(); err == nil {
		t.Fatalf("expected error for long note")
	}
}

func TestBudgetValidate(t *testing.T) {
	good := Budget{Amount: Money{Cents: 50000}, Month: "2025-06"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Budget{Amount: Money{Cents: 0}, Month: "2025-06"}).Validate(); err == nil {
		t.Fatalf("expected error for zero amount")
	}
	if err := (Budget{Amount: Money{Cents: 1}, Month: "June"}).Validate(); err == nil {
		t.Fatalf("expected error for bad month")
	}
}

func TestBudgetStatusOverBudget(t *testing.T) {
	if (BudgetStatus{Ratio: 100}).OverBudget() {
		t.Fatalf("exactly at limit is not over budget")
	}
	if !(BudgetStatus{Ratio: 100.01}).OverBudget() {
		t.Fatalf("above limit must report over budget")
	}
}
