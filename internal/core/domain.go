package core

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	RequirementStreak           RequirementType = "streak"
	RequirementTransactionCount RequirementType = "transaction_count"
	RequirementBudgetSuccess    RequirementType = "budget_success"
)

const (
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
	WindowYear  Window = "year"
)

type (
	// RequirementType names the metric an achievement definition is
	// evaluated against.
	RequirementType string

	// Window is a named reporting time range ending today.
	Window string

	// Date is a calendar date with day granularity. The wall-clock part of
	// the embedded time is always midnight; comparisons only ever look at
	// year/month/day, which keeps streak math stable across DST shifts.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Profile is the single per-installation user record, including the
	// derived streak state.
	Profile struct {
		UserID               string
		DisplayName          string
		Currency             string
		DailyReminderEnabled bool
		DailyReminderTime    string
		CurrentStreak        int
		LongestStreak        int
		LastLoggedDate       *Date
	}

	Category struct {
		ID        string
		Name      string
		Emoji     string
		Color     string
		SortOrder int
	}

	Expense struct {
		ID         string
		CategoryID string
		Amount     Money
		Note       string
		Date       Date
	}

	// Budget is a monthly spending ceiling. CategoryID is empty for the
	// whole-account ceiling.
	Budget struct {
		ID         string
		CategoryID string
		Amount     Money
		Month      string // YYYY-MM
	}

	AchievementDefinition struct {
		ID               string
		Name             string
		Description      string
		BadgeIcon        string
		RequirementType  RequirementType
		RequirementValue int
		SortOrder        int
	}

	// UserAchievement is an append-only unlock record. Unlocks are never
	// revoked.
	UserAchievement struct {
		ID            string
		AchievementID string
		EarnedAt      time.Time
		Progress      int
	}
)

var (
	ErrNotFound         = errors.New("not found")
	ErrCategoryInUse    = errors.New("category has expenses referencing it")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidMonth     = errors.New("invalid month")
	ErrInvalidWindow    = errors.New("invalid window")
	ErrNoteTooLong      = errors.New("note too long (max 200 characters)")
	ErrEmptyDisplayName = errors.New("empty display name")
	ErrEmptyCurrency    = errors.New("empty currency code")
)

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

// Today returns the current calendar date in the device's local zone.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, ErrInvalidDate)
	}
	return DateOf(t), nil
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

// MonthKey returns the date's YYYY-MM month key.
func (d Date) MonthKey() string {
	return d.Format("2006-01")
}

// AddDays returns the date shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.AddDate(0, 0, n))
}

// Equal reports whether two dates are the same calendar day.
func (d Date) Equal(other Date) bool {
	y1, m1, d1 := d.Date()
	y2, m2, d2 := other.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Before reports whether d is an earlier calendar day than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.CategoryID) == "" {
		return ErrUnknownCategory
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if len(e.Note) > 200 {
		return ErrNoteTooLong
	}
	return nil
}

func (b Budget) Validate() error {
	if err := b.Amount.Validate(); err != nil {
		return err
	}
	return ValidateMonth(b.Month)
}

func (p Profile) Validate() error {
	if strings.TrimSpace(p.DisplayName) == "" {
		return ErrEmptyDisplayName
	}
	if strings.TrimSpace(p.Currency) == "" {
		return ErrEmptyCurrency
	}
	return nil
}

// ValidateMonth checks a YYYY-MM month key.
func ValidateMonth(month string) error {
	if !monthPattern.MatchString(month) {
		return fmt.Errorf("month %q: %w", month, ErrInvalidMonth)
	}
	return nil
}

// ParseWindow validates a window name from user input.
func ParseWindow(s string) (Window, error) {
	switch Window(s) {
	case WindowWeek, WindowMonth, WindowYear:
		return Window(s), nil
	default:
		return "", fmt.Errorf("window %q: %w", s, ErrInvalidWindow)
	}
}

// Start returns the first day of the window ending at today. Week covers the
// trailing 7 calendar days including today; month starts on the 1st of the
// current month; year on January 1st.
func (w Window) Start(today Date) Date {
	switch w {
	case WindowWeek:
		return today.AddDays(-6)
	case WindowMonth:
		return NewDate(today.Year(), int(today.Time.Month()), 1)
	case WindowYear:
		return NewDate(today.Year(), 1, 1)
	default:
		return today
	}
}
