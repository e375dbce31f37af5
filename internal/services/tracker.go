package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"expenseflow/internal/core"
	"expenseflow/internal/export"
	"expenseflow/internal/log"
	"expenseflow/internal/storage"
)

// TrackerService is the data-access contract exposed to the UI collaborator.
// It orchestrates the record-expense flow: persist the row, advance the
// streak, then evaluate achievements. The store handle is injected, never
// ambient.
type TrackerService struct {
	storage *storage.SQLiteRepository
	logger  *log.Logger
	userID  string

	// today is swappable in tests; defaults to the local calendar date.
	today func() core.Date
}

func NewTrackerService(store *storage.SQLiteRepository) *TrackerService {
	return &TrackerService{
		storage: store,
		logger:  log.Default(log.ComponentServices),
		today:   core.Today,
	}
}

// EnsureProfile returns the installation's profile, creating it with the
// given defaults on first use.
func (s *TrackerService) EnsureProfile(ctx context.Context, displayName, currency string) (core.Profile, error) {
	if s.userID != "" {
		p, err := s.storage.Profile(ctx, s.userID)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, core.ErrNotFound) {
			return core.Profile{}, err
		}
	}

	p, err := s.storage.AnyProfile(ctx)
	if err == nil {
		s.userID = p.UserID
		return p, nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return core.Profile{}, err
	}

	p = core.Profile{
		UserID:      uuid.NewString(),
		DisplayName: displayName,
		Currency:    currency,
	}
	if err := p.Validate(); err != nil {
		return core.Profile{}, err
	}
	if err := s.storage.CreateProfile(ctx, p); err != nil {
		return core.Profile{}, err
	}
	s.userID = p.UserID

	s.logger.InfoContext(ctx, "Created user profile",
		log.FieldUserID, p.UserID, "display_name", p.DisplayName, "currency", p.Currency)
	return p, nil
}

// Profile returns the current profile.
func (s *TrackerService) Profile(ctx context.Context) (core.Profile, error) {
	if err := s.requireProfile(ctx); err != nil {
		return core.Profile{}, err
	}
	return s.storage.Profile(ctx, s.userID)
}

// UpdatePreferences saves display and reminder settings.
func (s *TrackerService) UpdatePreferences(ctx context.Context, p core.Profile) error {
	if err := s.requireProfile(ctx); err != nil {
		return err
	}
	p.UserID = s.userID
	return s.storage.UpdatePreferences(ctx, p)
}

// RecordExpense persists a new expense, advances the streak, and evaluates
// achievements. It returns the saved expense and the names of any newly
// unlocked achievements.
//
// The streak and achievement steps run after the expense write commits; a
// failure in either is logged and does not invalidate the expense.
func (s *TrackerService) RecordExpense(ctx context.Context, categoryID string, amountCents int64, note string, date core.Date) (core.Expense, []string, error) {
	if err := s.requireProfile(ctx); err != nil {
		return core.Expense{}, nil, err
	}

	if _, err := s.storage.Category(ctx, categoryID); err != nil {
		return core.Expense{}, nil, err
	}

	e := core.Expense{
		ID:         uuid.NewString(),
		CategoryID: categoryID,
		Amount:     core.Money{Cents: amountCents},
		Note:       note,
		Date:       date,
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, nil, err
	}

	if err := s.storage.InsertExpense(ctx, s.userID, e); err != nil {
		return core.Expense{}, nil, fmt.Errorf("record expense: %w", err)
	}

	s.logger.InfoContext(ctx, "Expense recorded",
		log.FieldExpenseID, e.ID, log.FieldCategoryID, categoryID,
		log.FieldAmountCents, amountCents, log.FieldExpenseDate, date.String())

	if err := s.advanceStreak(ctx); err != nil {
		s.logger.ErrorContext(ctx, "Streak update failed", log.FieldError, err)
	}

	unlocked, err := s.evaluateAchievements(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Achievement evaluation failed", log.FieldError, err)
	}

	return e, unlocked, nil
}

// DeleteExpense removes one expense; a missing id is a no-op.
func (s *TrackerService) DeleteExpense(ctx context.Context, id string) error {
	if err := s.requireProfile(ctx); err != nil {
		return err
	}
	return s.storage.DeleteExpense(ctx, s.userID, id)
}

// UpsertBudget saves a monthly ceiling, category-scoped or whole-account
// when categoryID is empty. Saving twice for the same scope updates in place.
func (s *TrackerService) UpsertBudget(ctx context.Context, categoryID, month string, amountCents int64) error {
	if err := s.requireProfile(ctx); err != nil {
		return err
	}
	if categoryID != "" {
		if _, err := s.storage.Category(ctx, categoryID); err != nil {
			return err
		}
	}
	return s.storage.UpsertBudget(ctx, s.userID, core.Budget{
		ID:         uuid.NewString(),
		CategoryID: categoryID,
		Amount:     core.Money{Cents: amountCents},
		Month:      month,
	})
}

// Summarize computes the spending total and per-category breakdown for a
// window ending today, optionally restricted to one category.
func (s *TrackerService) Summarize(ctx context.Context, window core.Window, categoryFilter string) (core.SpendingSummary, error) {
	if err := s.requireProfile(ctx); err != nil {
		return core.SpendingSummary{}, err
	}

	today := s.today()
	start := window.Start(today)

	totals, err := s.storage.CategoryTotalsBetween(ctx, s.userID, start, today)
	if err != nil {
		return core.SpendingSummary{}, err
	}
	cats, err := s.storage.Categories(ctx)
	if err != nil {
		return core.SpendingSummary{}, err
	}

	return BuildSpendingSummary(window, start, today, totals, cats, categoryFilter), nil
}

// BudgetStatuses measures the month's budgets against its spending.
// Month defaults to the current calendar month when empty.
func (s *TrackerService) BudgetStatuses(ctx context.Context, month string) ([]core.BudgetStatus, error) {
	if err := s.requireProfile(ctx); err != nil {
		return nil, err
	}
	if month == "" {
		month = s.today().MonthKey()
	}
	if err := core.ValidateMonth(month); err != nil {
		return nil, err
	}

	budgets, err := s.storage.BudgetsForMonth(ctx, s.userID, month)
	if err != nil {
		return nil, err
	}
	totals, err := s.storage.CategoryTotalsForMonth(ctx, s.userID, month)
	if err != nil {
		return nil, err
	}

	return BuildBudgetStatuses(budgets, totals), nil
}

// ListAchievements merges the catalog with the user's unlock state.
func (s *TrackerService) ListAchievements(ctx context.Context) ([]core.AchievementStatus, error) {
	if err := s.requireProfile(ctx); err != nil {
		return nil, err
	}

	defs, err := s.storage.AchievementDefinitions(ctx)
	if err != nil {
		return nil, err
	}
	unlocks, err := s.storage.UserAchievements(ctx, s.userID)
	if err != nil {
		return nil, err
	}

	unlockByID := make(map[string]core.UserAchievement, len(unlocks))
	for _, u := range unlocks {
		unlockByID[u.AchievementID] = u
	}

	out := make([]core.AchievementStatus, len(defs))
	for i, def := range defs {
		status := core.AchievementStatus{Definition: def}
		if u, ok := unlockByID[def.ID]; ok {
			status.Earned = true
			unlock := u
			status.Unlock = &unlock
		}
		out[i] = status
	}
	return out, nil
}

// ListCategories returns the seeded catalog.
func (s *TrackerService) ListCategories(ctx context.Context) ([]core.Category, error) {
	return s.storage.Categories(ctx)
}

// ListExpenses returns the window's expenses, newest first.
func (s *TrackerService) ListExpenses(ctx context.Context, window core.Window) ([]core.Expense, error) {
	if err := s.requireProfile(ctx); err != nil {
		return nil, err
	}
	today := s.today()
	return s.storage.ExpensesBetween(ctx, s.userID, window.Start(today), today)
}

// ExportCSV writes the full expense history as a CSV report.
func (s *TrackerService) ExportCSV(ctx context.Context, w io.Writer) error {
	if err := s.requireProfile(ctx); err != nil {
		return err
	}

	profile, err := s.storage.Profile(ctx, s.userID)
	if err != nil {
		return err
	}
	expenses, err := s.storage.ExpensesBetween(ctx, s.userID,
		core.NewDate(1, 1, 1), core.NewDate(9999, 12, 31))
	if err != nil {
		return err
	}
	cats, err := s.storage.Categories(ctx)
	if err != nil {
		return err
	}

	if err := export.WriteExpensesCSV(w, profile, cats, expenses); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	s.logger.InfoContext(ctx, "Exported expense history", log.FieldCount, len(expenses))
	return nil
}

func (s *TrackerService) advanceStreak(ctx context.Context) error {
	profile, err := s.storage.Profile(ctx, s.userID)
	if err != nil {
		return err
	}

	state := StreakState{
		Current:    profile.CurrentStreak,
		Longest:    profile.LongestStreak,
		LastLogged: profile.LastLoggedDate,
	}
	next, changed := AdvanceStreak(state, s.today())
	if !changed {
		return nil
	}

	if err := s.storage.UpdateStreak(ctx, s.userID, next.Current, next.Longest, *next.LastLogged); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Streak updated",
		log.FieldStreak, next.Current, log.FieldLongest, next.Longest,
		"last_logged_date", next.LastLogged.String())
	return nil
}

func (s *TrackerService) evaluateAchievements(ctx context.Context) ([]string, error) {
	profile, err := s.storage.Profile(ctx, s.userID)
	if err != nil {
		return nil, err
	}
	total, err := s.storage.CountExpenses(ctx, s.userID)
	if err != nil {
		return nil, err
	}
	defs, err := s.storage.AchievementDefinitions(ctx)
	if err != nil {
		return nil, err
	}
	unlocks, err := s.storage.UserAchievements(ctx, s.userID)
	if err != nil {
		return nil, err
	}

	earned := make(map[string]bool, len(unlocks))
	for _, u := range unlocks {
		earned[u.AchievementID] = true
	}

	newlyUnlocked := EvaluateAchievements(defs, earned, Metrics{
		CurrentStreak:     profile.CurrentStreak,
		TotalTransactions: total,
	})

	var names []string
	now := time.Now()
	for _, def := range newlyUnlocked {
		err := s.storage.InsertUserAchievement(ctx, s.userID, core.UserAchievement{
			ID:            uuid.NewString(),
			AchievementID: def.ID,
			EarnedAt:      now,
			Progress:      100,
		})
		if err != nil {
			return names, err
		}
		names = append(names, def.Name)
		s.logger.InfoContext(ctx, "Achievement unlocked", log.FieldAchievement, def.ID)
	}
	return names, nil
}

// requireProfile resolves the installation's user id, failing with
// core.ErrNotFound when no profile exists yet.
func (s *TrackerService) requireProfile(ctx context.Context) error {
	if s.userID != "" {
		return nil
	}
	p, err := s.storage.AnyProfile(ctx)
	if err != nil {
		return err
	}
	s.userID = p.UserID
	return nil
}
