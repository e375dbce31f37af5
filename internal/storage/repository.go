// Package storage persists the expense tracker's state in a local SQLite
// database. Schema changes run through embedded migrations; fixed catalogs
// are seeded with a count guard so initialization is idempotent.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"expenseflow/internal/core"
	"expenseflow/internal/log"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db      *sql.DB
	dbPath  string
	queries *Queries
	logger  *log.Logger
}

func Open(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// Single local writer; one pooled connection keeps the PRAGMA settings
	// in force for every statement.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %s: %w", pragma, err)
		}
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		dbPath:  dbPath,
		queries: New(db),
		logger:  log.Default(log.ComponentStorage),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Initialize seeds the fixed catalogs. Safe to call on every launch.
func (r *SQLiteRepository) Initialize(ctx context.Context) error {
	if err := r.seedCatalogs(ctx); err != nil {
		return fmt.Errorf("seed catalogs: %w", err)
	}
	return nil
}

// Reset destructively drops every table and rebuilds the seeded baseline.
// Only invoked from the explicit erase-everything flow.
func (r *SQLiteRepository) Reset(ctx context.Context) error {
	drops := []string{
		"DROP TABLE IF EXISTS user_achievements",
		"DROP TABLE IF EXISTS achievement_definitions",
		"DROP TABLE IF EXISTS budgets",
		"DROP TABLE IF EXISTS expenses",
		"DROP TABLE IF EXISTS categories",
		"DROP TABLE IF EXISTS user_profiles",
		"DROP TABLE IF EXISTS schema_migrations",
	}
	for _, stmt := range drops {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}

	if err := RunMigrations(r.dbPath); err != nil {
		return fmt.Errorf("re-run migrations: %w", err)
	}
	if err := r.seedCatalogs(ctx); err != nil {
		return fmt.Errorf("re-seed catalogs: %w", err)
	}

	r.logger.InfoContext(ctx, "Store reset to seeded baseline", log.FieldDBPath, r.dbPath)
	return nil
}

// CreateProfile inserts a new user profile row.
func (r *SQLiteRepository) CreateProfile(ctx context.Context, p core.Profile) error {
	now := time.Now().UTC().Format(time.RFC3339)
	err := r.queries.CreateProfile(ctx, CreateProfileParams{
		UserID:               p.UserID,
		DisplayName:          p.DisplayName,
		Currency:             p.Currency,
		DailyReminderEnabled: boolToInt(p.DailyReminderEnabled),
		DailyReminderTime:    nullString(p.DailyReminderTime),
		CurrentStreak:        int64(p.CurrentStreak),
		LongestStreak:        int64(p.LongestStreak),
		LastLoggedDate:       nullDate(p.LastLoggedDate),
		CreatedAt:            now,
		UpdatedAt:            now,
	})
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

// Profile returns the stored profile, or core.ErrNotFound if none exists.
func (r *SQLiteRepository) Profile(ctx context.Context, userID string) (core.Profile, error) {
	row, err := r.queries.GetProfile(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Profile{}, core.ErrNotFound
	}
	if err != nil {
		return core.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return profileFromRow(row)
}

// AnyProfile returns the installation's profile regardless of user id.
// There is at most one in practice.
func (r *SQLiteRepository) AnyProfile(ctx context.Context) (core.Profile, error) {
	row, err := r.queries.GetAnyProfile(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Profile{}, core.ErrNotFound
	}
	if err != nil {
		return core.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return profileFromRow(row)
}

// UpdateStreak persists the streak state as one atomic update.
func (r *SQLiteRepository) UpdateStreak(ctx context.Context, userID string, current, longest int, lastLogged core.Date) error {
	err := r.queries.UpdateStreak(ctx, UpdateStreakParams{
		CurrentStreak:  int64(current),
		LongestStreak:  int64(longest),
		LastLoggedDate: sql.NullString{String: lastLogged.String(), Valid: true},
		UpdatedAt:      time.Now().UTC().Format(time.RFC3339),
		UserID:         userID,
	})
	if err != nil {
		return fmt.Errorf("update streak: %w", err)
	}
	return nil
}

// UpdatePreferences saves profile display and reminder settings.
func (r *SQLiteRepository) UpdatePreferences(ctx context.Context, p core.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	err := r.queries.UpdateProfilePrefs(ctx, UpdateProfilePrefsParams{
		DisplayName:          p.DisplayName,
		Currency:             p.Currency,
		DailyReminderEnabled: boolToInt(p.DailyReminderEnabled),
		DailyReminderTime:    nullString(p.DailyReminderTime),
		UpdatedAt:            time.Now().UTC().Format(time.RFC3339),
		UserID:               p.UserID,
	})
	if err != nil {
		return fmt.Errorf("update preferences: %w", err)
	}
	return nil
}

// Categories returns the seeded catalog in display order.
func (r *SQLiteRepository) Categories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.queries.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make([]core.Category, len(rows))
	for i, c := range rows {
		out[i] = core.Category{
			ID:        c.ID,
			Name:      c.Name,
			Emoji:     c.Emoji,
			Color:     c.Color,
			SortOrder: int(c.SortOrder),
		}
	}
	return out, nil
}

// Category resolves a single catalog entry.
func (r *SQLiteRepository) Category(ctx context.Context, id string) (core.Category, error) {
	row, err := r.queries.GetCategory(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, core.ErrUnknownCategory
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("get category: %w", err)
	}
	return core.Category{
		ID:        row.ID,
		Name:      row.Name,
		Emoji:     row.Emoji,
		Color:     row.Color,
		SortOrder: int(row.SortOrder),
	}, nil
}

// DeleteCategory removes a catalog entry. Deletion is refused while any
// expense still references the category; the FK RESTRICT clause backs this
// at the SQL level.
func (r *SQLiteRepository) DeleteCategory(ctx context.Context, id string) error {
	n, err := r.queries.CountExpensesForCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("count expenses for category: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("delete category %s: %w", id, core.ErrCategoryInUse)
	}
	if err := r.queries.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// InsertExpense persists a validated expense row.
func (r *SQLiteRepository) InsertExpense(ctx context.Context, userID string, e core.Expense) error {
	now := time.Now().UTC().Format(time.RFC3339)
	err := r.queries.InsertExpense(ctx, InsertExpenseParams{
		ID:          e.ID,
		UserID:      userID,
		CategoryID:  e.CategoryID,
		AmountCents: e.Amount.Cents,
		Note:        nullString(e.Note),
		ExpenseDate: e.Date.String(),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// DeleteExpense removes one expense. Deleting a missing id is a no-op.
func (r *SQLiteRepository) DeleteExpense(ctx context.Context, userID, id string) error {
	n, err := r.queries.DeleteExpense(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if n == 0 {
		r.logger.DebugContext(ctx, "Delete of missing expense ignored", log.FieldExpenseID, id)
	}
	return nil
}

// CountExpenses returns the user's lifetime transaction count.
func (r *SQLiteRepository) CountExpenses(ctx context.Context, userID string) (int64, error) {
	n, err := r.queries.CountExpenses(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count expenses: %w", err)
	}
	return n, nil
}

// ExpensesBetween lists expenses whose calendar date falls in [start, end].
func (r *SQLiteRepository) ExpensesBetween(ctx context.Context, userID string, start, end core.Date) ([]core.Expense, error) {
	rows, err := r.queries.ListExpensesBetween(ctx, ListExpensesBetweenParams{
		UserID:    userID,
		StartDate: start.String(),
		EndDate:   end.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	out := make([]core.Expense, 0, len(rows))
	for _, row := range rows {
		e, err := expenseFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// CategoryTotalsBetween sums spending per category over [start, end].
func (r *SQLiteRepository) CategoryTotalsBetween(ctx context.Context, userID string, start, end core.Date) ([]CategoryTotalRow, error) {
	rows, err := r.queries.SumByCategoryBetween(ctx, SumByCategoryBetweenParams{
		UserID:    userID,
		StartDate: start.String(),
		EndDate:   end.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("sum by category: %w", err)
	}
	return rows, nil
}

// CategoryTotalsForMonth sums spending per category within one YYYY-MM month.
func (r *SQLiteRepository) CategoryTotalsForMonth(ctx context.Context, userID, month string) ([]CategoryTotalRow, error) {
	rows, err := r.queries.SumByCategoryForMonth(ctx, userID, month)
	if err != nil {
		return nil, fmt.Errorf("sum by category for month: %w", err)
	}
	return rows, nil
}

// UpsertBudget saves a budget ceiling with at most one row per
// (user, category-or-null, month). A second save for the same scope updates
// the existing row in place.
func (r *SQLiteRepository) UpsertBudget(ctx context.Context, userID string, b core.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert budget: %w", err)
	}
	defer tx.Rollback()

	q := r.queries.WithTx(tx)
	now := time.Now().UTC().Format(time.RFC3339)

	existing, err := q.GetBudget(ctx, GetBudgetParams{
		UserID:     userID,
		CategoryID: b.CategoryID,
		Month:      b.Month,
	})
	switch {
	case errors.Is(err, sql.ErrNoRows):
		err = q.InsertBudget(ctx, InsertBudgetParams{
			ID:          b.ID,
			UserID:      userID,
			CategoryID:  nullString(b.CategoryID),
			AmountCents: b.Amount.Cents,
			Month:       b.Month,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return fmt.Errorf("insert budget: %w", err)
		}
	case err != nil:
		return fmt.Errorf("get budget: %w", err)
	default:
		err = q.UpdateBudgetAmount(ctx, UpdateBudgetAmountParams{
			AmountCents: b.Amount.Cents,
			UpdatedAt:   now,
			ID:          existing.ID,
		})
		if err != nil {
			return fmt.Errorf("update budget: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert budget: %w", err)
	}
	return nil
}

// BudgetsForMonth lists the month's ceilings, the global row first.
func (r *SQLiteRepository) BudgetsForMonth(ctx context.Context, userID, month string) ([]core.Budget, error) {
	rows, err := r.queries.ListBudgetsForMonth(ctx, userID, month)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	out := make([]core.Budget, len(rows))
	for i, b := range rows {
		out[i] = core.Budget{
			ID:         b.ID,
			CategoryID: b.CategoryID.String,
			Amount:     core.Money{Cents: b.AmountCents},
			Month:      b.Month,
		}
	}
	return out, nil
}

// AchievementDefinitions returns the seeded catalog in display order.
func (r *SQLiteRepository) AchievementDefinitions(ctx context.Context) ([]core.AchievementDefinition, error) {
	rows, err := r.queries.ListAchievementDefinitions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list achievement definitions: %w", err)
	}
	out := make([]core.AchievementDefinition, len(rows))
	for i, d := range rows {
		out[i] = core.AchievementDefinition{
			ID:               d.ID,
			Name:             d.Name,
			Description:      d.Description,
			BadgeIcon:        d.BadgeIcon,
			RequirementType:  core.RequirementType(d.RequirementType),
			RequirementValue: int(d.RequirementValue),
			SortOrder:        int(d.SortOrder),
		}
	}
	return out, nil
}

// UserAchievements returns the user's unlock records.
func (r *SQLiteRepository) UserAchievements(ctx context.Context, userID string) ([]core.UserAchievement, error) {
	rows, err := r.queries.ListUserAchievements(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user achievements: %w", err)
	}
	out := make([]core.UserAchievement, 0, len(rows))
	for _, a := range rows {
		earnedAt, err := time.Parse(time.RFC3339, a.EarnedAt)
		if err != nil {
			return nil, fmt.Errorf("parse earned_at %q: %w", a.EarnedAt, err)
		}
		out = append(out, core.UserAchievement{
			ID:            a.ID,
			AchievementID: a.AchievementID,
			EarnedAt:      earnedAt,
			Progress:      int(a.Progress),
		})
	}
	return out, nil
}

// InsertUserAchievement appends one unlock record.
func (r *SQLiteRepository) InsertUserAchievement(ctx context.Context, userID string, a core.UserAchievement) error {
	err := r.queries.InsertUserAchievement(ctx, InsertUserAchievementParams{
		ID:            a.ID,
		UserID:        userID,
		AchievementID: a.AchievementID,
		EarnedAt:      a.EarnedAt.UTC().Format(time.RFC3339),
		Progress:      int64(a.Progress),
	})
	if err != nil {
		return fmt.Errorf("insert user achievement: %w", err)
	}
	return nil
}

func profileFromRow(row UserProfileRow) (core.Profile, error) {
	p := core.Profile{
		UserID:               row.UserID,
		DisplayName:          row.DisplayName,
		Currency:             row.Currency,
		DailyReminderEnabled: row.DailyReminderEnabled != 0,
		DailyReminderTime:    row.DailyReminderTime.String,
		CurrentStreak:        int(row.CurrentStreak),
		LongestStreak:        int(row.LongestStreak),
	}
	if row.LastLoggedDate.Valid && row.LastLoggedDate.String != "" {
		d, err := core.ParseDate(row.LastLoggedDate.String)
		if err != nil {
			return core.Profile{}, fmt.Errorf("parse last_logged_date: %w", err)
		}
		p.LastLoggedDate = &d
	}
	return p, nil
}

func expenseFromRow(row ExpenseRow) (core.Expense, error) {
	d, err := core.ParseDate(row.ExpenseDate)
	if err != nil {
		return core.Expense{}, fmt.Errorf("parse expense_date: %w", err)
	}
	return core.Expense{
		ID:         row.ID,
		CategoryID: row.CategoryID,
		Amount:     core.Money{Cents: row.AmountCents},
		Note:       row.Note.String,
		Date:       d,
	}, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullDate(d *core.Date) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}
