package storage

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries holds the raw SQL surface of the store. One method per statement;
// row structs mirror table columns exactly.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a Queries bound to the given transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

type UserProfileRow struct {
	UserID               string
	DisplayName          string
	Currency             string
	DailyReminderEnabled int64
	DailyReminderTime    sql.NullString
	CurrentStreak        int64
	LongestStreak        int64
	LastLoggedDate       sql.NullString
	CreatedAt            string
	UpdatedAt            string
}

type CategoryRow struct {
	ID        string
	Name      string
	Emoji     string
	Color     string
	SortOrder int64
	CreatedAt string
}

type ExpenseRow struct {
	ID          string
	UserID      string
	CategoryID  string
	AmountCents int64
	Note        sql.NullString
	ExpenseDate string
	CreatedAt   string
	UpdatedAt   string
}

type BudgetRow struct {
	ID          string
	UserID      string
	CategoryID  sql.NullString
	AmountCents int64
	Month       string
	CreatedAt   string
	UpdatedAt   string
}

type AchievementDefinitionRow struct {
	ID               string
	Name             string
	Description      string
	BadgeIcon        string
	RequirementType  string
	RequirementValue int64
	SortOrder        int64
	CreatedAt        string
}

type UserAchievementRow struct {
	ID            string
	UserID        string
	AchievementID string
	EarnedAt      string
	Progress      int64
}

// CategoryTotalRow is the GROUP BY result of spending summed per category.
type CategoryTotalRow struct {
	CategoryID string
	TotalCents int64
}

const createProfile = `
INSERT INTO user_profiles (user_id, display_name, currency, daily_reminder_enabled, daily_reminder_time, current_streak, longest_streak, last_logged_date, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateProfileParams struct {
	UserID               string
	DisplayName          string
	Currency             string
	DailyReminderEnabled int64
	DailyReminderTime    sql.NullString
	CurrentStreak        int64
	LongestStreak        int64
	LastLoggedDate       sql.NullString
	CreatedAt            string
	UpdatedAt            string
}

func (q *Queries) CreateProfile(ctx context.Context, arg CreateProfileParams) error {
	_, err := q.db.ExecContext(ctx, createProfile,
		arg.UserID, arg.DisplayName, arg.Currency, arg.DailyReminderEnabled,
		arg.DailyReminderTime, arg.CurrentStreak, arg.LongestStreak,
		arg.LastLoggedDate, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const getProfile = `
SELECT user_id, display_name, currency, daily_reminder_enabled, daily_reminder_time, current_streak, longest_streak, last_logged_date, created_at, updated_at
FROM user_profiles WHERE user_id = ?
`

func (q *Queries) GetProfile(ctx context.Context, userID string) (UserProfileRow, error) {
	var p UserProfileRow
	err := q.db.QueryRowContext(ctx, getProfile, userID).Scan(
		&p.UserID, &p.DisplayName, &p.Currency, &p.DailyReminderEnabled,
		&p.DailyReminderTime, &p.CurrentStreak, &p.LongestStreak,
		&p.LastLoggedDate, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const getAnyProfile = `
SELECT user_id, display_name, currency, daily_reminder_enabled, daily_reminder_time, current_streak, longest_streak, last_logged_date, created_at, updated_at
FROM user_profiles ORDER BY created_at LIMIT 1
`

func (q *Queries) GetAnyProfile(ctx context.Context) (UserProfileRow, error) {
	var p UserProfileRow
	err := q.db.QueryRowContext(ctx, getAnyProfile).Scan(
		&p.UserID, &p.DisplayName, &p.Currency, &p.DailyReminderEnabled,
		&p.DailyReminderTime, &p.CurrentStreak, &p.LongestStreak,
		&p.LastLoggedDate, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const updateStreak = `
UPDATE user_profiles
SET current_streak = ?, longest_streak = ?, last_logged_date = ?, updated_at = ?
WHERE user_id = ?
`

type UpdateStreakParams struct {
	CurrentStreak  int64
	LongestStreak  int64
	LastLoggedDate sql.NullString
	UpdatedAt      string
	UserID         string
}

func (q *Queries) UpdateStreak(ctx context.Context, arg UpdateStreakParams) error {
	_, err := q.db.ExecContext(ctx, updateStreak,
		arg.CurrentStreak, arg.LongestStreak, arg.LastLoggedDate, arg.UpdatedAt, arg.UserID)
	return err
}

const updateProfilePrefs = `
UPDATE user_profiles
SET display_name = ?, currency = ?, daily_reminder_enabled = ?, daily_reminder_time = ?, updated_at = ?
WHERE user_id = ?
`

type UpdateProfilePrefsParams struct {
	DisplayName          string
	Currency             string
	DailyReminderEnabled int64
	DailyReminderTime    sql.NullString
	UpdatedAt            string
	UserID               string
}

func (q *Queries) UpdateProfilePrefs(ctx context.Context, arg UpdateProfilePrefsParams) error {
	_, err := q.db.ExecContext(ctx, updateProfilePrefs,
		arg.DisplayName, arg.Currency, arg.DailyReminderEnabled,
		arg.DailyReminderTime, arg.UpdatedAt, arg.UserID)
	return err
}

const countCategories = `SELECT COUNT(*) FROM categories`

func (q *Queries) CountCategories(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countCategories).Scan(&n)
	return n, err
}

const insertCategory = `
INSERT INTO categories (id, name, emoji, color, sort_order, created_at)
VALUES (?, ?, ?, ?, ?, ?)
`

type InsertCategoryParams struct {
	ID        string
	Name      string
	Emoji     string
	Color     string
	SortOrder int64
	CreatedAt string
}

func (q *Queries) InsertCategory(ctx context.Context, arg InsertCategoryParams) error {
	_, err := q.db.ExecContext(ctx, insertCategory,
		arg.ID, arg.Name, arg.Emoji, arg.Color, arg.SortOrder, arg.CreatedAt)
	return err
}

const listCategories = `
SELECT id, name, emoji, color, sort_order, created_at
FROM categories ORDER BY sort_order, name
`

func (q *Queries) ListCategories(ctx context.Context) ([]CategoryRow, error) {
	rows, err := q.db.QueryContext(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []CategoryRow
	for rows.Next() {
		var c CategoryRow
		if err := rows.Scan(&c.ID, &c.Name, &c.Emoji, &c.Color, &c.SortOrder, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

const getCategory = `
SELECT id, name, emoji, color, sort_order, created_at
FROM categories WHERE id = ?
`

func (q *Queries) GetCategory(ctx context.Context, id string) (CategoryRow, error) {
	var c CategoryRow
	err := q.db.QueryRowContext(ctx, getCategory, id).Scan(
		&c.ID, &c.Name, &c.Emoji, &c.Color, &c.SortOrder, &c.CreatedAt)
	return c, err
}

const deleteCategory = `DELETE FROM categories WHERE id = ?`

func (q *Queries) DeleteCategory(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteCategory, id)
	return err
}

const countExpensesForCategory = `SELECT COUNT(*) FROM expenses WHERE category_id = ?`

func (q *Queries) CountExpensesForCategory(ctx context.Context, categoryID string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countExpensesForCategory, categoryID).Scan(&n)
	return n, err
}

const insertExpense = `
INSERT INTO expenses (id, user_id, category_id, amount_cents, note, expense_date, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

type InsertExpenseParams struct {
	ID          string
	UserID      string
	CategoryID  string
	AmountCents int64
	Note        sql.NullString
	ExpenseDate string
	CreatedAt   string
	UpdatedAt   string
}

func (q *Queries) InsertExpense(ctx context.Context, arg InsertExpenseParams) error {
	_, err := q.db.ExecContext(ctx, insertExpense,
		arg.ID, arg.UserID, arg.CategoryID, arg.AmountCents, arg.Note,
		arg.ExpenseDate, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const deleteExpense = `DELETE FROM expenses WHERE id = ? AND user_id = ?`

func (q *Queries) DeleteExpense(ctx context.Context, id, userID string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteExpense, id, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const countExpenses = `SELECT COUNT(*) FROM expenses WHERE user_id = ?`

func (q *Queries) CountExpenses(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countExpenses, userID).Scan(&n)
	return n, err
}

const listExpensesBetween = `
SELECT id, user_id, category_id, amount_cents, note, expense_date, created_at, updated_at
FROM expenses
WHERE user_id = ? AND expense_date >= ? AND expense_date <= ?
ORDER BY expense_date DESC, created_at DESC
`

type ListExpensesBetweenParams struct {
	UserID    string
	StartDate string
	EndDate   string
}

func (q *Queries) ListExpensesBetween(ctx context.Context, arg ListExpensesBetweenParams) ([]ExpenseRow, error) {
	rows, err := q.db.QueryContext(ctx, listExpensesBetween, arg.UserID, arg.StartDate, arg.EndDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ExpenseRow
	for rows.Next() {
		var e ExpenseRow
		if err := rows.Scan(&e.ID, &e.UserID, &e.CategoryID, &e.AmountCents,
			&e.Note, &e.ExpenseDate, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

const sumByCategoryBetween = `
SELECT category_id, SUM(amount_cents) AS total_cents
FROM expenses
WHERE user_id = ? AND expense_date >= ? AND expense_date <= ?
GROUP BY category_id
`

type SumByCategoryBetweenParams struct {
	UserID    string
	StartDate string
	EndDate   string
}

func (q *Queries) SumByCategoryBetween(ctx context.Context, arg SumByCategoryBetweenParams) ([]CategoryTotalRow, error) {
	rows, err := q.db.QueryContext(ctx, sumByCategoryBetween, arg.UserID, arg.StartDate, arg.EndDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []CategoryTotalRow
	for rows.Next() {
		var t CategoryTotalRow
		if err := rows.Scan(&t.CategoryID, &t.TotalCents); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

const sumByCategoryForMonth = `
SELECT category_id, SUM(amount_cents) AS total_cents
FROM expenses
WHERE user_id = ? AND expense_date LIKE ? || '-%'
GROUP BY category_id
`

func (q *Queries) SumByCategoryForMonth(ctx context.Context, userID, month string) ([]CategoryTotalRow, error) {
	rows, err := q.db.QueryContext(ctx, sumByCategoryForMonth, userID, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []CategoryTotalRow
	for rows.Next() {
		var t CategoryTotalRow
		if err := rows.Scan(&t.CategoryID, &t.TotalCents); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

const getBudget = `
SELECT id, user_id, category_id, amount_cents, month, created_at, updated_at
FROM budgets
WHERE user_id = ? AND COALESCE(category_id, '') = ? AND month = ?
`

type GetBudgetParams struct {
	UserID     string
	CategoryID string // empty for the whole-account budget
	Month      string
}

func (q *Queries) GetBudget(ctx context.Context, arg GetBudgetParams) (BudgetRow, error) {
	var b BudgetRow
	err := q.db.QueryRowContext(ctx, getBudget, arg.UserID, arg.CategoryID, arg.Month).Scan(
		&b.ID, &b.UserID, &b.CategoryID, &b.AmountCents, &b.Month, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

const insertBudget = `
INSERT INTO budgets (id, user_id, category_id, amount_cents, month, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

type InsertBudgetParams struct {
	ID          string
	UserID      string
	CategoryID  sql.NullString
	AmountCents int64
	Month       string
	CreatedAt   string
	UpdatedAt   string
}

func (q *Queries) InsertBudget(ctx context.Context, arg InsertBudgetParams) error {
	_, err := q.db.ExecContext(ctx, insertBudget,
		arg.ID, arg.UserID, arg.CategoryID, arg.AmountCents, arg.Month,
		arg.CreatedAt, arg.UpdatedAt)
	return err
}

const updateBudgetAmount = `
UPDATE budgets SET amount_cents = ?, updated_at = ? WHERE id = ?
`

type UpdateBudgetAmountParams struct {
	AmountCents int64
	UpdatedAt   string
	ID          string
}

func (q *Queries) UpdateBudgetAmount(ctx context.Context, arg UpdateBudgetAmountParams) error {
	_, err := q.db.ExecContext(ctx, updateBudgetAmount, arg.AmountCents, arg.UpdatedAt, arg.ID)
	return err
}

const listBudgetsForMonth = `
SELECT id, user_id, category_id, amount_cents, month, created_at, updated_at
FROM budgets
WHERE user_id = ? AND month = ?
ORDER BY category_id IS NOT NULL, category_id
`

func (q *Queries) ListBudgetsForMonth(ctx context.Context, userID, month string) ([]BudgetRow, error) {
	rows, err := q.db.QueryContext(ctx, listBudgetsForMonth, userID, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []BudgetRow
	for rows.Next() {
		var b BudgetRow
		if err := rows.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.AmountCents,
			&b.Month, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

const countAchievementDefinitions = `SELECT COUNT(*) FROM achievement_definitions`

func (q *Queries) CountAchievementDefinitions(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countAchievementDefinitions).Scan(&n)
	return n, err
}

const insertAchievementDefinition = `
INSERT INTO achievement_definitions (id, name, description, badge_icon, requirement_type, requirement_value, sort_order, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

type InsertAchievementDefinitionParams struct {
	ID               string
	Name             string
	Description      string
	BadgeIcon        string
	RequirementType  string
	RequirementValue int64
	SortOrder        int64
	CreatedAt        string
}

func (q *Queries) InsertAchievementDefinition(ctx context.Context, arg InsertAchievementDefinitionParams) error {
	_, err := q.db.ExecContext(ctx, insertAchievementDefinition,
		arg.ID, arg.Name, arg.Description, arg.BadgeIcon, arg.RequirementType,
		arg.RequirementValue, arg.SortOrder, arg.CreatedAt)
	return err
}

const listAchievementDefinitions = `
SELECT id, name, description, badge_icon, requirement_type, requirement_value, sort_order, created_at
FROM achievement_definitions ORDER BY sort_order, id
`

func (q *Queries) ListAchievementDefinitions(ctx context.Context) ([]AchievementDefinitionRow, error) {
	rows, err := q.db.QueryContext(ctx, listAchievementDefinitions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []AchievementDefinitionRow
	for rows.Next() {
		var d AchievementDefinitionRow
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.BadgeIcon,
			&d.RequirementType, &d.RequirementValue, &d.SortOrder, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

const insertUserAchievement = `
INSERT INTO user_achievements (id, user_id, achievement_id, earned_at, progress)
VALUES (?, ?, ?, ?, ?)
`

type InsertUserAchievementParams struct {
	ID            string
	UserID        string
	AchievementID string
	EarnedAt      string
	Progress      int64
}

func (q *Queries) InsertUserAchievement(ctx context.Context, arg InsertUserAchievementParams) error {
	_, err := q.db.ExecContext(ctx, insertUserAchievement,
		arg.ID, arg.UserID, arg.AchievementID, arg.EarnedAt, arg.Progress)
	return err
}

const listUserAchievements = `
SELECT id, user_id, achievement_id, earned_at, progress
FROM user_achievements WHERE user_id = ? ORDER BY earned_at
`

func (q *Queries) ListUserAchievements(ctx context.Context, userID string) ([]UserAchievementRow, error) {
	rows, err := q.db.QueryContext(ctx, listUserAchievements, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []UserAchievementRow
	for rows.Next() {
		var a UserAchievementRow
		if err := rows.Scan(&a.ID, &a.UserID, &a.AchievementID, &a.EarnedAt, &a.Progress); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
