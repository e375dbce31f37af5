package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"expenseflow/internal/core"
)

func openTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	require.NoError(t, repo.Initialize(context.Background()))
	return repo
}

func seedProfile(t *testing.T, repo *SQLiteRepository) core.Profile {
	t.Helper()
	p := core.Profile{
		UserID:      "u-1",
		DisplayName: "Tester",
		Currency:    "EUR",
	}
	require.NoError(t, repo.CreateProfile(context.Background(), p))
	return p
}

func TestInitializeSeedsOnce(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	cats, err := repo.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 8)
	require.Equal(t, "Food", cats[0].Name)

	defs, err := repo.AchievementDefinitions(ctx)
	require.NoError(t, err)
	require.Len(t, defs, 5)
	require.Equal(t, AchievementFirstStep, defs[0].ID)

	// Initialization is guarded by row counts, so a second launch must not
	// duplicate the catalogs.
	require.NoError(t, repo.Initialize(ctx))

	cats, err = repo.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 8)

	defs, err = repo.AchievementDefinitions(ctx)
	require.NoError(t, err)
	require.Len(t, defs, 5)
}

func TestProfileRoundTrip(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	_, err := repo.Profile(ctx, "nobody")
	require.ErrorIs(t, err, core.ErrNotFound)

	seedProfile(t, repo)

	got, err := repo.Profile(ctx, "u-1")
	require.NoError(t, err)
	require.Equal(t, "Tester", got.DisplayName)
	require.Equal(t, 0, got.CurrentStreak)
	require.Nil(t, got.LastLoggedDate)

	d := core.NewDate(2025, 6, 15)
	require.NoError(t, repo.UpdateStreak(ctx, "u-1", 3, 5, d))

	got, err = repo.Profile(ctx, "u-1")
	require.NoError(t, err)
	require.Equal(t, 3, got.CurrentStreak)
	require.Equal(t, 5, got.LongestStreak)
	require.NotNil(t, got.LastLoggedDate)
	require.True(t, got.LastLoggedDate.Equal(d))
}

func TestExpenseLifecycle(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	seedProfile(t, repo)

	e := core.Expense{
		ID:         "e-1",
		CategoryID: "1",
		Amount:     core.Money{Cents: 1999},
		Note:       "dinner",
		Date:       core.NewDate(2025, 6, 15),
	}
	require.NoError(t, repo.InsertExpense(ctx, "u-1", e))

	n, err := repo.CountExpenses(ctx, "u-1")
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	listed, err := repo.ExpensesBetween(ctx, "u-1", core.NewDate(2025, 6, 1), core.NewDate(2025, 6, 30))
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, "dinner", listed[0].Note)
	require.Equal(t, int64(1999), listed[0].Amount.Cents)

	// Another user's expenses stay invisible.
	listed, err = repo.ExpensesBetween(ctx, "u-other", core.NewDate(2025, 6, 1), core.NewDate(2025, 6, 30))
	require.NoError(t, err)
	require.Empty(t, listed)

	require.NoError(t, repo.DeleteExpense(ctx, "u-1", "e-1"))
	require.NoError(t, repo.DeleteExpense(ctx, "u-1", "e-1")) // missing id is a no-op

	n, err = repo.CountExpenses(ctx, "u-1")
	require.NoError(t, err)
	require.Equal(t, int64(0), n)
}

func TestExpenseRequiresKnownCategory(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	seedProfile(t, repo)

	err := repo.InsertExpense(ctx, "u-1", core.Expense{
		ID:         "e-bad",
		CategoryID: "no-such",
		Amount:     core.Money{Cents: 100},
		Date:       core.NewDate(2025, 6, 15),
	})
	require.Error(t, err) // foreign key enforcement
}

func TestDeleteCategoryRestricted(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	seedProfile(t, repo)

	require.NoError(t, repo.InsertExpense(ctx, "u-1", core.Expense{
		ID:         "e-1",
		CategoryID: "1",
		Amount:     core.Money{Cents: 100},
		Date:       core.NewDate(2025, 6, 15),
	}))

	err := repo.DeleteCategory(ctx, "1")
	require.ErrorIs(t, err, core.ErrCategoryInUse)

	// The referencing expense must survive the refused delete.
	n, err := repo.CountExpenses(ctx, "u-1")
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	require.NoError(t, repo.DeleteCategory(ctx, "8"))
	cats, err := repo.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 7)
}

func TestUpsertBudgetScopes(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	seedProfile(t, repo)

	global := core.Budget{ID: "b-1", Amount: core.Money{Cents: 100000}, Month: "2025-06"}
	require.NoError(t, repo.UpsertBudget(ctx, "u-1", global))

	// Same scope again updates in place instead of duplicating.
	global.ID = "b-ignored"
	global.Amount = core.Money{Cents: 80000}
	require.NoError(t, repo.UpsertBudget(ctx, "u-1", global))

	perCat := core.Budget{ID: "b-2", CategoryID: "1", Amount: core.Money{Cents: 30000}, Month: "2025-06"}
	require.NoError(t, repo.UpsertBudget(ctx, "u-1", perCat))

	budgets, err := repo.BudgetsForMonth(ctx, "u-1", "2025-06")
	require.NoError(t, err)
	require.Len(t, budgets, 2)
	require.Empty(t, budgets[0].CategoryID) // global row first
	require.Equal(t, int64(80000), budgets[0].Amount.Cents)
	require.Equal(t, "1", budgets[1].CategoryID)

	// A different month is its own scope.
	require.NoError(t, repo.UpsertBudget(ctx, "u-1", core.Budget{
		ID: "b-3", Amount: core.Money{Cents: 50000}, Month: "2025-07",
	}))
	budgets, err = repo.BudgetsForMonth(ctx, "u-1", "2025-07")
	require.NoError(t, err)
	require.Len(t, budgets, 1)
}

func TestCategoryTotals(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	seedProfile(t, repo)

	insert := func(id, cat string, cents int64, d core.Date) {
		require.NoError(t, repo.InsertExpense(ctx, "u-1", core.Expense{
			ID: id, CategoryID: cat, Amount: core.Money{Cents: cents}, Date: d,
		}))
	}
	insert("e-1", "1", 1000, core.NewDate(2025, 6, 2))
	insert("e-2", "1", 2000, core.NewDate(2025, 6, 10))
	insert("e-3", "2", 4000, core.NewDate(2025, 6, 10))
	insert("e-4", "2", 8000, core.NewDate(2025, 7, 1))

	totals, err := repo.CategoryTotalsForMonth(ctx, "u-1", "2025-06")
	require.NoError(t, err)
	byCat := map[string]int64{}
	for _, row := range totals {
		byCat[row.CategoryID] = row.TotalCents
	}
	require.Equal(t, int64(3000), byCat["1"])
	require.Equal(t, int64(4000), byCat["2"])

	totals, err = repo.CategoryTotalsBetween(ctx, "u-1", core.NewDate(2025, 6, 5), core.NewDate(2025, 7, 1))
	require.NoError(t, err)
	byCat = map[string]int64{}
	for _, row := range totals {
		byCat[row.CategoryID] = row.TotalCents
	}
	require.Equal(t, int64(2000), byCat["1"])
	require.Equal(t, int64(12000), byCat["2"])
}

func TestUserAchievementUniqueness(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	seedProfile(t, repo)

	a := core.UserAchievement{ID: "ua-1", AchievementID: AchievementFirstStep, Progress: 100}
	require.NoError(t, repo.InsertUserAchievement(ctx, "u-1", a))

	// The unique index backs the evaluator's idempotence.
	a.ID = "ua-2"
	require.Error(t, repo.InsertUserAchievement(ctx, "u-1", a))

	unlocks, err := repo.UserAchievements(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, unlocks, 1)
}

func TestReset(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	seedProfile(t, repo)

	require.NoError(t, repo.InsertExpense(ctx, "u-1", core.Expense{
		ID: "e-1", CategoryID: "1", Amount: core.Money{Cents: 100}, Date: core.NewDate(2025, 6, 15),
	}))

	require.NoError(t, repo.Reset(ctx))

	// Data gone, seeded baseline back.
	_, err := repo.Profile(ctx, "u-1")
	require.ErrorIs(t, err, core.ErrNotFound)

	n, err := repo.CountExpenses(ctx, "u-1")
	require.NoError(t, err)
	require.Equal(t, int64(0), n)

	cats, err := repo.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 8)

	defs, err := repo.AchievementDefinitions(ctx)
	require.NoError(t, err)
	require.Len(t, defs, 5)
}
