package storage

import (
	"context"
	"fmt"
	"time"

	"expenseflow/internal/core"
	"expenseflow/internal/log"
)

// Achievement catalog IDs. The catalog is fixed; unlock rows reference these.
const (
	AchievementFirstStep       = "first_step"
	AchievementWeekWarrior     = "week_warrior"
	AchievementConsistencyKing = "consistency_king"
	AchievementCenturyClub     = "century_club"
	AchievementBudgetMaster    = "budget_master"
)

var defaultCategories = []core.Category{
	{ID: "1", Name: "Food", Emoji: "🍔", Color: "#EF4444", SortOrder: 1},
	{ID: "2", Name: "Transport", Emoji: "🚗", Color: "#3B82F6", SortOrder: 2},
	{ID: "3", Name: "Shopping", Emoji: "🛒", Color: "#EC4899", SortOrder: 3},
	{ID: "4", Name: "Entertainment", Emoji: "🎮", Color: "#8B5CF6", SortOrder: 4},
	{ID: "5", Name: "Bills", Emoji: "📱", Color: "#F59E0B", SortOrder: 5},
	{ID: "6", Name: "Health", Emoji: "💊", Color: "#10B981", SortOrder: 6},
	{ID: "7", Name: "Education", Emoji: "📚", Color: "#6366F1", SortOrder: 7},
	{ID: "8", Name: "Other", Emoji: "✨", Color: "#64748B", SortOrder: 8},
}

var defaultAchievements = []core.AchievementDefinition{
	{
		ID:               AchievementFirstStep,
		Name:             "First Step",
		Description:      "Log your very first expense",
		BadgeIcon:        "🚀",
		RequirementType:  core.RequirementTransactionCount,
		RequirementValue: 1,
		SortOrder:        1,
	},
	{
		ID:               AchievementWeekWarrior,
		Name:             "Week Warrior",
		Description:      "Reach a 7-day streak",
		BadgeIcon:        "🔥",
		RequirementType:  core.RequirementStreak,
		RequirementValue: 7,
		SortOrder:        2,
	},
	{
		ID:               AchievementConsistencyKing,
		Name:             "Consistency King",
		Description:      "Reach a 30-day streak",
		BadgeIcon:        "👑",
		RequirementType:  core.RequirementStreak,
		RequirementValue: 30,
		SortOrder:        3,
	},
	{
		ID:               AchievementCenturyClub,
		Name:             "Century Club",
		Description:      "Log 100 total expenses",
		BadgeIcon:        "💯",
		RequirementType:  core.RequirementTransactionCount,
		RequirementValue: 100,
		SortOrder:        4,
	},
	{
		ID:               AchievementBudgetMaster,
		Name:             "Budget Master",
		Description:      "Stay under budget for a month",
		BadgeIcon:        "🛡️",
		RequirementType:  core.RequirementBudgetSuccess,
		RequirementValue: 1,
		SortOrder:        5,
	},
}

// seedCatalogs inserts the fixed category and achievement catalogs. Each
// catalog is guarded by a row count rather than a first-run flag, so calling
// this on every launch is safe.
func (r *SQLiteRepository) seedCatalogs(ctx context.Context) error {
	now := time.Now().UTC().Format(time.RFC3339)

	catCount, err := r.queries.CountCategories(ctx)
	if err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if catCount == 0 {
		for _, c := range defaultCategories {
			err := r.queries.InsertCategory(ctx, InsertCategoryParams{
				ID:        c.ID,
				Name:      c.Name,
				Emoji:     c.Emoji,
				Color:     c.Color,
				SortOrder: int64(c.SortOrder),
				CreatedAt: now,
			})
			if err != nil {
				return fmt.Errorf("seed category %s: %w", c.Name, err)
			}
		}
		r.logger.InfoContext(ctx, "Seeded category catalog", log.FieldCount, len(defaultCategories))
	}

	defCount, err := r.queries.CountAchievementDefinitions(ctx)
	if err != nil {
		return fmt.Errorf("count achievement definitions: %w", err)
	}
	if defCount == 0 {
		for _, d := range defaultAchievements {
			err := r.queries.InsertAchievementDefinition(ctx, InsertAchievementDefinitionParams{
				ID:               d.ID,
				Name:             d.Name,
				Description:      d.Description,
				BadgeIcon:        d.BadgeIcon,
				RequirementType:  string(d.RequirementType),
				RequirementValue: int64(d.RequirementValue),
				SortOrder:        int64(d.SortOrder),
				CreatedAt:        now,
			})
			if err != nil {
				return fmt.Errorf("seed achievement %s: %w", d.ID, err)
			}
		}
		r.logger.InfoContext(ctx, "Seeded achievement catalog", log.FieldCount, len(defaultAchievements))
	}

	return nil
}
