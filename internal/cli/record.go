package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"expenseflow/internal/core"
)

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(categoriesCmd)

	recordCmd.Flags().StringP("note", "n", "", "Optional free-text note")
	recordCmd.Flags().StringP("date", "d", "", "Expense date as YYYY-MM-DD (default today)")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database and the user profile",
	Long: `Create the local database, seed the category and achievement catalogs,
and create the user profile. Safe to run again: existing data is kept.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, repo, err := setupWithProfile(ctx)
	if err != nil {
		return err
	}
	defer closeStore(repo)

	profile, err := svc.Profile(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Store ready. Profile: %s (%s)\n", profile.DisplayName, profile.Currency)
	return nil
}

var recordCmd = &cobra.Command{
	Use:   "record CATEGORY_ID AMOUNT",
	Short: "Log an expense",
	Long: `Log an expense against a category. AMOUNT is a decimal, e.g. 12.50.
Logging advances the daily streak and may unlock achievements.`,
	Args: cobra.ExactArgs(2),
	RunE: runRecord,
}

func runRecord(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	categoryID := args[0]

	cents, err := core.ParseDecimalToCents(args[1])
	if err != nil {
		return fmt.Errorf("amount %q: %w", args[1], err)
	}

	note, _ := cmd.Flags().GetString("note")
	dateArg, _ := cmd.Flags().GetString("date")

	date := core.Today()
	if dateArg != "" {
		date, err = core.ParseDate(dateArg)
		if err != nil {
			return err
		}
	}

	svc, repo, err := setupWithProfile(ctx)
	if err != nil {
		return err
	}
	defer closeStore(repo)

	expense, unlocked, err := svc.RecordExpense(ctx, categoryID, cents, note, date)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Recorded %s on %s (id %s)\n", expense.Amount.Format(), expense.Date, expense.ID)
	for _, name := range unlocked {
		fmt.Fprintf(os.Stdout, "Achievement unlocked: %s\n", name)
	}
	return nil
}

var deleteCmd = &cobra.Command{
	Use:   "delete EXPENSE_ID",
	Short: "Delete an expense",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, repo, err := setupWithProfile(ctx)
		if err != nil {
			return err
		}
		defer closeStore(repo)

		if err := svc.DeleteExpense(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Deleted", args[0])
		return nil
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the category catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, repo, err := setupWithProfile(ctx)
		if err != nil {
			return err
		}
		defer closeStore(repo)

		cats, err := svc.ListCategories(ctx)
		if err != nil {
			return err
		}
		for _, c := range cats {
			fmt.Fprintf(os.Stdout, "%-4s %s %s\n", c.ID, c.Emoji, c.Name)
		}
		return nil
	},
}
