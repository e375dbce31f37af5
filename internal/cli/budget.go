package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"expenseflow/internal/core"
)

func init() {
	rootCmd.AddCommand(budgetCmd)

	budgetCmd.Flags().StringP("category", "c", "", "Category id (omit for the whole-account ceiling)")
	budgetCmd.Flags().StringP("month", "m", "", "Month as YYYY-MM (default current month)")
}

var budgetCmd = &cobra.Command{
	Use:   "budget AMOUNT",
	Short: "Set a monthly spending ceiling",
	Long: `Set a monthly spending ceiling, account-wide or for one category.
Saving again for the same scope and month updates the existing ceiling.`,
	Args: cobra.ExactArgs(1),
	RunE: runBudget,
}

func runBudget(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cents, err := core.ParseDecimalToCents(args[0])
	if err != nil {
		return fmt.Errorf("amount %q: %w", args[0], err)
	}
	categoryID, _ := cmd.Flags().GetString("category")
	month, _ := cmd.Flags().GetString("month")
	if month == "" {
		month = core.Today().MonthKey()
	}

	svc, repo, err := setupWithProfile(ctx)
	if err != nil {
		return err
	}
	defer closeStore(repo)

	if err := svc.UpsertBudget(ctx, categoryID, month, cents); err != nil {
		return err
	}

	scope := "account"
	if categoryID != "" {
		scope = "category " + categoryID
	}
	fmt.Fprintf(os.Stdout, "Budget for %s in %s set to %s\n",
		scope, month, core.Money{Cents: cents}.Format())
	return nil
}
