package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"expenseflow/internal/core"
)

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringP("window", "w", "month", "Reporting window: week, month, or year")
	statsCmd.Flags().StringP("category", "c", "", "Restrict the breakdown to one category id")
	statsCmd.Flags().StringP("month", "m", "", "Budget month as YYYY-MM (default current month)")
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show spending totals, breakdown, and budget progress",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	windowArg, _ := cmd.Flags().GetString("window")
	window, err := core.ParseWindow(windowArg)
	if err != nil {
		return err
	}
	categoryFilter, _ := cmd.Flags().GetString("category")
	month, _ := cmd.Flags().GetString("month")

	svc, repo, err := setupWithProfile(ctx)
	if err != nil {
		return err
	}
	defer closeStore(repo)

	// Both loads are read-only; fetch them concurrently.
	var (
		summary  core.SpendingSummary
		statuses []core.BudgetStatus
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = svc.Summarize(gctx, window, categoryFilter)
		return err
	})
	g.Go(func() error {
		var err error
		statuses, err = svc.BudgetStatuses(gctx, month)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Spending %s (%s to %s): %s\n",
		summary.Window, summary.Start, summary.End, summary.Total.Format())
	for _, b := range summary.Breakdown {
		fmt.Fprintf(os.Stdout, "  %s %-14s %10s  %5.1f%%\n",
			b.Category.Emoji, b.Category.Name, b.Total.Format(), b.Percent)
	}

	if len(statuses) == 0 {
		fmt.Fprintln(os.Stdout, "No budgets set for the month.")
		return nil
	}

	fmt.Fprintln(os.Stdout, "Budgets:")
	for _, s := range statuses {
		scope := "account"
		if s.Budget.CategoryID != "" {
			scope = "category " + s.Budget.CategoryID
		}
		line := fmt.Sprintf("  %-12s %s / %s (%.1f%%)",
			scope, s.Spent.Format(), s.Budget.Amount.Format(), s.Ratio)
		if s.OverBudget() {
			line += "  OVER BUDGET"
		}
		fmt.Fprintln(os.Stdout, line)
	}
	return nil
}
