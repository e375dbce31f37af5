package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetCmd)

	exportCmd.Flags().StringP("out", "o", "", "Output file (default stdout)")
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full expense history as CSV",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	outPath, _ := cmd.Flags().GetString("out")

	svc, repo, err := setupWithProfile(ctx)
	if err != nil {
		return err
	}
	defer closeStore(repo)

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := svc.ExportCSV(ctx, out); err != nil {
		return err
	}
	if outPath != "" {
		fmt.Fprintln(os.Stderr, "Exported to", outPath)
	}
	return nil
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase everything and restore the seeded baseline",
	Long: `Erase every expense, budget, achievement, and the user profile, then
re-seed the category and achievement catalogs. This cannot be undone.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		return fmt.Errorf("refusing to erase all data without --yes")
	}

	_, repo, _, err := setup(ctx)
	if err != nil {
		return err
	}
	defer closeStore(repo)

	if err := repo.Reset(ctx); err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, "All data erased. Store restored to seeded baseline.")
	return nil
}
