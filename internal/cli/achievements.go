package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(achievementsCmd)
}

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "List achievements and unlock status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, repo, err := setupWithProfile(ctx)
		if err != nil {
			return err
		}
		defer closeStore(repo)

		statuses, err := svc.ListAchievements(ctx)
		if err != nil {
			return err
		}

		for _, s := range statuses {
			mark := "  "
			when := ""
			if s.Earned {
				mark = "✓ "
				when = " (earned " + s.Unlock.EarnedAt.Format("2006-01-02") + ")"
			}
			fmt.Fprintf(os.Stdout, "%s%s %-18s %s%s\n",
				mark, s.Definition.BadgeIcon, s.Definition.Name, s.Definition.Description, when)
		}
		return nil
	},
}
