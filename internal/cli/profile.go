package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"expenseflow/internal/core"
)

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileSetCmd)

	profileSetCmd.Flags().String("name", "", "Display name")
	profileSetCmd.Flags().String("currency", "", "3-letter currency code")
	profileSetCmd.Flags().Bool("reminder", false, "Enable the daily logging reminder")
	profileSetCmd.Flags().String("reminder-time", "", "Reminder time as HH:MM")
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the user profile and streak state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, repo, err := setupWithProfile(ctx)
		if err != nil {
			return err
		}
		defer closeStore(repo)

		p, err := svc.Profile(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "Name:           %s\n", p.DisplayName)
		fmt.Fprintf(os.Stdout, "Currency:       %s\n", p.Currency)
		fmt.Fprintf(os.Stdout, "Current streak: %d\n", p.CurrentStreak)
		fmt.Fprintf(os.Stdout, "Longest streak: %d\n", p.LongestStreak)
		if p.LastLoggedDate != nil {
			fmt.Fprintf(os.Stdout, "Last logged:    %s\n", p.LastLoggedDate)
		}
		if p.DailyReminderEnabled {
			fmt.Fprintf(os.Stdout, "Reminder:       %s\n", p.DailyReminderTime)
		}
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile preferences",
	Args:  cobra.NoArgs,
	RunE:  runProfileSet,
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, repo, err := setupWithProfile(ctx)
	if err != nil {
		return err
	}
	defer closeStore(repo)

	p, err := svc.Profile(ctx)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("name") {
		p.DisplayName, _ = cmd.Flags().GetString("name")
	}
	if cmd.Flags().Changed("currency") {
		p.Currency, _ = cmd.Flags().GetString("currency")
	}
	if cmd.Flags().Changed("reminder") {
		p.DailyReminderEnabled, _ = cmd.Flags().GetBool("reminder")
	}
	if cmd.Flags().Changed("reminder-time") {
		p.DailyReminderTime, _ = cmd.Flags().GetString("reminder-time")
	}

	if err := svc.UpdatePreferences(ctx, core.Profile{
		DisplayName:          p.DisplayName,
		Currency:             p.Currency,
		DailyReminderEnabled: p.DailyReminderEnabled,
		DailyReminderTime:    p.DailyReminderTime,
	}); err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, "Profile updated.")
	return nil
}
