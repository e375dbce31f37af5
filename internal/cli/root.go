package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"expenseflow/internal/config"
	"expenseflow/internal/log"
	"expenseflow/internal/services"
	"expenseflow/internal/storage"
)

var rootCmd = &cobra.Command{
	Use:   "expenseflow",
	Short: "Local-first expense tracking with streaks and achievements",
	Long: `expenseflow tracks expenses against a fixed category catalog in a local
SQLite database. Logging on consecutive calendar days builds a streak;
streak length and lifetime expense counts unlock achievements; monthly
budgets measure spending per category or for the whole account.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// setup loads env + config, wires logging, and opens the store. Every
// subcommand funnels through here so the session uses one store handle.
func setup(ctx context.Context) (*services.TrackerService, *storage.SQLiteRepository, *config.Config, error) {
	LoadEnvFile()
	cfg := LoadAndValidateConfig()

	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, nil, nil, err
	}
	SetupLogger(level)

	repo, err := OpenStore(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open store: %w", err)
	}
	if err := repo.Initialize(ctx); err != nil {
		repo.Close()
		return nil, nil, nil, fmt.Errorf("initialize store: %w", err)
	}

	return services.NewTrackerService(repo), repo, cfg, nil
}

// setupWithProfile additionally creates the profile on first use.
func setupWithProfile(ctx context.Context) (*services.TrackerService, *storage.SQLiteRepository, error) {
	svc, repo, cfg, err := setup(ctx)
	if err != nil {
		return nil, nil, err
	}
	if _, err := svc.EnsureProfile(ctx, cfg.DefaultDisplayName, cfg.DefaultCurrency); err != nil {
		repo.Close()
		return nil, nil, fmt.Errorf("ensure profile: %w", err)
	}
	return svc, repo, nil
}

func closeStore(repo *storage.SQLiteRepository) {
	if err := repo.Close(); err != nil {
		log.Default(log.ComponentCLI).Error("Failed to close store", log.FieldError, err)
	}
}
