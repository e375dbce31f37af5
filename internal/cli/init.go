// Package cli implements the expenseflow command surface. It is the local
// stand-in for the mobile UI collaborator: every subcommand goes through the
// same TrackerService contract a front end would.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"expenseflow/internal/config"
	"expenseflow/internal/log"
	"expenseflow/internal/storage"
)

// SetupLogger initializes structured logging at the configured level and
// sets it as the default logger.
func SetupLogger(level slog.Level) *log.Logger {
	logger := log.New(log.Config{
		Level:     level,
		Component: log.ComponentCLI,
		Handler: slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}),
	})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig() *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Default(log.ComponentCLI).Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// OpenStore opens the SQLite store at the configured path and runs the
// embedded migrations. Catalog seeding happens separately via Initialize.
func OpenStore(cfg *config.Config) (*storage.SQLiteRepository, error) {
	repo, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	return repo, nil
}
