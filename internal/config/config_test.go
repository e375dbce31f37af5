package config

import (
	"log/slog"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.DBPath != "./data/expenseflow.db" {
		t.Errorf("DBPath = %s, want ./data/expenseflow.db", cfg.DBPath)
	}
	if cfg.DefaultCurrency != "IDR" {
		t.Errorf("DefaultCurrency = %s, want IDR", cfg.DefaultCurrency)
	}
	if cfg.DefaultDisplayName != "User" {
		t.Errorf("DefaultDisplayName = %s, want User", cfg.DefaultDisplayName)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %s, want info", cfg.LogLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("EXPENSEFLOW_DB_PATH", "/tmp/ef-test/custom.db")
	t.Setenv("EXPENSEFLOW_CURRENCY", "EUR")
	t.Setenv("EXPENSEFLOW_DISPLAY_NAME", "Emma")
	t.Setenv("EXPENSEFLOW_LOG_LEVEL", "debug")

	cfg := Load()

	if cfg.DBPath != "/tmp/ef-test/custom.db" {
		t.Errorf("DBPath = %s", cfg.DBPath)
	}
	if cfg.DefaultCurrency != "EUR" {
		t.Errorf("DefaultCurrency = %s", cfg.DefaultCurrency)
	}
	if cfg.DefaultDisplayName != "Emma" {
		t.Errorf("DefaultDisplayName = %s", cfg.DefaultDisplayName)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s", cfg.LogLevel)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid defaults",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "empty db path",
			mutate:  func(c *Config) { c.DBPath = "" },
			wantErr: true,
		},
		{
			name:    "bad currency length",
			mutate:  func(c *Config) { c.DefaultCurrency = "EURO" },
			wantErr: true,
		},
		{
			name:    "empty display name",
			mutate:  func(c *Config) { c.DefaultDisplayName = "   " },
			wantErr: true,
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.LogLevel = "verbose" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				DBPath:             filepath.Join(t.TempDir(), "app.db"),
				DefaultDisplayName: "User",
				DefaultCurrency:    "IDR",
				LogLevel:           "info",
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("expected ok, got %v", err)
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tc := range cases {
		cfg := &Config{LogLevel: tc.in}
		got, err := cfg.SlogLevel()
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("%q = %v, want %v", tc.in, got, tc.want)
		}
	}
}
