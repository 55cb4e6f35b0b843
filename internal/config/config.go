// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults live in New; Load layers an optional YAML file and env vars on top.
// - Challenge metadata mirrors the optional coach-maintained config file:
//   missing fields degrade to defaults and are never fatal.
package config

import "context"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8090".
	Addr string `koanf:"addr"`

	// IntakePath locates the intake (baseline) CSV export. Mandatory data:
	// a load or validation failure here halts the run.
	IntakePath string `koanf:"intake_path"`

	// WeeklyPath locates the weekly check-in CSV export. Optional data: a
	// missing file means "no check-ins yet".
	WeeklyPath string `koanf:"weekly_path"`

	// ChallengeName labels the dashboard.
	ChallengeName string `koanf:"challenge_name"`

	// StartDate and EndDate optionally bound the challenge (RFC3339 or
	// YYYY-MM-DD). Left empty when unknown.
	StartDate string `koanf:"start_date"`
	EndDate   string `koanf:"end_date"`

	// WeekCount optionally declares the planned number of weeks. Zero
	// means undeclared.
	WeekCount int `koanf:"week_count"`

	// CoachEmail optionally identifies the coach running the challenge.
	CoachEmail string `koanf:"coach_email"`

	// WatchFiles re-runs the pipeline when either CSV changes on disk.
	WatchFiles bool `koanf:"watch_files"`

	// HistorySize bounds the pipeline run history kept for /stats.
	HistorySize int `koanf:"history_size"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:      "info",
		Addr:          ":8090",
		IntakePath:    "data/intake_responses.csv",
		WeeklyPath:    "data/weekly_responses.csv",
		ChallengeName: "Nutrition Challenge",
		WatchFiles:    true,
		HistorySize:   32,
	}
}
