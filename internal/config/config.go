// Package config defines batch-job configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load() layers file and env.
// - External errors must be wrapped via this package's error sentinels.
package config

import (
	"time"
)

// Default B-sector percentage: the alternative time is 120% of the NQT.
const defaultBPercent = 120

// Config contains process configuration for one classification run.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Year is the season being processed.
	Year int `koanf:"year"`

	// BPercent is the B-sector percentage multiplier, e.g. 120 for 120%
	// of the NQT.
	BPercent int `koanf:"b_percent"`

	// Club scopes the roster to one organization.
	Club string `koanf:"club"`

	// DatabaseURL is the Postgres connection string.
	DatabaseURL string `koanf:"database_url"`

	// SCYSheet and LCMSheet are the qualifying-time workbook paths. No SCM
	// workbook exists: short-course meters shares the LCM table.
	SCYSheet string `koanf:"scy_sheet"`
	LCMSheet string `koanf:"lcm_sheet"`

	// SheetName is the sheet holding the rows inside each workbook.
	SheetName string `koanf:"sheet_name"`

	// ProgressInterval is how many swimmers pass between progress logs.
	ProgressInterval int `koanf:"progress_interval"`

	// MetricsAddr serves /metrics when non-empty, e.g. ":9090".
	MetricsAddr string `koanf:"metrics_addr"`

	// Migrate applies the schema before running when true.
	Migrate bool `koanf:"migrate"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Year:             time.Now().Year(),
		BPercent:         defaultBPercent,
		SheetName:        "Sheet1",
		ProgressInterval: 100,
	}
}
