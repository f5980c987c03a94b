package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if MEDLEY_CONFIG is set
//  3. env (prefix MEDLEY_)
func Load(_ context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("MEDLEY_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: MEDLEY_YEAR, MEDLEY_B_PERCENT, ...
	// Map env keys like MEDLEY_B_PERCENT -> b_percent (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("MEDLEY_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "medley_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations the run could not work with.
func (c *Config) validate() error {
	if c.Year <= 0 {
		return fmt.Errorf("%w: year must be positive", ErrInvalidConfig)
	}
	if c.BPercent < 100 {
		// Below 100% the alternative threshold would be faster than the
		// NQT itself and sector B could never exist.
		return fmt.Errorf("%w: b_percent must be at least 100", ErrInvalidConfig)
	}
	if c.SCYSheet == "" || c.LCMSheet == "" {
		return fmt.Errorf("%w: scy_sheet and lcm_sheet must be set", ErrInvalidConfig)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("%w: database_url must be set", ErrInvalidConfig)
	}
	return nil
}
