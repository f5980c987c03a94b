package nqt

import (
	"github.com/okian/medley/pkg/logger"
)

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithAgeGroups overrides the age-group column order. Intended for tests;
// production sheets follow the published 13-column layout.
func WithAgeGroups(groups []string) Option {
	return func(b *Builder) {
		if len(groups) > 0 {
			b.ageGroups = groups
		}
	}
}

// WithLogger sets a custom logger for the builder.
func WithLogger(log logger.Logger) Option {
	return func(b *Builder) {
		if log != nil {
			b.log = log
		}
	}
}
