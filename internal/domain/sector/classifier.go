// Package sector implements the classification engine that reduces a
// swimmer's season results to a single performance sector.
package sector

import (
	"context"

	"github.com/okian/medley/internal/domain/model"
	"github.com/okian/medley/internal/domain/nqt"
	"github.com/okian/medley/pkg/metrics"
)

// Default B-sector threshold: the alternative time is 120% of the NQT.
const defaultBPercent = 120

// percentBase converts a percent multiplier into integer arithmetic.
const percentBase = 100

// Decision is the single, final classification for one swimmer, together
// with the swim that justifies it.
type Decision struct {
	Sector model.Sector

	// The decisive result. Zero-valued for sector D, which carries no
	// supporting evidence.
	Course   model.Course
	EventID  int64
	AgeGroup string
	Duration model.Hundredths

	// NQT is the qualifying time the decisive swim was held against.
	// Zero means none was defined and the swim qualified automatically.
	NQT model.Hundredths

	// Additional is the relaxed B-sector threshold (NQT scaled by the
	// configured percent). Meaningful for B and C only.
	Additional model.Hundredths

	// Diff is the non-negative gap used in reason sentences and as the
	// tie-break key among C candidates.
	Diff model.Hundredths
}

// Classifier assigns sectors by comparing results against a qualifying-time
// Set. It holds no per-swimmer state; Classify is a pure pass over the
// supplied results.
type Classifier struct {
	tables   *nqt.Set
	bPercent int
}

// Option applies a configuration option to the Classifier.
type Option func(*Classifier)

// WithBPercent sets the B-sector percentage, e.g. 120 for 120% of the NQT.
func WithBPercent(percent int) Option {
	return func(c *Classifier) {
		if percent > 0 {
			c.bPercent = percent
		}
	}
}

// New creates a Classifier over the season's qualifying-time tables.
func New(tables *nqt.Set, opts ...Option) *Classifier {
	c := &Classifier{
		tables:   tables,
		bPercent: defaultBPercent,
	}

	// Apply all options
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BPercent returns the configured B-sector percentage.
func (c *Classifier) BPercent() int { return c.bPercent }

// Classify reduces a swimmer's results to one Decision.
//
// Rules, in precedence order:
//   - no results at all: sector D, no evidence.
//   - any single swim at or under its NQT (or with no NQT defined): sector A,
//     decided by the first such swim; scanning stops immediately.
//   - otherwise, a swim at or under the relaxed threshold (NQT scaled by the
//     B percent) gives sector B. A later B overwrites an earlier one, and any
//     B permanently disqualifies the swimmer from C consideration.
//   - otherwise sector C, keeping the swim with the minimum distance above
//     the relaxed threshold: the one that came closest.
func (c *Classifier) Classify(_ context.Context, gender model.Gender, results []model.SwimResult) Decision {
	if len(results) == 0 {
		return Decision{Sector: model.SectorD}
	}

	var best Decision
	haveBest := false
	sawB := false

	for _, r := range results {
		table := c.tables.ByCourse(r.Course)
		qt, ok := table.Lookup(r.EventID, r.AgeGroup, gender)
		if !ok {
			metrics.RecordLookupMiss()
		}

		if !ok || qt == 0 || r.Duration <= qt {
			// A is final: one qualifying swim settles the swimmer,
			// whatever the rest of the season looks like.
			diff := qt - r.Duration
			if diff < 0 {
				// Only possible when no qualifying time was defined.
				diff = 0
			}
			return Decision{
				Sector:   model.SectorA,
				Course:   r.Course,
				EventID:  r.EventID,
				AgeGroup: r.AgeGroup,
				Duration: r.Duration,
				NQT:      qt,
				Diff:     diff,
			}
		}

		additional := qt * model.Hundredths(c.bPercent) / percentBase
		if r.Duration <= additional {
			// Latest B wins; no minimization among B candidates.
			best = Decision{
				Sector:     model.SectorB,
				Course:     r.Course,
				EventID:    r.EventID,
				AgeGroup:   r.AgeGroup,
				Duration:   r.Duration,
				NQT:        qt,
				Additional: additional,
				Diff:       additional - r.Duration,
			}
			haveBest = true
			sawB = true
			continue
		}

		if sawB {
			// C is reserved for swimmers who never reached the
			// relaxed threshold.
			continue
		}

		diff := r.Duration - additional
		if !haveBest || diff < best.Diff {
			best = Decision{
				Sector:     model.SectorC,
				Course:     r.Course,
				EventID:    r.EventID,
				AgeGroup:   r.AgeGroup,
				Duration:   r.Duration,
				NQT:        qt,
				Additional: additional,
				Diff:       diff,
			}
			haveBest = true
		}
	}

	return best
}
