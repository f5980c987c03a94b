// Package reason renders a classification decision as the human-readable
// sentence persisted next to the sector.
package reason

import (
	"context"
	"fmt"

	"github.com/okian/medley/internal/domain/model"
	"github.com/okian/medley/internal/domain/sector"
)

// Default B-sector threshold percent, matching the classifier default.
const defaultBPercent = 120

// EventNamer resolves a canonical event id back to its display name,
// e.g. "200 FREE".
type EventNamer interface {
	EventName(ctx context.Context, eventID int64) (string, error)
}

// Formatter renders Decision evidence into one sentence.
type Formatter struct {
	names    EventNamer
	bPercent int
}

// Option applies a configuration option to the Formatter.
type Option func(*Formatter)

// WithBPercent sets the B-sector percentage quoted in B and C sentences.
func WithBPercent(percent int) Option {
	return func(f *Formatter) {
		if percent > 0 {
			f.bPercent = percent
		}
	}
}

// New creates a Formatter backed by the given event directory.
func New(names EventNamer, opts ...Option) *Formatter {
	f := &Formatter{
		names:    names,
		bPercent: defaultBPercent,
	}

	// Apply all options
	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Format produces the persisted reason sentence for a decision.
// Sector D has no reason; the empty string is the valid output for it.
func (f *Formatter) Format(ctx context.Context, swimmerName string, d sector.Decision) (string, error) {
	if d.Sector == model.SectorD {
		return "", nil
	}

	event, err := f.names.EventName(ctx, d.EventID)
	if err != nil {
		return "", fmt.Errorf("%w: event %d: %v", ErrEventName, d.EventID, err)
	}

	swam := fmt.Sprintf("%s swam the %s %s %s in %s",
		swimmerName, d.AgeGroup, d.Course, event, d.Duration)

	switch d.Sector {
	case model.SectorA:
		if d.NQT == 0 {
			return fmt.Sprintf("%s; no NQT is defined for this event, so the swim qualifies automatically.", swam), nil
		}
		return fmt.Sprintf("%s, beating the NQT of %s by %s.",
			swam, d.NQT, d.Diff), nil

	case model.SectorB:
		return fmt.Sprintf("%s, slower than the NQT of %s but faster than the alternative %s (%d%% of the NQT) by %s.",
			swam, d.NQT, d.Additional, f.bPercent, d.Diff), nil

	case model.SectorC:
		return fmt.Sprintf("%s, slower than the NQT of %s and also slower than the alternative %s (%d%% of the NQT), by %s. This is the closest they got to the alternative NQT.",
			swam, d.NQT, d.Additional, f.bPercent, d.Diff), nil

	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSector, d.Sector)
	}
}
