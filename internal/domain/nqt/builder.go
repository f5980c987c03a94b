package nqt

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/okian/medley/internal/domain/model"
	"github.com/okian/medley/pkg/logger"
	"github.com/okian/medley/pkg/metrics"
)

// The sentinel cell value marking an undefined qualifying time.
const noTimeSentinel = "NO TIME"

// EventResolver resolves an event description to its canonical id.
// The same (distance, units, stroke) must always resolve to the same id
// within a run.
type EventResolver interface {
	ResolveEventID(ctx context.Context, distance int, units model.Unit, stroke string) (int64, error)
}

// Builder turns published sheet rows into a qualifying-time Table.
type Builder struct {
	resolver  EventResolver
	ageGroups []string
	log       logger.Logger
}

// NewBuilder creates a Builder with configuration options.
func NewBuilder(resolver EventResolver, opts ...Option) *Builder {
	b := &Builder{
		resolver:  resolver,
		ageGroups: model.AgeGroups,
	}

	// Apply all options
	for _, opt := range opts {
		opt(b)
	}

	if b.log == nil {
		b.log = logger.Get()
	}

	return b
}

// Build scans rows top-to-bottom and produces the Table for one course.
//
// A row whose first cell is a gender marker switches the gender context for
// everything below it. A row whose first cell starts with a digit is an
// event row ("200 FREE"): the event is resolved through the EventResolver
// using the course's units, then the fixed age-group columns are read.
// Unresolvable events and malformed cells are logged and skipped; they are
// data errors in the source sheet, never fatal.
func (b *Builder) Build(ctx context.Context, course model.Course, rows [][]string) (*Table, error) {
	table := NewTable(course)

	var gender model.Gender
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("table build cancelled: %w", err)
		}
		if len(row) == 0 {
			continue
		}
		head := strings.TrimSpace(row[0])
		if head == "" {
			continue
		}

		if g, err := model.ParseGender(head); err == nil {
			gender = g
			continue
		}

		if !startsWithDigit(head) {
			// Title or spacer row.
			continue
		}

		if gender == "" {
			b.log.Warn(ctx, "event row before any gender marker, skipping",
				logger.Int("row", i+1),
				logger.String("cell", head),
			)
			metrics.RecordTableRowSkipped()
			continue
		}

		distance, stroke, err := parseEventName(head)
		if err != nil {
			b.log.Warn(ctx, "malformed event row, skipping",
				logger.Int("row", i+1),
				logger.String("cell", head),
				logger.Error(err),
			)
			metrics.RecordTableRowSkipped()
			continue
		}

		eventID, err := b.resolver.ResolveEventID(ctx, distance, course.Units(), stroke)
		if err != nil {
			b.log.Warn(ctx, "could not resolve event, skipping row",
				logger.Int("row", i+1),
				logger.String("event", head),
				logger.Error(err),
			)
			metrics.RecordTableRowSkipped()
			continue
		}

		b.readAgeGroupCells(ctx, table, row, i, eventID, gender)
	}

	b.log.Info(ctx, "qualifying-time table built",
		logger.String("course", string(course)),
		logger.Int("entries", table.Len()),
	)
	metrics.SetTableEntries(string(course), table.Len())

	return table, nil
}

// readAgeGroupCells reads the fixed sequence of age-group columns that
// follow the event cell.
func (b *Builder) readAgeGroupCells(ctx context.Context, table *Table, row []string, rowIdx int, eventID int64, gender model.Gender) {
	for col, ageGroup := range b.ageGroups {
		cellIdx := col + 1
		if cellIdx >= len(row) {
			break
		}
		cell := strings.TrimSpace(row[cellIdx])
		if cell == "" || strings.EqualFold(cell, noTimeSentinel) {
			// Absence is meaningful: the key stays out of the table.
			continue
		}

		d, err := model.ParseDuration(cell)
		if err != nil {
			b.log.Warn(ctx, "malformed qualifying time cell, skipping",
				logger.Int("row", rowIdx+1),
				logger.String("ageGroup", ageGroup),
				logger.String("cell", cell),
				logger.Error(err),
			)
			continue
		}

		table.Put(eventID, ageGroup, gender, d)
	}
}

// parseEventName splits "200 FREE" into distance and stroke.
func parseEventName(s string) (int, string, error) {
	distStr, stroke, ok := strings.Cut(strings.TrimSpace(s), " ")
	if !ok {
		return 0, "", fmt.Errorf("%w: %q", ErrMalformedEvent, s)
	}
	distance, err := strconv.Atoi(distStr)
	if err != nil || distance <= 0 {
		return 0, "", fmt.Errorf("%w: %q", ErrMalformedEvent, s)
	}
	stroke = strings.TrimSpace(stroke)
	if stroke == "" {
		return 0, "", fmt.Errorf("%w: %q", ErrMalformedEvent, s)
	}
	return distance, stroke, nil
}

func startsWithDigit(s string) bool {
	for _, r := range s {
		return unicode.IsDigit(r)
	}
	return false
}
