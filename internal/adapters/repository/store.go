// Package repository defines the data-access contract the batch job runs
// against, with Postgres and in-memory implementations.
package repository

import (
	"context"

	"github.com/okian/medley/internal/domain/model"
)

// Event is one canonical event row in the directory.
type Event struct {
	ID       int64
	Distance int
	Units    model.Unit
	Stroke   string
}

// Store provides everything the classification run needs from persistent
// storage: the event directory, the roster, each swimmer's season results,
// and the sector sink.
type Store interface {
	// ResolveEventID is an idempotent lookup-or-create: the same
	// (distance, units, stroke) always resolves to the same id within a run.
	ResolveEventID(ctx context.Context, distance int, units model.Unit, stroke string) (int64, error)

	// EventName returns the display name for an event, e.g. "200 FREE".
	// Returns ErrNotFound for an unknown id.
	EventName(ctx context.Context, eventID int64) (string, error)

	// Roster returns the swimmers in scope for the run, in stable order.
	Roster(ctx context.Context) ([]model.Swimmer, error)

	// PoolResults returns one swimmer's season results restricted to the
	// three recognized pool courses, in stable order. Open-water results
	// never appear here.
	PoolResults(ctx context.Context, swimmerID int64) ([]model.SwimResult, error)

	// PersistSector writes the sector and reason for a swimmer. A write
	// that affects zero rows returns ErrNoRowsUpdated; callers treat it
	// as a logged anomaly, not a stop.
	PersistSector(ctx context.Context, swimmerID int64, s model.Sector, reasonText string) error
}
