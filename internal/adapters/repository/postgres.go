package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/okian/medley/internal/domain/model"
)

// Postgres implements Store over a pgx connection pool. Roster and result
// queries are scoped to one club and one season year, both fixed at
// construction time.
type Postgres struct {
	pool *pgxpool.Pool
	club string
	year int
}

// NewPostgres connects a pool and verifies the connection.
func NewPostgres(ctx context.Context, dsn string, opts ...PostgresOption) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	p := &Postgres{pool: pool}

	// Apply all options
	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Close releases the underlying pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

// Migrate applies the idempotent schema the batch job expects.
func (p *Postgres) Migrate(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS events (
	id       BIGSERIAL PRIMARY KEY,
	distance INT  NOT NULL,
	units    TEXT NOT NULL,
	stroke   TEXT NOT NULL,
	UNIQUE (distance, units, stroke)
);

CREATE TABLE IF NOT EXISTS swimmers (
	id         BIGSERIAL PRIMARY KEY,
	club       TEXT NOT NULL,
	first_name TEXT NOT NULL,
	last_name  TEXT NOT NULL,
	gender     TEXT NOT NULL,
	age_group1 TEXT NOT NULL DEFAULT '',
	age_group2 TEXT NOT NULL DEFAULT '',
	sector     TEXT,
	reason     TEXT
);

CREATE TABLE IF NOT EXISTS results (
	id         BIGSERIAL PRIMARY KEY,
	swimmer_id BIGINT NOT NULL REFERENCES swimmers (id),
	year       INT    NOT NULL,
	course     TEXT   NOT NULL,
	event_id   BIGINT NOT NULL REFERENCES events (id),
	age_group  TEXT   NOT NULL,
	duration   INT    NOT NULL
);

CREATE INDEX IF NOT EXISTS results_swimmer_year_idx ON results (swimmer_id, year);
`
	if _, err := p.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// ResolveEventID implements Store. The upsert makes resolution idempotent:
// the no-op update lets RETURNING yield the existing id on conflict.
func (p *Postgres) ResolveEventID(ctx context.Context, distance int, units model.Unit, stroke string) (int64, error) {
	const q = `
INSERT INTO events (distance, units, stroke)
VALUES ($1, $2, $3)
ON CONFLICT (distance, units, stroke) DO UPDATE SET distance = EXCLUDED.distance
RETURNING id`

	var id int64
	if err := p.pool.QueryRow(ctx, q, distance, string(units), stroke).Scan(&id); err != nil {
		return 0, fmt.Errorf("resolve event %d %s %s: %w", distance, units, stroke, err)
	}
	return id, nil
}

// EventName implements Store.
func (p *Postgres) EventName(ctx context.Context, eventID int64) (string, error) {
	const q = `SELECT distance, stroke FROM events WHERE id = $1`

	var distance int
	var stroke string
	if err := p.pool.QueryRow(ctx, q, eventID).Scan(&distance, &stroke); err != nil {
		return "", fmt.Errorf("%w: event %d: %v", ErrNotFound, eventID, err)
	}
	return fmt.Sprintf("%d %s", distance, stroke), nil
}

// Roster implements Store.
func (p *Postgres) Roster(ctx context.Context) ([]model.Swimmer, error) {
	const q = `
SELECT id, first_name, last_name, gender, age_group1, age_group2
FROM swimmers
WHERE club = $1
ORDER BY id`

	rows, err := p.pool.Query(ctx, q, p.club)
	if err != nil {
		return nil, fmt.Errorf("roster: %w", err)
	}
	defer rows.Close()

	var out []model.Swimmer
	for rows.Next() {
		var sw model.Swimmer
		var gender string
		if err := rows.Scan(&sw.ID, &sw.FirstName, &sw.LastName, &gender, &sw.AgeGroup1, &sw.AgeGroup2); err != nil {
			return nil, fmt.Errorf("roster scan: %w", err)
		}
		sw.Gender = model.Gender(gender)
		out = append(out, sw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("roster rows: %w", err)
	}
	return out, nil
}

// PoolResults implements Store. Only the three recognized pool courses are
// returned; open-water rows stay out of classification.
func (p *Postgres) PoolResults(ctx context.Context, swimmerID int64) ([]model.SwimResult, error) {
	const q = `
SELECT course, event_id, age_group, duration
FROM results
WHERE swimmer_id = $1
  AND year = $2
  AND course IN ('SCY', 'SCM', 'LCM')
ORDER BY id`

	rows, err := p.pool.Query(ctx, q, swimmerID, p.year)
	if err != nil {
		return nil, fmt.Errorf("pool results: %w", err)
	}
	defer rows.Close()

	var out []model.SwimResult
	for rows.Next() {
		var r model.SwimResult
		var course string
		var duration int
		if err := rows.Scan(&course, &r.EventID, &r.AgeGroup, &duration); err != nil {
			return nil, fmt.Errorf("pool results scan: %w", err)
		}
		r.Course = model.Course(course)
		r.Duration = model.Hundredths(duration)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pool results rows: %w", err)
	}
	return out, nil
}

// PersistSector implements Store.
func (p *Postgres) PersistSector(ctx context.Context, swimmerID int64, s model.Sector, reasonText string) error {
	const q = `UPDATE swimmers SET sector = $2, reason = $3 WHERE id = $1`

	tag, err := p.pool.Exec(ctx, q, swimmerID, string(s), reasonText)
	if err != nil {
		return fmt.Errorf("persist sector: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Concurrent deletion or referential mismatch; the caller logs
		// and moves on to the next swimmer.
		return fmt.Errorf("%w: swimmer %d", ErrNoRowsUpdated, swimmerID)
	}
	return nil
}
