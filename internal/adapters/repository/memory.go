package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/okian/medley/internal/domain/model"
)

// eventKey identifies a canonical event.
type eventKey struct {
	distance int
	units    model.Unit
	stroke   string
}

// Memory is an in-memory Store for tests and dry runs. Safe for concurrent
// use; insertion order of results is preserved per swimmer.
type Memory struct {
	mu sync.RWMutex

	nextEventID int64
	eventIDs    map[eventKey]int64
	events      map[int64]Event

	swimmers []model.Swimmer
	results  map[int64][]model.SwimResult

	sectors map[int64]model.Sector
	reasons map[int64]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		eventIDs: make(map[eventKey]int64),
		events:   make(map[int64]Event),
		results:  make(map[int64][]model.SwimResult),
		sectors:  make(map[int64]model.Sector),
		reasons:  make(map[int64]string),
	}
}

// ResolveEventID implements Store.
func (m *Memory) ResolveEventID(_ context.Context, distance int, units model.Unit, stroke string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := eventKey{distance: distance, units: units, stroke: stroke}
	if id, ok := m.eventIDs[k]; ok {
		return id, nil
	}

	m.nextEventID++
	id := m.nextEventID
	m.eventIDs[k] = id
	m.events[id] = Event{ID: id, Distance: distance, Units: units, Stroke: stroke}
	return id, nil
}

// EventName implements Store.
func (m *Memory) EventName(_ context.Context, eventID int64) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.events[eventID]
	if !ok {
		return "", fmt.Errorf("%w: event %d", ErrNotFound, eventID)
	}
	return fmt.Sprintf("%d %s", e.Distance, e.Stroke), nil
}

// AddSwimmer registers a roster entry and returns its id.
func (m *Memory) AddSwimmer(sw model.Swimmer) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sw.ID == 0 {
		sw.ID = int64(len(m.swimmers) + 1)
	}
	m.swimmers = append(m.swimmers, sw)
	return sw.ID
}

// AddResult appends one pool result to a swimmer's season.
func (m *Memory) AddResult(swimmerID int64, r model.SwimResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.results[swimmerID] = append(m.results[swimmerID], r)
}

// Roster implements Store. Swimmers come back ordered by id.
func (m *Memory) Roster(_ context.Context) ([]model.Swimmer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.Swimmer, len(m.swimmers))
	copy(out, m.swimmers)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// PoolResults implements Store. Results keep their insertion order.
func (m *Memory) PoolResults(_ context.Context, swimmerID int64) ([]model.SwimResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rs := m.results[swimmerID]
	out := make([]model.SwimResult, len(rs))
	copy(out, rs)
	return out, nil
}

// PersistSector implements Store.
func (m *Memory) PersistSector(_ context.Context, swimmerID int64, s model.Sector, reasonText string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	known := false
	for _, sw := range m.swimmers {
		if sw.ID == swimmerID {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("%w: swimmer %d", ErrNoRowsUpdated, swimmerID)
	}

	m.sectors[swimmerID] = s
	m.reasons[swimmerID] = reasonText
	return nil
}

// SectorFor returns the persisted sector and reason for a swimmer.
// Test accessor.
func (m *Memory) SectorFor(swimmerID int64) (model.Sector, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sectors[swimmerID]
	return s, m.reasons[swimmerID], ok
}
