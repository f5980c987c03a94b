// Package nqt holds the national qualifying-time tables and the builder
// that populates them from published spreadsheet rows.
package nqt

import (
	"github.com/okian/medley/internal/domain/model"
)

// key identifies one qualifying time inside a course table.
type key struct {
	eventID  int64
	ageGroup string
	gender   model.Gender
}

// Table maps (event, age group, gender) to a qualifying duration for one
// course. A missing key is meaningful: no qualifying time is defined for
// that combination, so every duration automatically qualifies.
// Tables are immutable once building finishes and safe for concurrent reads.
type Table struct {
	course model.Course
	times  map[key]model.Hundredths
}

// NewTable creates an empty table for the given course.
func NewTable(course model.Course) *Table {
	return &Table{
		course: course,
		times:  make(map[key]model.Hundredths),
	}
}

// Course returns the course this table was built for.
func (t *Table) Course() model.Course { return t.course }

// Len returns the number of qualifying-time entries.
func (t *Table) Len() int { return len(t.times) }

// Put stores one qualifying time. Construction only: tables must not be
// mutated once shared for classification.
func (t *Table) Put(eventID int64, ageGroup string, gender model.Gender, d model.Hundredths) {
	t.times[key{eventID: eventID, ageGroup: ageGroup, gender: gender}] = d
}

// Lookup returns the qualifying time for the key, and whether one exists.
func (t *Table) Lookup(eventID int64, ageGroup string, gender model.Gender) (model.Hundredths, bool) {
	d, ok := t.times[key{eventID: eventID, ageGroup: ageGroup, gender: gender}]
	return d, ok
}

// Set holds the per-course tables for one season. Short-course meters is
// not built independently: it is an alias of the long-course-meters table,
// resolved to the same shared instance so the two can never diverge.
type Set struct {
	scy *Table
	lcm *Table
}

// NewSet builds a Set from the two tables that actually get built.
func NewSet(scy, lcm *Table) *Set {
	return &Set{scy: scy, lcm: lcm}
}

// ByCourse resolves the table for a course. Yard events use the SCY table;
// both meter courses resolve to the one LCM table.
func (s *Set) ByCourse(c model.Course) *Table {
	if c == model.CourseSCY {
		return s.scy
	}
	return s.lcm
}
