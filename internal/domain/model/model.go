// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Course identifies the pool configuration a result was swum in.
type Course string

// Recognized course types.
const (
	CourseSCY Course = "SCY" // short-course yards
	CourseSCM Course = "SCM" // short-course meters
	CourseLCM Course = "LCM" // long-course meters
)

// Unit is the measurement unit of an event distance.
type Unit string

// Recognized units.
const (
	UnitYards  Unit = "Yards"
	UnitMeters Unit = "Meters"
)

// Units returns the measurement unit for events swum in this course.
func (c Course) Units() Unit {
	if c == CourseSCY {
		return UnitYards
	}
	return UnitMeters
}

// ParseCourse validates a course string.
func ParseCourse(s string) (Course, error) {
	switch Course(strings.ToUpper(strings.TrimSpace(s))) {
	case CourseSCY:
		return CourseSCY, nil
	case CourseSCM:
		return CourseSCM, nil
	case CourseLCM:
		return CourseLCM, nil
	default:
		return "", fmt.Errorf("unknown course: %q", s)
	}
}

// Gender matches the section markers used in qualifying-time sheets.
type Gender string

// Recognized genders.
const (
	GenderMen   Gender = "MEN"
	GenderWomen Gender = "WOMEN"
)

// ParseGender validates a gender marker, case-insensitively.
func ParseGender(s string) (Gender, error) {
	switch Gender(strings.ToUpper(strings.TrimSpace(s))) {
	case GenderMen:
		return GenderMen, nil
	case GenderWomen:
		return GenderWomen, nil
	default:
		return "", fmt.Errorf("unknown gender: %q", s)
	}
}

// Sector is a performance classification letter.
type Sector string

// Sectors, best to worst. D means no qualifying pool results at all.
const (
	SectorA Sector = "A"
	SectorB Sector = "B"
	SectorC Sector = "C"
	SectorD Sector = "D"
)

// AgeGroups lists the 13 canonical masters age groups in the published
// column order of the national qualifying-time tables.
var AgeGroups = []string{
	"18-24", "25-29", "30-34", "35-39", "40-44", "45-49", "50-54",
	"55-59", "60-64", "65-69", "70-74", "75-79", "80-84",
}

// Hundredths is a swim duration in hundredths of a second.
type Hundredths int

// Clock renders the duration in human clock form, e.g. "2:05.00" or "31.50".
func (h Hundredths) Clock() string {
	v := int(h)
	if v < 0 {
		v = -v
	}
	cs := v % 100
	secs := v / 100
	mins := secs / 60
	secs %= 60
	hours := mins / 60
	mins %= 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%d:%02d:%02d.%02d", hours, mins, secs, cs)
	case mins > 0:
		return fmt.Sprintf("%d:%02d.%02d", mins, secs, cs)
	default:
		return fmt.Sprintf("%d.%02d", secs, cs)
	}
}

// String renders the clock form alongside the raw hundredths value,
// the shape used in persisted reason sentences.
func (h Hundredths) String() string {
	return fmt.Sprintf("%s (%d)", h.Clock(), int(h))
}

// ParseDuration converts a sheet duration cell to Hundredths.
// Accepted forms: "ss.hh", "mm:ss.hh" and "h:mm:ss.hh"; a missing or
// short fraction is padded ("31.5" means 31.50).
func ParseDuration(s string) (Hundredths, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("empty duration")
	}

	parts := strings.Split(trimmed, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("malformed duration: %q", s)
	}

	// All parts before the last are whole minute/hour components.
	total := 0
	for _, p := range parts[:len(parts)-1] {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return 0, fmt.Errorf("malformed duration: %q", s)
		}
		total = total*60 + n
	}

	secPart := parts[len(parts)-1]
	secStr, fracStr, hasFrac := strings.Cut(secPart, ".")
	secs, err := strconv.Atoi(strings.TrimSpace(secStr))
	if err != nil || secs < 0 {
		return 0, fmt.Errorf("malformed duration: %q", s)
	}
	if len(parts) > 1 && secs > 59 {
		return 0, fmt.Errorf("malformed duration: %q", s)
	}

	cs := 0
	if hasFrac {
		fracStr = strings.TrimSpace(fracStr)
		if len(fracStr) == 0 || len(fracStr) > 2 {
			return 0, fmt.Errorf("malformed duration: %q", s)
		}
		cs, err = strconv.Atoi(fracStr)
		if err != nil {
			return 0, fmt.Errorf("malformed duration: %q", s)
		}
		if len(fracStr) == 1 {
			cs *= 10 // tenths given
		}
	}

	return Hundredths((total*60+secs)*100 + cs), nil
}

// Swimmer is one roster entry for the season being processed.
type Swimmer struct {
	ID        int64
	FirstName string
	LastName  string
	Gender    Gender
	AgeGroup1 string
	AgeGroup2 string
}

// FullName joins the swimmer's names for reason sentences.
func (s Swimmer) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// SwimResult is one qualifying competitive swim. Read-only once retrieved.
type SwimResult struct {
	Course   Course
	EventID  int64
	AgeGroup string
	Duration Hundredths
}
