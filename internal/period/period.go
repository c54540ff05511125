// Package period turns a reference date and a granularity into the
// inclusive reporting window used by the statements.
//
// All calculations happen in the reference date's location, so callers
// decide the business time zone by the time.Time they pass in.
package period

import (
	"fmt"
	"strings"
	"time"
)

// Granularity is the length of a reporting period.
type Granularity string

const (
	Daily   Granularity = "Daily"
	Weekly  Granularity = "Weekly"
	Monthly Granularity = "Monthly"
	Yearly  Granularity = "Yearly"
)

// Granularities in menu order.
var Granularities = []Granularity{Daily, Weekly, Monthly, Yearly}

// ParseGranularity accepts any casing of the four names.
func ParseGranularity(s string) (Granularity, error) {
	for _, g := range Granularities {
		if strings.EqualFold(s, string(g)) {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// lastInstant is the millisecond resolution end of a day, 23:59:59.999.
const lastInstant = 999 * int(time.Millisecond)

// StartOf returns midnight of the first day of the period containing d.
// Weeks start on Sunday.
func StartOf(d time.Time, g Granularity) time.Time {
	y, m, day := d.Date()
	loc := d.Location()

	switch g {
	case Weekly:
		return time.Date(y, m, day-int(d.Weekday()), 0, 0, 0, 0, loc)
	case Monthly:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc)
	case Yearly:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(y, m, day, 0, 0, 0, 0, loc)
	}
}

// EndOf returns 23:59:59.999 of the last day of the period containing d.
func EndOf(d time.Time, g Granularity) time.Time {
	y, m, day := d.Date()
	loc := d.Location()

	switch g {
	case Weekly:
		return time.Date(y, m, day-int(d.Weekday())+6, 23, 59, 59, lastInstant, loc)
	case Monthly:
		// day 0 of next month normalises to the last day of this one
		return time.Date(y, m+1, 0, 23, 59, 59, lastInstant, loc)
	case Yearly:
		return time.Date(y, time.December, 31, 23, 59, 59, lastInstant, loc)
	default:
		return time.Date(y, m, day, 23, 59, 59, lastInstant, loc)
	}
}

// Window is an inclusive [Start, End] interval.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// WindowOf returns the period window containing d.
func WindowOf(d time.Time, g Granularity) Window {
	return Window{Start: StartOf(d, g), End: EndOf(d, g)}
}

// Contains reports whether t falls inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Step moves d one period forward (dir > 0) or back (dir < 0), keeping the
// time of day. Months and years are calendar units, so 15 Dec steps to
// 15 Jan of the next year. Day overflow normalises the way time.AddDate
// does (31 Jan + 1 month = 3 Mar, or 2 Mar in leap years).
func Step(d time.Time, g Granularity, dir int) time.Time {
	switch {
	case dir > 0:
		dir = 1
	case dir < 0:
		dir = -1
	default:
		return d
	}

	switch g {
	case Weekly:
		return d.AddDate(0, 0, 7*dir)
	case Monthly:
		return d.AddDate(0, dir, 0)
	case Yearly:
		return d.AddDate(dir, 0, 0)
	default:
		return d.AddDate(0, 0, dir)
	}
}

// Label renders the period heading printed on statements.
func Label(d time.Time, g Granularity) string {
	switch g {
	case Weekly:
		start := StartOf(d, Weekly)
		end := EndOf(d, Weekly)
		return start.Format("2 Jan") + " - " + end.Format("2 Jan 2006")
	case Monthly:
		return d.Format("January 2006")
	case Yearly:
		return d.Format("2006")
	default:
		return d.Format("2 January 2006")
	}
}
