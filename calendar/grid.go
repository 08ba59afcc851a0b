// Package calendar holds the date arithmetic behind the calendar page:
// Sunday-aligned month grids, week rows and day-overlap filtering.
package calendar

import (
	"fmt"
	"time"
)

// DateLayout is the YYYY-MM-DD form used for range queries and day links.
const DateLayout = "2006-01-02"

// MonthLayout is the YYYY-MM form used in ?month= links.
const MonthLayout = "2006-01"

// Grid is a month view padded with days from the adjacent months so that
// every row holds seven days, Sunday first.
type Grid struct {
	MonthStart time.Time
	MonthEnd   time.Time
	GridStart  time.Time
	GridEnd    time.Time
	Days       []time.Time
}

// MonthGrid builds the grid for the month containing ref, in loc.
func MonthGrid(ref time.Time, loc *time.Location) Grid {
	if loc == nil {
		loc = time.Local
	}
	ref = ref.In(loc)

	monthStart := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, loc)
	monthEnd := monthStart.AddDate(0, 1, -1)
	gridStart := monthStart.AddDate(0, 0, -int(monthStart.Weekday()))
	gridEnd := monthEnd.AddDate(0, 0, int(time.Saturday-monthEnd.Weekday()))

	var days []time.Time
	for d := gridStart; !d.After(gridEnd); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}

	return Grid{
		MonthStart: monthStart,
		MonthEnd:   monthEnd,
		GridStart:  gridStart,
		GridEnd:    gridEnd,
		Days:       days,
	}
}

// Weeks splits the grid into rows of seven days.
func (g Grid) Weeks() [][]time.Time {
	weeks := make([][]time.Time, 0, len(g.Days)/7)
	for i := 0; i+7 <= len(g.Days); i += 7 {
		weeks = append(weeks, g.Days[i:i+7])
	}
	return weeks
}

// InMonth reports whether day falls inside the grid's month.
func (g Grid) InMonth(day time.Time) bool {
	return !day.Before(g.MonthStart) && !day.After(g.MonthEnd)
}

// LoadRange returns the [start, end) dates to request events for. The end
// is the day after the last grid cell.
func (g Grid) LoadRange() (start, end string) {
	return g.GridStart.Format(DateLayout), g.GridEnd.AddDate(0, 0, 1).Format(DateLayout)
}

// Title is the month heading, e.g. "October 2026".
func (g Grid) Title() string {
	return g.MonthStart.Format("January 2006")
}

// WeekOf returns the seven days, Sunday through Saturday, of the week containing day.
func WeekOf(day time.Time) []time.Time {
	start := StartOfDay(day).AddDate(0, 0, -int(day.Weekday()))
	week := make([]time.Time, 7)
	for i := range week {
		week[i] = start.AddDate(0, 0, i)
	}
	return week
}

// StartOfDay truncates t to local midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// PrevMonth returns the first day of the month before t's month.
func PrevMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()-1, 1, 0, 0, 0, 0, t.Location())
}

// NextMonth returns the first day of the month after t's month.
func NextMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location())
}

// ParseMonth parses "2026-10" into the first day of that month.
func ParseMonth(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(MonthLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return t, nil
}

// ParseDay parses a YYYY-MM-DD value into local midnight.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q: %w", s, err)
	}
	return t, nil
}
