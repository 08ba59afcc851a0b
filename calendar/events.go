package calendar

import (
	"sort"
	"strings"
	"time"

	"github.com/suhaib93102/CLM-Frontend/model"
)

// LocalLayout is the value format of <input type="datetime-local">.
const LocalLayout = "2006-01-02T15:04"

// RenewalWindow is how far ahead the upcoming-renewals badge looks.
const RenewalWindow = 30 * 24 * time.Hour

var eventLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	LocalLayout,
	"2006-01-02 15:04:05",
	DateLayout,
}

// ParseEventTime parses a backend timestamp. Values without a zone are read
// in loc. The second return is false for malformed input.
func ParseEventTime(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(loc), true
	}
	for _, layout := range eventLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Span returns the parsed [start, end) of ev. An end before the start is
// clamped to the start.
func Span(ev *model.CalendarEvent, loc *time.Location) (start, end time.Time, ok bool) {
	start, ok = ParseEventTime(ev.StartDatetime, loc)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	end, ok = ParseEventTime(ev.EndDatetime, loc)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	if end.Before(start) {
		end = start
	}
	return start, end, true
}

// OverlapsDay reports whether ev intersects the calendar day containing day.
// Intervals are half-open: an event ending exactly at midnight does not
// spill into the next day. A zero-length event belongs to its start day.
func OverlapsDay(ev *model.CalendarEvent, day time.Time, loc *time.Location) bool {
	start, end, ok := Span(ev, loc)
	if !ok {
		return false
	}
	if loc == nil {
		loc = time.Local
	}
	day = day.In(loc)
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	nextDay := dayStart.AddDate(0, 0, 1)

	if start.Equal(end) {
		return !start.Before(dayStart) && start.Before(nextDay)
	}
	return start.Before(nextDay) && end.After(dayStart)
}

// EventsOn returns the events overlapping day, sorted by start.
func EventsOn(events []model.CalendarEvent, day time.Time, loc *time.Location) []model.CalendarEvent {
	var out []model.CalendarEvent
	for i := range events {
		if OverlapsDay(&events[i], day, loc) {
			out = append(out, events[i])
		}
	}
	SortByStart(out, loc)
	return out
}

// InMonth returns the events whose start falls inside the grid's month.
func InMonth(events []model.CalendarEvent, g Grid, loc *time.Location) []model.CalendarEvent {
	var out []model.CalendarEvent
	for _, ev := range events {
		start, ok := ParseEventTime(ev.StartDatetime, loc)
		if !ok {
			continue
		}
		if g.InMonth(StartOfDay(start)) {
			out = append(out, ev)
		}
	}
	return out
}

// Search keeps events whose title, summary, description or contract title
// contains q, case-insensitively. An empty q keeps everything.
func Search(events []model.CalendarEvent, q string) []model.CalendarEvent {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return events
	}
	var out []model.CalendarEvent
	for _, ev := range events {
		for _, field := range []string{ev.Title, ev.Summary, ev.Description, ev.AssociatedContractTitle} {
			if strings.Contains(strings.ToLower(field), q) {
				out = append(out, ev)
				break
			}
		}
	}
	return out
}

// SortByStart orders events by start time. Malformed starts sort last.
func SortByStart(events []model.CalendarEvent, loc *time.Location) {
	sort.SliceStable(events, func(i, j int) bool {
		a, aok := ParseEventTime(events[i].StartDatetime, loc)
		b, bok := ParseEventTime(events[j].StartDatetime, loc)
		if aok != bok {
			return aok
		}
		return a.Before(b)
	})
}

// UpcomingRenewals returns renewal events starting within window of now.
func UpcomingRenewals(events []model.CalendarEvent, now time.Time, window time.Duration, loc *time.Location) []model.CalendarEvent {
	limit := now.Add(window)
	var out []model.CalendarEvent
	for _, ev := range events {
		if ev.CategoryOrDefault() != model.CategoryRenewal {
			continue
		}
		start, ok := ParseEventTime(ev.StartDatetime, loc)
		if !ok {
			continue
		}
		if !start.Before(now) && !start.After(limit) {
			out = append(out, ev)
		}
	}
	SortByStart(out, loc)
	return out
}

// DefaultSlot is the 09:00-10:00 slot offered when creating an event on day.
func DefaultSlot(day time.Time) (start, end time.Time) {
	start = time.Date(day.Year(), day.Month(), day.Day(), 9, 0, 0, 0, day.Location())
	return start, start.Add(time.Hour)
}

// ParseLocal reads a datetime-local form value in loc.
func ParseLocal(s string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(LocalLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatLocal renders t as a datetime-local form value.
func FormatLocal(t time.Time) string {
	return t.Format(LocalLayout)
}

// CategoryLabel is the human label for an event category.
func CategoryLabel(category string) string {
	switch category {
	case model.CategoryRenewal:
		return "Renewal"
	case model.CategoryExpiry:
		return "Expiry"
	default:
		return "Meeting"
	}
}

// CategoryClass is the CSS class for an event category.
func CategoryClass(category string) string {
	switch category {
	case model.CategoryRenewal:
		return "event-renewal"
	case model.CategoryExpiry:
		return "event-expiry"
	default:
		return "event-meeting"
	}
}
