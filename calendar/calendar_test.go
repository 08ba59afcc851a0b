package calendar

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/suhaib93102/CLM-Frontend/model"
)

var utc = time.UTC

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, utc)
}

func TestMonthGrid(t *testing.T) {
	tests := []struct {
		name      string
		ref       time.Time
		gridStart string
		gridEnd   string
		days      int
	}{
		// October 2026 starts on a Thursday and ends on a Saturday.
		{"october 2026", day(2026, time.October, 19), "2026-09-27", "2026-10-31", 35},
		// February 2026 starts on a Sunday and ends on a Saturday.
		{"february 2026", day(2026, time.February, 10), "2026-02-01", "2026-02-28", 28},
		// August 2026 starts on a Saturday and needs six rows.
		{"august 2026", day(2026, time.August, 1), "2026-07-26", "2026-09-05", 42},
		{"leap february", day(2024, time.February, 29), "2024-01-28", "2024-03-02", 35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := MonthGrid(tt.ref, utc)
			if got := g.GridStart.Format(DateLayout); got != tt.gridStart {
				t.Errorf("Expected grid start %s, got %s", tt.gridStart, got)
			}
			if got := g.GridEnd.Format(DateLayout); got != tt.gridEnd {
				t.Errorf("Expected grid end %s, got %s", tt.gridEnd, got)
			}
			if len(g.Days) != tt.days {
				t.Errorf("Expected %d days, got %d", tt.days, len(g.Days))
			}
			if len(g.Days)%7 != 0 {
				t.Errorf("Expected a multiple of 7 days, got %d", len(g.Days))
			}
			if g.Days[0].Weekday() != time.Sunday {
				t.Errorf("Expected grid to start on Sunday, got %s", g.Days[0].Weekday())
			}
			if g.Days[len(g.Days)-1].Weekday() != time.Saturday {
				t.Errorf("Expected grid to end on Saturday, got %s", g.Days[len(g.Days)-1].Weekday())
			}
			if g.GridStart.After(g.MonthStart) || g.GridEnd.Before(g.MonthEnd) {
				t.Error("Expected grid to cover the whole month")
			}
		})
	}
}

func TestMonthGridCoversEveryMonth(t *testing.T) {
	for year := 2024; year <= 2027; year++ {
		for m := time.January; m <= time.December; m++ {
			g := MonthGrid(day(year, m, 15), utc)
			if len(g.Days)%7 != 0 || len(g.Days) < 28 || len(g.Days) > 42 {
				t.Errorf("%d-%02d: unexpected grid length %d", year, m, len(g.Days))
			}
			if g.Days[0].Weekday() != time.Sunday {
				t.Errorf("%d-%02d: grid does not start on Sunday", year, m)
			}
			for i := 1; i < len(g.Days); i++ {
				if !SameDay(g.Days[i], g.Days[i-1].AddDate(0, 0, 1)) {
					t.Errorf("%d-%02d: days are not contiguous at %d", year, m, i)
				}
			}
		}
	}
}

func TestWeeks(t *testing.T) {
	g := MonthGrid(day(2026, time.October, 1), utc)
	weeks := g.Weeks()
	if len(weeks) != 5 {
		t.Fatalf("Expected 5 weeks, got %d", len(weeks))
	}
	for i, w := range weeks {
		if len(w) != 7 {
			t.Errorf("Week %d: expected 7 days, got %d", i, len(w))
		}
	}
	if !SameDay(weeks[4][6], day(2026, time.October, 31)) {
		t.Errorf("Expected last cell Oct 31, got %s", weeks[4][6].Format(DateLayout))
	}
}

func TestLoadRange(t *testing.T) {
	g := MonthGrid(day(2026, time.October, 19), utc)
	start, end := g.LoadRange()
	if start != "2026-09-27" {
		t.Errorf("Expected start 2026-09-27, got %s", start)
	}
	if end != "2026-11-01" {
		t.Errorf("Expected end 2026-11-01, got %s", end)
	}
}

func TestWeekOf(t *testing.T) {
	week := WeekOf(time.Date(2026, time.October, 21, 15, 30, 0, 0, utc))
	if len(week) != 7 {
		t.Fatalf("Expected 7 days, got %d", len(week))
	}
	if got := week[0].Format(DateLayout); got != "2026-10-18" {
		t.Errorf("Expected week to start 2026-10-18, got %s", got)
	}
	if got := week[6].Format(DateLayout); got != "2026-10-24" {
		t.Errorf("Expected week to end 2026-10-24, got %s", got)
	}
	if week[0].Hour() != 0 {
		t.Errorf("Expected midnight, got hour %d", week[0].Hour())
	}
}

func TestMonthNavigation(t *testing.T) {
	jan := day(2026, time.January, 31)
	if got := PrevMonth(jan).Format(MonthLayout); got != "2025-12" {
		t.Errorf("Expected 2025-12, got %s", got)
	}
	if got := NextMonth(jan).Format(MonthLayout); got != "2026-02" {
		t.Errorf("Expected 2026-02, got %s", got)
	}

	m, err := ParseMonth("2026-10", utc)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !m.Equal(day(2026, time.October, 1)) {
		t.Errorf("Expected 2026-10-01, got %v", m)
	}
	if _, err := ParseMonth("October", utc); err == nil {
		t.Error("Expected error for malformed month")
	}
	if _, err := ParseDay("2026-13-01", utc); err == nil {
		t.Error("Expected error for malformed day")
	}
}

func event(title, start, end string) model.CalendarEvent {
	return model.CalendarEvent{Title: title, StartDatetime: start, EndDatetime: end}
}

func TestOverlapsDay(t *testing.T) {
	oct19 := day(2026, time.October, 19)
	tests := []struct {
		name string
		ev   model.CalendarEvent
		want bool
	}{
		{"inside", event("a", "2026-10-19T09:00:00Z", "2026-10-19T10:00:00Z"), true},
		{"previous day", event("b", "2026-10-18T09:00:00Z", "2026-10-18T10:00:00Z"), false},
		{"crosses midnight into day", event("c", "2026-10-18T22:00:00Z", "2026-10-19T02:00:00Z"), true},
		{"ends exactly at midnight", event("d", "2026-10-18T22:00:00Z", "2026-10-19T00:00:00Z"), false},
		{"starts exactly at next midnight", event("e", "2026-10-20T00:00:00Z", "2026-10-20T01:00:00Z"), false},
		{"spans whole day", event("f", "2026-10-17T00:00:00Z", "2026-10-22T00:00:00Z"), true},
		{"zero length at midnight", event("g", "2026-10-19T00:00:00Z", "2026-10-19T00:00:00Z"), true},
		{"zero length previous midnight", event("h", "2026-10-20T00:00:00Z", "2026-10-20T00:00:00Z"), false},
		{"no zone", event("i", "2026-10-19T09:00:00", "2026-10-19T10:00:00"), true},
		{"malformed start", event("j", "tomorrow", "2026-10-19T10:00:00Z"), false},
		{"malformed end", event("k", "2026-10-19T09:00:00Z", ""), false},
		{"end before start", event("l", "2026-10-19T09:00:00Z", "2026-10-18T09:00:00Z"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OverlapsDay(&tt.ev, oct19, utc); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestOverlapsDayRespectsLocation(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// 02:00Z on Oct 20 is 22:00 on Oct 19 in New York.
	ev := event("late call", "2026-10-20T02:00:00Z", "2026-10-20T03:00:00Z")
	if !OverlapsDay(&ev, time.Date(2026, time.October, 19, 0, 0, 0, 0, ny), ny) {
		t.Error("Expected event on Oct 19 in New York")
	}
	if OverlapsDay(&ev, time.Date(2026, time.October, 20, 0, 0, 0, 0, ny), ny) {
		t.Error("Expected event not on Oct 20 in New York")
	}
}

func TestEventsOnSortsByStart(t *testing.T) {
	events := []model.CalendarEvent{
		event("late", "2026-10-19T15:00:00Z", "2026-10-19T16:00:00Z"),
		event("other day", "2026-10-21T09:00:00Z", "2026-10-21T10:00:00Z"),
		event("early", "2026-10-19T08:00:00Z", "2026-10-19T09:00:00Z"),
	}
	got := EventsOn(events, day(2026, time.October, 19), utc)
	var titles []string
	for _, ev := range got {
		titles = append(titles, ev.Title)
	}
	if diff := cmp.Diff([]string{"early", "late"}, titles); diff != "" {
		t.Errorf("Unexpected events (-want +got):\n%s", diff)
	}
}

func TestInMonth(t *testing.T) {
	g := MonthGrid(day(2026, time.October, 1), utc)
	events := []model.CalendarEvent{
		event("padding", "2026-09-28T09:00:00Z", "2026-09-28T10:00:00Z"),
		event("inside", "2026-10-31T09:00:00Z", "2026-10-31T10:00:00Z"),
		event("broken", "", ""),
	}
	got := InMonth(events, g, utc)
	if len(got) != 1 || got[0].Title != "inside" {
		t.Errorf("Expected only 'inside', got %+v", got)
	}
}

func TestSearch(t *testing.T) {
	events := []model.CalendarEvent{
		{Title: "Renewal call", StartDatetime: "2026-10-19T09:00:00Z"},
		{Title: "Sync", Description: "Discuss ACME renewal terms"},
		{Title: "Kickoff", AssociatedContractTitle: "Acme MSA"},
		{Title: "Lunch", Summary: "team"},
	}

	if got := Search(events, ""); len(got) != 4 {
		t.Errorf("Expected empty query to keep all events, got %d", len(got))
	}
	if got := Search(events, "  acme "); len(got) != 2 {
		t.Errorf("Expected 2 matches for acme, got %d", len(got))
	}
	if got := Search(events, "TEAM"); len(got) != 1 || got[0].Title != "Lunch" {
		t.Errorf("Expected summary match, got %+v", got)
	}
	if got := Search(events, "missing"); len(got) != 0 {
		t.Errorf("Expected no matches, got %d", len(got))
	}
}

func TestSortByStartMalformedLast(t *testing.T) {
	events := []model.CalendarEvent{
		{Title: "broken", StartDatetime: "nope"},
		{Title: "b", StartDatetime: "2026-10-20T09:00:00Z"},
		{Title: "a", StartDatetime: "2026-10-19T09:00:00Z"},
	}
	SortByStart(events, utc)
	var titles []string
	for _, ev := range events {
		titles = append(titles, ev.Title)
	}
	if diff := cmp.Diff([]string{"a", "b", "broken"}, titles); diff != "" {
		t.Errorf("Unexpected order (-want +got):\n%s", diff)
	}
}

func TestUpcomingRenewals(t *testing.T) {
	now := time.Date(2026, time.October, 19, 12, 0, 0, 0, utc)
	events := []model.CalendarEvent{
		{Title: "soon", Category: model.CategoryRenewal, StartDatetime: "2026-10-25T09:00:00Z"},
		{Title: "edge", Category: model.CategoryRenewal, StartDatetime: "2026-11-18T12:00:00Z"},
		{Title: "too far", Category: model.CategoryRenewal, StartDatetime: "2026-11-18T12:00:01Z"},
		{Title: "past", Category: model.CategoryRenewal, StartDatetime: "2026-10-18T09:00:00Z"},
		{Title: "expiry", Category: model.CategoryExpiry, StartDatetime: "2026-10-20T09:00:00Z"},
	}
	got := UpcomingRenewals(events, now, RenewalWindow, utc)
	var titles []string
	for _, ev := range got {
		titles = append(titles, ev.Title)
	}
	if diff := cmp.Diff([]string{"soon", "edge"}, titles); diff != "" {
		t.Errorf("Unexpected renewals (-want +got):\n%s", diff)
	}
}

func TestDefaultSlot(t *testing.T) {
	start, end := DefaultSlot(time.Date(2026, time.October, 19, 17, 45, 0, 0, utc))
	if got := FormatLocal(start); got != "2026-10-19T09:00" {
		t.Errorf("Expected 2026-10-19T09:00, got %s", got)
	}
	if got := FormatLocal(end); got != "2026-10-19T10:00" {
		t.Errorf("Expected 2026-10-19T10:00, got %s", got)
	}
}

func TestParseLocal(t *testing.T) {
	got, ok := ParseLocal("2026-10-19T14:30", utc)
	if !ok {
		t.Fatal("Expected value to parse")
	}
	if !got.Equal(time.Date(2026, time.October, 19, 14, 30, 0, 0, utc)) {
		t.Errorf("Unexpected time %v", got)
	}
	if _, ok := ParseLocal("19/10/2026", utc); ok {
		t.Error("Expected malformed value to fail")
	}
}

func TestCategoryLabels(t *testing.T) {
	tests := []struct {
		category, label, class string
	}{
		{model.CategoryRenewal, "Renewal", "event-renewal"},
		{model.CategoryExpiry, "Expiry", "event-expiry"},
		{model.CategoryMeeting, "Meeting", "event-meeting"},
		{"", "Meeting", "event-meeting"},
		{"offsite", "Meeting", "event-meeting"},
	}
	for _, tt := range tests {
		if got := CategoryLabel(tt.category); got != tt.label {
			t.Errorf("CategoryLabel(%q): expected %s, got %s", tt.category, tt.label, got)
		}
		if got := CategoryClass(tt.category); got != tt.class {
			t.Errorf("CategoryClass(%q): expected %s, got %s", tt.category, tt.class, got)
		}
	}
}
