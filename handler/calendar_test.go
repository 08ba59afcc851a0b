package handler

import (
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/suhaib93102/CLM-Frontend/model"
)

func TestBuildEvent(t *testing.T) {
	tests := []struct {
		name      string
		form      EventForm
		wantMsg   string
		wantStart string
		wantEnd   string
		wantTitle string
		wantCat   string
	}{
		{
			name:      "timed",
			form:      EventForm{Title: " Kickoff ", Category: "meeting", Start: "2026-10-20T09:00", End: "2026-10-20T10:30"},
			wantStart: "2026-10-20T09:00:00Z",
			wantEnd:   "2026-10-20T10:30:00Z",
			wantTitle: "Kickoff",
			wantCat:   "meeting",
		},
		{
			name:      "all day spans to next midnight",
			form:      EventForm{Category: "renewal", Start: "2026-10-20T09:00", End: "2026-10-21T10:00", AllDay: true},
			wantStart: "2026-10-20T00:00:00Z",
			wantEnd:   "2026-10-22T00:00:00Z",
			wantTitle: model.UntitledEvent,
			wantCat:   "renewal",
		},
		{
			name:      "unknown category",
			form:      EventForm{Title: "Sync", Category: "party", Start: "2026-10-20T09:00", End: "2026-10-20T09:00"},
			wantStart: "2026-10-20T09:00:00Z",
			wantEnd:   "2026-10-20T09:00:00Z",
			wantTitle: "Sync",
			wantCat:   "meeting",
		},
		{
			name:    "bad start",
			form:    EventForm{Start: "tomorrow", End: "2026-10-20T10:00"},
			wantMsg: "Please enter a valid start time",
		},
		{
			name:    "bad end",
			form:    EventForm{Start: "2026-10-20T09:00", End: ""},
			wantMsg: "Please enter a valid end time",
		},
		{
			name:    "end before start",
			form:    EventForm{Start: "2026-10-20T09:00", End: "2026-10-20T08:00"},
			wantMsg: "End time must be after the start time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, msg := BuildEvent(tt.form, time.UTC)
			if msg != tt.wantMsg {
				t.Fatalf("Expected message %q, got %q", tt.wantMsg, msg)
			}
			if msg != "" {
				return
			}
			if ev.StartDatetime != tt.wantStart || ev.EndDatetime != tt.wantEnd {
				t.Errorf("Expected %s - %s, got %s - %s", tt.wantStart, tt.wantEnd, ev.StartDatetime, ev.EndDatetime)
			}
			if ev.Title != tt.wantTitle {
				t.Errorf("Expected title %q, got %q", tt.wantTitle, ev.Title)
			}
			if ev.Category != tt.wantCat {
				t.Errorf("Expected category %q, got %q", tt.wantCat, ev.Category)
			}
		})
	}
}

func TestBuildEventContract(t *testing.T) {
	ev, _ := BuildEvent(EventForm{ContractID: "42", Start: "2026-10-20T09:00", End: "2026-10-20T10:00"}, time.UTC)
	if ev.ContractID() != "42" {
		t.Errorf("Expected contract 42, got %q", ev.ContractID())
	}
	ev, _ = BuildEvent(EventForm{Start: "2026-10-20T09:00", End: "2026-10-20T10:00"}, time.UTC)
	if ev.AssociatedContractID != nil {
		t.Error("Expected no contract")
	}
}

func TestNewEventFormDefaults(t *testing.T) {
	h := &CalendarHandler{}
	got := h.newForm(time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), "2026-10", "week")
	want := EventForm{
		Category: model.CategoryRenewal,
		Start:    "2026-10-20T09:00",
		End:      "2026-10-20T10:00",
		Month:    "2026-10",
		Day:      "2026-10-20",
		View:     "week",
	}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestCalendarURL(t *testing.T) {
	tests := []struct {
		month, day, view string
		want             string
	}{
		{"", "", "", "/calendar"},
		{"2026-10", "", "month", "/calendar?month=2026-10"},
		{"2026-10", "2026-10-20", "week", "/calendar?day=2026-10-20&month=2026-10&view=week"},
	}
	for _, tt := range tests {
		if got := calendarURL(tt.month, tt.day, tt.view); got != tt.want {
			t.Errorf("Expected %s, got %s", tt.want, got)
		}
	}
}

func TestResolveDates(t *testing.T) {
	h := &CalendarHandler{Base: &Base{loc: time.UTC}}
	today := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name, month, day       string
		wantSelected, wantMonth string
	}{
		{"defaults", "", "", "2026-10-19", "2026-10-01"},
		{"day picks month", "", "2026-12-03", "2026-12-03", "2026-12-01"},
		{"other month selects its first", "2027-01", "", "2027-01-01", "2027-01-01"},
		{"current month selects today", "2026-10", "", "2026-10-19", "2026-10-01"},
		{"day inside month kept", "2026-11", "2026-11-05", "2026-11-05", "2026-11-01"},
		{"garbage ignored", "soon", "later", "2026-10-19", "2026-10-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selected, month := h.resolveDates(tt.month, tt.day, today)
			if got := selected.Format("2006-01-02"); got != tt.wantSelected {
				t.Errorf("Expected selected %s, got %s", tt.wantSelected, got)
			}
			if got := month.Format("2006-01-02"); got != tt.wantMonth {
				t.Errorf("Expected month %s, got %s", tt.wantMonth, got)
			}
		})
	}
}

func calendarBackend(t *testing.T, ranges *[]string, mu *sync.Mutex) backend {
	return backend{
		"GET /api/v1/calendar-events/": func(w http.ResponseWriter, r *http.Request) {
			start, end := r.URL.Query().Get("start"), r.URL.Query().Get("end")
			mu.Lock()
			*ranges = append(*ranges, start+"/"+end)
			mu.Unlock()
			if start == "2026-10-19" {
				writeJSON(w, http.StatusOK, []map[string]any{{
					"id": 9, "title": "Acme renewal", "category": "renewal",
					"start_datetime": "2026-11-02T00:00:00Z", "end_datetime": "2026-11-03T00:00:00Z", "all_day": true,
				}})
				return
			}
			writeJSON(w, http.StatusOK, []map[string]any{
				{"id": 1, "title": "Quarterly review", "category": "meeting", "start_datetime": "2026-10-20T09:00:00Z", "end_datetime": "2026-10-20T10:00:00Z"},
				{"id": 2, "title": "Lease expiry", "category": "expiry", "start_datetime": "2026-10-31T00:00:00Z", "end_datetime": "2026-11-01T00:00:00Z", "all_day": true},
			})
		},
		"GET /api/v1/contracts/": respond(http.StatusOK, []map[string]any{{"id": 42, "title": "Acme MSA", "status": "approved"}}),
	}
}

func TestCalendarShowMonth(t *testing.T) {
	var (
		mu     sync.Mutex
		ranges []string
	)
	app := newTestApp(t, calendarBackend(t, &ranges, &mu))

	w := app.get("/calendar", app.cookie(t, "access-1", "refresh-1"))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	for _, want := range []string{"October 2026", "Quarterly review", "Lease expiry", "Acme renewal", "Acme MSA", "New event"} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected %q on calendar page", want)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	want := map[string]bool{"2026-09-27/2026-11-01": true, "2026-10-19/2026-11-19": true}
	for _, r := range ranges {
		if !want[r] {
			t.Errorf("Unexpected range %s", r)
		}
		delete(want, r)
	}
	if len(want) != 0 {
		t.Errorf("Missing ranges %v", want)
	}
}

func TestCalendarEditForm(t *testing.T) {
	var (
		mu     sync.Mutex
		ranges []string
	)
	app := newTestApp(t, calendarBackend(t, &ranges, &mu))

	w := app.get("/calendar?month=2026-10&edit=1&view=week", app.cookie(t, "access-1", "refresh-1"))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Edit event") || !strings.Contains(body, `action="/calendar/events/1"`) {
		t.Error("Expected edit form for event 1")
	}
	if !strings.Contains(body, `value="2026-10-20T09:00"`) {
		t.Error("Expected start filled in")
	}
}

func TestCalendarCreate(t *testing.T) {
	var got model.CalendarEvent
	app := newTestApp(t, backend{
		"POST /api/v1/calendar-events/": func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&got)
			writeJSON(w, http.StatusCreated, map[string]any{"id": 77})
		},
	})

	w := app.post("/calendar/events", url.Values{
		"title":       {"Signing"},
		"category":    {"meeting"},
		"contract_id": {"42"},
		"start":       {"2026-10-20T14:00"},
		"end":         {"2026-10-20T15:00"},
		"month":       {"2026-10"},
		"day":         {"2026-10-20"},
	}, app.cookie(t, "access-1", "refresh-1"))
	assertRedirect(t, w, "/calendar?day=2026-10-20&month=2026-10&notice=Event+saved")

	if got.Title != "Signing" || got.StartDatetime != "2026-10-20T14:00:00Z" || got.ContractID() != "42" {
		t.Errorf("Unexpected event sent: %+v", got)
	}
}

func TestCalendarCreateInvalid(t *testing.T) {
	app := newTestApp(t, backend{
		"POST /api/v1/calendar-events/": func(w http.ResponseWriter, r *http.Request) {
			t.Error("Backend must not be called for an invalid event")
		},
	})
	w := app.post("/calendar/events", url.Values{
		"start": {"2026-10-20T14:00"},
		"end":   {"2026-10-20T13:00"},
		"month": {"2026-10"},
	}, app.cookie(t, "access-1", "refresh-1"))
	assertRedirect(t, w, "/calendar?error="+url.QueryEscape("End time must be after the start time")+"&month=2026-10")
}

func TestCalendarUpdateUsesPatch(t *testing.T) {
	patched := false
	app := newTestApp(t, backend{
		"PATCH /api/v1/calendar-events/5/": func(w http.ResponseWriter, r *http.Request) {
			patched = true
			writeJSON(w, http.StatusOK, map[string]any{"id": 5})
		},
	})
	w := app.post("/calendar/events/5", url.Values{
		"start": {"2026-10-20T14:00"},
		"end":   {"2026-10-20T15:00"},
		"view":  {"list"},
	}, app.cookie(t, "access-1", "refresh-1"))
	assertRedirect(t, w, "/calendar?notice=Event+saved&view=list")
	if !patched {
		t.Error("Expected PATCH to the backend")
	}
}

func TestCalendarDelete(t *testing.T) {
	app := newTestApp(t, backend{
		"DELETE /api/v1/calendar-events/5/": respond(http.StatusInternalServerError, map[string]string{"detail": "locked"}),
	})
	w := app.post("/calendar/events/5/delete", url.Values{"month": {"2026-10"}}, app.cookie(t, "access-1", "refresh-1"))
	assertRedirect(t, w, "/calendar?error="+url.QueryEscape("Failed to delete event: locked")+"&month=2026-10")
}
