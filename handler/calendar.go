package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/suhaib93102/CLM-Frontend/calendar"
	"github.com/suhaib93102/CLM-Frontend/model"
	"github.com/suhaib93102/CLM-Frontend/pkg/logger"
	"github.com/suhaib93102/CLM-Frontend/service"
)

// Calendar views
const (
	ViewMonth = "month"
	ViewWeek  = "week"
	ViewList  = "list"
)

// maxCellEvents is how many events a month cell lists before "+N more".
const maxCellEvents = 3

type CalendarHandler struct {
	*Base
}

func NewCalendarHandler(b *Base) *CalendarHandler {
	return &CalendarHandler{Base: b}
}

type DayCell struct {
	Date     time.Time
	InMonth  bool
	Today    bool
	Selected bool
	Events   []model.CalendarEvent
	More     int
}

// EventForm is the create/edit form, with datetime-local values.
type EventForm struct {
	ID          string `form:"-"`
	Title       string `form:"title"`
	Description string `form:"description"`
	Category    string `form:"category"`
	ContractID  string `form:"contract_id"`
	Start       string `form:"start"`
	End         string `form:"end"`
	AllDay      bool   `form:"all_day"`
	Month       string `form:"month"`
	Day         string `form:"day"`
	View        string `form:"view"`
}

type CalendarData struct {
	View       string
	Title      string
	Month      string
	PrevMonth  string
	NextMonth  string
	Today      string
	Query      string
	Weeks      [][]DayCell
	Week       []DayCell
	List       []model.CalendarEvent
	Selected   DayCell
	Upcoming   []model.CalendarEvent
	Form       EventForm
	Editing    bool
	Contracts  []model.Contract
	Categories []string
	LoadError  string
}

// Show renders the calendar. Query: month=YYYY-MM, day=YYYY-MM-DD,
// view=month|week|list, q=search, edit=<event id>.
func (h *CalendarHandler) Show(c *gin.Context) {
	today := h.today()
	selected, month := h.resolveDates(c.Query("month"), c.Query("day"), today)

	view := c.DefaultQuery("view", ViewMonth)
	if view != ViewWeek && view != ViewList {
		view = ViewMonth
	}
	query := strings.TrimSpace(c.Query("q"))

	grid := calendar.MonthGrid(month, h.loc)
	start, end := grid.LoadRange()
	upcomingStart := today.Format(calendar.DateLayout)
	upcomingEnd := today.Add(calendar.RenewalWindow).AddDate(0, 0, 1).Format(calendar.DateLayout)

	api := h.client(c)
	g, ctx := errgroup.WithContext(c.Request.Context())
	var (
		events    service.Response[service.List[model.CalendarEvent]]
		upcoming  service.Response[service.List[model.CalendarEvent]]
		contracts service.Response[service.List[model.Contract]]
	)
	g.Go(func() error {
		events = api.CalendarEvents(ctx, start, end)
		return unauthorized(events)
	})
	g.Go(func() error {
		upcoming = api.CalendarEvents(ctx, upcomingStart, upcomingEnd)
		return unauthorized(upcoming)
	})
	g.Go(func() error {
		contracts = api.Contracts(ctx, nil)
		return unauthorized(contracts)
	})
	if err := g.Wait(); errors.Is(err, errSessionExpired) {
		h.expired(c)
		return
	}

	all := calendar.Search(service.Items(events), query)
	calendar.SortByStart(all, h.loc)

	data := CalendarData{
		View:       view,
		Title:      grid.Title(),
		Month:      grid.MonthStart.Format(calendar.MonthLayout),
		PrevMonth:  calendar.PrevMonth(grid.MonthStart).Format(calendar.MonthLayout),
		NextMonth:  calendar.NextMonth(grid.MonthStart).Format(calendar.MonthLayout),
		Today:      today.Format(calendar.DateLayout),
		Query:      query,
		Upcoming:   calendar.UpcomingRenewals(service.Items(upcoming), h.now(), calendar.RenewalWindow, h.loc),
		Contracts:  service.Items(contracts),
		Categories: []string{model.CategoryRenewal, model.CategoryExpiry, model.CategoryMeeting},
		LoadError:  events.Error,
	}

	for _, week := range grid.Weeks() {
		row := make([]DayCell, len(week))
		for i, d := range week {
			row[i] = h.cell(all, d, grid, today, selected)
		}
		data.Weeks = append(data.Weeks, row)
	}
	for _, d := range calendar.WeekOf(selected) {
		cell := h.cell(all, d, grid, today, selected)
		cell.Events = calendar.EventsOn(all, d, h.loc)
		cell.More = 0
		data.Week = append(data.Week, cell)
	}
	data.List = calendar.InMonth(all, grid, h.loc)
	data.Selected = h.cell(all, selected, grid, today, selected)
	data.Selected.Events = calendar.EventsOn(all, selected, h.loc)
	data.Selected.More = 0

	data.Form = h.newForm(selected, data.Month, view)
	if id := c.Query("edit"); id != "" {
		for i := range all {
			if string(all[i].ID) == id {
				data.Form = h.editForm(&all[i], data.Month, view)
				data.Editing = true
				break
			}
		}
	}

	h.render(c, http.StatusOK, "calendar.html", h.page(c, "Calendar", "calendar", data))
}

// resolveDates picks the selected day and displayed month. An explicit
// month wins; otherwise the month follows the selected day.
func (h *CalendarHandler) resolveDates(monthParam, dayParam string, today time.Time) (selected, month time.Time) {
	selected = today
	if d, err := calendar.ParseDay(dayParam, h.loc); dayParam != "" && err == nil {
		selected = d
	}
	month = time.Date(selected.Year(), selected.Month(), 1, 0, 0, 0, 0, h.loc)
	if m, err := calendar.ParseMonth(monthParam, h.loc); monthParam != "" && err == nil {
		month = m
		if selected.Year() != m.Year() || selected.Month() != m.Month() {
			selected = m
			if today.Year() == m.Year() && today.Month() == m.Month() {
				selected = today
			}
		}
	}
	return selected, month
}

func (h *CalendarHandler) cell(events []model.CalendarEvent, d time.Time, grid calendar.Grid, today, selected time.Time) DayCell {
	cell := DayCell{
		Date:     d,
		InMonth:  grid.InMonth(d),
		Today:    calendar.SameDay(d, today),
		Selected: calendar.SameDay(d, selected),
		Events:   calendar.EventsOn(events, d, h.loc),
	}
	if len(cell.Events) > maxCellEvents {
		cell.More = len(cell.Events) - maxCellEvents
		cell.Events = cell.Events[:maxCellEvents]
	}
	return cell
}

func (h *CalendarHandler) newForm(day time.Time, month, view string) EventForm {
	start, end := calendar.DefaultSlot(day)
	return EventForm{
		Category: model.CategoryRenewal,
		Start:    calendar.FormatLocal(start),
		End:      calendar.FormatLocal(end),
		Month:    month,
		Day:      day.Format(calendar.DateLayout),
		View:     view,
	}
}

func (h *CalendarHandler) editForm(ev *model.CalendarEvent, month, view string) EventForm {
	form := EventForm{
		ID:          string(ev.ID),
		Title:       ev.Title,
		Description: ev.Description,
		Category:    ev.CategoryOrDefault(),
		ContractID:  ev.ContractID(),
		AllDay:      ev.AllDay,
		Month:       month,
		View:        view,
	}
	if start, end, ok := calendar.Span(ev, h.loc); ok {
		form.Start = calendar.FormatLocal(start)
		form.End = calendar.FormatLocal(end)
		form.Day = start.Format(calendar.DateLayout)
	}
	return form
}

// Create saves a new event from the form.
func (h *CalendarHandler) Create(c *gin.Context) {
	h.save(c, "")
}

// Update patches an existing event.
func (h *CalendarHandler) Update(c *gin.Context) {
	h.save(c, c.Param("id"))
}

func (h *CalendarHandler) save(c *gin.Context, id string) {
	var form EventForm
	_ = c.ShouldBind(&form)
	back := calendarURL(form.Month, form.Day, form.View)

	ev, msg := BuildEvent(form, h.loc)
	if msg != "" {
		h.redirectError(c, back, msg)
		return
	}

	api := h.client(c)
	var resp service.Response[model.CalendarEvent]
	if id == "" {
		resp = api.CreateCalendarEvent(c.Request.Context(), ev)
	} else {
		resp = api.UpdateCalendarEvent(c.Request.Context(), id, ev)
	}
	if resp.Unauthorized() {
		h.expired(c)
		return
	}
	if !resp.Success {
		logger.Warn(c.Request.Context(), "failed to save event", "id", id, "status", resp.Status, "error", resp.Error)
		h.redirectError(c, back, "Failed to save event: "+resp.Error)
		return
	}

	logger.Info(c.Request.Context(), "calendar event saved", "id", string(resp.Data.ID), "category", ev.Category)
	h.redirect(c, back, "Event saved")
}

// Delete removes an event.
func (h *CalendarHandler) Delete(c *gin.Context) {
	back := calendarURL(c.PostForm("month"), c.PostForm("day"), c.PostForm("view"))

	api := h.client(c)
	resp := api.DeleteCalendarEvent(c.Request.Context(), c.Param("id"))
	if resp.Unauthorized() {
		h.expired(c)
		return
	}
	if !resp.Success {
		h.redirectError(c, back, "Failed to delete event: "+resp.Error)
		return
	}
	h.redirect(c, back, "Event deleted")
}

// BuildEvent converts the form into a backend event. It returns a message
// describing the first invalid field, or "".
func BuildEvent(form EventForm, loc *time.Location) (model.CalendarEvent, string) {
	ev := model.CalendarEvent{
		Title:       strings.TrimSpace(form.Title),
		Description: strings.TrimSpace(form.Description),
		Category:    form.Category,
		AllDay:      form.AllDay,
	}
	if ev.Title == "" {
		ev.Title = model.UntitledEvent
	}
	switch ev.Category {
	case model.CategoryRenewal, model.CategoryExpiry, model.CategoryMeeting:
	default:
		ev.Category = model.CategoryMeeting
	}
	if id := strings.TrimSpace(form.ContractID); id != "" {
		ev.AssociatedContractID = &id
	}

	start, ok := calendar.ParseLocal(form.Start, loc)
	if !ok {
		return ev, "Please enter a valid start time"
	}
	end, ok := calendar.ParseLocal(form.End, loc)
	if !ok {
		return ev, "Please enter a valid end time"
	}
	if form.AllDay {
		start = calendar.StartOfDay(start)
		end = calendar.StartOfDay(end).AddDate(0, 0, 1)
	}
	if end.Before(start) {
		return ev, "End time must be after the start time"
	}

	ev.StartDatetime = start.Format(time.RFC3339)
	ev.EndDatetime = end.Format(time.RFC3339)
	return ev, ""
}

func calendarURL(month, day, view string) string {
	q := url.Values{}
	if month != "" {
		q.Set("month", month)
	}
	if day != "" {
		q.Set("day", day)
	}
	if view != "" && view != ViewMonth {
		q.Set("view", view)
	}
	if len(q) == 0 {
		return "/calendar"
	}
	return "/calendar?" + q.Encode()
}
