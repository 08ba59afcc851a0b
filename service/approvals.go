package service

import (
	"context"
	"net/http"
	"net/url"

	"github.com/suhaib93102/CLM-Frontend/model"
)

const (
	approvalsPath     = APIV1 + "/approvals/"
	notificationsPath = "/api/notifications/"
	calendarPath      = APIV1 + "/calendar-events/"
)

func (c *Client) CreateApproval(ctx context.Context, a model.NewApproval) Response[model.ApprovalRequest] {
	return send[model.ApprovalRequest](ctx, c, http.MethodPost, approvalsPath, a)
}

func (c *Client) Approvals(ctx context.Context, params url.Values) Response[List[model.ApprovalRequest]] {
	return send[List[model.ApprovalRequest]](ctx, c, http.MethodGet, withQuery(approvalsPath, params), nil)
}

func (c *Client) Approval(ctx context.Context, id string) Response[model.ApprovalRequest] {
	return send[model.ApprovalRequest](ctx, c, http.MethodGet, approvalsPath+esc(id)+"/", nil)
}

func (c *Client) UpdateApproval(ctx context.Context, id string, u model.ApprovalUpdate) Response[model.ApprovalRequest] {
	return send[model.ApprovalRequest](ctx, c, http.MethodPut, approvalsPath+esc(id)+"/", u)
}

func (c *Client) Approve(ctx context.Context, id, comment string) Response[model.ApprovalRequest] {
	return c.UpdateApproval(ctx, id, model.ApprovalUpdate{Status: model.StatusApproved, Comment: comment})
}

func (c *Client) Reject(ctx context.Context, id, reason string) Response[model.ApprovalRequest] {
	return c.UpdateApproval(ctx, id, model.ApprovalUpdate{Status: model.StatusRejected, Comment: reason})
}

func (c *Client) Notifications(ctx context.Context, params url.Values) Response[List[model.Notification]] {
	return send[List[model.Notification]](ctx, c, http.MethodGet, withQuery(notificationsPath, params), nil)
}

func (c *Client) CreateNotification(ctx context.Context, n model.Notification) Response[model.Notification] {
	return send[model.Notification](ctx, c, http.MethodPost, notificationsPath, n)
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) Response[model.Notification] {
	return send[model.Notification](ctx, c, http.MethodPut, notificationsPath+esc(id)+"/", map[string]bool{"read": true})
}

// CalendarEvents lists events between two YYYY-MM-DD dates, end exclusive.
func (c *Client) CalendarEvents(ctx context.Context, start, end string) Response[List[model.CalendarEvent]] {
	params := url.Values{"start": {start}, "end": {end}}
	return send[List[model.CalendarEvent]](ctx, c, http.MethodGet, withQuery(calendarPath, params), nil)
}

func (c *Client) CreateCalendarEvent(ctx context.Context, ev model.CalendarEvent) Response[model.CalendarEvent] {
	return send[model.CalendarEvent](ctx, c, http.MethodPost, calendarPath, ev)
}

func (c *Client) UpdateCalendarEvent(ctx context.Context, id string, ev model.CalendarEvent) Response[model.CalendarEvent] {
	return send[model.CalendarEvent](ctx, c, http.MethodPatch, calendarPath+esc(id)+"/", ev)
}

func (c *Client) DeleteCalendarEvent(ctx context.Context, id string) Response[map[string]any] {
	return send[map[string]any](ctx, c, http.MethodDelete, calendarPath+esc(id)+"/", nil)
}
