package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/suhaib93102/CLM-Frontend/model"
	"github.com/suhaib93102/CLM-Frontend/pkg/logger"
	"github.com/suhaib93102/CLM-Frontend/service"
)

// titleLookups bounds the concurrent contract lookups behind the approvals list.
const titleLookups = 8

type ApprovalHandler struct {
	*Base
}

func NewApprovalHandler(b *Base) *ApprovalHandler {
	return &ApprovalHandler{Base: b}
}

// ApprovalRow is an approval with its display title resolved.
type ApprovalRow struct {
	model.ApprovalRequest
	Title     string
	Requester string
	Priority  string
}

type ApprovalsData struct {
	Status   string
	Query    string
	Statuses []string
	Counts   map[string]int
	Rows     []ApprovalRow
	Decided  []ApprovalRow
}

// List shows the approvals inbox. Query: status=all|pending|approved|rejected
// (default pending), q=title or requester.
func (h *ApprovalHandler) List(c *gin.Context) {
	status := c.DefaultQuery("status", model.StatusPending)
	switch status {
	case "all", model.StatusPending, model.StatusApproved, model.StatusRejected:
	default:
		status = model.StatusPending
	}
	query := strings.TrimSpace(c.Query("q"))

	api := h.client(c)
	resp := api.Approvals(c.Request.Context(), nil)
	if failed(h.Base, c, resp, "Failed to load approvals") {
		return
	}

	rows, err := ResolveTitles(c.Request.Context(), api, service.Items(resp))
	if errors.Is(err, errSessionExpired) {
		h.expired(c)
		return
	}

	data := ApprovalsData{
		Status:   status,
		Query:    query,
		Statuses: []string{"all", model.StatusPending, model.StatusApproved, model.StatusRejected},
		Counts:   map[string]int{"all": len(rows)},
	}
	for _, row := range rows {
		data.Counts[row.Status]++
		if row.Status != model.StatusPending && len(data.Decided) < 5 {
			data.Decided = append(data.Decided, row)
		}
	}
	data.Rows = FilterApprovals(rows, status, query)

	h.render(c, http.StatusOK, "approvals.html", h.page(c, "Approvals", "approvals", data))
}

// ResolveTitles builds display rows, looking up the title of each contract
// an approval points at. Lookups run in parallel and each contract is
// fetched once. A failed lookup keeps the fallback title.
func ResolveTitles(ctx context.Context, api *service.Client, approvals []model.ApprovalRequest) ([]ApprovalRow, error) {
	var (
		mu     sync.Mutex
		titles = make(map[string]string)
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(titleLookups)
	seen := make(map[string]bool)
	for i := range approvals {
		a := &approvals[i]
		id := string(a.EntityID)
		if !a.IsContract() || seen[id] {
			continue
		}
		seen[id] = true
		g.Go(func() error {
			resp := api.Contract(ctx, id)
			if resp.Unauthorized() {
				return errSessionExpired
			}
			if !resp.Success {
				logger.Debug(ctx, "approval title lookup failed", "contract_id", id, "error", resp.Error)
				return nil
			}
			title := strings.TrimSpace(resp.Data.Title)
			if title == "" {
				title = strings.TrimSpace(resp.Data.Name)
			}
			if title != "" {
				mu.Lock()
				titles[id] = title
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := make([]ApprovalRow, len(approvals))
	for i := range approvals {
		a := &approvals[i]
		title := a.FallbackTitle()
		if t, ok := titles[string(a.EntityID)]; ok && a.IsContract() {
			title = t
		}
		rows[i] = ApprovalRow{
			ApprovalRequest: *a,
			Title:           title,
			Requester:       a.RequesterLabel(),
			Priority:        a.PriorityOrDefault(),
		}
	}
	return rows, nil
}

// FilterApprovals keeps rows matching status ("all" keeps every status) and
// whose title or requester contains q.
func FilterApprovals(rows []ApprovalRow, status, q string) []ApprovalRow {
	q = strings.ToLower(strings.TrimSpace(q))
	var out []ApprovalRow
	for _, row := range rows {
		if status != "all" && row.Status != status {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(row.Title), q) && !strings.Contains(strings.ToLower(row.Requester), q) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// Approve marks the request approved.
func (h *ApprovalHandler) Approve(c *gin.Context) {
	api := h.client(c)
	resp := api.Approve(c.Request.Context(), c.Param("id"), strings.TrimSpace(c.PostForm("comment")))
	h.decided(c, resp, "approved")
}

// Reject marks the request rejected with the given reason.
func (h *ApprovalHandler) Reject(c *gin.Context) {
	api := h.client(c)
	resp := api.Reject(c.Request.Context(), c.Param("id"), strings.TrimSpace(c.PostForm("reason")))
	h.decided(c, resp, "rejected")
}

func (h *ApprovalHandler) decided(c *gin.Context, resp service.Response[model.ApprovalRequest], verb string) {
	back := "/approvals"
	if q := c.PostForm("return"); q != "" {
		back += "?" + url.Values{"status": {q}}.Encode()
	}
	if resp.Unauthorized() {
		h.expired(c)
		return
	}
	if !resp.Success {
		h.redirectError(c, back, "Failed to update approval: "+resp.Error)
		return
	}
	logger.Info(c.Request.Context(), "approval decided", "id", c.Param("id"), "status", verb)
	h.redirect(c, back, "Request "+verb)
}
