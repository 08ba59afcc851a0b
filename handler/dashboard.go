package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/suhaib93102/CLM-Frontend/model"
	"github.com/suhaib93102/CLM-Frontend/service"
)

var errSessionExpired = errors.New("session expired")

type DashboardHandler struct {
	*Base
}

func NewDashboardHandler(b *Base) *DashboardHandler {
	return &DashboardHandler{Base: b}
}

// GrowthPoint is one bar of the contracts-per-month chart.
type GrowthPoint struct {
	Label   string
	Count   int
	Percent int // height relative to the tallest bar
}

type Activity struct {
	Text  string
	When  string
	Class string
}

type DashboardData struct {
	Stats            model.Statistics
	Recent           []model.Contract
	PendingApprovals []model.ApprovalRequest
	Growth           []GrowthPoint
	Pipeline         decimal.Decimal
	Activity         []Activity
	Warnings         []string
}

// Show loads every dashboard panel concurrently and renders once all have
// answered. A failing panel is reported as a warning; a 401 signs out.
func (h *DashboardHandler) Show(c *gin.Context) {
	api := h.client(c)
	g, ctx := errgroup.WithContext(c.Request.Context())

	var (
		stats     service.Response[model.Statistics]
		recent    service.Response[service.List[model.Contract]]
		approvals service.Response[service.List[model.ApprovalRequest]]
		contracts service.Response[service.List[model.Contract]]
	)

	g.Go(func() error {
		stats = api.ContractStatistics(ctx)
		return unauthorized(stats)
	})
	g.Go(func() error {
		recent = api.RecentContracts(ctx, 5)
		return unauthorized(recent)
	})
	g.Go(func() error {
		approvals = api.Approvals(ctx, url.Values{"status": {model.StatusPending}})
		return unauthorized(approvals)
	})
	g.Go(func() error {
		contracts = api.Contracts(ctx, nil)
		return unauthorized(contracts)
	})

	if err := g.Wait(); errors.Is(err, errSessionExpired) {
		h.expired(c)
		return
	}

	data := DashboardData{
		Stats:            stats.Value(),
		Recent:           service.Items(recent),
		PendingApprovals: service.Items(approvals),
	}
	all := service.Items(contracts)
	data.Growth = Growth(all, h.now().In(h.loc), 6)
	data.Pipeline = PipelineValue(all)
	data.Activity = RecentActivity(data.Recent, data.PendingApprovals)

	for _, panel := range []struct{ name, err string }{
		{"Statistics", stats.Error},
		{"Recent contracts", recent.Error},
		{"Approvals", approvals.Error},
		{"Contracts", contracts.Error},
	} {
		if panel.err != "" {
			data.Warnings = append(data.Warnings, fmt.Sprintf("%s unavailable: %s", panel.name, panel.err))
		}
	}
	if stats.Success && data.Stats.Total == 0 && len(all) > 0 {
		data.Stats = CountStatuses(all)
	}

	h.render(c, http.StatusOK, "dashboard.html", h.page(c, "Dashboard", "dashboard", data))
}

func unauthorized[T any](resp service.Response[T]) error {
	if resp.Unauthorized() {
		return errSessionExpired
	}
	return nil
}

// Growth counts contracts created in each of the last n months, oldest first.
func Growth(contracts []model.Contract, now time.Time, n int) []GrowthPoint {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(n - 1), 0)

	points := make([]GrowthPoint, n)
	for i := range points {
		points[i].Label = first.AddDate(0, i, 0).Format("Jan")
	}
	for i := range contracts {
		created := contracts[i].Created()
		if created.IsZero() {
			continue
		}
		created = created.In(now.Location())
		idx := (created.Year()-first.Year())*12 + int(created.Month()-first.Month())
		if idx >= 0 && idx < n {
			points[idx].Count++
		}
	}

	peak := 0
	for _, p := range points {
		if p.Count > peak {
			peak = p.Count
		}
	}
	if peak > 0 {
		for i := range points {
			points[i].Percent = points[i].Count * 100 / peak
		}
	}
	return points
}

// PipelineValue sums the value of contracts still in play (draft or pending).
func PipelineValue(contracts []model.Contract) decimal.Decimal {
	total := decimal.Zero
	for _, ct := range contracts {
		if !ct.Value.Valid {
			continue
		}
		switch ct.Status {
		case model.StatusDraft, model.StatusPending:
			total = total.Add(ct.Value.Decimal)
		}
	}
	return total
}

// CountStatuses derives statistics from a contract list.
func CountStatuses(contracts []model.Contract) model.Statistics {
	stats := model.Statistics{Total: len(contracts)}
	for _, ct := range contracts {
		switch ct.Status {
		case model.StatusDraft:
			stats.Draft++
		case model.StatusPending:
			stats.Pending++
		case model.StatusApproved:
			stats.Approved++
		case model.StatusRejected:
			stats.Rejected++
		}
	}
	return stats
}

// RecentActivity turns recent contracts and pending approvals into feed lines.
func RecentActivity(recent []model.Contract, pending []model.ApprovalRequest) []Activity {
	var feed []Activity
	for _, ct := range recent {
		feed = append(feed, Activity{
			Text:  fmt.Sprintf("%s is %s", ct.DisplayTitle(), ct.Status),
			When:  firstNonEmpty(ct.UpdatedAt, ct.CreatedAt),
			Class: "activity-contract",
		})
	}
	for i := range pending {
		a := &pending[i]
		feed = append(feed, Activity{
			Text:  fmt.Sprintf("%s awaits approval", a.FallbackTitle()),
			When:  a.CreatedAt,
			Class: "activity-approval",
		})
	}
	if len(feed) > 8 {
		feed = feed[:8]
	}
	return feed
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
