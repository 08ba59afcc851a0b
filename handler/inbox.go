package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/suhaib93102/CLM-Frontend/model"
	"github.com/suhaib93102/CLM-Frontend/service"
)

// InboxHandler serves notifications and search.
type InboxHandler struct {
	*Base
}

func NewInboxHandler(b *Base) *InboxHandler {
	return &InboxHandler{Base: b}
}

type NotificationsData struct {
	Unread      []model.Notification
	Read        []model.Notification
	OnlyUnread  bool
	UnreadCount int
}

// Notifications lists notifications, unread first. ?unread=1 hides read ones.
func (h *InboxHandler) Notifications(c *gin.Context) {
	api := h.client(c)
	resp := api.Notifications(c.Request.Context(), nil)
	if failed(h.Base, c, resp, "Failed to load notifications") {
		return
	}

	data := NotificationsData{OnlyUnread: c.Query("unread") == "1"}
	for _, n := range service.Items(resp) {
		if n.Read {
			if !data.OnlyUnread {
				data.Read = append(data.Read, n)
			}
			continue
		}
		data.Unread = append(data.Unread, n)
	}
	data.UnreadCount = len(data.Unread)

	h.render(c, http.StatusOK, "notifications.html", h.page(c, "Notifications", "notifications", data))
}

// MarkRead marks one notification read, then follows its action link when
// it is a local path.
func (h *InboxHandler) MarkRead(c *gin.Context) {
	api := h.client(c)
	resp := api.MarkNotificationRead(c.Request.Context(), c.Param("id"))
	if resp.Unauthorized() {
		h.expired(c)
		return
	}
	if !resp.Success {
		h.redirectError(c, "/notifications", "Failed to update notification: "+resp.Error)
		return
	}
	if next := c.PostForm("next"); next != "" && safeNext(next) == next {
		h.redirect(c, next, "")
		return
	}
	h.redirect(c, "/notifications", "")
}

// Search modes
const (
	SearchKeyword  = "keyword"
	SearchSemantic = "semantic"
)

type SearchData struct {
	Query       string
	Mode        string
	EntityType  string
	Results     []model.SearchResult
	Suggestions []string
	Searched    bool
}

// Search runs keyword or semantic search. Query: q, mode=keyword|semantic, type.
func (h *InboxHandler) Search(c *gin.Context) {
	data := SearchData{
		Query:      strings.TrimSpace(c.Query("q")),
		Mode:       c.DefaultQuery("mode", SearchKeyword),
		EntityType: c.Query("type"),
	}
	if data.Mode != SearchSemantic {
		data.Mode = SearchKeyword
	}
	if data.Query == "" {
		h.render(c, http.StatusOK, "search.html", h.page(c, "Search", "search", data))
		return
	}

	api := h.client(c)
	var resp service.Response[service.List[model.SearchResult]]
	if data.Mode == SearchSemantic {
		resp = api.SemanticSearch(c.Request.Context(), data.Query)
	} else {
		params := url.Values{}
		if data.EntityType != "" {
			params.Set("entity_type", data.EntityType)
		}
		resp = api.Search(c.Request.Context(), data.Query, params)
	}
	if failed(h.Base, c, resp, "Search failed") {
		return
	}
	data.Results = service.Items(resp)
	data.Searched = true

	if len(data.Results) == 0 {
		if s := api.SearchSuggestions(c.Request.Context(), data.Query); s.Success {
			data.Suggestions = service.Items(s)
		}
	}
	h.render(c, http.StatusOK, "search.html", h.page(c, "Search", "search", data))
}
