package handler

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/suhaib93102/CLM-Frontend/middleware"
	"github.com/suhaib93102/CLM-Frontend/pkg/logger"
	"github.com/suhaib93102/CLM-Frontend/service"
	"github.com/suhaib93102/CLM-Frontend/view"
)

const tokensKey = "backend_tokens"

// Base carries what every page handler needs: the backend client, the
// session signer and the template engine.
type Base struct {
	api      *service.Client
	sessions *middleware.Sessions
	views    *view.Engine
	loc      *time.Location
	now      func() time.Time
}

func NewBase(api *service.Client, sessions *middleware.Sessions, views *view.Engine, loc *time.Location) *Base {
	if loc == nil {
		loc = time.Local
	}
	return &Base{
		api:      api,
		sessions: sessions,
		views:    views,
		loc:      loc,
		now:      time.Now,
	}
}

// client returns a backend client authenticated as the visitor. Tokens the
// client rotates are written back to the cookie by render and redirect.
func (b *Base) client(c *gin.Context) *service.Client {
	return b.api.WithTokens(b.tokens(c))
}

func (b *Base) tokens(c *gin.Context) *service.MemoryTokens {
	if v, ok := c.Get(tokensKey); ok {
		return v.(*service.MemoryTokens)
	}
	tokens := service.NewMemoryTokens("", "")
	if s := middleware.GetSession(c); s != nil {
		tokens = service.NewMemoryTokens(s.Access, s.Refresh)
	}
	c.Set(tokensKey, tokens)
	return tokens
}

// persist saves a refreshed token pair. It must run before the response
// headers are written.
func (b *Base) persist(c *gin.Context) {
	v, ok := c.Get(tokensKey)
	if !ok {
		return
	}
	tokens := v.(*service.MemoryTokens)
	if !tokens.Changed() {
		return
	}
	if tokens.AccessToken() == "" {
		b.sessions.Clear(c)
		return
	}

	next := &middleware.Session{Access: tokens.AccessToken(), Refresh: tokens.RefreshToken()}
	if s := middleware.GetSession(c); s != nil {
		next.Email = s.Email
		next.Name = s.Name
	}
	if err := b.sessions.Save(c, next); err != nil {
		logger.Error(c.Request.Context(), "failed to save session", "error", err)
	}
}

// page fills the layout fields shared by every page.
func (b *Base) page(c *gin.Context, title, active string, data any) *view.Page {
	p := &view.Page{
		Title:     title,
		Active:    active,
		RequestID: middleware.GetRequestID(c),
		Notice:    c.Query("notice"),
		Error:     c.Query("error"),
		Data:      data,
	}
	if s := middleware.GetSession(c); s != nil {
		p.User = s.DisplayName()
		p.Email = s.Email
	}
	return p
}

func (b *Base) render(c *gin.Context, status int, name string, p *view.Page) {
	b.persist(c)
	ctx := logger.With(c.Request.Context(), logger.PageKey, name)
	if err := b.views.Render(c.Writer, status, name, p); err != nil {
		logger.Error(ctx, "failed to render page", "error", err)
		c.String(http.StatusInternalServerError, "Internal server error")
	}
}

// redirect sends a 303 to path, attaching notice as a one-shot message.
func (b *Base) redirect(c *gin.Context, path, notice string) {
	b.redirectWith(c, path, "notice", notice)
}

// redirectError is redirect for a failed action.
func (b *Base) redirectError(c *gin.Context, path, msg string) {
	b.redirectWith(c, path, "error", msg)
}

func (b *Base) redirectWith(c *gin.Context, path, key, msg string) {
	b.persist(c)
	if msg != "" {
		if u, err := url.Parse(path); err == nil {
			q := u.Query()
			q.Set(key, msg)
			u.RawQuery = q.Encode()
			path = u.String()
		}
	}
	c.Redirect(http.StatusSeeOther, path)
}

// expired handles a 401 the client could not recover from: the session is
// dropped and the visitor is sent to sign in again.
func (b *Base) expired(c *gin.Context) {
	logger.Info(c.Request.Context(), "session expired")
	b.sessions.Clear(c)

	next := ""
	if c.Request.Method == http.MethodGet {
		next = c.Request.URL.RequestURI()
	} else if ref, err := url.Parse(c.GetHeader("Referer")); err == nil && ref.Path != "" {
		next = ref.RequestURI()
	}
	c.Redirect(http.StatusSeeOther, middleware.LoginURL(next))
}

// failed renders the error page for a backend failure, or signs the visitor
// out on 401. It reports whether resp was a failure.
func failed[T any](b *Base, c *gin.Context, resp service.Response[T], what string) bool {
	if resp.Success {
		return false
	}
	if resp.Unauthorized() {
		b.expired(c)
		return true
	}

	logger.Warn(c.Request.Context(), "backend call failed", "what", what, "status", resp.Status, "error", resp.Error)
	status := http.StatusBadGateway
	if resp.Status == http.StatusNotFound {
		status = http.StatusNotFound
	}
	p := b.page(c, "Something went wrong", "", nil)
	p.Error = what + ": " + resp.Error
	b.render(c, status, "error.html", p)
	return true
}

// today is local midnight in the configured calendar timezone.
func (b *Base) today() time.Time {
	now := b.now().In(b.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, b.loc)
}
