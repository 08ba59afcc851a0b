package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"

	"github.com/suhaib93102/CLM-Frontend/config"
	"github.com/suhaib93102/CLM-Frontend/middleware"
	"github.com/suhaib93102/CLM-Frontend/service"
	"github.com/suhaib93102/CLM-Frontend/view"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testNow is a Monday.
var testNow = time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

type testApp struct {
	router   *gin.Engine
	sessions *middleware.Sessions
	base     *Base
}

// newTestApp wires the full router against a fake backend.
func newTestApp(t *testing.T, backend http.Handler) *testApp {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	views, err := view.New()
	if err != nil {
		t.Fatalf("Failed to parse templates: %v", err)
	}
	sessions := middleware.NewSessions(&config.SessionConfig{
		Secret:      "handler-test-secret-0123",
		CookieName:  config.DefaultCookieName,
		ExpireHours: 1,
	})
	api := service.NewClient(&config.APIConfig{BaseURL: srv.URL, TimeoutSeconds: 5})

	base := NewBase(api, sessions, views, time.UTC)
	base.now = func() time.Time { return testNow }

	router := gin.New()
	router.Use(middleware.LoadSession(sessions))
	Register(router, base)

	return &testApp{router: router, sessions: sessions, base: base}
}

func (a *testApp) cookie(t *testing.T, access, refresh string) *http.Cookie {
	t.Helper()
	value, _, err := a.sessions.Issue(&middleware.Session{
		Access:  access,
		Refresh: refresh,
		Email:   "ada@example.com",
		Name:    "Ada Lovelace",
	})
	if err != nil {
		t.Fatalf("Failed to issue session: %v", err)
	}
	return &http.Cookie{Name: config.DefaultCookieName, Value: value}
}

func (a *testApp) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) post(path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// responseCookie returns the session cookie set on w, or nil.
func responseCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == config.DefaultCookieName {
			return c
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// backend routes "METHOD /path" to a handler. Unknown routes answer 404.
type backend map[string]http.HandlerFunc

func (b backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h, ok := b[r.Method+" "+r.URL.Path]; ok {
		h(w, r)
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
}

func respond(status int, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, status, v)
	}
}

func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, want string) {
	t.Helper()
	if w.Code != http.StatusSeeOther {
		t.Fatalf("Expected status 303, got %d: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != want {
		t.Errorf("Expected redirect to %s, got %s", want, got)
	}
}

func (a *testApp) postWithReferer(path string, form url.Values, cookie *http.Cookie, referer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", referer)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// newBackendServer starts b and returns its URL.
func newBackendServer(t *testing.T, b backend) string {
	t.Helper()
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)
	return srv.URL
}
