// Package view renders the HTML pages. Templates and static assets are
// embedded at compile time.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/css/*.css
var staticFS embed.FS

// Pages lists every page template. Each is parsed together with the layout.
var Pages = []string{
	"login.html",
	"register.html",
	"dashboard.html",
	"calendar.html",
	"approvals.html",
	"contracts.html",
	"contract_new.html",
	"contract_edit.html",
	"contract_versions.html",
	"indexing.html",
	"templates.html",
	"workflows.html",
	"notifications.html",
	"search.html",
	"uploads.html",
	"settings.html",
	"error.html",
}

// Page is the data every template receives.
type Page struct {
	Title     string
	Active    string // nav entry to highlight
	User      string // display name, empty when signed out
	Email     string
	Notice    string
	Error     string
	RequestID string
	Data      any
}

// Engine holds the parsed page templates.
type Engine struct {
	templates map[string]*template.Template
}

// New parses all embedded templates.
func New() (*Engine, error) {
	funcs := Funcs()

	engine := &Engine{templates: make(map[string]*template.Template)}
	for _, page := range Pages {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(
			templateFS,
			"templates/layout.html",
			"templates/"+page,
		)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		engine.templates[page] = t
	}
	return engine, nil
}

// Render writes the named page with the given status.
func (e *Engine) Render(w http.ResponseWriter, status int, name string, data *Page) error {
	t, ok := e.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	// Buffer so a failing template does not leave a half-written 200.
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// RenderTo executes the named page into w without touching headers.
func (e *Engine) RenderTo(w io.Writer, name string, data *Page) error {
	t, ok := e.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return t.ExecuteTemplate(w, "layout.html", data)
}

// Static returns the embedded static assets rooted at static/.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
