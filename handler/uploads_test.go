package handler

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func (a *testApp) upload(t *testing.T, filename string, content []byte, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	part.Write(content)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/uploads", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func TestUploadForwardsFile(t *testing.T) {
	var received string
	app := newTestApp(t, backend{
		"POST /api/v1/private-uploads/": func(w http.ResponseWriter, r *http.Request) {
			file, header, err := r.FormFile("file")
			if err != nil {
				t.Errorf("Expected multipart file: %v", err)
				return
			}
			defer file.Close()
			data, _ := io.ReadAll(file)
			received = header.Filename + ":" + string(data)
			writeJSON(w, http.StatusCreated, map[string]any{"key": "u/1", "filename": header.Filename})
		},
	})

	w := app.upload(t, "contract.pdf", []byte("%PDF-1.7 body"), app.cookie(t, "access-1", "refresh-1"))
	assertRedirect(t, w, "/uploads?notice="+url.QueryEscape("Uploaded contract.pdf"))
	if received != "contract.pdf:%PDF-1.7 body" {
		t.Errorf("Expected whole file forwarded, got %q", received)
	}
}

func TestUploadRejects(t *testing.T) {
	app := newTestApp(t, backend{
		"POST /api/v1/private-uploads/": func(w http.ResponseWriter, r *http.Request) {
			t.Error("Backend must not receive rejected files")
		},
	})
	cookie := app.cookie(t, "access-1", "refresh-1")

	tests := []struct {
		name, filename string
		content        []byte
		want           string
	}{
		{"unsupported extension", "setup.exe", []byte("MZ"), "Unsupported file type"},
		{"renamed html", "invoice.pdf", []byte("<html><body>hi</body></html>"), "Invalid file type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := app.upload(t, tt.filename, tt.content, cookie)
			assertRedirect(t, w, "/uploads?error="+url.QueryEscape(tt.want))
		})
	}
}

func TestUploadsList(t *testing.T) {
	app := newTestApp(t, backend{
		"GET /api/v1/private-uploads/": respond(http.StatusOK, []map[string]any{
			{"key": "u/1", "filename": "msa.pdf", "file_type": "application/pdf", "size": 1536},
			{"key": "u/2", "filename": "notes.txt", "file_type": "text/plain", "size": 512},
		}),
	})
	w := app.get("/uploads", app.cookie(t, "access-1", "refresh-1"))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, "msa.pdf") || !strings.Contains(body, "2.0 KB") {
		t.Error("Expected uploads with total size")
	}
	if !strings.Contains(body, `accept=".doc,.docx,.jpeg,.jpg,.pdf,.png,.txt"`) {
		t.Error("Expected accept list")
	}
}

func TestUploadOpenRedirectsToSignedURL(t *testing.T) {
	app := newTestApp(t, backend{
		"GET /api/v1/private-uploads/url/": func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("key") != "u/1" {
				t.Errorf("Expected key u/1, got %s", r.URL.Query().Get("key"))
			}
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "url": "https://files.example/u/1?sig=abc"})
		},
	})
	w := app.get("/uploads/open?key=u%2F1", app.cookie(t, "access-1", "refresh-1"))
	if w.Code != http.StatusFound {
		t.Fatalf("Expected status 302, got %d", w.Code)
	}
	if got := w.Header().Get("Location"); got != "https://files.example/u/1?sig=abc" {
		t.Errorf("Unexpected location %s", got)
	}
}

func TestUploadDelete(t *testing.T) {
	app := newTestApp(t, backend{
		"DELETE /api/v1/private-uploads/": respond(http.StatusOK, map[string]any{"success": true}),
	})
	cookie := app.cookie(t, "access-1", "refresh-1")
	assertRedirect(t, app.post("/uploads/delete", url.Values{"key": {"u/1"}}, cookie), "/uploads?notice=File+deleted")
	assertRedirect(t, app.post("/uploads/delete", url.Values{}, cookie), "/uploads?error="+url.QueryEscape("Missing file key"))
}
