package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCacheHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(CacheHeaders())
	router.GET("/dashboard", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	router.GET("/static/css/app.css", func(c *gin.Context) { c.String(http.StatusOK, "body{}") })

	tests := []struct {
		path         string
		cacheControl string
		frameOptions string
	}{
		{"/dashboard", "no-cache, no-store, must-revalidate", "DENY"},
		{"/static/css/app.css", "public, max-age=3600, must-revalidate", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest("GET", tt.path, nil))

			if got := w.Header().Get("Cache-Control"); got != tt.cacheControl {
				t.Errorf("Expected Cache-Control '%s', got '%s'", tt.cacheControl, got)
			}
			if got := w.Header().Get("X-Frame-Options"); got != tt.frameOptions {
				t.Errorf("Expected X-Frame-Options '%s', got '%s'", tt.frameOptions, got)
			}
		})
	}
}
