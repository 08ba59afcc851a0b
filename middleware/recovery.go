package middleware

import (
	"fmt"
	"html"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/suhaib93102/CLM-Frontend/pkg/logger"
)

const errorPage = `<!DOCTYPE html><html><head><title>Something went wrong</title><link rel="stylesheet" href="/static/css/app.css"></head><body><main class="error-page"><h1>Something went wrong</h1><p>Please try again. If the problem persists, quote request <code>%s</code>.</p><p><a href="/dashboard">Back to dashboard</a></p></main></body></html>`

// Recovery turns a panic into a 500. JSON clients get a JSON body, browsers
// get a minimal error page.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				requestID := GetRequestID(c)

				logger.Error(c.Request.Context(), "panic recovered",
					"error", err,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"stack", string(debug.Stack()),
				)

				if wantsJSON(c) {
					c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
						"error":      "Internal server error",
						"request_id": requestID,
					})
					return
				}
				c.Data(http.StatusInternalServerError, "text/html; charset=utf-8",
					[]byte(fmt.Sprintf(errorPage, html.EscapeString(requestID))))
				c.Abort()
			}
		}()

		c.Next()
	}
}

func wantsJSON(c *gin.Context) bool {
	if strings.HasPrefix(c.Request.URL.Path, "/api") || c.Request.URL.Path == "/health" {
		return true
	}
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}
