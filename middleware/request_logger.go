package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/suhaib93102/CLM-Frontend/pkg/logger"
)

// RequestLogger writes one "request completed" line per request. The line
// carries the matched route, response size, redirect target and any
// handler errors; request_id and user come from the request context.
// Static assets are logged at debug level.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		attrs := []any{
			"status", status,
			"method", c.Request.Method,
			"path", path,
			"route", route,
			"latency_ms", time.Since(start).Milliseconds(),
			"bytes", c.Writer.Size(),
			"client_ip", c.ClientIP(),
		}
		if query != "" {
			attrs = append(attrs, "query", query)
		}
		if status >= 300 && status < 400 {
			attrs = append(attrs, "location", c.Writer.Header().Get("Location"))
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}

		// Session and page values are added further down the chain.
		log := logger.WithContext(c.Request.Context())
		switch {
		case status >= 500:
			log.Error("request completed", attrs...)
		case status >= 400:
			log.Warn("request completed", attrs...)
		case strings.HasPrefix(path, "/static/"):
			log.Debug("request completed", attrs...)
		default:
			log.Info("request completed", attrs...)
		}
	}
}
