package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// CacheHeaders marks rendered pages as private and lets static assets be cached.
func CacheHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if strings.HasPrefix(path, "/static/") {
			c.Header("Cache-Control", "public, max-age=3600, must-revalidate")
			c.Next()
			return
		}

		// Pages embed the user's data.
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "same-origin")
		c.Next()
	}
}
