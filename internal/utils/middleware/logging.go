package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/propmarket/server/internal/utils/logger"
)

// Logging returns a middleware that logs HTTP requests.
// Requests to skipPaths (health checks, scrapes) are not logged.
func Logging(log *logger.Logger, skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]bool, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = true
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		if skip[path] {
			return
		}

		status := c.Writer.Status()
		attrs := []any{
			"status", status,
			"method", c.Request.Method,
			"path", path,
			"route", c.FullPath(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if query != "" {
			attrs = append(attrs, "query", query)
		}
		if ua := c.Request.UserAgent(); ua != "" {
			attrs = append(attrs, "user_agent", ua)
		}
		if userID := GetUserID(c); userID != uuid.Nil {
			attrs = append(attrs, "user_id", userID.String())
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}

		l := log.WithRequest(c.Request.Context())
		const msg = "HTTP Request"
		switch {
		case status >= 500:
			l.Error(msg, attrs...)
		case status >= 400:
			l.Warn(msg, attrs...)
		default:
			l.Info(msg, attrs...)
		}
	}
}
