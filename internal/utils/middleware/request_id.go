package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/propmarket/server/internal/utils/requestctx"
)

const (
	// RequestIDHeader carries the correlation ID in and out of the service.
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey is the gin context key of the correlation ID.
	RequestIDKey = "request_id"

	maxRequestIDLength = 128
)

// RequestID tags every request with a correlation ID. A caller supplied ID is
// kept when it is short printable ASCII. The ID and client IP also travel on
// the request context for the zap loggers.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if !validRequestID(id) {
			id = uuid.NewString()
		}

		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)

		ctx := requestctx.WithClientIP(requestctx.WithRequestID(c.Request.Context(), id), c.ClientIP())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetRequestID returns the correlation ID set by RequestID.
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}
