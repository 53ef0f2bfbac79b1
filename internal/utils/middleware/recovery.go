package middleware

import (
	"runtime/debug"

	"github.com/gin-gonic/gin"
	apperrors "github.com/propmarket/server/internal/utils/errors"
	"github.com/propmarket/server/internal/utils/logger"
)

// Recovery turns a handler panic into a 500 error envelope.
// Nothing is written when the handler already started the response.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.New(nil)
	}

	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			log.WithRequest(c.Request.Context()).Error("handler panicked",
				"panic", r,
				"route", c.FullPath(),
				"method", c.Request.Method,
				"stack", string(debug.Stack()),
			)
			if c.Writer.Written() {
				c.Abort()
				return
			}
			abort(c, apperrors.Internal("internal server error", nil))
		}()
		c.Next()
	}
}
