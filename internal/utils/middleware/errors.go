package middleware

import (
	"github.com/gin-gonic/gin"
	apperrors "github.com/propmarket/server/internal/utils/errors"
)

// abort stops the chain with the JSON envelope of err.
func abort(c *gin.Context, err *apperrors.AppError) {
	c.AbortWithStatusJSON(err.StatusCode, err.ToResponse())
}
