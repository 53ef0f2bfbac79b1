package gin

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/propmarket/server/internal/model"
)

// parseUUIDParam parses a UUID path parameter, writing a 400 on failure.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// bindPaymentFilter binds and validates payment query filters.
func bindPaymentFilter(c *gin.Context) (model.PaymentFilter, bool) {
	var filter model.PaymentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, err.Error())
		return filter, false
	}
	if raw := c.Query("user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			badRequest(c, "invalid user_id")
			return filter, false
		}
		filter.UserID = &id
	}
	if filter.Kind != nil && !filter.Kind.IsValid() {
		badRequest(c, "invalid kind")
		return filter, false
	}
	if filter.Status != nil && !filter.Status.IsValid() {
		badRequest(c, "invalid status")
		return filter, false
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		badRequest(c, "to must not be before from")
		return filter, false
	}
	return filter, true
}
