package gin

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/propmarket/server/internal/domain/notification"
	"github.com/propmarket/server/internal/model"
	"github.com/propmarket/server/internal/port/inbound"
	"github.com/propmarket/server/internal/utils/logger"
	"github.com/propmarket/server/internal/utils/middleware"
	"github.com/propmarket/server/internal/utils/pagination"
)

// streamHeartbeat keeps idle SSE connections open through proxies.
const streamHeartbeat = 25 * time.Second

// notificationAdapter implements inbound.NotificationHttpPort.
type notificationAdapter struct {
	domain notification.NotificationDomain
	logger *logger.Logger
}

// NewNotificationAdapter creates a new notification HTTP adapter.
func NewNotificationAdapter(domain notification.NotificationDomain, log *logger.Logger) inbound.NotificationHttpPort {
	return &notificationAdapter{domain: domain, logger: log}
}

// ListNotifications godoc
// @Summary      List notifications
// @Tags         notifications
// @Security     BearerAuth
// @Param        unread  query  bool  false  "Only unread"
// @Param        page    query  int   false  "Page"
// @Param        limit   query  int   false  "Page size"
// @Success      200  {object}  model.PaginatedResponse[model.Notification]
// @Router       /notifications [get]
func (a *notificationAdapter) ListNotifications(c *gin.Context) {
	var filter model.NotificationFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, err.Error())
		return
	}
	filter.DefaultPagination(pagination.DefaultAdminLimit)

	items, total, err := a.domain.List(c.Request.Context(), middleware.GetUserID(c), filter)
	if err != nil {
		handleError(c, a.logger, err)
		return
	}
	c.JSON(http.StatusOK, model.NewPaginatedResponse(items, total, filter.Page, filter.Limit))
}

// MarkRead godoc
// @Summary      Mark a notification read
// @Tags         notifications
// @Security     BearerAuth
// @Param        id  path  string  true  "Notification ID"
// @Success      204
// @Router       /notifications/{id}/read [patch]
func (a *notificationAdapter) MarkRead(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := a.domain.MarkRead(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		handleError(c, a.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UnreadCount godoc
// @Summary      Count unread notifications
// @Tags         notifications
// @Security     BearerAuth
// @Success      200  {object}  model.UnreadCountResponse
// @Router       /notifications/unread-count [get]
func (a *notificationAdapter) UnreadCount(c *gin.Context) {
	n, err := a.domain.UnreadCount(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		handleError(c, a.logger, err)
		return
	}
	c.JSON(http.StatusOK, &model.UnreadCountResponse{Unread: n})
}

// Stream godoc
// @Summary      Live notifications
// @Description  Server-sent events; each "notification" event carries one notification.
// @Tags         notifications
// @Security     BearerAuth
// @Produce      text/event-stream
// @Router       /notifications/stream [get]
func (a *notificationAdapter) Stream(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserID(c)

	messages, closeFn, err := a.domain.Subscribe(ctx, userID)
	if err != nil {
		handleError(c, a.logger, err)
		return
	}
	defer func() {
		if err := closeFn(); err != nil {
			a.logger.WithRequest(ctx).Warn("close notification stream", "error", err)
		}
	}()

	// The stream outlives the server write timeout.
	_ = http.NewResponseController(c.Writer).SetWriteDeadline(time.Time{})

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	heartbeat := time.NewTicker(streamHeartbeat)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case msg, ok := <-messages:
			if !ok {
				return false
			}
			c.SSEvent("notification", msg)
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", time.Now().UTC().Format(time.RFC3339))
			return true
		}
	})
}

// Compile-time check
var _ inbound.NotificationHttpPort = (*notificationAdapter)(nil)
