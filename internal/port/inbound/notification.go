package inbound

import "github.com/gin-gonic/gin"

// NotificationHttpPort defines HTTP handler interface for in-app notifications.
type NotificationHttpPort interface {
	// ListNotifications handles GET /notifications
	ListNotifications(c *gin.Context)

	// MarkRead handles PATCH /notifications/:id/read
	MarkRead(c *gin.Context)

	// UnreadCount handles GET /notifications/unread-count
	UnreadCount(c *gin.Context)

	// Stream handles GET /notifications/stream
	// Pushes live notifications as server-sent events.
	Stream(c *gin.Context)
}
