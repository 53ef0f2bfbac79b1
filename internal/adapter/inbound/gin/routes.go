package gin

import (
	"github.com/gin-gonic/gin"
	"github.com/propmarket/server/internal/port/inbound"
)

// RouteMiddleware holds the per-group middleware chains. Nil entries are skipped.
type RouteMiddleware struct {
	// Auth authenticates the caller and resolves their role.
	Auth []gin.HandlerFunc
	// Admin runs after Auth on admin-only routes.
	Admin gin.HandlerFunc
	// PublicLimit limits unauthenticated endpoints per client IP.
	PublicLimit gin.HandlerFunc
	// UserLimit limits authenticated endpoints per user.
	UserLimit gin.HandlerFunc
	// Idempotency replays repeated POSTs carrying an Idempotency-Key.
	Idempotency gin.HandlerFunc
}

// chain copies base and appends the non-nil extra handlers.
func chain(base []gin.HandlerFunc, extra ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(base)+len(extra))
	for _, h := range base {
		if h != nil {
			out = append(out, h)
		}
	}
	for _, h := range extra {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}

// RegisterPaymentRoutes registers payment, admin and webhook routes.
func RegisterPaymentRoutes(
	r *gin.RouterGroup,
	payments inbound.PaymentHttpPort,
	admin inbound.PaymentAdminHttpPort,
	webhook inbound.WebhookHttpPort,
	mw RouteMiddleware,
) {
	g := r.Group("/payments")

	public := g.Group("", chain(nil, mw.PublicLimit)...)
	{
		public.GET("/verify/:reference", payments.VerifyPayment)
		public.POST("/webhook", webhook.HandleWebhook)
	}

	user := g.Group("", chain(mw.Auth, mw.UserLimit, mw.Idempotency)...)
	{
		user.POST("/listing/:listingId", payments.CreateListingPayment)
		user.POST("/inspection/:listingId", payments.CreateInspectionPayment)
		user.POST("/boost/:listingId", payments.CreateBoostPayment)
		user.POST("/initialize/:paymentId", payments.InitializePayment)
		user.POST("/retry/:paymentId", payments.RetryPayment)
		user.GET("/history", payments.ListPaymentHistory)
		user.GET("/:paymentId", payments.GetPayment)
	}

	adminGroup := g.Group("", chain(mw.Auth, mw.Admin)...)
	{
		adminGroup.GET("/allpayments", admin.ListAllPayments)
		adminGroup.GET("/analytics", admin.GetRevenueAnalytics)
		adminGroup.GET("/export", admin.ExportPayments)
	}
}

// RegisterNotificationRoutes registers in-app notification routes.
func RegisterNotificationRoutes(r *gin.RouterGroup, notifications inbound.NotificationHttpPort, mw RouteMiddleware) {
	g := r.Group("/notifications", chain(mw.Auth, mw.UserLimit)...)
	{
		g.GET("", notifications.ListNotifications)
		g.GET("/unread-count", notifications.UnreadCount)
		g.GET("/stream", notifications.Stream)
		g.PATCH("/:id/read", notifications.MarkRead)
	}
}
