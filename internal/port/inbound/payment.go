package inbound

import "github.com/gin-gonic/gin"

// PaymentHttpPort defines HTTP handler interface for payment operations.
type PaymentHttpPort interface {
	// CreateListingPayment handles POST /payments/listing/:listingId
	// Creates a pending listing fee payment.
	CreateListingPayment(c *gin.Context)

	// CreateInspectionPayment handles POST /payments/inspection/:listingId
	// Creates a pending inspection booking payment.
	CreateInspectionPayment(c *gin.Context)

	// CreateBoostPayment handles POST /payments/boost/:listingId
	CreateBoostPayment(c *gin.Context)

	// InitializePayment handles POST /payments/initialize/:paymentId
	// Opens a gateway checkout for a pending payment.
	InitializePayment(c *gin.Context)

	// VerifyPayment handles GET /payments/verify/:reference
	VerifyPayment(c *gin.Context)

	// RetryPayment handles POST /payments/retry/:paymentId
	// Issues a new reference for a pending or failed payment.
	RetryPayment(c *gin.Context)

	// GetPayment handles GET /payments/:paymentId
	GetPayment(c *gin.Context)

	// ListPaymentHistory handles GET /payments/history
	// Lists payments of the current user.
	ListPaymentHistory(c *gin.Context)
}

// PaymentAdminHttpPort defines HTTP handler interface for admin payment operations.
type PaymentAdminHttpPort interface {
	// ListAllPayments handles GET /payments/allpayments
	ListAllPayments(c *gin.Context)

	// GetRevenueAnalytics handles GET /payments/analytics
	GetRevenueAnalytics(c *gin.Context)

	// ExportPayments handles GET /payments/export
	// Streams an XLSX report or returns a download link.
	ExportPayments(c *gin.Context)
}

// WebhookHttpPort defines HTTP handler interface for webhook operations.
type WebhookHttpPort interface {
	// HandleWebhook handles POST /payments/webhook
	// Processes signed gateway callbacks.
	HandleWebhook(c *gin.Context)
}
