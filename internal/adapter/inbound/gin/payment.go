package gin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/propmarket/server/internal/domain/payment"
	"github.com/propmarket/server/internal/model"
	"github.com/propmarket/server/internal/port/inbound"
	"github.com/propmarket/server/internal/utils/logger"
	"github.com/propmarket/server/internal/utils/metrics"
	"github.com/propmarket/server/internal/utils/middleware"
)

// paymentAdapter implements inbound.PaymentHttpPort.
type paymentAdapter struct {
	domain  payment.PaymentDomain
	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewPaymentAdapter creates a new payment HTTP adapter.
func NewPaymentAdapter(domain payment.PaymentDomain, m *metrics.Metrics, log *logger.Logger) inbound.PaymentHttpPort {
	return &paymentAdapter{domain: domain, metrics: m, logger: log}
}

// CreateListingPayment godoc
// @Summary      Create listing fee payment
// @Tags         payments
// @Security     BearerAuth
// @Param        listingId  path  string  true  "Listing ID"
// @Success      201  {object}  model.CreatePaymentResponse
// @Router       /payments/listing/{listingId} [post]
func (a *paymentAdapter) CreateListingPayment(c *gin.Context) {
	a.createPayment(c, model.PaymentKindListing, nil)
}

// CreateInspectionPayment godoc
// @Summary      Create inspection booking payment
// @Tags         payments
// @Security     BearerAuth
// @Param        listingId  path  string  true  "Listing ID"
// @Success      201  {object}  model.CreatePaymentResponse
// @Router       /payments/inspection/{listingId} [post]
func (a *paymentAdapter) CreateInspectionPayment(c *gin.Context) {
	a.createPayment(c, model.PaymentKindInspection, nil)
}

// CreateBoostPayment godoc
// @Summary      Create listing boost payment
// @Tags         payments
// @Security     BearerAuth
// @Param        listingId  path  string                    true  "Listing ID"
// @Param        body       body  model.CreateBoostRequest  true  "Boost duration"
// @Success      201  {object}  model.CreatePaymentResponse
// @Router       /payments/boost/{listingId} [post]
func (a *paymentAdapter) CreateBoostPayment(c *gin.Context) {
	var req model.CreateBoostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "days is required")
		return
	}
	a.createPayment(c, model.PaymentKindBoost, &req.Days)
}

func (a *paymentAdapter) createPayment(c *gin.Context, kind model.PaymentKind, boostDays *int) {
	listingID, ok := parseUUIDParam(c, "listingId")
	if !ok {
		return
	}

	p, err := a.domain.CreatePayment(c.Request.Context(), &payment.CreatePaymentInput{
		Actor:     middleware.GetActor(c),
		Kind:      kind,
		TargetID:  listingID,
		BoostDays: boostDays,
	})
	if err != nil {
		handleError(c, a.logger, err)
		return
	}

	a.metrics.RecordPaymentCreated(string(kind))
	c.JSON(http.StatusCreated, &model.CreatePaymentResponse{
		PaymentID: p.ID,
		Kind:      p.Kind,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Reference: p.Reference,
		BoostDays: p.BoostDays,
	})
}

// InitializePayment godoc
// @Summary      Open a gateway checkout
// @Tags         payments
// @Security     BearerAuth
// @Param        paymentId  path  string  true  "Payment ID"
// @Success      200  {object}  model.CheckoutResponse
// @Router       /payments/initialize/{paymentId} [post]
func (a *paymentAdapter) InitializePayment(c *gin.Context) {
	paymentID, ok := parseUUIDParam(c, "paymentId")
	if !ok {
		return
	}

	resp, err := a.domain.InitializePayment(c.Request.Context(), paymentID, middleware.GetActor(c))
	if err != nil {
		handleError(c, a.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyPayment godoc
// @Summary      Verify a payment reference with the gateway
// @Tags         payments
// @Param        reference  path  string  true  "Payment reference"
// @Success      200  {object}  model.PaymentStatusResponse
// @Router       /payments/verify/{reference} [get]
func (a *paymentAdapter) VerifyPayment(c *gin.Context) {
	reference := c.Param("reference")
	if reference == "" {
		badRequest(c, "reference is required")
		return
	}

	resp, err := a.domain.VerifyPayment(c.Request.Context(), reference)
	if err != nil {
		handleError(c, a.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RetryPayment godoc
// @Summary      Issue a new reference for a pending or failed payment
// @Tags         payments
// @Security     BearerAuth
// @Param        paymentId  path  string  true  "Payment ID"
// @Success      200  {object}  model.RetryResponse
// @Router       /payments/retry/{paymentId} [post]
func (a *paymentAdapter) RetryPayment(c *gin.Context) {
	paymentID, ok := parseUUIDParam(c, "paymentId")
	if !ok {
		return
	}

	p, err := a.domain.RetryPayment(c.Request.Context(), paymentID, middleware.GetActor(c))
	if err != nil {
		handleError(c, a.logger, err)
		return
	}
	c.JSON(http.StatusOK, &model.RetryResponse{
		PaymentID: p.ID,
		Reference: p.Reference,
		Status:    p.Status,
		Amount:    p.Amount,
	})
}

// GetPayment godoc
// @Summary      Get a payment
// @Tags         payments
// @Security     BearerAuth
// @Param        paymentId  path  string  true  "Payment ID"
// @Success      200  {object}  model.Payment
// @Router       /payments/{paymentId} [get]
func (a *paymentAdapter) GetPayment(c *gin.Context) {
	paymentID, ok := parseUUIDParam(c, "paymentId")
	if !ok {
		return
	}

	p, err := a.domain.GetPayment(c.Request.Context(), paymentID, middleware.GetActor(c))
	if err != nil {
		handleError(c, a.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListPaymentHistory godoc
// @Summary      List the caller's payments
// @Tags         payments
// @Security     BearerAuth
// @Param        kind    query  string  false  "listing, inspection or boost"
// @Param        status  query  string  false  "pending, success or failed"
// @Param        page    query  int     false  "Page"
// @Param        limit   query  int     false  "Page size"
// @Success      200  {object}  model.PaginatedResponse[model.Payment]
// @Router       /payments/history [get]
func (a *paymentAdapter) ListPaymentHistory(c *gin.Context) {
	filter, ok := bindPaymentFilter(c)
	if !ok {
		return
	}
	filter.UserID = nil
	filter.DefaultPagination(0)

	payments, total, err := a.domain.ListUserPayments(c.Request.Context(), middleware.GetActor(c), filter)
	if err != nil {
		handleError(c, a.logger, err)
		return
	}
	c.JSON(http.StatusOK, model.NewPaginatedResponse(payments, total, filter.Page, filter.Limit))
}

// Compile-time check
var _ inbound.PaymentHttpPort = (*paymentAdapter)(nil)
