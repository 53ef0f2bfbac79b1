package gin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/propmarket/server/internal/domain/payment"
	"github.com/propmarket/server/internal/model"
	"github.com/propmarket/server/internal/port/inbound"
	"github.com/propmarket/server/internal/utils/logger"
	"github.com/propmarket/server/internal/utils/pagination"
)

// paymentAdminAdapter implements inbound.PaymentAdminHttpPort.
type paymentAdminAdapter struct {
	domain payment.PaymentDomain
	logger *logger.Logger
}

// NewPaymentAdminAdapter creates a new admin payment HTTP adapter.
func NewPaymentAdminAdapter(domain payment.PaymentDomain, log *logger.Logger) inbound.PaymentAdminHttpPort {
	return &paymentAdminAdapter{domain: domain, logger: log}
}

// ListAllPayments godoc
// @Summary      List all payments
// @Tags         admin
// @Security     BearerAuth
// @Param        kind     query  string  false  "listing, inspection or boost"
// @Param        status   query  string  false  "pending, success or failed"
// @Param        user_id  query  string  false  "Payer ID"
// @Param        page     query  int     false  "Page"
// @Param        limit    query  int     false  "Page size"
// @Success      200  {object}  model.PaginatedResponse[model.Payment]
// @Router       /payments/allpayments [get]
func (a *paymentAdminAdapter) ListAllPayments(c *gin.Context) {
	filter, ok := bindPaymentFilter(c)
	if !ok {
		return
	}
	filter.DefaultPagination(pagination.DefaultAdminLimit)

	payments, total, err := a.domain.ListPayments(c.Request.Context(), filter)
	if err != nil {
		handleError(c, a.logger, err)
		return
	}
	c.JSON(http.StatusOK, model.NewPaginatedResponse(payments, total, filter.Page, filter.Limit))
}

// GetRevenueAnalytics godoc
// @Summary      Revenue analytics
// @Tags         admin
// @Security     BearerAuth
// @Param        from  query  string  false  "Start date (YYYY-MM-DD)"
// @Param        to    query  string  false  "End date (YYYY-MM-DD), inclusive"
// @Success      200  {object}  model.RevenueAnalytics
// @Router       /payments/analytics [get]
func (a *paymentAdminAdapter) GetRevenueAnalytics(c *gin.Context) {
	var filter model.AnalyticsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, err.Error())
		return
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		badRequest(c, "to must not be before from")
		return
	}

	analytics, err := a.domain.GetRevenueAnalytics(c.Request.Context(), filter)
	if err != nil {
		handleError(c, a.logger, err)
		return
	}
	c.JSON(http.StatusOK, analytics)
}

// ExportPayments godoc
// @Summary      Export payments as XLSX
// @Description  Returns a time-limited download link when object storage is configured, the file otherwise.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        kind    query  string  false  "listing, inspection or boost"
// @Param        status  query  string  false  "pending, success or failed"
// @Param        from    query  string  false  "Start date (YYYY-MM-DD)"
// @Param        to      query  string  false  "End date (YYYY-MM-DD), inclusive"
// @Success      200  {object}  model.PaymentExport
// @Router       /payments/export [get]
func (a *paymentAdminAdapter) ExportPayments(c *gin.Context) {
	filter, ok := bindPaymentFilter(c)
	if !ok {
		return
	}

	export, err := a.domain.ExportPayments(c.Request.Context(), filter)
	if err != nil {
		handleError(c, a.logger, err)
		return
	}

	if export.URL != "" {
		c.JSON(http.StatusOK, export)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+export.FileName+`"`)
	c.Data(http.StatusOK, export.ContentType, export.Content)
}

// Compile-time check
var _ inbound.PaymentAdminHttpPort = (*paymentAdminAdapter)(nil)
