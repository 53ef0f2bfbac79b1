package gin

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/propmarket/server/internal/domain/payment"
	"github.com/propmarket/server/internal/port/inbound"
	"github.com/propmarket/server/internal/utils/logger"
	"github.com/propmarket/server/internal/utils/metrics"
)

// maxWebhookBody bounds the size of a webhook payload.
const maxWebhookBody = 1 << 20

// webhookAdapter implements inbound.WebhookHttpPort.
type webhookAdapter struct {
	domain   payment.PaymentDomain
	provider string
	metrics  *metrics.Metrics
	logger   *logger.Logger
}

// NewWebhookAdapter creates a new webhook HTTP adapter. provider labels metrics.
func NewWebhookAdapter(domain payment.PaymentDomain, provider string, m *metrics.Metrics, log *logger.Logger) inbound.WebhookHttpPort {
	return &webhookAdapter{domain: domain, provider: provider, metrics: m, logger: log}
}

// HandleWebhook godoc
// @Summary      Gateway webhook
// @Description  Signed gateway callback. The signature travels in the gateway's header.
// @Tags         webhooks
// @Accept       json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]any
// @Router       /payments/webhook [post]
func (a *webhookAdapter) HandleWebhook(c *gin.Context) {
	// The signature covers the raw bytes, so the body is read before any decoding.
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
	if err != nil {
		a.metrics.RecordWebhook(a.provider, "rejected")
		badRequest(c, "unreadable body")
		return
	}

	signature := c.GetHeader(a.domain.SignatureHeader())
	err = a.domain.HandleWebhook(c.Request.Context(), body, signature)
	switch {
	case err == nil:
		a.metrics.RecordWebhook(a.provider, "processed")
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	case errors.Is(err, payment.ErrInvalidSignature):
		a.metrics.RecordWebhook(a.provider, "rejected")
		a.logger.WithRequest(c.Request.Context()).Warn("webhook signature rejected", "client_ip", c.ClientIP())
		handleError(c, a.logger, err)
	default:
		a.metrics.RecordWebhook(a.provider, "error")
		handleError(c, a.logger, err)
	}
}

// Compile-time check
var _ inbound.WebhookHttpPort = (*webhookAdapter)(nil)
