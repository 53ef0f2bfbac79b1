package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Payment metrics
	PaymentsCreatedTotal   *prometheus.CounterVec
	PaymentsFinalizedTotal *prometheus.CounterVec
	PaymentsRevenueTotal   *prometheus.CounterVec
	WebhooksReceivedTotal  *prometheus.CounterVec

	// Gateway metrics
	GatewayRequestsTotal   *prometheus.CounterVec
	GatewayRequestDuration *prometheus.HistogramVec
}

// New creates Metrics registered on reg. A nil reg means the default registerer.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "propmarket"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),

		PaymentsCreatedTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "payments_created_total",
				Help:      "Total number of payments created",
			},
			[]string{"kind"},
		),
		PaymentsFinalizedTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "payments_finalized_total",
				Help:      "Total number of payments moved to a terminal status",
			},
			[]string{"kind", "outcome"},
		),
		PaymentsRevenueTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "payments_revenue_total",
				Help:      "Revenue of successful payments in major currency units",
			},
			[]string{"kind"},
		),
		WebhooksReceivedTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "webhooks_received_total",
				Help:      "Total number of gateway webhook deliveries",
			},
			[]string{"provider", "result"},
		),

		GatewayRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "gateway",
				Name:      "requests_total",
				Help:      "Total number of payment gateway calls",
			},
			[]string{"provider", "operation", "status"},
		),
		GatewayRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "gateway",
				Name:      "request_duration_seconds",
				Help:      "Payment gateway call duration in seconds",
				Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 15, 30},
			},
			[]string{"provider", "operation"},
		),
	}
}

// RecordHTTPRequest records an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusClass(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordPaymentCreated counts a new pending payment.
func (m *Metrics) RecordPaymentCreated(kind string) {
	if m == nil {
		return
	}
	m.PaymentsCreatedTotal.WithLabelValues(kind).Inc()
}

// RecordPaymentFinalized counts a terminal transition. amount is only added for successes.
func (m *Metrics) RecordPaymentFinalized(kind, outcome string, amount int64) {
	if m == nil {
		return
	}
	m.PaymentsFinalizedTotal.WithLabelValues(kind, outcome).Inc()
	if outcome == "success" && amount > 0 {
		m.PaymentsRevenueTotal.WithLabelValues(kind).Add(float64(amount))
	}
}

// RecordWebhook counts a webhook delivery by result (processed, duplicate, ignored, rejected, error).
func (m *Metrics) RecordWebhook(provider, result string) {
	if m == nil {
		return
	}
	m.WebhooksReceivedTotal.WithLabelValues(provider, result).Inc()
}

// RecordGatewayRequest records one gateway call.
func (m *Metrics) RecordGatewayRequest(provider, operation, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.GatewayRequestsTotal.WithLabelValues(provider, operation, status).Inc()
	m.GatewayRequestDuration.WithLabelValues(provider, operation).Observe(duration.Seconds())
}

// statusClass converts an HTTP status code to its class label.
func statusClass(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500 && code < 600:
		return "5xx"
	default:
		return strconv.Itoa(code)
	}
}
