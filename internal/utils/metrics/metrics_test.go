package metrics

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/propmarket/server/internal/infra/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMetrics(t *testing.T) *Metrics {
	t.Helper()
	return New("test", prometheus.NewRegistry())
}

func TestNew(t *testing.T) {
	m := newTestMetrics(t)
	assert.NotNil(t, m.HTTPRequestsTotal)
	assert.NotNil(t, m.PaymentsFinalizedTotal)
	assert.NotNil(t, m.GatewayRequestDuration)
}

func TestRecordHTTPRequest(t *testing.T) {
	m := newTestMetrics(t)

	m.RecordHTTPRequest(http.MethodGet, "/api/v1/payments/verify/:reference", http.StatusOK, 30*time.Millisecond)
	m.RecordHTTPRequest(http.MethodGet, "/api/v1/payments/verify/:reference", http.StatusOK, 10*time.Millisecond)
	m.RecordHTTPRequest(http.MethodPost, "/api/v1/payments/webhook", http.StatusUnauthorized, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/payments/verify/:reference", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/payments/webhook", "4xx")))
}

func TestStatusClass(t *testing.T) {
	tests := map[int]string{200: "2xx", 201: "2xx", 302: "3xx", 409: "4xx", 503: "5xx", 99: "99"}
	for code, want := range tests {
		assert.Equal(t, want, statusClass(code))
	}
}

func TestRecordGatewayRequest(t *testing.T) {
	m := newTestMetrics(t)
	m.RecordGatewayRequest("paystack", "verify", "ok", 120*time.Millisecond)
	m.RecordGatewayRequest("paystack", "verify", "unavailable", 15*time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.GatewayRequestsTotal.WithLabelValues("paystack", "verify", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GatewayRequestsTotal.WithLabelValues("paystack", "verify", "unavailable")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordHTTPRequest("GET", "/", 200, time.Millisecond)
		m.RecordPaymentCreated("listing")
		m.RecordPaymentFinalized("listing", "success", 5000)
		m.RecordWebhook("paystack", "processed")
		m.RecordGatewayRequest("paystack", "initialize", "ok", time.Millisecond)
	})
}

func TestPaymentEventHandler(t *testing.T) {
	m := newTestMetrics(t)
	h := NewPaymentEventHandler(m)
	bus := events.NewBus(zap.NewNop())
	bus.Register(h)

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, events.NewPaymentSucceededEvent(uuid.New(), uuid.New(), uuid.New(), "boost", 9000, "NGN", "BOOST_1_AAAAAAAA", "paystack", 14, time.Now())))
	require.NoError(t, bus.Publish(ctx, events.NewPaymentSucceededEvent(uuid.New(), uuid.New(), uuid.New(), "boost", 5000, "NGN", "BOOST_2_AAAAAAAA", "paystack", 7, time.Now())))
	require.NoError(t, bus.Publish(ctx, events.NewPaymentFailedEvent(uuid.New(), uuid.New(), uuid.New(), "listing", 5000, "LISTING_1_AAAAAAAA", "paystack", "declined")))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.PaymentsFinalizedTotal.WithLabelValues("boost", "success")))
	assert.Equal(t, 14000.0, testutil.ToFloat64(m.PaymentsRevenueTotal.WithLabelValues("boost")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PaymentsFinalizedTotal.WithLabelValues("listing", "failed")))
}
