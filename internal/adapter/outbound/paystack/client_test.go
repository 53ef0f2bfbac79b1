package paystack

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/propmarket/server/internal/model"
	"github.com/propmarket/server/internal/port/outbound"
	"github.com/propmarket/server/internal/utils/metrics"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "sk_test_secret"

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *metrics.Metrics) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	m := metrics.New("test", prometheus.NewRegistry())
	c := NewClient(Config{SecretKey: testSecret, BaseURL: srv.URL, BreakerFailures: 3, BreakerTimeout: time.Minute},
		srv.Client(), m, zap.NewNop())
	return c, m
}

func TestClient_Initialize(t *testing.T) {
	ctx := context.Background()

	t.Run("sends kobo amount and returns checkout", func(t *testing.T) {
		var got initializeRequest
		c, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/transaction/initialize", r.URL.Path)
			assert.Equal(t, "Bearer "+testSecret, r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_, _ = w.Write([]byte(`{"status":true,"message":"Authorization URL created","data":{"authorization_url":"https://checkout.paystack.com/0peioxfhpn","access_code":"0peioxfhpn","reference":"LISTING_1_ABCDEFGH"}}`))
		})

		checkout, err := c.Initialize(ctx, &model.GatewayInitRequest{
			Email: "ada@propmarket.test", AmountMinor: 500000, Currency: "NGN",
			Reference: "LISTING_1_ABCDEFGH", CallbackURL: "https://propmarket.test/verify",
			Metadata: map[string]string{"kind": "listing"},
		})

		require.NoError(t, err)
		assert.Equal(t, "https://checkout.paystack.com/0peioxfhpn", checkout.CheckoutURL)
		assert.Equal(t, "0peioxfhpn", checkout.CheckoutToken)
		assert.Equal(t, int64(500000), got.Amount)
		assert.Equal(t, "listing", got.Metadata["kind"])
		assert.Equal(t, float64(1), testutil.ToFloat64(m.GatewayRequestsTotal.WithLabelValues("paystack", "initialize", "ok")))
	})

	t.Run("4xx is a rejection", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"status":false,"message":"Duplicate Transaction Reference"}`))
		})

		_, err := c.Initialize(ctx, &model.GatewayInitRequest{Reference: "R"})
		assert.ErrorIs(t, err, outbound.ErrGatewayRejected)
		assert.ErrorContains(t, err, "Duplicate Transaction Reference")
	})

	t.Run("5xx is unavailability", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := c.Initialize(ctx, &model.GatewayInitRequest{Reference: "R"})
		assert.ErrorIs(t, err, outbound.ErrGatewayUnavailable)
	})

	t.Run("deadline is unavailability", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)
		c, _ := newTestClient(t, stalledHandler(release))
		tctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()

		_, err := c.Initialize(tctx, &model.GatewayInitRequest{Reference: "R"})
		assert.ErrorIs(t, err, outbound.ErrGatewayUnavailable)
	})

	t.Run("client timeout bounds a stalled gateway", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(stalledHandler(release))
		defer srv.Close()
		defer close(release)

		httpClient := srv.Client()
		httpClient.Timeout = 50 * time.Millisecond
		c := NewClient(Config{SecretKey: testSecret, BaseURL: srv.URL, BreakerFailures: 3, BreakerTimeout: time.Minute},
			httpClient, metrics.New("test", prometheus.NewRegistry()), zap.NewNop())

		start := time.Now()
		_, err := c.Initialize(ctx, &model.GatewayInitRequest{Reference: "R"})
		assert.ErrorIs(t, err, outbound.ErrGatewayUnavailable)
		assert.Less(t, time.Since(start), 2*time.Second)
	})
}

// stalledHandler reads the request and then hangs until the client goes away
// or release is closed.
func stalledHandler(release <-chan struct{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}
}

func TestClient_Breaker(t *testing.T) {
	ctx := context.Background()

	t.Run("opens after consecutive unavailability", func(t *testing.T) {
		var hits atomic.Int32
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		for i := 0; i < 3; i++ {
			_, err := c.Verify(ctx, "R")
			assert.ErrorIs(t, err, outbound.ErrGatewayUnavailable)
		}
		assert.Equal(t, gobreaker.StateOpen, c.BreakerState())

		_, err := c.Verify(ctx, "R")
		assert.ErrorIs(t, err, outbound.ErrGatewayUnavailable)
		assert.Equal(t, int32(3), hits.Load())
	})

	t.Run("rejections do not trip", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"status":false,"message":"Transaction reference not found"}`))
		})

		for i := 0; i < 5; i++ {
			_, err := c.Verify(ctx, "R")
			assert.ErrorIs(t, err, outbound.ErrGatewayRejected)
		}
		assert.Equal(t, gobreaker.StateClosed, c.BreakerState())
	})
}

func TestClient_Verify(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		data       string
		wantStatus model.GatewayOutcome
		wantReason string
		wantAmount int64
		wantPaidAt bool
	}{
		{
			name:       "success",
			data:       `{"status":"success","reference":"R","amount":500000,"gateway_response":"Successful","paid_at":"2026-03-01T10:00:00.000Z"}`,
			wantStatus: model.GatewayOutcomeSuccess, wantReason: "Successful", wantAmount: 500000, wantPaidAt: true,
		},
		{
			name:       "failed",
			data:       `{"status":"failed","reference":"R","amount":500000,"gateway_response":"Declined"}`,
			wantStatus: model.GatewayOutcomeFailed, wantReason: "Declined", wantAmount: 500000,
		},
		{
			name:       "failed without reason",
			data:       `{"status":"failed","reference":"R","amount":500000}`,
			wantStatus: model.GatewayOutcomeFailed, wantReason: "Payment unsuccessful", wantAmount: 500000,
		},
		{
			name:       "ongoing",
			data:       `{"status":"ongoing","reference":"R","amount":"500000"}`,
			wantStatus: model.GatewayOutcomePending, wantAmount: 500000,
		},
		{
			name:       "abandoned",
			data:       `{"status":"abandoned","reference":"R","amount":500000}`,
			wantStatus: model.GatewayOutcomePending, wantAmount: 500000,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/transaction/verify/R", r.URL.Path)
				_, _ = w.Write([]byte(`{"status":true,"message":"Verification successful","data":` + tt.data + `}`))
			})

			v, err := c.Verify(ctx, "R")
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, v.Outcome)
			assert.Equal(t, tt.wantAmount, v.AmountMinor)
			assert.Equal(t, tt.wantPaidAt, v.PaidAt != nil)
			assert.JSONEq(t, tt.data, v.RawResponse)
			if tt.wantReason != "" {
				assert.Equal(t, tt.wantReason, v.FailureReason)
			}
		})
	}
}
