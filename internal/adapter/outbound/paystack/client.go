package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/propmarket/server/internal/port/outbound"
	"github.com/propmarket/server/internal/utils/metrics"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const (
	providerName    = "paystack"
	signatureHeader = "x-paystack-signature"
	maxResponseSize = 1 << 20
)

// Config holds Paystack client settings.
type Config struct {
	SecretKey       string
	BaseURL         string
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

// envelope is the shape of every Paystack API response.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client implements outbound.PaymentGatewayPort against the Paystack API.
type Client struct {
	cfg     Config
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*envelope]
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewClient creates a new Paystack gateway client. m may be nil.
func NewClient(cfg Config, httpClient *http.Client, m *metrics.Metrics, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.paystack.co"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = 5
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = 30 * time.Second
	}

	c := &Client{
		cfg:     cfg,
		http:    httpClient,
		metrics: m,
		logger:  logger.Named("paystack"),
	}
	c.breaker = gobreaker.NewCircuitBreaker[*envelope](gobreaker.Settings{
		Name:        providerName,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		// A refusal is an answer; only unavailability trips the breaker.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, outbound.ErrGatewayRejected)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("gateway circuit breaker state changed",
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return c
}

func (c *Client) Name() string            { return providerName }
func (c *Client) SignatureHeader() string { return signatureHeader }

// BreakerState reports the circuit breaker state.
func (c *Client) BreakerState() gobreaker.State {
	return c.breaker.State()
}

// call performs one API request through the breaker and returns the decoded envelope.
func (c *Client) call(ctx context.Context, operation, method, path string, body interface{}) (*envelope, error) {
	start := time.Now()
	env, err := c.breaker.Execute(func() (*envelope, error) {
		return c.do(ctx, method, path, body)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = fmt.Errorf("%w: circuit breaker %v", outbound.ErrGatewayUnavailable, err)
	}

	status := "ok"
	switch {
	case errors.Is(err, outbound.ErrGatewayRejected):
		status = "rejected"
	case err != nil:
		status = "unavailable"
	}
	c.metrics.RecordGatewayRequest(providerName, operation, status, time.Since(start))
	return env, err
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: encode request: %v", outbound.ErrGatewayRejected, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", outbound.ErrGatewayRejected, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.SecretKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", outbound.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", outbound.ErrGatewayUnavailable, err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("%w: status %d", outbound.ErrGatewayUnavailable, resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: rate limited", outbound.ErrGatewayUnavailable)
	case resp.StatusCode >= http.StatusBadRequest:
		msg := env.Message
		if decodeErr != nil || msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: status %d: %s", outbound.ErrGatewayRejected, resp.StatusCode, msg)
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("%w: decode response: %v", outbound.ErrGatewayUnavailable, decodeErr)
	}
	if !env.Status {
		return nil, fmt.Errorf("%w: %s", outbound.ErrGatewayRejected, env.Message)
	}
	return &env, nil
}

// Compile-time check
var _ outbound.PaymentGatewayPort = (*Client)(nil)
