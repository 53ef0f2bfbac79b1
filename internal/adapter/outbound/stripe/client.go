package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/propmarket/server/internal/model"
	"github.com/propmarket/server/internal/port/outbound"
	"github.com/propmarket/server/internal/utils/metrics"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

const (
	providerName    = "stripe"
	signatureHeader = "Stripe-Signature"
)

// Config holds Stripe settings.
type Config struct {
	SecretKey     string
	WebhookSecret string
	// SuccessURL receives the customer after checkout; {CHECKOUT_SESSION_ID} is expanded by Stripe.
	SuccessURL string
	CancelURL  string
}

// Client implements outbound.PaymentGatewayPort with Stripe Checkout.
type Client struct {
	cfg     Config
	api     *client.API
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewClient creates a new Stripe gateway client. m may be nil.
func NewClient(cfg Config, httpClient *http.Client, m *metrics.Metrics, logger *zap.Logger) *Client {
	backendCfg := &stripe.BackendConfig{HTTPClient: httpClient}
	api := &client.API{}
	api.Init(cfg.SecretKey, &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, backendCfg),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, backendCfg),
	})

	return &Client{
		cfg:     cfg,
		api:     api,
		metrics: m,
		logger:  logger.Named("stripe"),
	}
}

func (c *Client) Name() string            { return providerName }
func (c *Client) SignatureHeader() string { return signatureHeader }

// Initialize creates a Checkout Session for the payment reference.
func (c *Client) Initialize(ctx context.Context, req *model.GatewayInitRequest) (*model.GatewayCheckout, error) {
	metadata := map[string]string{"reference": req.Reference}
	for k, v := range req.Metadata {
		metadata[k] = v
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		ClientReferenceID: stripe.String(req.Reference),
		SuccessURL:        stripe.String(c.successURL(req.CallbackURL, req.Reference)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(req.Currency)),
					UnitAmount: stripe.Int64(req.AmountMinor),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
				},
			},
		},
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: metadata,
		},
	}
	if req.Email != "" {
		params.CustomerEmail = stripe.String(req.Email)
	}
	if c.cfg.CancelURL != "" {
		params.CancelURL = stripe.String(c.cfg.CancelURL)
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	start := time.Now()
	session, err := c.api.CheckoutSessions.New(params)
	c.record("initialize", err, start)
	if err != nil {
		return nil, classify(err)
	}

	return &model.GatewayCheckout{
		CheckoutURL:   session.URL,
		CheckoutToken: session.ID,
		Reference:     req.Reference,
	}, nil
}

// Verify looks the reference up among payment intents.
func (c *Client) Verify(ctx context.Context, reference string) (*model.GatewayVerification, error) {
	params := &stripe.PaymentIntentSearchParams{}
	params.Query = fmt.Sprintf("metadata['reference']:'%s'", strings.ReplaceAll(reference, "'", ""))
	params.Context = ctx

	start := time.Now()
	iter := c.api.PaymentIntents.Search(params)
	var best *stripe.PaymentIntent
	for iter.Next() {
		pi := iter.PaymentIntent()
		if best == nil || pi.Status == stripe.PaymentIntentStatusSucceeded {
			best = pi
		}
	}
	err := iter.Err()
	c.record("verify", err, start)
	if err != nil {
		return nil, classify(err)
	}

	if best == nil {
		return &model.GatewayVerification{Reference: reference, Outcome: model.GatewayOutcomePending}, nil
	}

	raw, _ := json.Marshal(best)
	outcome, reason := OutcomeOf(best)
	return &model.GatewayVerification{
		Reference:     reference,
		Outcome:       outcome,
		AmountMinor:   best.Amount,
		FailureReason: reason,
		RawResponse:   string(raw),
	}, nil
}

// ParseWebhook verifies the Stripe-Signature header and decodes payment events.
//
// A declined attempt (payment_intent.payment_failed) leaves the Checkout
// Session open for another card, so it is ignored. Only a canceled intent or
// an expired session ends the payment.
func (c *Client) ParseWebhook(payload []byte, signature string) (*model.GatewayWebhookEvent, error) {
	if c.cfg.WebhookSecret == "" || signature == "" {
		return nil, outbound.ErrInvalidSignature
	}
	event, err := webhook.ConstructEventWithOptions(payload, signature, c.cfg.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", outbound.ErrInvalidSignature, err)
	}

	evt := &model.GatewayWebhookEvent{
		EventID:   event.ID,
		EventType: string(event.Type),
		Type:      model.GatewayEventIgnored,
		RawData:   string(payload),
	}

	switch event.Type {
	case "payment_intent.succeeded", "payment_intent.payment_failed", "payment_intent.canceled":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return nil, fmt.Errorf("%w: %v", outbound.ErrMalformedWebhook, err)
		}
		evt.Reference = pi.Metadata["reference"]
		evt.AmountMinor = pi.Amount

		switch event.Type {
		case "payment_intent.succeeded":
			evt.Type = model.GatewayEventSuccess
			if event.Created > 0 {
				paidAt := time.Unix(event.Created, 0).UTC()
				evt.PaidAt = &paidAt
			}
		case "payment_intent.canceled":
			evt.Type = model.GatewayEventFailed
			_, evt.FailureReason = OutcomeOf(&pi)
		default:
			if pi.LastPaymentError != nil {
				evt.FailureReason = pi.LastPaymentError.Msg
			}
			c.logger.Info("payment attempt declined, session still open",
				zap.String("reference", evt.Reference),
				zap.String("reason", evt.FailureReason))
		}

	case "checkout.session.expired":
		var cs stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
			return nil, fmt.Errorf("%w: %v", outbound.ErrMalformedWebhook, err)
		}
		evt.Reference = cs.ClientReferenceID
		if evt.Reference == "" {
			evt.Reference = cs.Metadata["reference"]
		}
		evt.AmountMinor = cs.AmountTotal
		evt.Type = model.GatewayEventFailed
		evt.FailureReason = "Checkout session expired"
	}
	return evt, nil
}

// OutcomeOf maps a payment intent to a gateway outcome and failure reason.
// An intent waiting for a new payment method is pending even after a decline.
func OutcomeOf(pi *stripe.PaymentIntent) (model.GatewayOutcome, string) {
	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		return model.GatewayOutcomeSuccess, ""
	case stripe.PaymentIntentStatusCanceled:
		reason := "Payment canceled"
		if pi.LastPaymentError != nil && pi.LastPaymentError.Msg != "" {
			reason = pi.LastPaymentError.Msg
		}
		return model.GatewayOutcomeFailed, reason
	default:
		return model.GatewayOutcomePending, ""
	}
}

func (c *Client) successURL(callbackURL, reference string) string {
	if c.cfg.SuccessURL != "" {
		return c.cfg.SuccessURL
	}
	sep := "?"
	if strings.Contains(callbackURL, "?") {
		sep = "&"
	}
	return callbackURL + sep + "reference=" + reference
}

func (c *Client) record(operation string, err error, start time.Time) {
	status := "ok"
	switch {
	case errors.Is(classify(err), outbound.ErrGatewayRejected):
		status = "rejected"
	case err != nil:
		status = "unavailable"
	}
	c.metrics.RecordGatewayRequest(providerName, operation, status, time.Since(start))
}

// classify maps stripe-go errors onto the gateway sentinels.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var serr *stripe.Error
	if errors.As(err, &serr) && serr.HTTPStatusCode >= 400 && serr.HTTPStatusCode < 500 &&
		serr.HTTPStatusCode != http.StatusTooManyRequests {
		return fmt.Errorf("%w: %s", outbound.ErrGatewayRejected, serr.Msg)
	}
	return fmt.Errorf("%w: %v", outbound.ErrGatewayUnavailable, err)
}

// Compile-time check
var _ outbound.PaymentGatewayPort = (*Client)(nil)
