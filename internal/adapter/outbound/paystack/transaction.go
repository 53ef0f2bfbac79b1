package paystack

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/propmarket/server/internal/model"
	"github.com/propmarket/server/internal/port/outbound"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

type initializeRequest struct {
	Email       string            `json:"email"`
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency,omitempty"`
	Reference   string            `json:"reference"`
	CallbackURL string            `json:"callback_url,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type initializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// Initialize opens a Paystack transaction. AmountMinor is in kobo.
func (c *Client) Initialize(ctx context.Context, req *model.GatewayInitRequest) (*model.GatewayCheckout, error) {
	env, err := c.call(ctx, "initialize", http.MethodPost, "/transaction/initialize", &initializeRequest{
		Email:       req.Email,
		Amount:      req.AmountMinor,
		Currency:    req.Currency,
		Reference:   req.Reference,
		CallbackURL: req.CallbackURL,
		Metadata:    req.Metadata,
	})
	if err != nil {
		return nil, err
	}

	var data initializeData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("%w: decode initialize data: %v", outbound.ErrGatewayUnavailable, err)
	}
	if data.AuthorizationURL == "" {
		return nil, fmt.Errorf("%w: initialize returned no authorization url", outbound.ErrGatewayUnavailable)
	}

	ref := data.Reference
	if ref == "" {
		ref = req.Reference
	}
	return &model.GatewayCheckout{
		CheckoutURL:   data.AuthorizationURL,
		CheckoutToken: data.AccessCode,
		Reference:     ref,
	}, nil
}

// Verify fetches the transaction state of reference.
func (c *Client) Verify(ctx context.Context, reference string) (*model.GatewayVerification, error) {
	env, err := c.call(ctx, "verify", http.MethodGet, "/transaction/verify/"+url.PathEscape(reference), nil)
	if err != nil {
		return nil, err
	}

	var data map[string]interface{}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("%w: decode verify data: %v", outbound.ErrGatewayUnavailable, err)
	}

	status := strings.ToLower(cast.ToString(data["status"]))
	v := &model.GatewayVerification{
		Reference:     reference,
		Outcome:       outcomeOf(status),
		AmountMinor:   cast.ToInt64(data["amount"]),
		FailureReason: cast.ToString(data["gateway_response"]),
		RawResponse:   string(env.Data),
	}
	v.PaidAt = c.paidAt(data, reference)
	if v.Outcome == model.GatewayOutcomeFailed && v.FailureReason == "" {
		v.FailureReason = "Payment unsuccessful"
	}
	return v, nil
}

// paidAt reads the RFC 3339 paid_at of a transaction object, if present.
func (c *Client) paidAt(data map[string]interface{}, reference string) *time.Time {
	raw := cast.ToString(data["paid_at"])
	if raw == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		c.logger.Debug("unparseable paid_at", zap.String("reference", reference), zap.String("paid_at", raw))
		return nil
	}
	return &t
}

// outcomeOf maps a Paystack transaction status. Anything not final is pending;
// abandoned transactions can still be completed from the same checkout.
func outcomeOf(status string) model.GatewayOutcome {
	switch status {
	case "success":
		return model.GatewayOutcomeSuccess
	case "failed", "reversed":
		return model.GatewayOutcomeFailed
	default:
		return model.GatewayOutcomePending
	}
}
