package paystack

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/propmarket/server/internal/model"
	"github.com/propmarket/server/internal/port/outbound"
	"github.com/spf13/cast"
)

// DefaultFailureReason is used for charge.failed events without a gateway_response.
const DefaultFailureReason = "Payment failed"

type webhookPayload struct {
	Event string                 `json:"event"`
	Data  map[string]interface{} `json:"data"`
}

// ValidateSignature reports whether signature is the hex HMAC-SHA512 of body under secret.
// An empty secret or signature never validates.
func ValidateSignature(body []byte, signature, secret string) bool {
	if secret == "" || signature == "" {
		return false
	}
	return hmac.Equal([]byte(Sign(body, secret)), []byte(signature))
}

// Sign returns the signature Paystack would send for body.
func Sign(body []byte, secret string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// ParseWebhook verifies and decodes a Paystack event. The event id is the
// SHA-256 of the raw body, as Paystack sends no delivery id.
func (c *Client) ParseWebhook(payload []byte, signature string) (*model.GatewayWebhookEvent, error) {
	if !ValidateSignature(payload, signature, c.cfg.SecretKey) {
		return nil, outbound.ErrInvalidSignature
	}

	var body webhookPayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("%w: %v", outbound.ErrMalformedWebhook, err)
	}
	if body.Event == "" {
		return nil, fmt.Errorf("%w: missing event", outbound.ErrMalformedWebhook)
	}

	sum := sha256.Sum256(payload)
	evt := &model.GatewayWebhookEvent{
		EventID:     hex.EncodeToString(sum[:]),
		EventType:   body.Event,
		Reference:   cast.ToString(body.Data["reference"]),
		AmountMinor: cast.ToInt64(body.Data["amount"]),
		RawData:     string(payload),
	}

	switch body.Event {
	case "charge.success":
		evt.Type = model.GatewayEventSuccess
		evt.PaidAt = c.paidAt(body.Data, evt.Reference)
	case "charge.failed":
		evt.Type = model.GatewayEventFailed
		evt.FailureReason = cast.ToString(body.Data["gateway_response"])
		if evt.FailureReason == "" {
			evt.FailureReason = DefaultFailureReason
		}
	default:
		evt.Type = model.GatewayEventIgnored
	}
	return evt, nil
}
