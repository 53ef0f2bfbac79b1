package model

import "time"

// GatewayOutcome is the result of a gateway verification.
type GatewayOutcome string

const (
	GatewayOutcomeSuccess GatewayOutcome = "success"
	GatewayOutcomeFailed  GatewayOutcome = "failed"
	// GatewayOutcomePending means the gateway has no final answer yet.
	GatewayOutcomePending GatewayOutcome = "pending"
)

// GatewayEventType classifies a parsed webhook delivery.
type GatewayEventType string

const (
	GatewayEventSuccess GatewayEventType = "success"
	GatewayEventFailed  GatewayEventType = "failed"
	GatewayEventIgnored GatewayEventType = "ignored"
)

// GatewayInitRequest is sent to the gateway to open a checkout.
type GatewayInitRequest struct {
	Email       string
	AmountMinor int64
	Currency    string
	Reference   string
	CallbackURL string
	Description string
	Metadata    map[string]string
}

// GatewayCheckout is the gateway's answer to an initialize call.
type GatewayCheckout struct {
	CheckoutURL   string
	CheckoutToken string
	Reference     string
}

// GatewayVerification is the gateway's view of a reference.
type GatewayVerification struct {
	Reference     string
	Outcome       GatewayOutcome
	AmountMinor   int64
	FailureReason string
	PaidAt        *time.Time
	RawResponse   string
}

// GatewayWebhookEvent is a verified, parsed webhook delivery.
type GatewayWebhookEvent struct {
	EventID       string
	EventType     string
	Type          GatewayEventType
	Reference     string
	AmountMinor   int64
	FailureReason string
	// PaidAt is the gateway's settlement time for success events, when it reports one.
	PaidAt        *time.Time
	RawData       string
}
