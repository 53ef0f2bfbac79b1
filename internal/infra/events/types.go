package events

import (
	"time"

	"github.com/google/uuid"
)

// Payment event type constants.
const (
	PaymentSucceededType = "PaymentSucceeded"
	PaymentFailedType    = "PaymentFailed"
)

// PaymentSucceededEvent is emitted once, after a payment and its effect commit.
type PaymentSucceededEvent struct {
	BaseEvent

	PaymentID uuid.UUID `json:"payment_id"`
	UserID    uuid.UUID `json:"user_id"`
	ListingID uuid.UUID `json:"listing_id"`

	// Kind is the payment kind (listing, inspection, boost).
	Kind      string    `json:"kind"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	Reference string    `json:"reference"`
	Provider  string    `json:"provider"`
	BoostDays int       `json:"boost_days,omitempty"`
	PaidAt    time.Time `json:"paid_at"`
}

// NewPaymentSucceededEvent creates a new PaymentSucceededEvent.
func NewPaymentSucceededEvent(
	paymentID, userID, listingID uuid.UUID,
	kind string,
	amount int64,
	currency, reference, provider string,
	boostDays int,
	paidAt time.Time,
) *PaymentSucceededEvent {
	return &PaymentSucceededEvent{
		BaseEvent: NewBaseEvent(PaymentSucceededType, paymentID),
		PaymentID: paymentID,
		UserID:    userID,
		ListingID: listingID,
		Kind:      kind,
		Amount:    amount,
		Currency:  currency,
		Reference: reference,
		Provider:  provider,
		BoostDays: boostDays,
		PaidAt:    paidAt,
	}
}

// PaymentFailedEvent is emitted once, after a payment is marked failed.
type PaymentFailedEvent struct {
	BaseEvent

	PaymentID uuid.UUID `json:"payment_id"`
	UserID    uuid.UUID `json:"user_id"`
	ListingID uuid.UUID `json:"listing_id"`
	Kind      string    `json:"kind"`
	Amount    int64     `json:"amount"`
	Reference string    `json:"reference"`
	Provider  string    `json:"provider"`
	Reason    string    `json:"reason"`
}

// NewPaymentFailedEvent creates a new PaymentFailedEvent.
func NewPaymentFailedEvent(
	paymentID, userID, listingID uuid.UUID,
	kind string,
	amount int64,
	reference, provider, reason string,
) *PaymentFailedEvent {
	return &PaymentFailedEvent{
		BaseEvent: NewBaseEvent(PaymentFailedType, paymentID),
		PaymentID: paymentID,
		UserID:    userID,
		ListingID: listingID,
		Kind:      kind,
		Amount:    amount,
		Reference: reference,
		Provider:  provider,
		Reason:    reason,
	}
}
