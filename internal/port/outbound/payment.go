package outbound

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/propmarket/server/internal/model"
)

// Gateway errors. Adapters wrap these so callers can classify failures.
var (
	// ErrGatewayUnavailable covers transport failures, timeouts, 5xx answers and an open breaker.
	// The outcome of the call is unknown; nothing may change locally.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	// ErrGatewayRejected indicates the gateway refused the request (4xx).
	ErrGatewayRejected = errors.New("payment gateway rejected request")

	// ErrInvalidSignature indicates a webhook payload failed signature validation.
	ErrInvalidSignature = errors.New("invalid webhook signature")

	// ErrMalformedWebhook indicates a signed payload that could not be parsed.
	ErrMalformedWebhook = errors.New("malformed webhook payload")
)

// ErrDuplicateReference is returned when a payment reference is already taken.
var ErrDuplicateReference = errors.New("duplicate payment reference")

// PaymentDatabasePort defines payment persistence operations.
type PaymentDatabasePort interface {
	// Create creates a new payment.
	Create(ctx context.Context, payment *model.Payment) error

	// FindByID finds a payment by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error)

	// FindByReference finds a payment by its current reference.
	FindByReference(ctx context.Context, reference string) (*model.Payment, error)

	// FindByFilter finds payments by filter.
	FindByFilter(ctx context.Context, filter model.PaymentFilter) ([]*model.Payment, int64, error)

	// HasSucceeded reports whether a successful payment of kind exists for target.
	HasSucceeded(ctx context.Context, targetID uuid.UUID, kind model.PaymentKind) (bool, error)

	// TransitionStatus moves a payment from t.From to t.To only if it is still in t.From.
	// It returns false when another writer got there first.
	TransitionStatus(ctx context.Context, t *model.StatusTransition) (bool, error)

	// SaveCheckout caches a gateway checkout while the payment is pending on reference.
	SaveCheckout(ctx context.Context, id uuid.UUID, reference, checkoutURL, checkoutToken string) error

	// RotateReference replaces oldRef with newRef, resetting the payment to pending.
	// It returns false if the payment no longer carries oldRef or is not retryable.
	RotateReference(ctx context.Context, id uuid.UUID, oldRef, newRef string) (bool, error)

	// IsRetiredReference reports whether reference was replaced by a retry.
	IsRetiredReference(ctx context.Context, reference string) (bool, error)

	// SumAmount sums successful payment amounts.
	SumAmount(ctx context.Context, filter model.AnalyticsFilter) (int64, error)

	// CountByStatus counts payments per status.
	CountByStatus(ctx context.Context, filter model.AnalyticsFilter) (map[model.PaymentStatus]int64, error)

	// GroupByKind aggregates successful payments per kind.
	GroupByKind(ctx context.Context, filter model.AnalyticsFilter) ([]model.KindRevenue, error)

	// GroupByDay aggregates successful payments per day.
	GroupByDay(ctx context.Context, filter model.AnalyticsFilter) ([]model.DailyRevenue, error)
}

// WebhookEventDatabasePort defines webhook event persistence.
type WebhookEventDatabasePort interface {
	// Create stores a delivery. A repeated (provider, event id) returns ErrDuplicateWebhookEvent.
	Create(ctx context.Context, event *model.WebhookEvent) error

	// FindByEventID finds a stored delivery.
	FindByEventID(ctx context.Context, provider, eventID string) (*model.WebhookEvent, error)

	// MarkProcessed records the processing result of a delivery.
	MarkProcessed(ctx context.Context, id uuid.UUID, errMsg *string) error
}

// ErrDuplicateWebhookEvent is returned when a webhook delivery was already stored.
var ErrDuplicateWebhookEvent = errors.New("duplicate webhook event")

// TransactorPort runs a function inside one database transaction.
// Database adapters called with the ctx passed to fn join that transaction.
type TransactorPort interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// PaymentGatewayPort defines external payment processor operations.
type PaymentGatewayPort interface {
	// Name returns the gateway name.
	Name() string

	// SignatureHeader returns the HTTP header carrying the webhook signature.
	SignatureHeader() string

	// Initialize opens a checkout for a reference.
	Initialize(ctx context.Context, req *model.GatewayInitRequest) (*model.GatewayCheckout, error)

	// Verify asks the gateway for the outcome of a reference.
	Verify(ctx context.Context, reference string) (*model.GatewayVerification, error)

	// ParseWebhook validates the signature and parses a webhook payload.
	ParseWebhook(payload []byte, signature string) (*model.GatewayWebhookEvent, error)
}
