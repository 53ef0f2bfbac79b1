package model

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus represents the status of a payment.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// IsValid returns true if the status is a known status.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusSuccess, PaymentStatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if the status is a terminal state.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusSuccess || s == PaymentStatusFailed
}

// IsSucceeded returns true if the status is success.
func (s PaymentStatus) IsSucceeded() bool {
	return s == PaymentStatusSuccess
}

// IsPending returns true if the payment is still awaiting an outcome.
func (s PaymentStatus) IsPending() bool {
	return s == PaymentStatusPending
}

// CanTransitionTo returns true if the status can transition to the target status.
// Retry is not a transition: it rotates the reference and is handled separately.
func (s PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	switch s {
	case PaymentStatusPending:
		return target == PaymentStatusSuccess || target == PaymentStatusFailed
	default:
		return false
	}
}

// CanRetry returns true if a new reference may be issued for the payment.
func (s PaymentStatus) CanRetry() bool {
	return s == PaymentStatusPending || s == PaymentStatusFailed
}

// PaymentKind identifies what a payment buys.
type PaymentKind string

const (
	PaymentKindListing    PaymentKind = "listing"
	PaymentKindInspection PaymentKind = "inspection"
	PaymentKindBoost      PaymentKind = "boost"
)

// IsValid returns true if the kind is a known kind.
func (k PaymentKind) IsValid() bool {
	switch k {
	case PaymentKindListing, PaymentKindInspection, PaymentKindBoost:
		return true
	default:
		return false
	}
}

// ReferencePrefix returns the prefix used when generating references for the kind.
func (k PaymentKind) ReferencePrefix() string {
	switch k {
	case PaymentKindListing:
		return "LISTING"
	case PaymentKindInspection:
		return "INSPECT"
	case PaymentKindBoost:
		return "BOOST"
	default:
		return "PAY"
	}
}

// TargetTypeListing is the only payable target type.
const TargetTypeListing = "listing"

// Payment represents one monetizable action on a target entity.
type Payment struct {
	ID                   uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID               uuid.UUID     `json:"user_id" gorm:"type:uuid;not null;index:idx_payments_user_created,priority:1"`
	TargetType           string        `json:"target_type" gorm:"not null;default:listing"`
	TargetID             uuid.UUID     `json:"target_id" gorm:"type:uuid;not null;index:idx_payments_target_kind_status,priority:1"`
	Kind                 PaymentKind   `json:"kind" gorm:"not null;index:idx_payments_status_kind,priority:2;index:idx_payments_target_kind_status,priority:2"`
	Amount               int64         `json:"amount" gorm:"not null"`
	Currency             string        `json:"currency" gorm:"not null;default:NGN"`
	BoostDays            *int          `json:"boost_days,omitempty"`
	Reference            string        `json:"reference" gorm:"not null;uniqueIndex"`
	Status               PaymentStatus `json:"status" gorm:"not null;default:pending;index:idx_payments_status_kind,priority:1;index:idx_payments_target_kind_status,priority:3"`
	GatewayCheckoutURL   string        `json:"checkout_url,omitempty"`
	GatewayCheckoutToken string        `json:"-"`
	GatewayResponse      *string       `json:"-" gorm:"type:jsonb"`
	FailureReason        *string       `json:"failure_reason,omitempty"`
	PaidAt               *time.Time    `json:"paid_at,omitempty"`
	CreatedAt            time.Time     `json:"created_at" gorm:"index:idx_payments_user_created,priority:2"`
	UpdatedAt            time.Time     `json:"updated_at"`
}

// TableName returns the table name for GORM.
func (Payment) TableName() string {
	return "payments"
}

// HasCachedCheckout returns true if a gateway checkout was already issued for the current reference.
func (p *Payment) HasCachedCheckout() bool {
	return p.GatewayCheckoutURL != "" && p.GatewayCheckoutToken != ""
}

// IsOwnedBy returns true if the user is the payer.
func (p *Payment) IsOwnedBy(userID uuid.UUID) bool {
	return p.UserID == userID
}

// RetiredReference records a reference that was replaced by a retry.
// A retired reference never resolves to a payment again.
type RetiredReference struct {
	Reference string    `json:"reference" gorm:"primaryKey"`
	PaymentID uuid.UUID `json:"payment_id" gorm:"type:uuid;not null;index"`
	RetiredAt time.Time `json:"retired_at" gorm:"not null"`
}

// TableName returns the table name for GORM.
func (RetiredReference) TableName() string {
	return "payment_retired_references"
}

// WebhookEvent represents a stored gateway webhook delivery.
type WebhookEvent struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Provider    string     `json:"provider" gorm:"not null;uniqueIndex:idx_provider_event,priority:1"`
	EventID     string     `json:"event_id" gorm:"not null;uniqueIndex:idx_provider_event,priority:2"`
	EventType   string     `json:"event_type" gorm:"not null"`
	Reference   string     `json:"reference,omitempty" gorm:"index"`
	Data        string     `json:"data" gorm:"type:jsonb"`
	Processed   bool       `json:"processed" gorm:"default:false"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	Error       *string    `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TableName returns the table name for GORM.
func (WebhookEvent) TableName() string {
	return "payment_webhook_events"
}

// StatusTransition describes a compare-and-swap on a payment's status.
type StatusTransition struct {
	Reference       string
	From            PaymentStatus
	To              PaymentStatus
	PaidAt          *time.Time
	FailureReason   *string
	GatewayResponse *string
}

// PaymentFilter represents payment query filters.
type PaymentFilter struct {
	UserID *uuid.UUID     `json:"user_id" form:"-"`
	Kind   *PaymentKind   `json:"kind" form:"kind"`
	Status *PaymentStatus `json:"status" form:"status"`
	From   *time.Time     `json:"from" form:"from" time_format:"2006-01-02" time_utc:"1"`
	To     *time.Time     `json:"to" form:"to" time_format:"2006-01-02" time_utc:"1"`
	PaginationRequest
}

// AnalyticsFilter bounds analytics aggregation to a time window. Revenue
// aggregates bound paid_at; status counts bound created_at.
type AnalyticsFilter struct {
	From *time.Time `json:"from" form:"from" time_format:"2006-01-02" time_utc:"1"`
	To   *time.Time `json:"to" form:"to" time_format:"2006-01-02" time_utc:"1"`
}

// KindRevenue is the revenue aggregate of one payment kind.
type KindRevenue struct {
	Kind  PaymentKind `json:"kind"`
	Total int64       `json:"total"`
	Count int64       `json:"count"`
}

// DailyRevenue is the revenue aggregate of one calendar day.
type DailyRevenue struct {
	Date  time.Time `json:"date"`
	Total int64     `json:"total"`
	Count int64     `json:"count"`
}

// RevenueAnalytics is the admin revenue summary.
type RevenueAnalytics struct {
	TotalRevenue       int64          `json:"total_revenue"`
	Currency           string         `json:"currency"`
	SuccessfulPayments int64          `json:"successful_payments"`
	FailedPayments     int64          `json:"failed_payments"`
	PendingPayments    int64          `json:"pending_payments"`
	RevenueByKind      []KindRevenue  `json:"revenue_by_kind"`
	RevenueByDay       []DailyRevenue `json:"revenue_by_day"`
	RecentPayments     []*Payment     `json:"recent_payments"`
}

// --- Request/Response DTOs ---

// CreateBoostRequest represents a request to buy a boost.
type CreateBoostRequest struct {
	Days int `json:"days" binding:"required"`
}

// CreatePaymentResponse is returned when a payment is created.
type CreatePaymentResponse struct {
	PaymentID uuid.UUID   `json:"payment_id"`
	Kind      PaymentKind `json:"kind"`
	Amount    int64       `json:"amount"`
	Currency  string      `json:"currency"`
	Reference string      `json:"reference"`
	BoostDays *int        `json:"boost_days,omitempty"`
}

// CheckoutResponse is returned when a payment is initialized.
type CheckoutResponse struct {
	CheckoutURL string `json:"checkout_url"`
	AccessCode  string `json:"access_code,omitempty"`
	Reference   string `json:"reference"`
}

// PaymentStatusResponse is returned by verification.
type PaymentStatusResponse struct {
	PaymentID     uuid.UUID     `json:"payment_id"`
	Reference     string        `json:"reference"`
	Status        PaymentStatus `json:"status"`
	Kind          PaymentKind   `json:"kind"`
	Amount        int64         `json:"amount"`
	Currency      string        `json:"currency"`
	PaidAt        *time.Time    `json:"paid_at,omitempty"`
	FailureReason *string       `json:"failure_reason,omitempty"`
}

// NewPaymentStatusResponse builds a status response from a payment.
func NewPaymentStatusResponse(p *Payment) *PaymentStatusResponse {
	return &PaymentStatusResponse{
		PaymentID:     p.ID,
		Reference:     p.Reference,
		Status:        p.Status,
		Kind:          p.Kind,
		Amount:        p.Amount,
		Currency:      p.Currency,
		PaidAt:        p.PaidAt,
		FailureReason: p.FailureReason,
	}
}

// RetryResponse is returned when a payment gets a new reference.
type RetryResponse struct {
	PaymentID uuid.UUID     `json:"payment_id"`
	Reference string        `json:"reference"`
	Status    PaymentStatus `json:"status"`
	Amount    int64         `json:"amount"`
}

// PaymentExport is a rendered payment report.
// Either URL is set (uploaded to storage) or Content holds the file.
type PaymentExport struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	URL         string `json:"url,omitempty"`
	Content     []byte `json:"-"`
}
