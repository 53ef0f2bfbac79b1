package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/propmarket/server/internal/model"
	"github.com/propmarket/server/internal/port/outbound"
	"github.com/propmarket/server/internal/utils/logger"
	"github.com/propmarket/server/internal/utils/pagination"
	"go.uber.org/zap"
)

// PaymentDomain defines payment domain service interface.
type PaymentDomain interface {
	// CreatePayment creates a pending payment for a listing.
	CreatePayment(ctx context.Context, in *CreatePaymentInput) (*model.Payment, error)

	// InitializePayment opens (or returns the cached) gateway checkout of a pending payment.
	InitializePayment(ctx context.Context, paymentID uuid.UUID, actor model.Actor) (*model.CheckoutResponse, error)

	// VerifyPayment reconciles a reference with the gateway. Safe to call any number of times.
	VerifyPayment(ctx context.Context, reference string) (*model.PaymentStatusResponse, error)

	// HandleWebhook validates and processes a gateway callback.
	HandleWebhook(ctx context.Context, payload []byte, signature string) error

	// RetryPayment issues a new reference for a pending or failed payment.
	RetryPayment(ctx context.Context, paymentID uuid.UUID, actor model.Actor) (*model.Payment, error)

	// GetPayment returns a payment visible to actor.
	GetPayment(ctx context.Context, paymentID uuid.UUID, actor model.Actor) (*model.Payment, error)

	// ListUserPayments lists the actor's own payments, newest first.
	ListUserPayments(ctx context.Context, actor model.Actor, filter model.PaymentFilter) ([]*model.Payment, int64, error)

	// ListPayments lists all payments (admin).
	ListPayments(ctx context.Context, filter model.PaymentFilter) ([]*model.Payment, int64, error)

	// GetRevenueAnalytics aggregates revenue (admin).
	GetRevenueAnalytics(ctx context.Context, filter model.AnalyticsFilter) (*model.RevenueAnalytics, error)

	// ExportPayments renders matching payments into a report (admin).
	ExportPayments(ctx context.Context, filter model.PaymentFilter) (*model.PaymentExport, error)

	// SignatureHeader returns the HTTP header the active gateway signs webhooks in.
	SignatureHeader() string
}

// Notifier delivers a user notification. Implementations never fail the caller.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, title, message string)
}

// CreatePaymentInput holds the parameters of CreatePayment.
type CreatePaymentInput struct {
	Actor     model.Actor
	Kind      model.PaymentKind
	TargetID  uuid.UUID
	BoostDays *int
}

// Config holds payment domain settings.
type Config struct {
	Currency        string
	CallbackURL     string
	ExportURLExpiry time.Duration
}

const (
	recentPaymentsLimit = 10
	exportPageSize      = pagination.MaxLimit
	exportKeyPrefix     = "exports/payments/"
)

// paymentDomain implements PaymentDomain.
type paymentDomain struct {
	paymentDB      outbound.PaymentDatabasePort
	webhookDB      outbound.WebhookEventDatabasePort
	tx             outbound.TransactorPort
	gateway        outbound.PaymentGatewayPort
	listingDB      outbound.ListingDatabasePort
	userReader     outbound.UserReaderPort
	applier        EffectApplier
	notifier       Notifier
	eventPublisher outbound.EventPublisherPort
	report         outbound.PaymentReportPort
	storage        outbound.ExportStoragePort
	prices         PriceTable
	cfg            Config
	now            func() time.Time
	logger         *zap.Logger
}

// NewPaymentDomain creates a new payment domain service.
// storage may be nil, in which case exports are returned inline.
func NewPaymentDomain(
	paymentDB outbound.PaymentDatabasePort,
	webhookDB outbound.WebhookEventDatabasePort,
	tx outbound.TransactorPort,
	gateway outbound.PaymentGatewayPort,
	listingDB outbound.ListingDatabasePort,
	userReader outbound.UserReaderPort,
	applier EffectApplier,
	notifier Notifier,
	eventPublisher outbound.EventPublisherPort,
	report outbound.PaymentReportPort,
	storage outbound.ExportStoragePort,
	prices PriceTable,
	cfg Config,
	logger *zap.Logger,
) PaymentDomain {
	if cfg.ExportURLExpiry <= 0 {
		cfg.ExportURLExpiry = 15 * time.Minute
	}
	return &paymentDomain{
		paymentDB:      paymentDB,
		webhookDB:      webhookDB,
		tx:             tx,
		gateway:        gateway,
		listingDB:      listingDB,
		userReader:     userReader,
		applier:        applier,
		notifier:       notifier,
		eventPublisher: eventPublisher,
		report:         report,
		storage:        storage,
		prices:         prices,
		cfg:            cfg,
		now:            func() time.Time { return time.Now().UTC() },
		logger:         logger,
	}
}

func (d *paymentDomain) log(ctx context.Context) *zap.Logger {
	return logger.For(ctx, d.logger)
}

func (d *paymentDomain) SignatureHeader() string {
	return d.gateway.SignatureHeader()
}

// --- Creation ---

func (d *paymentDomain) CreatePayment(ctx context.Context, in *CreatePaymentInput) (*model.Payment, error) {
	if !in.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment kind %q", ErrValidation, in.Kind)
	}

	listing, err := d.listingDB.FindByID(ctx, in.TargetID)
	if err != nil {
		return nil, fmt.Errorf("find listing: %w", err)
	}
	if listing == nil {
		return nil, ErrListingNotFound
	}

	// Anyone signed in may book an inspection; fees that change the listing are the owner's.
	if in.Kind != model.PaymentKindInspection && !in.Actor.CanActOn(listing.OwnerID) {
		return nil, ErrForbidden
	}

	boostDays := in.BoostDays
	if in.Kind != model.PaymentKindBoost {
		boostDays = nil
	}
	amount, err := d.prices.Price(in.Kind, boostDays)
	if err != nil {
		return nil, err
	}

	if in.Kind == model.PaymentKindListing {
		paid, err := d.paymentDB.HasSucceeded(ctx, listing.ID, model.PaymentKindListing)
		if err != nil {
			return nil, fmt.Errorf("check existing payment: %w", err)
		}
		if paid {
			return nil, fmt.Errorf("%w: listing fee for %s", ErrAlreadyPaid, listing.ID)
		}
	}

	now := d.now()
	payment := &model.Payment{
		ID:         uuid.New(),
		UserID:     in.Actor.UserID,
		TargetType: model.TargetTypeListing,
		TargetID:   listing.ID,
		Kind:       in.Kind,
		Amount:     amount,
		Currency:   d.cfg.Currency,
		BoostDays:  boostDays,
		Reference:  NewReference(in.Kind.ReferencePrefix(), now),
		Status:     model.PaymentStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = d.paymentDB.Create(ctx, payment)
	if errors.Is(err, outbound.ErrDuplicateReference) {
		payment.Reference = NewReference(in.Kind.ReferencePrefix(), d.now())
		err = d.paymentDB.Create(ctx, payment)
	}
	if err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	d.log(ctx).Info("payment created",
		zap.String("payment_id", payment.ID.String()),
		zap.String("reference", payment.Reference),
		zap.String("kind", string(payment.Kind)),
		zap.Int64("amount", payment.Amount),
	)
	return payment, nil
}

// --- Initialization ---

func (d *paymentDomain) InitializePayment(ctx context.Context, paymentID uuid.UUID, actor model.Actor) (*model.CheckoutResponse, error) {
	payment, err := d.loadOwned(ctx, paymentID, actor)
	if err != nil {
		return nil, err
	}

	switch payment.Status {
	case model.PaymentStatusSuccess:
		return nil, ErrAlreadyFinalized
	case model.PaymentStatusFailed:
		return nil, fmt.Errorf("%w: payment failed, retry it for a new reference", ErrInvalidTransition)
	}

	if payment.HasCachedCheckout() {
		return &model.CheckoutResponse{
			CheckoutURL: payment.GatewayCheckoutURL,
			AccessCode:  payment.GatewayCheckoutToken,
			Reference:   payment.Reference,
		}, nil
	}

	req, err := d.buildInitRequest(ctx, payment, actor)
	if err != nil {
		return nil, err
	}

	checkout, err := d.gateway.Initialize(ctx, req)
	if err != nil {
		d.log(ctx).Warn("gateway initialize failed",
			zap.String("reference", payment.Reference),
			zap.Error(err),
		)
		return nil, mapGatewayError(err)
	}

	if err := d.paymentDB.SaveCheckout(ctx, payment.ID, payment.Reference, checkout.CheckoutURL, checkout.CheckoutToken); err != nil {
		// The gateway keys checkouts by reference, so a later call reopens the same one.
		d.log(ctx).Warn("failed to cache checkout",
			zap.String("reference", payment.Reference),
			zap.Error(err),
		)
	}

	return &model.CheckoutResponse{
		CheckoutURL: checkout.CheckoutURL,
		AccessCode:  checkout.CheckoutToken,
		Reference:   payment.Reference,
	}, nil
}

func (d *paymentDomain) buildInitRequest(ctx context.Context, p *model.Payment, actor model.Actor) (*model.GatewayInitRequest, error) {
	var email, userName string
	user, err := d.userReader.FindByID(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("find payer: %w", err)
	}
	if user != nil {
		email, userName = user.Email, user.Name
	} else if actor.UserID == p.UserID {
		email = actor.Email
	}
	if email == "" {
		return nil, fmt.Errorf("%w: payer has no email address", ErrValidation)
	}

	listingName := "N/A"
	listing, err := d.listingDB.FindByID(ctx, p.TargetID)
	if err != nil {
		return nil, fmt.Errorf("find listing: %w", err)
	}
	if listing != nil {
		listingName = listing.Name
	}

	metadata := map[string]string{
		"paymentId":   p.ID.String(),
		"kind":        string(p.Kind),
		"listingId":   p.TargetID.String(),
		"userId":      p.UserID.String(),
		"userName":    userName,
		"listingName": listingName,
	}
	if p.BoostDays != nil {
		metadata["boostDays"] = fmt.Sprintf("%d", *p.BoostDays)
	}

	return &model.GatewayInitRequest{
		Email:       email,
		AmountMinor: ToMinorUnits(p.Amount),
		Currency:    p.Currency,
		Reference:   p.Reference,
		CallbackURL: d.cfg.CallbackURL,
		Description: fmt.Sprintf("%s payment for %s", p.Kind, listingName),
		Metadata:    metadata,
	}, nil
}

// --- Verification ---

func (d *paymentDomain) VerifyPayment(ctx context.Context, reference string) (*model.PaymentStatusResponse, error) {
	payment, err := d.paymentDB.FindByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("find payment: %w", err)
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}

	// Terminal payments answer from the record; the gateway is not asked again.
	if payment.Status.IsTerminal() {
		return model.NewPaymentStatusResponse(payment), nil
	}

	verification, err := d.gateway.Verify(ctx, reference)
	if err != nil {
		d.log(ctx).Warn("gateway verify failed",
			zap.String("reference", reference),
			zap.Error(err),
		)
		return nil, mapGatewayError(err)
	}

	var result *model.Payment
	switch verification.Outcome {
	case model.GatewayOutcomeSuccess:
		paidAt := d.now()
		if verification.PaidAt != nil {
			paidAt = verification.PaidAt.UTC()
		}
		result, err = d.finalizeSuccess(ctx, &settlement{
			Reference:   reference,
			AmountMinor: verification.AmountMinor,
			PaidAt:      paidAt,
			Raw:         verification.RawResponse,
		})
	case model.GatewayOutcomeFailed:
		result, err = d.finalizeFailure(ctx, &settlement{
			Reference:     reference,
			FailureReason: verification.FailureReason,
			Raw:           verification.RawResponse,
		})
	default:
		d.log(ctx).Info("payment still pending at gateway", zap.String("reference", reference))
		return model.NewPaymentStatusResponse(payment), nil
	}
	if err != nil {
		return nil, err
	}
	return model.NewPaymentStatusResponse(result), nil
}

// --- Retry ---

func (d *paymentDomain) RetryPayment(ctx context.Context, paymentID uuid.UUID, actor model.Actor) (*model.Payment, error) {
	payment, err := d.loadOwned(ctx, paymentID, actor)
	if err != nil {
		return nil, err
	}
	if payment.Status.IsSucceeded() {
		return nil, ErrAlreadyPaid
	}
	if !payment.Status.CanRetry() {
		return nil, ErrInvalidTransition
	}

	oldRef := payment.Reference
	newRef := NewReference(RetryReferencePrefix, d.now())

	err = d.tx.WithinTx(ctx, func(ctx context.Context) error {
		rotated, err := d.paymentDB.RotateReference(ctx, payment.ID, oldRef, newRef)
		if err != nil {
			return fmt.Errorf("rotate reference: %w", err)
		}
		if !rotated {
			return ErrConcurrentUpdate
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := d.paymentDB.FindByID(ctx, payment.ID)
	if err != nil {
		return nil, fmt.Errorf("reload payment: %w", err)
	}
	if updated == nil {
		return nil, ErrPaymentNotFound
	}

	d.log(ctx).Info("payment reference rotated",
		zap.String("payment_id", payment.ID.String()),
		zap.String("old_reference", oldRef),
		zap.String("reference", newRef),
	)
	return updated, nil
}

// --- Queries ---

func (d *paymentDomain) GetPayment(ctx context.Context, paymentID uuid.UUID, actor model.Actor) (*model.Payment, error) {
	return d.loadOwned(ctx, paymentID, actor)
}

func (d *paymentDomain) ListUserPayments(ctx context.Context, actor model.Actor, filter model.PaymentFilter) ([]*model.Payment, int64, error) {
	filter.UserID = &actor.UserID
	filter.DefaultPagination(pagination.DefaultLimit)
	return d.paymentDB.FindByFilter(ctx, filter)
}

func (d *paymentDomain) loadOwned(ctx context.Context, paymentID uuid.UUID, actor model.Actor) (*model.Payment, error) {
	payment, err := d.paymentDB.FindByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("find payment: %w", err)
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	if !actor.CanActOn(payment.UserID) {
		return nil, ErrForbidden
	}
	return payment, nil
}

// mapGatewayError maps gateway port errors onto domain errors.
// Anything unclassified is treated as unavailability: the outcome is unknown.
func mapGatewayError(err error) error {
	switch {
	case errors.Is(err, outbound.ErrGatewayRejected):
		return fmt.Errorf("%w: %v", ErrGatewayRejected, err)
	case errors.Is(err, outbound.ErrInvalidSignature):
		return ErrInvalidSignature
	default:
		return fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
}
