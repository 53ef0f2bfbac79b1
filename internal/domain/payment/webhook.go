package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/propmarket/server/internal/model"
	"github.com/propmarket/server/internal/port/outbound"
	"go.uber.org/zap"
)

// HandleWebhook validates a gateway callback, records the delivery and funnels
// success and failure events through the same finalize routines as VerifyPayment.
//
// A nil error means the delivery may be acknowledged. Stale references, refused
// transitions and ignored event types are acknowledged; store and effect errors
// are returned so the gateway redelivers.
func (d *paymentDomain) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	evt, err := d.gateway.ParseWebhook(payload, signature)
	if err != nil {
		if errors.Is(err, outbound.ErrInvalidSignature) {
			return ErrInvalidSignature
		}
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	log := d.log(ctx).With(
		zap.String("provider", d.gateway.Name()),
		zap.String("event_id", evt.EventID),
		zap.String("event_type", evt.EventType),
		zap.String("reference", evt.Reference),
	)

	record, err := d.recordWebhook(ctx, evt)
	if err != nil {
		return err
	}
	if record.Processed {
		log.Info("webhook event already processed")
		return nil
	}

	procErr := d.dispatchWebhook(ctx, evt, log)

	var errMsg *string
	if procErr != nil {
		msg := procErr.Error()
		errMsg = &msg
	}
	if err := d.webhookDB.MarkProcessed(ctx, record.ID, errMsg); err != nil {
		log.Error("failed to mark webhook event processed", zap.Error(err))
	}
	return procErr
}

// recordWebhook stores the delivery, or returns the stored copy of a redelivery.
func (d *paymentDomain) recordWebhook(ctx context.Context, evt *model.GatewayWebhookEvent) (*model.WebhookEvent, error) {
	provider := d.gateway.Name()

	existing, err := d.webhookDB.FindByEventID(ctx, provider, evt.EventID)
	if err != nil {
		return nil, fmt.Errorf("find webhook event: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	record := &model.WebhookEvent{
		ID:        uuid.New(),
		Provider:  provider,
		EventID:   evt.EventID,
		EventType: evt.EventType,
		Reference: evt.Reference,
		Data:      evt.RawData,
		CreatedAt: d.now(),
	}
	err = d.webhookDB.Create(ctx, record)
	if errors.Is(err, outbound.ErrDuplicateWebhookEvent) {
		// A concurrent delivery of the same event stored it first.
		existing, err = d.webhookDB.FindByEventID(ctx, provider, evt.EventID)
		if err != nil {
			return nil, fmt.Errorf("find webhook event: %w", err)
		}
		if existing == nil {
			return nil, fmt.Errorf("webhook event %s vanished after duplicate insert", evt.EventID)
		}
		return existing, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store webhook event: %w", err)
	}
	return record, nil
}

func (d *paymentDomain) dispatchWebhook(ctx context.Context, evt *model.GatewayWebhookEvent, log *zap.Logger) error {
	if evt.Type == model.GatewayEventIgnored {
		log.Debug("ignoring webhook event type")
		return nil
	}
	if evt.Reference == "" {
		log.Warn("webhook event without reference")
		return nil
	}

	var err error
	switch evt.Type {
	case model.GatewayEventSuccess:
		paidAt := d.now()
		if evt.PaidAt != nil {
			paidAt = evt.PaidAt.UTC()
		}
		_, err = d.finalizeSuccess(ctx, &settlement{
			Reference:   evt.Reference,
			AmountMinor: evt.AmountMinor,
			PaidAt:      paidAt,
			Raw:         evt.RawData,
		})
	case model.GatewayEventFailed:
		_, err = d.finalizeFailure(ctx, &settlement{
			Reference:     evt.Reference,
			FailureReason: evt.FailureReason,
			Raw:           evt.RawData,
		})
	default:
		log.Warn("unknown webhook event classification", zap.String("type", string(evt.Type)))
		return nil
	}

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrPaymentNotFound):
		retired, rerr := d.paymentDB.IsRetiredReference(ctx, evt.Reference)
		if rerr != nil {
			log.Warn("failed to check retired reference", zap.Error(rerr))
		}
		log.Warn("webhook for unknown payment reference", zap.Bool("retired", retired))
		return nil
	case errors.Is(err, ErrInvalidTransition):
		log.Warn("webhook outcome conflicts with payment status", zap.Error(err))
		return nil
	default:
		log.Error("webhook processing failed", zap.Error(err))
		return err
	}
}
