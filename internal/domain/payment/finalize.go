package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/propmarket/server/internal/infra/events"
	"github.com/propmarket/server/internal/model"
	"go.uber.org/zap"
)

// AmountMismatchReason is recorded when the gateway settled a different amount.
const AmountMismatchReason = "amount mismatch"

// DefaultFailureReason is used when the gateway gives no reason.
const DefaultFailureReason = "Payment failed"

// settlement is a gateway-reported outcome for a reference.
type settlement struct {
	Reference string
	// AmountMinor is the amount the gateway reports as paid; zero when not reported.
	AmountMinor   int64
	FailureReason string
	PaidAt        time.Time
	Raw           string
}

// errLostRace aborts a finalize transaction whose compare-and-swap found the
// payment already moved by another caller.
var errLostRace = errors.New("finalize lost compare-and-swap")

// finalizeSuccess moves a pending payment to success and applies its effect in
// one transaction. Only the caller whose update committed notifies and publishes.
// An already successful payment is returned unchanged.
func (d *paymentDomain) finalizeSuccess(ctx context.Context, s *settlement) (*model.Payment, error) {
	return d.finalize(ctx, s, model.PaymentStatusSuccess)
}

// finalizeFailure moves a pending payment to failed. An already failed payment is
// returned unchanged.
func (d *paymentDomain) finalizeFailure(ctx context.Context, s *settlement) (*model.Payment, error) {
	if s.FailureReason == "" {
		s.FailureReason = DefaultFailureReason
	}
	return d.finalize(ctx, s, model.PaymentStatusFailed)
}

func (d *paymentDomain) finalize(ctx context.Context, s *settlement, target model.PaymentStatus) (*model.Payment, error) {
	var (
		result *model.Payment
		won    bool
	)

	err := d.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := d.paymentDB.FindByReference(ctx, s.Reference)
		if err != nil {
			return fmt.Errorf("find payment: %w", err)
		}
		if current == nil {
			return ErrPaymentNotFound
		}

		if current.Status == target {
			result = current
			return nil
		}

		to := target
		if to == model.PaymentStatusSuccess && s.AmountMinor != 0 && s.AmountMinor != ToMinorUnits(current.Amount) {
			d.log(ctx).Warn("gateway amount does not match payment",
				zap.String("reference", s.Reference),
				zap.Int64("expected_minor", ToMinorUnits(current.Amount)),
				zap.Int64("reported_minor", s.AmountMinor),
			)
			to = model.PaymentStatusFailed
			s.FailureReason = AmountMismatchReason
		}

		if current.Status == to {
			result = current
			return nil
		}
		if !current.Status.CanTransitionTo(to) {
			return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current.Status, to)
		}

		transition := &model.StatusTransition{
			Reference: s.Reference,
			From:      model.PaymentStatusPending,
			To:        to,
		}
		if s.Raw != "" {
			raw := s.Raw
			transition.GatewayResponse = &raw
		}
		if to == model.PaymentStatusSuccess {
			paidAt := s.PaidAt
			if paidAt.IsZero() {
				paidAt = d.now()
			}
			transition.PaidAt = &paidAt
		} else {
			reason := s.FailureReason
			transition.FailureReason = &reason
		}

		swapped, err := d.paymentDB.TransitionStatus(ctx, transition)
		if err != nil {
			return fmt.Errorf("transition payment: %w", err)
		}
		if !swapped {
			return errLostRace
		}

		current.Status = to
		current.PaidAt = transition.PaidAt
		current.FailureReason = transition.FailureReason
		current.GatewayResponse = transition.GatewayResponse

		if to == model.PaymentStatusSuccess {
			// Rolls the transition back on failure; the payment stays pending.
			if err := d.applier.Apply(ctx, current, d.now()); err != nil {
				return err
			}
		}

		result = current
		won = true
		return nil
	})

	if errors.Is(err, errLostRace) {
		d.log(ctx).Info("payment finalized concurrently", zap.String("reference", s.Reference))
		current, ferr := d.paymentDB.FindByReference(ctx, s.Reference)
		if ferr != nil {
			return nil, fmt.Errorf("reload payment: %w", ferr)
		}
		if current == nil {
			return nil, ErrPaymentNotFound
		}
		return current, nil
	}
	if err != nil {
		if errors.Is(err, ErrEffectApplication) {
			d.log(ctx).Error("payment effect failed, payment left pending",
				zap.String("reference", s.Reference),
				zap.Error(err),
			)
		}
		return nil, err
	}

	if won {
		d.afterFinalize(ctx, result)
	}
	return result, nil
}

// afterFinalize runs the best-effort side effects of a committed transition.
func (d *paymentDomain) afterFinalize(ctx context.Context, p *model.Payment) {
	amount := FormatAmount(p.Amount, p.Currency)
	boostDays := 0
	if p.BoostDays != nil {
		boostDays = *p.BoostDays
	}

	var event events.Event
	switch p.Status {
	case model.PaymentStatusSuccess:
		d.log(ctx).Info("payment succeeded",
			zap.String("payment_id", p.ID.String()),
			zap.String("reference", p.Reference),
			zap.String("kind", string(p.Kind)),
		)
		d.notifier.Notify(ctx, p.UserID, "Payment Successful",
			fmt.Sprintf("Your %s payment of %s was successful", p.Kind, amount))
		event = events.NewPaymentSucceededEvent(
			p.ID, p.UserID, p.TargetID,
			string(p.Kind), p.Amount, p.Currency, p.Reference, d.gateway.Name(),
			boostDays, *p.PaidAt,
		)
	case model.PaymentStatusFailed:
		reason := DefaultFailureReason
		if p.FailureReason != nil {
			reason = *p.FailureReason
		}
		d.log(ctx).Info("payment failed",
			zap.String("payment_id", p.ID.String()),
			zap.String("reference", p.Reference),
			zap.String("reason", reason),
		)
		d.notifier.Notify(ctx, p.UserID, "Payment Failed",
			fmt.Sprintf("Your %s payment of %s failed: %s", p.Kind, amount, reason))
		event = events.NewPaymentFailedEvent(
			p.ID, p.UserID, p.TargetID,
			string(p.Kind), p.Amount, p.Reference, d.gateway.Name(), reason,
		)
	default:
		return
	}

	if d.eventPublisher == nil {
		return
	}
	if err := d.eventPublisher.Publish(ctx, event); err != nil {
		d.log(ctx).Error("failed to publish payment event",
			zap.String("reference", p.Reference),
			zap.Error(err),
		)
	}
}
