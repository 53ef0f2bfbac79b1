package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/propmarket/server/internal/model"
	"github.com/propmarket/server/internal/port/outbound"
)

// Effect is what a successful payment does to its target.
// The set of variants is closed: ListingEffect, InspectionEffect, BoostEffect.
type Effect interface {
	effect()
}

// ListingEffect marks the listing as verified (listing fee paid).
type ListingEffect struct{}

// InspectionEffect books an inspection on the listing.
type InspectionEffect struct{}

// BoostEffect features the listing for Days days.
type BoostEffect struct {
	Days int
}

func (ListingEffect) effect()    {}
func (InspectionEffect) effect() {}
func (BoostEffect) effect()      {}

// EffectFor builds the effect variant of a payment.
func EffectFor(p *model.Payment) (Effect, error) {
	switch p.Kind {
	case model.PaymentKindListing:
		return ListingEffect{}, nil
	case model.PaymentKindInspection:
		return InspectionEffect{}, nil
	case model.PaymentKindBoost:
		if p.BoostDays == nil || *p.BoostDays <= 0 {
			return nil, fmt.Errorf("%w: boost payment %s has no duration", ErrValidation, p.ID)
		}
		return BoostEffect{Days: *p.BoostDays}, nil
	default:
		return nil, fmt.Errorf("%w: unknown payment kind %q", ErrValidation, p.Kind)
	}
}

// Patch returns the listing update for e at now.
func Patch(e Effect, now time.Time) (*model.ListingPatch, error) {
	yes := true
	switch e := e.(type) {
	case ListingEffect:
		return &model.ListingPatch{IsVerified: &yes}, nil
	case InspectionEffect:
		return &model.ListingPatch{InspectionBooked: &yes, InspectionBookedAt: &now}, nil
	case BoostEffect:
		// Always counted from now, even over a later active expiry.
		until := now.Add(time.Duration(e.Days) * 24 * time.Hour)
		return &model.ListingPatch{IsFeatured: &yes, FeaturedUntil: &until}, nil
	default:
		return nil, fmt.Errorf("%w: unhandled effect %T", ErrValidation, e)
	}
}

// EffectApplier applies the effect of a successful payment to its listing.
type EffectApplier interface {
	Apply(ctx context.Context, p *model.Payment, now time.Time) error
}

type listingEffectApplier struct {
	listingDB outbound.ListingDatabasePort
}

// NewEffectApplier creates an EffectApplier writing through listingDB.
func NewEffectApplier(listingDB outbound.ListingDatabasePort) EffectApplier {
	return &listingEffectApplier{listingDB: listingDB}
}

// Apply fails with ErrEffectApplication on any error; the caller must not commit success.
func (a *listingEffectApplier) Apply(ctx context.Context, p *model.Payment, now time.Time) error {
	if p.TargetType != "" && p.TargetType != model.TargetTypeListing {
		return fmt.Errorf("%w: unsupported target type %q", ErrEffectApplication, p.TargetType)
	}

	eff, err := EffectFor(p)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEffectApplication, err)
	}
	patch, err := Patch(eff, now)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEffectApplication, err)
	}

	if err := a.listingDB.UpdateFields(ctx, p.TargetID, patch); err != nil {
		if errors.Is(err, outbound.ErrListingNotFound) {
			return fmt.Errorf("%w: listing %s: %w", ErrEffectApplication, p.TargetID, ErrListingNotFound)
		}
		return fmt.Errorf("%w: update listing %s: %v", ErrEffectApplication, p.TargetID, err)
	}
	return nil
}
