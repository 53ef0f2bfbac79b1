package payment

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/propmarket/server/internal/model"
	"github.com/propmarket/server/internal/port/outbound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPatch(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("listing fee verifies", func(t *testing.T) {
		patch, err := Patch(ListingEffect{}, now)
		require.NoError(t, err)
		require.NotNil(t, patch.IsVerified)
		assert.True(t, *patch.IsVerified)
		assert.Equal(t, map[string]interface{}{"is_verified": true}, patch.Columns())
	})

	t.Run("inspection books", func(t *testing.T) {
		patch, err := Patch(InspectionEffect{}, now)
		require.NoError(t, err)
		assert.True(t, *patch.InspectionBooked)
		assert.Equal(t, now, *patch.InspectionBookedAt)
		assert.Nil(t, patch.IsFeatured)
	})

	t.Run("boost features from now", func(t *testing.T) {
		patch, err := Patch(BoostEffect{Days: 7}, now)
		require.NoError(t, err)
		assert.True(t, *patch.IsFeatured)
		assert.Equal(t, now.Add(7*24*time.Hour), *patch.FeaturedUntil)
	})
}

func TestEffectFor(t *testing.T) {
	days := 30
	tests := []struct {
		name    string
		payment *model.Payment
		want    Effect
		wantErr error
	}{
		{"listing", &model.Payment{Kind: model.PaymentKindListing}, ListingEffect{}, nil},
		{"inspection", &model.Payment{Kind: model.PaymentKindInspection}, InspectionEffect{}, nil},
		{"boost", &model.Payment{Kind: model.PaymentKindBoost, BoostDays: &days}, BoostEffect{Days: 30}, nil},
		{"boost without days", &model.Payment{Kind: model.PaymentKindBoost}, nil, ErrValidation},
		{"unknown", &model.Payment{Kind: "gold"}, nil, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EffectFor(tt.payment)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEffectApplier_Apply(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("writes the patch to the listing", func(t *testing.T) {
		listingDB := new(MockListingDatabasePort)
		p := &model.Payment{TargetType: model.TargetTypeListing, TargetID: uuid.New(), Kind: model.PaymentKindListing}
		listingDB.On("UpdateFields", ctx, p.TargetID, mock.MatchedBy(func(patch *model.ListingPatch) bool {
			return patch.IsVerified != nil && *patch.IsVerified
		})).Return(nil)

		require.NoError(t, NewEffectApplier(listingDB).Apply(ctx, p, now))
		listingDB.AssertExpectations(t)
	})

	t.Run("missing listing", func(t *testing.T) {
		listingDB := new(MockListingDatabasePort)
		p := &model.Payment{TargetID: uuid.New(), Kind: model.PaymentKindInspection}
		listingDB.On("UpdateFields", ctx, p.TargetID, mock.Anything).Return(outbound.ErrListingNotFound)

		err := NewEffectApplier(listingDB).Apply(ctx, p, now)
		assert.ErrorIs(t, err, ErrEffectApplication)
		assert.ErrorIs(t, err, ErrListingNotFound)
	})

	t.Run("store error", func(t *testing.T) {
		listingDB := new(MockListingDatabasePort)
		p := &model.Payment{TargetID: uuid.New(), Kind: model.PaymentKindInspection}
		listingDB.On("UpdateFields", ctx, p.TargetID, mock.Anything).Return(errors.New("i/o timeout"))

		err := NewEffectApplier(listingDB).Apply(ctx, p, now)
		assert.ErrorIs(t, err, ErrEffectApplication)
		assert.ErrorContains(t, err, "i/o timeout")
	})

	t.Run("unsupported target type", func(t *testing.T) {
		listingDB := new(MockListingDatabasePort)
		p := &model.Payment{TargetType: "agent", Kind: model.PaymentKindListing}

		err := NewEffectApplier(listingDB).Apply(ctx, p, now)
		assert.ErrorIs(t, err, ErrEffectApplication)
		listingDB.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPriceTable_Price(t *testing.T) {
	days := func(n int) *int { return &n }

	tests := []struct {
		name    string
		kind    model.PaymentKind
		days    *int
		want    int64
		wantErr error
	}{
		{"listing", model.PaymentKindListing, nil, 5000, nil},
		{"inspection", model.PaymentKindInspection, nil, 3000, nil},
		{"boost 7", model.PaymentKindBoost, days(7), 5000, nil},
		{"boost 14", model.PaymentKindBoost, days(14), 9000, nil},
		{"boost 30", model.PaymentKindBoost, days(30), 15000, nil},
		{"boost 0", model.PaymentKindBoost, days(0), 0, ErrInvalidBoostDuration},
		{"boost 8", model.PaymentKindBoost, days(8), 0, ErrInvalidBoostDuration},
		{"boost missing", model.PaymentKindBoost, nil, 0, ErrInvalidBoostDuration},
		{"unknown kind", "featured", nil, 0, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := testPrices.Price(tt.kind, tt.days)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, []int{7, 14, 30}, testPrices.BoostDurations())
}

func TestMoney(t *testing.T) {
	assert.Equal(t, int64(500000), ToMinorUnits(5000))
	assert.Equal(t, "5000", FromMinorUnits(500000).String())
	assert.Equal(t, "25.5", FromMinorUnits(2550).String())

	assert.Equal(t, "₦5,000", FormatAmount(5000, "NGN"))
	assert.Equal(t, "₦15,000", FormatAmount(15000, "ngn"))
	assert.Equal(t, "₦1,250,000", FormatAmount(1250000, "NGN"))
	assert.Equal(t, "₦900", FormatAmount(900, ""))
	assert.Equal(t, "GH₵300", FormatAmount(300, "GHS"))
	assert.Equal(t, "$1,000", FormatAmount(1000, "USD"))
	assert.Equal(t, "KES 1,000", FormatAmount(1000, "KES"))
	assert.Equal(t, "-₦1,000", FormatAmount(-1000, "NGN"))
}

func TestNewReference(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	pattern := regexp.MustCompile(`^BOOST_1700000000123_[A-Z0-9]{8}$`)

	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		ref := NewReference(model.PaymentKindBoost.ReferencePrefix(), now)
		assert.Regexp(t, pattern, ref)
		seen[ref] = struct{}{}
	}
	assert.Greater(t, len(seen), 190)

	assert.Regexp(t, `^RETRY_\d+_[A-Z0-9]{8}$`, NewReference(RetryReferencePrefix, time.Now()))
}
