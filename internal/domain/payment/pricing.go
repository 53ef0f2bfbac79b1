package payment

import (
	"fmt"
	"sort"

	"github.com/propmarket/server/internal/model"
)

// PriceTable maps what a payment buys to its amount in major units.
type PriceTable struct {
	Listing    int64
	Inspection int64
	// Boost maps a boost duration in days to its price.
	Boost map[int]int64
}

// Price returns the amount for kind. boostDays is only read for boosts.
func (t PriceTable) Price(kind model.PaymentKind, boostDays *int) (int64, error) {
	switch kind {
	case model.PaymentKindListing:
		return t.Listing, nil
	case model.PaymentKindInspection:
		return t.Inspection, nil
	case model.PaymentKindBoost:
		if boostDays == nil {
			return 0, fmt.Errorf("%w: boost days are required", ErrInvalidBoostDuration)
		}
		amount, ok := t.Boost[*boostDays]
		if !ok {
			return 0, fmt.Errorf("%w: %d days, choose one of %v", ErrInvalidBoostDuration, *boostDays, t.BoostDurations())
		}
		return amount, nil
	default:
		return 0, fmt.Errorf("%w: unknown payment kind %q", ErrValidation, kind)
	}
}

// BoostDurations returns the purchasable boost durations in ascending order.
func (t PriceTable) BoostDurations() []int {
	days := make([]int, 0, len(t.Boost))
	for d := range t.Boost {
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}
