package payment

import (
	"strings"

	"github.com/shopspring/decimal"
)

// minorUnitsPerMajor is the subunit ratio of the supported currencies (kobo, pesewa, cent).
var minorUnitsPerMajor = decimal.NewFromInt(100)

// ToMinorUnits converts a major-unit amount to minor units.
func ToMinorUnits(amount int64) int64 {
	return decimal.NewFromInt(amount).Mul(minorUnitsPerMajor).IntPart()
}

// FromMinorUnits converts minor units back to major units.
func FromMinorUnits(minor int64) decimal.Decimal {
	return decimal.NewFromInt(minor).Div(minorUnitsPerMajor)
}

// FormatAmount renders an amount with thousands separators and the currency symbol, e.g. ₦5,000.
func FormatAmount(amount int64, currency string) string {
	digits := decimal.NewFromInt(amount).Abs().String()

	var b strings.Builder
	if amount < 0 {
		b.WriteByte('-')
	}
	b.WriteString(currencySymbol(currency))
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func currencySymbol(currency string) string {
	switch strings.ToUpper(currency) {
	case "NGN", "":
		return "₦"
	case "GHS":
		return "GH₵"
	case "USD":
		return "$"
	default:
		return strings.ToUpper(currency) + " "
	}
}
