package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes amounts in user-facing messages.
const CurrencySymbol = "₹"

var hundred = decimal.NewFromInt(100)

// ParseAmount converts a user-entered amount such as "12.5" into cents.
// Blank input is zero. More than two fractional digits is rejected.
func ParseAmount(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, NewValidationError("Please enter a valid amount.")
	}
	cents := d.Mul(hundred)
	if !cents.Equal(cents.Truncate(0)) {
		return 0, NewValidationError("Amounts may have at most two decimal places.")
	}
	return cents.IntPart(), nil
}

// FormatAmount renders cents as a plain decimal string, e.g. 1250 -> "12.50".
func FormatAmount(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// AmountFloat is used for the machine-readable catalog where clients expect a number.
func AmountFloat(cents int64) float64 {
	return decimal.New(cents, -2).InexactFloat64()
}
