package utils

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money values cross two representations: decimal strings in major units at
// the API ("10.00") and int64 minor units (pence) in storage, where the
// atomic $inc updates need an integer. These helpers are the only conversion
// point between the two.

// ParseAmount parses a decimal string in major units. Values with more than
// two decimal places or a negative sign are rejected.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount %q must not be negative", s)
	}
	if d.Exponent() < -2 {
		return decimal.Zero, fmt.Errorf("amount %q has more than two decimal places", s)
	}
	return d, nil
}

// ToPence converts a major-unit decimal to minor units.
func ToPence(d decimal.Decimal) int64 {
	return d.Mul(decimal.NewFromInt(100)).IntPart()
}

// FromPence converts minor units back to a two-place decimal.
func FromPence(p int64) decimal.Decimal {
	return decimal.NewFromInt(p).Div(decimal.NewFromInt(100))
}

// FormatPence renders minor units as a major-unit decimal string ("7.50").
func FormatPence(p int64) string {
	return FromPence(p).StringFixed(2)
}
