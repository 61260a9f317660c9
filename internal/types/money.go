// Package types holds the fixed-point value types shared across domain
// packages: monetary amounts, percentages and tri-state optional fields.
package types

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrOverflow is returned when a checked arithmetic operation would exceed
// the int64 range. Amounts never wrap silently.
var ErrOverflow = errors.New("amount overflow")

// Money is a fixed-point monetary amount in minor units (cents).
type Money int64

// NewMoney builds a Money from whole and fractional parts, e.g. NewMoney(12, 50).
func NewMoney(units int64, cents int64) Money {
	return Money(units*100 + cents)
}

// Cents returns the raw minor-unit value.
func (m Money) Cents() int64 { return int64(m) }

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool { return m == 0 }

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool { return m < 0 }

// Add returns m+other, failing on overflow.
func (m Money) Add(other Money) (Money, error) {
	sum := m + other
	if (other > 0 && sum < m) || (other < 0 && sum > m) {
		return 0, fmt.Errorf("add %d + %d: %w", m, other, ErrOverflow)
	}
	return sum, nil
}

// Sub returns m-other, failing on overflow.
func (m Money) Sub(other Money) (Money, error) {
	if other == math.MinInt64 {
		return 0, fmt.Errorf("sub %d - %d: %w", m, other, ErrOverflow)
	}
	return m.Add(-other)
}

// Mul returns m scaled by an integer factor, failing on overflow.
func (m Money) Mul(factor int64) (Money, error) {
	if m == 0 || factor == 0 {
		return 0, nil
	}
	product := int64(m) * factor
	if product/factor != int64(m) {
		return 0, fmt.Errorf("mul %d * %d: %w", m, factor, ErrOverflow)
	}
	return Money(product), nil
}

// MulPercent applies a percentage to the amount, rounding half away from
// zero at the final division.
func (m Money) MulPercent(p Percent) (Money, error) {
	if m == 0 || p == 0 {
		return 0, nil
	}
	product := int64(m) * int64(p)
	if product/int64(p) != int64(m) {
		return 0, fmt.Errorf("apply %s to %d: %w", p, m, ErrOverflow)
	}
	half := int64(percentScale / 2)
	if product < 0 {
		half = -half
	}
	return Money((product + half) / percentScale), nil
}

// Format renders the amount as a decimal string with grouping for the given
// language tag, e.g. "1,234.50".
func (m Money) Format(tag language.Tag) string {
	p := message.NewPrinter(tag)
	units := int64(m) / 100
	cents := int64(m) % 100
	if cents < 0 {
		cents = -cents
	}
	if m < 0 && units == 0 {
		return p.Sprintf("-%d.%02d", units, cents)
	}
	return p.Sprintf("%d.%02d", units, cents)
}

// String renders the amount as a plain decimal, e.g. "12.50".
func (m Money) String() string {
	return m.Format(language.English)
}
