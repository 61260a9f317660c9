package types

import (
	"fmt"
)

// percentScale is the fixed-point scale for Percent: 1% == 100 basis units,
// 100% == 10000.
const percentScale = 10000

// Percent is a fixed-point percentage in 1/10000 units (basis points).
type Percent int64

// NewPercent builds a Percent from a whole percentage, e.g. NewPercent(21)
// for 21%.
func NewPercent(whole int64) Percent {
	return Percent(whole * 100)
}

// PercentFromBasisPoints wraps a raw basis-point value.
func PercentFromBasisPoints(bp int64) Percent { return Percent(bp) }

// BasisPoints returns the raw scaled value.
func (p Percent) BasisPoints() int64 { return int64(p) }

// IsZero reports whether the percentage is exactly zero.
func (p Percent) IsZero() bool { return p == 0 }

// Add returns p+other, failing on overflow.
func (p Percent) Add(other Percent) (Percent, error) {
	sum := p + other
	if (other > 0 && sum < p) || (other < 0 && sum > p) {
		return 0, fmt.Errorf("add %s + %s: %w", p, other, ErrOverflow)
	}
	return sum, nil
}

// ApplyTo computes the percentage of an amount.
func (p Percent) ApplyTo(m Money) (Money, error) {
	return m.MulPercent(p)
}

// String renders the percentage with two decimals, e.g. "21.00%".
func (p Percent) String() string {
	whole := int64(p) / 100
	frac := int64(p) % 100
	if frac < 0 {
		frac = -frac
	}
	if p < 0 && whole == 0 {
		return fmt.Sprintf("-%d.%02d%%", whole, frac)
	}
	return fmt.Sprintf("%d.%02d%%", whole, frac)
}
