package shared

import (
	"fmt"

	"github.com/meridian-pos/meridian-pos/internal/types"
)

// LineTotals is the money breakdown of a single order line.
type LineTotals struct {
	Gross    types.Money
	Discount types.Money
	Net      types.Money
	Tax      types.Money
	Total    types.Money
}

// CalculateLineTotals computes a line's breakdown with checked fixed-point
// arithmetic: gross = qty * unit price, discount applies to gross, tax
// applies to the discounted net.
func CalculateLineTotals(quantity int64, unitPrice types.Money, discountPct, taxPct types.Percent) (LineTotals, error) {
	gross, err := unitPrice.Mul(quantity)
	if err != nil {
		return LineTotals{}, fmt.Errorf("gross: %w", err)
	}

	discount, err := gross.MulPercent(discountPct)
	if err != nil {
		return LineTotals{}, fmt.Errorf("discount: %w", err)
	}

	net, err := gross.Sub(discount)
	if err != nil {
		return LineTotals{}, fmt.Errorf("net: %w", err)
	}

	tax, err := net.MulPercent(taxPct)
	if err != nil {
		return LineTotals{}, fmt.Errorf("tax: %w", err)
	}

	total, err := net.Add(tax)
	if err != nil {
		return LineTotals{}, fmt.Errorf("total: %w", err)
	}

	return LineTotals{Gross: gross, Discount: discount, Net: net, Tax: tax, Total: total}, nil
}

// OrderTotals accumulates line breakdowns plus flat charges into the order
// level money fields.
type OrderTotals struct {
	Subtotal      types.Money
	DiscountTotal types.Money
	TaxTotal      types.Money
	ChargeTotal   types.Money
	Total         types.Money
}

// Accumulate folds a line into the running order totals.
func (o OrderTotals) Accumulate(line LineTotals) (OrderTotals, error) {
	var err error
	if o.Subtotal, err = o.Subtotal.Add(line.Net); err != nil {
		return o, fmt.Errorf("subtotal: %w", err)
	}
	if o.DiscountTotal, err = o.DiscountTotal.Add(line.Discount); err != nil {
		return o, fmt.Errorf("discount total: %w", err)
	}
	if o.TaxTotal, err = o.TaxTotal.Add(line.Tax); err != nil {
		return o, fmt.Errorf("tax total: %w", err)
	}
	if o.Total, err = o.Total.Add(line.Total); err != nil {
		return o, fmt.Errorf("total: %w", err)
	}
	return o, nil
}

// AddCharge folds a flat order charge into the running totals.
func (o OrderTotals) AddCharge(amount types.Money) (OrderTotals, error) {
	var err error
	if o.ChargeTotal, err = o.ChargeTotal.Add(amount); err != nil {
		return o, fmt.Errorf("charge total: %w", err)
	}
	if o.Total, err = o.Total.Add(amount); err != nil {
		return o, fmt.Errorf("total: %w", err)
	}
	return o, nil
}
