package cart

import (
	"math"

	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/enum"
)

// Config is the tenant pricing configuration a session snapshots when it
// opens. An in-flight cart always finishes with the configuration it started
// with; a concurrent settings change only affects the next session.
type Config struct {
	TaxRate          float64
	VATEnabled       bool
	SurchargeEnabled bool
}

// Adjustment is a cart-level discount or surcharge.
type Adjustment struct {
	Value float64
	Type  enum.DiscountType
}

// Amount resolves the adjustment against a base amount.
func (a Adjustment) Amount(base float64) float64 {
	if a.Type == enum.DiscountTypePercent {
		return base * a.Value / 100
	}
	return a.Value
}

// Percent returns the percentage value when the adjustment is percent-typed,
// zero otherwise. Persisted on the bill for receipt rendering.
func (a Adjustment) Percent() float64 {
	if a.Type == enum.DiscountTypePercent {
		return a.Value
	}
	return 0
}

// Totals is the full monetary breakdown of a cart. Values are unrounded
// intermediate results; call Rounded before persisting or displaying so
// rounding happens exactly once, at the presentation boundary.
type Totals struct {
	Subtotal         float64 `json:"subtotal"`
	DiscountAmount   float64 `json:"discount_amount"`
	DiscountPercent  float64 `json:"discount_percent"`
	SurchargeAmount  float64 `json:"surcharge_amount"`
	SurchargePercent float64 `json:"surcharge_percent"`
	TaxAmount        float64 `json:"tax_amount"`
	TaxRate          float64 `json:"tax_rate"`
	Total            float64 `json:"total"`
	AmountReceived   float64 `json:"amount_received"`
	Change           float64 `json:"change"`
}

// LineTotal computes a single cart line's total after its item-level
// discount. When the line quantity reaches the promo threshold the promo
// price replaces the unit price for every unit on the line.
func LineTotal(it *Item) float64 {
	unit := it.UnitPrice
	if it.PromoQuantity > 0 && it.Quantity >= it.PromoQuantity {
		unit = it.PromoPrice
	}
	total := unit * float64(it.Quantity)

	if it.DiscountType == enum.DiscountTypePercent {
		total -= total * it.Discount / 100
	} else {
		total -= it.Discount
	}
	return total
}

// Compute derives the totals breakdown for a set of cart lines. The
// computation order is fixed: item totals, subtotal, global discount against
// the subtotal, global surcharge against the same subtotal base, tax on the
// adjusted base, then total and change. It is a pure function and is
// re-evaluated on every read rather than cached.
func Compute(items []*Item, discount, surcharge Adjustment, cfg Config, method enum.PaymentMethod, amountReceived float64) Totals {
	var subtotal float64
	for _, it := range items {
		subtotal += LineTotal(it)
	}

	discountAmount := discount.Amount(subtotal)
	surchargeAmount := surcharge.Amount(subtotal)

	var tax float64
	if cfg.VATEnabled {
		tax = (subtotal - discountAmount + surchargeAmount) * cfg.TaxRate / 100
	}

	total := subtotal - discountAmount + surchargeAmount + tax

	// Non-cash tenders are captured at the exact total; change only exists
	// for cash.
	received := amountReceived
	change := 0.0
	if method.IsCash() {
		change = math.Max(received-total, 0)
	} else {
		received = total
	}

	return Totals{
		Subtotal:         subtotal,
		DiscountAmount:   discountAmount,
		DiscountPercent:  discount.Percent(),
		SurchargeAmount:  surchargeAmount,
		SurchargePercent: surcharge.Percent(),
		TaxAmount:        tax,
		TaxRate:          cfg.TaxRate,
		Total:            total,
		AmountReceived:   received,
		Change:           change,
	}
}

// Rounded returns the breakdown rounded to 2 decimal places. The total and
// change are recomputed from the rounded components so the persisted record
// always reconciles: total == subtotal - discount + surcharge + tax.
func (t Totals) Rounded() Totals {
	r := Totals{
		Subtotal:         Round2(t.Subtotal),
		DiscountAmount:   Round2(t.DiscountAmount),
		DiscountPercent:  t.DiscountPercent,
		SurchargeAmount:  Round2(t.SurchargeAmount),
		SurchargePercent: t.SurchargePercent,
		TaxAmount:        Round2(t.TaxAmount),
		TaxRate:          t.TaxRate,
		AmountReceived:   Round2(t.AmountReceived),
	}
	r.Total = Round2(r.Subtotal - r.DiscountAmount + r.SurchargeAmount + r.TaxAmount)
	r.Change = Round2(math.Max(r.AmountReceived-r.Total, 0))
	return r
}

// Round2 rounds to 2 decimal places (half away from zero).
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Cents converts a rounded decimal amount to integer cents for storage.
func Cents(v float64) int64 {
	return int64(math.Round(v * 100))
}
