package cart

import (
	"testing"

	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/enum"
	"github.com/stretchr/testify/assert"
)

func line(unitPrice float64, qty int) *Item {
	return &Item{UnitPrice: unitPrice, Quantity: qty, DiscountType: enum.DiscountTypePercent}
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name string
		item *Item
		want float64
	}{
		{
			name: "plain line",
			item: line(250, 4),
			want: 1000,
		},
		{
			name: "percent discount",
			item: &Item{UnitPrice: 100, Quantity: 2, Discount: 10, DiscountType: enum.DiscountTypePercent},
			want: 180,
		},
		{
			name: "amount discount",
			item: &Item{UnitPrice: 100, Quantity: 2, Discount: 25, DiscountType: enum.DiscountTypeAmount},
			want: 175,
		},
		{
			name: "promo below threshold uses unit price",
			item: &Item{UnitPrice: 100, Quantity: 2, PromoQuantity: 3, PromoPrice: 80, DiscountType: enum.DiscountTypePercent},
			want: 200,
		},
		{
			name: "promo at threshold reprices whole line",
			item: &Item{UnitPrice: 100, Quantity: 3, PromoQuantity: 3, PromoPrice: 80, DiscountType: enum.DiscountTypePercent},
			want: 240,
		},
		{
			name: "promo above threshold",
			item: &Item{UnitPrice: 100, Quantity: 5, PromoQuantity: 3, PromoPrice: 80, DiscountType: enum.DiscountTypePercent},
			want: 400,
		},
		{
			name: "line discount applies after promo price",
			item: &Item{UnitPrice: 100, Quantity: 3, PromoQuantity: 3, PromoPrice: 80, Discount: 10, DiscountType: enum.DiscountTypePercent},
			want: 216,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, LineTotal(tt.item), 1e-9)
		})
	}
}

func TestCompute_DiscountThenSurchargeThenTax(t *testing.T) {
	items := []*Item{line(500, 2)} // subtotal 1000
	discount := Adjustment{Value: 10, Type: enum.DiscountTypePercent}
	cfg := Config{TaxRate: 7, VATEnabled: true}

	got := Compute(items, discount, Adjustment{}, cfg, enum.PaymentMethodCard, 0)

	assert.InDelta(t, 1000.0, got.Subtotal, 1e-9)
	assert.InDelta(t, 100.0, got.DiscountAmount, 1e-9)
	assert.InDelta(t, 10.0, got.DiscountPercent, 1e-9)
	assert.InDelta(t, 63.0, got.TaxAmount, 1e-9)
	assert.InDelta(t, 963.0, got.Total, 1e-9)
}

func TestCompute_SurchargeUsesSubtotalBase(t *testing.T) {
	// Discount and surcharge both resolve against the undiscounted subtotal,
	// not against each other's output.
	items := []*Item{line(100, 10)} // subtotal 1000
	discount := Adjustment{Value: 20, Type: enum.DiscountTypePercent}
	surcharge := Adjustment{Value: 5, Type: enum.DiscountTypePercent}
	cfg := Config{TaxRate: 7, VATEnabled: true}

	got := Compute(items, discount, surcharge, cfg, enum.PaymentMethodCard, 0)

	assert.InDelta(t, 200.0, got.DiscountAmount, 1e-9)
	assert.InDelta(t, 50.0, got.SurchargeAmount, 1e-9)
	// Tax on 1000 - 200 + 50 = 850
	assert.InDelta(t, 59.5, got.TaxAmount, 1e-9)
	assert.InDelta(t, 909.5, got.Total, 1e-9)
}

func TestCompute_AmountAdjustments(t *testing.T) {
	items := []*Item{line(100, 5)} // subtotal 500
	discount := Adjustment{Value: 50, Type: enum.DiscountTypeAmount}
	surcharge := Adjustment{Value: 20, Type: enum.DiscountTypeAmount}
	cfg := Config{TaxRate: 7, VATEnabled: true}

	got := Compute(items, discount, surcharge, cfg, enum.PaymentMethodCard, 0)

	assert.InDelta(t, 50.0, got.DiscountAmount, 1e-9)
	assert.Zero(t, got.DiscountPercent)
	assert.InDelta(t, 20.0, got.SurchargeAmount, 1e-9)
	assert.InDelta(t, 32.9, got.TaxAmount, 1e-9)
	assert.InDelta(t, 502.9, got.Total, 1e-9)
}

func TestCompute_VATDisabled(t *testing.T) {
	items := []*Item{line(100, 3)}
	cfg := Config{TaxRate: 7, VATEnabled: false}

	got := Compute(items, Adjustment{}, Adjustment{}, cfg, enum.PaymentMethodCash, 300)

	assert.Zero(t, got.TaxAmount)
	assert.InDelta(t, 300.0, got.Total, 1e-9)
	assert.Zero(t, got.Change)
}

func TestCompute_CashChange(t *testing.T) {
	items := []*Item{line(321.5, 2)} // total 643, no tax
	cfg := Config{VATEnabled: false}

	got := Compute(items, Adjustment{}, Adjustment{}, cfg, enum.PaymentMethodCash, 680)

	assert.InDelta(t, 680.0, got.AmountReceived, 1e-9)
	assert.InDelta(t, 37.0, got.Change, 1e-9)
}

func TestCompute_CashUnderpaymentNeverNegativeChange(t *testing.T) {
	items := []*Item{line(100, 1)}
	cfg := Config{VATEnabled: false}

	got := Compute(items, Adjustment{}, Adjustment{}, cfg, enum.PaymentMethodCash, 40)

	assert.Zero(t, got.Change)
}

func TestCompute_NonCashCapturesExactTotal(t *testing.T) {
	items := []*Item{line(100, 1)}
	cfg := Config{TaxRate: 7, VATEnabled: true}

	for _, method := range []enum.PaymentMethod{enum.PaymentMethodCard, enum.PaymentMethodTransfer, enum.PaymentMethodQR} {
		got := Compute(items, Adjustment{}, Adjustment{}, cfg, method, 999)
		assert.InDelta(t, got.Total, got.AmountReceived, 1e-9)
		assert.Zero(t, got.Change)
	}
}

func TestCompute_EmptyCart(t *testing.T) {
	got := Compute(nil, Adjustment{}, Adjustment{}, Config{TaxRate: 7, VATEnabled: true}, enum.PaymentMethodCash, 0)

	assert.Zero(t, got.Subtotal)
	assert.Zero(t, got.TaxAmount)
	assert.Zero(t, got.Total)
}

func TestRounded_Reconciles(t *testing.T) {
	// Pick values that produce repeating decimals so intermediate rounding
	// would otherwise drift the total.
	items := []*Item{{UnitPrice: 33.335, Quantity: 3, DiscountType: enum.DiscountTypePercent}}
	discount := Adjustment{Value: 3.33, Type: enum.DiscountTypePercent}
	cfg := Config{TaxRate: 7, VATEnabled: true}

	got := Compute(items, discount, Adjustment{}, cfg, enum.PaymentMethodCash, 200).Rounded()

	assert.InDelta(t, got.Subtotal-got.DiscountAmount+got.SurchargeAmount+got.TaxAmount, got.Total, 1e-9)
	assert.Equal(t, got.Subtotal, Round2(got.Subtotal))
	assert.Equal(t, got.TaxAmount, Round2(got.TaxAmount))
	assert.Equal(t, got.Total, Round2(got.Total))
	assert.InDelta(t, Round2(got.AmountReceived-got.Total), got.Change, 1e-9)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.01, Round2(1.006))
	assert.Equal(t, 1.0, Round2(1.004))
	assert.Equal(t, -1.01, Round2(-1.006))
	assert.Equal(t, 0.0, Round2(0))
}

func TestCents(t *testing.T) {
	assert.Equal(t, int64(96300), Cents(963.00))
	assert.Equal(t, int64(100), Cents(1.001))
	assert.Equal(t, int64(0), Cents(0))
}
