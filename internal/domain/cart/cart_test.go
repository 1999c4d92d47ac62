package cart

import (
	"testing"

	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/entity"
	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/enum"
	"github.com/Fouxth/CannabisPOS-sub000/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession() *Session {
	cfg := Config{TaxRate: 7, VATEnabled: true, SurchargeEnabled: true}
	return NewSession("POS-01", uuid.New(), cfg, enum.PaymentMethodCash)
}

func testProduct(name string, priceCents int64) *entity.Product {
	return &entity.Product{
		ID:    uuid.New(),
		Name:  name,
		Price: priceCents,
		Cost:  priceCents / 2,
		Stock: 100,
	}
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func TestAddItem_NewLine(t *testing.T) {
	s := testSession()
	p := testProduct("Coffee", 5000)

	it := s.AddItem(p)

	assert.Equal(t, p.ID, it.ProductID)
	assert.Equal(t, "Coffee", it.ProductName)
	assert.Equal(t, 50.0, it.UnitPrice)
	assert.Equal(t, 1, it.Quantity)
	assert.Len(t, s.Items(), 1)
}

func TestAddItem_SameProductIncrements(t *testing.T) {
	s := testSession()
	p := testProduct("Coffee", 5000)

	s.AddItem(p)
	it := s.AddItem(p)

	assert.Equal(t, 2, it.Quantity)
	assert.Len(t, s.Items(), 1)
}

func TestAddItem_SnapshotsPromo(t *testing.T) {
	s := testSession()
	p := testProduct("Tea", 10000)
	p.PromoQuantity = intPtr(3)
	promoPrice := int64(8000)
	p.PromoPrice = &promoPrice

	it := s.AddItem(p)

	assert.Equal(t, 3, it.PromoQuantity)
	assert.Equal(t, 80.0, it.PromoPrice)
}

func TestUpdateItem(t *testing.T) {
	s := testSession()
	it := s.AddItem(testProduct("Coffee", 5000))

	amount := enum.DiscountTypeAmount
	got, err := s.UpdateItem(it.ID, ItemPatch{
		Quantity:     intPtr(3),
		Discount:     floatPtr(15),
		DiscountType: &amount,
		Note:         strPtr("no ice"),
	})

	require.NoError(t, err)
	assert.Equal(t, 3, got.Quantity)
	assert.Equal(t, 15.0, got.Discount)
	assert.Equal(t, enum.DiscountTypeAmount, got.DiscountType)
	assert.Equal(t, "no ice", got.Note)
}

func TestUpdateItem_QuantityBelowOneRejected(t *testing.T) {
	s := testSession()
	it := s.AddItem(testProduct("Coffee", 5000))

	_, err := s.UpdateItem(it.ID, ItemPatch{Quantity: intPtr(0)})

	require.Error(t, err)
	// The line is untouched after a rejected patch.
	assert.Equal(t, 1, s.Items()[0].Quantity)
}

func TestUpdateItem_UnknownLine(t *testing.T) {
	s := testSession()
	s.AddItem(testProduct("Coffee", 5000))

	_, err := s.UpdateItem(uuid.New(), ItemPatch{Quantity: intPtr(2)})

	require.Error(t, err)
}

func TestRemoveItem(t *testing.T) {
	s := testSession()
	a := s.AddItem(testProduct("Coffee", 5000))
	s.AddItem(testProduct("Tea", 3000))

	require.NoError(t, s.RemoveItem(a.ID))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Tea", items[0].ProductName)

	assert.Error(t, s.RemoveItem(a.ID))
}

func TestClear_ResetsAdjustmentsAndTender(t *testing.T) {
	s := testSession()
	s.AddItem(testProduct("Coffee", 5000))
	s.SetGlobalDiscount(10, enum.DiscountTypePercent)
	require.NoError(t, s.SetGlobalSurcharge(5, enum.DiscountTypeAmount))
	s.SetPaymentMethod(enum.PaymentMethodCard)
	s.SetAmountReceived(100)

	s.Clear()

	assert.True(t, s.IsEmpty())
	totals := s.Totals()
	assert.Zero(t, totals.Subtotal)
	assert.Zero(t, totals.DiscountAmount)
	assert.Zero(t, totals.SurchargeAmount)
	assert.Zero(t, totals.AmountReceived)

	// The payment method returns to the tenant default, so a fresh cash sale
	// starts with zero received rather than a stale card capture.
	s.AddItem(testProduct("Tea", 10000))
	assert.Zero(t, s.Totals().AmountReceived)
}

func TestSetGlobalSurcharge_DisabledByConfig(t *testing.T) {
	cfg := Config{TaxRate: 7, VATEnabled: true, SurchargeEnabled: false}
	s := NewSession("POS-01", uuid.New(), cfg, enum.PaymentMethodCash)
	s.AddItem(testProduct("Coffee", 5000))

	err := s.SetGlobalSurcharge(5, enum.DiscountTypePercent)

	require.Error(t, err)
	assert.Zero(t, s.Totals().SurchargeAmount)

	// Zeroing is always allowed.
	assert.NoError(t, s.SetGlobalSurcharge(0, enum.DiscountTypePercent))
}

func TestTotals_TaxSnapshotFromSessionConfig(t *testing.T) {
	cfg := Config{TaxRate: 7, VATEnabled: true}
	s := NewSession("POS-01", uuid.New(), cfg, enum.PaymentMethodCash)
	s.AddItem(testProduct("Coffee", 100000)) // 1000.00

	totals := s.Totals()

	assert.InDelta(t, 7.0, totals.TaxRate, 1e-9)
	assert.InDelta(t, 70.0, totals.TaxAmount, 1e-9)
	assert.InDelta(t, 1070.0, totals.Total, 1e-9)
}

func TestBeginCheckout_EmptyCart(t *testing.T) {
	s := testSession()

	_, err := s.BeginCheckout()

	assert.ErrorIs(t, err, apperror.ErrEmptyCart)
}

func TestBeginCheckout_InsufficientCash(t *testing.T) {
	s := testSession()
	s.AddItem(testProduct("Coffee", 100000)) // total 1070 with 7% VAT
	s.SetAmountReceived(1000)

	_, err := s.BeginCheckout()

	assert.ErrorIs(t, err, apperror.ErrInsufficientPayment)
}

func TestBeginCheckout_NonCashIgnoresReceived(t *testing.T) {
	s := testSession()
	s.AddItem(testProduct("Coffee", 100000))
	s.SetPaymentMethod(enum.PaymentMethodCard)

	snapshot, err := s.BeginCheckout()

	require.NoError(t, err)
	assert.InDelta(t, snapshot.Totals.Total, snapshot.Totals.AmountReceived, 1e-9)
	assert.Zero(t, snapshot.Totals.Change)
}

func TestBeginCheckout_SecondAttemptConflicts(t *testing.T) {
	s := testSession()
	s.AddItem(testProduct("Coffee", 5000))
	s.SetAmountReceived(100)

	_, err := s.BeginCheckout()
	require.NoError(t, err)

	_, err = s.BeginCheckout()
	assert.ErrorIs(t, err, apperror.ErrCheckoutInFlight)
}

func TestBeginCheckout_SnapshotDecoupledFromSession(t *testing.T) {
	s := testSession()
	it := s.AddItem(testProduct("Coffee", 5000))
	s.SetAmountReceived(100)

	snapshot, err := s.BeginCheckout()
	require.NoError(t, err)
	s.EndCheckout(false)

	_, err = s.UpdateItem(it.ID, ItemPatch{Quantity: intPtr(5)})
	require.NoError(t, err)

	assert.Equal(t, 1, snapshot.Items[0].Quantity)
}

func TestEndCheckout_CommittedResetsSession(t *testing.T) {
	s := testSession()
	s.AddItem(testProduct("Coffee", 5000))
	s.SetGlobalDiscount(10, enum.DiscountTypePercent)
	s.SetAmountReceived(100)

	_, err := s.BeginCheckout()
	require.NoError(t, err)
	s.EndCheckout(true)

	assert.True(t, s.IsEmpty())
	assert.Zero(t, s.Totals().AmountReceived)

	// The next checkout may start immediately.
	s.AddItem(testProduct("Tea", 3000))
	s.SetAmountReceived(50)
	_, err = s.BeginCheckout()
	assert.NoError(t, err)
}

func TestEndCheckout_FailedLeavesCartForRetry(t *testing.T) {
	s := testSession()
	s.AddItem(testProduct("Coffee", 5000))
	s.SetAmountReceived(100)

	_, err := s.BeginCheckout()
	require.NoError(t, err)
	s.EndCheckout(false)

	assert.False(t, s.IsEmpty())
	assert.InDelta(t, 100.0, s.Totals().AmountReceived, 1e-9)

	_, err = s.BeginCheckout()
	assert.NoError(t, err)
}

func TestStore_SessionPerTerminal(t *testing.T) {
	st := NewStore()
	tenantID := uuid.New()
	cfg := Config{TaxRate: 7, VATEnabled: true}

	a := st.Get("POS-01", tenantID, cfg, enum.PaymentMethodCash)
	b := st.Get("POS-02", tenantID, cfg, enum.PaymentMethodCash)

	a.AddItem(testProduct("Coffee", 5000))

	assert.NotSame(t, a, b)
	assert.True(t, b.IsEmpty())
	assert.Same(t, a, st.Get("POS-01", tenantID, cfg, enum.PaymentMethodCash))
}

func TestStore_DropOpensFreshSession(t *testing.T) {
	st := NewStore()
	tenantID := uuid.New()

	a := st.Get("POS-01", tenantID, Config{TaxRate: 7, VATEnabled: true}, enum.PaymentMethodCash)
	a.AddItem(testProduct("Coffee", 5000))

	st.Drop("POS-01")

	// A new session picks up the configuration supplied at re-open.
	b := st.Get("POS-01", tenantID, Config{TaxRate: 10, VATEnabled: true}, enum.PaymentMethodCash)
	assert.True(t, b.IsEmpty())
	b.AddItem(testProduct("Coffee", 10000))
	assert.InDelta(t, 10.0, b.Totals().TaxRate, 1e-9)
}
