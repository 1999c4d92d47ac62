package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/cart"
	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/entity"
	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/enum"
	infraRepo "github.com/Fouxth/CannabisPOS-sub000/internal/infrastructure/repository"
	"github.com/Fouxth/CannabisPOS-sub000/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTerminal = "POS-01"

func fptr(v float64) *float64 { return &v }

type testEnv struct {
	store    *fakeStore
	carts    *CartService
	checkout *CheckoutService
	stock    *StockService
	products *ProductService
	bills    *BillService
	ctx      context.Context
	tenantID uuid.UUID
	userID   uuid.UUID
}

func newTestEnv() *testEnv {
	tenantID := uuid.New()
	userID := uuid.New()

	tenant := &entity.Tenant{
		ID:   tenantID,
		Name: "Test Shop",
		Slug: "test-shop",
		Settings: entity.PricingSettings{
			TaxRate:              7,
			VATEnabled:           true,
			DefaultPaymentMethod: enum.PaymentMethodCash,
			SurchargeEnabled:     true,
		},
	}

	fs := newFakeStore(tenant)
	carts := NewCartService(cart.NewStore(), &fakeProductRepo{fs}, &fakeTenantRepo{fs})

	return &testEnv{
		store:    fs,
		carts:    carts,
		checkout: NewCheckoutService(carts, &fakeCheckoutRepo{fs}, &fakeBillRepo{fs}, &fakeSaleRepo{fs}),
		stock:    NewStockService(&fakeStockRepo{fs}, &fakeProductRepo{fs}),
		products: NewProductService(&fakeProductRepo{fs}, &fakeCategoryRepo{fs}),
		bills:    NewBillService(&fakeBillRepo{fs}, &fakeSaleRepo{fs}),
		ctx:      infraRepo.WithUser(infraRepo.WithTenant(context.Background(), tenantID), userID),
		tenantID: tenantID,
		userID:   userID,
	}
}

func (e *testEnv) seedProduct(name string, priceCents int64, stock int) *entity.Product {
	return e.store.addProduct(&entity.Product{
		TenantID:  e.tenantID,
		Name:      name,
		Code:      "PROD-" + name,
		Price:     priceCents,
		Cost:      priceCents / 2,
		Stock:     stock,
		IsActive:  true,
		ShowInPOS: true,
	})
}

func TestCheckout_CommitsBillSaleAndStock(t *testing.T) {
	e := newTestEnv()
	p := e.seedProduct("Coffee", 10000, 10) // 100.00

	_, err := e.carts.AddItem(e.ctx, testTerminal, p.ID)
	require.NoError(t, err)
	_, err = e.carts.AddItem(e.ctx, testTerminal, p.ID)
	require.NoError(t, err)
	_, err = e.carts.SetAdjustments(e.ctx, testTerminal, &AdjustmentsInput{AmountReceived: fptr(250)})
	require.NoError(t, err)

	result, err := e.checkout.Checkout(e.ctx, testTerminal)
	require.NoError(t, err)

	// 200.00 subtotal + 7% VAT = 214.00, all converted to cents.
	bill := result.Bill
	assert.Equal(t, enum.BillStatusCompleted, bill.Status)
	assert.Equal(t, int64(20000), bill.Subtotal)
	assert.Equal(t, int64(1400), bill.TaxAmount)
	assert.Equal(t, int64(21400), bill.TotalAmount)
	assert.Equal(t, int64(25000), bill.AmountReceived)
	assert.Equal(t, int64(3600), bill.ChangeAmount)
	assert.NotEmpty(t, bill.BillNumber)
	require.Len(t, bill.Items, 1)
	assert.Equal(t, 2, bill.Items[0].Quantity)
	assert.Equal(t, int64(10000), bill.Items[0].UnitPrice)

	// The returned sale is the persisted projection, not the in-memory draft.
	sale := result.Sale
	assert.NotEqual(t, uuid.Nil, sale.ID)
	assert.Equal(t, bill.ID, sale.BillID)
	assert.Equal(t, 2, sale.TotalItems)
	assert.Equal(t, int64(21400), sale.TotalAmount)
	assert.Equal(t, int64(10000), sale.TotalCost)

	assert.Equal(t, 8, e.store.stockOf(p.ID))

	// The session is reset for the next customer.
	view, err := e.carts.GetCart(e.ctx, testTerminal)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.Totals.AmountReceived)

	// One sale movement referencing the bill.
	movements, err := e.stock.GetMovementsForBill(e.ctx, bill.ID)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, enum.MovementTypeSale, movements[0].MovementType)
	assert.Equal(t, -2, movements[0].QuantityChange)
}

func TestAddItem_UnknownProduct(t *testing.T) {
	e := newTestEnv()

	_, err := e.carts.AddItem(e.ctx, testTerminal, uuid.New())

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.GetAppError(err).Code)

	view, err := e.carts.GetCart(e.ctx, testTerminal)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestBill_SnapshotsSurviveProductEdits(t *testing.T) {
	e := newTestEnv()
	p := e.seedProduct("Coffee", 10000, 10)

	_, err := e.carts.AddItem(e.ctx, testTerminal, p.ID)
	require.NoError(t, err)
	_, err = e.carts.SetAdjustments(e.ctx, testTerminal, &AdjustmentsInput{AmountReceived: fptr(200)})
	require.NoError(t, err)

	result, err := e.checkout.Checkout(e.ctx, testTerminal)
	require.NoError(t, err)

	// Reprice and rename the product after the sale.
	newName := "Premium Coffee"
	newPrice := 199.0
	_, err = e.products.UpdateProduct(e.ctx, p.ID, &UpdateProductInput{Name: &newName, Price: &newPrice})
	require.NoError(t, err)

	bill, err := e.bills.GetBill(e.ctx, result.Bill.ID)
	require.NoError(t, err)
	require.Len(t, bill.Items, 1)
	assert.Equal(t, "Coffee", bill.Items[0].ProductName)
	assert.Equal(t, int64(10000), bill.Items[0].UnitPrice)
	assert.Equal(t, int64(10000), bill.Items[0].Total)
	assert.Equal(t, int64(10700), bill.TotalAmount)
}

func TestCheckout_InsufficientStockRollsBackEverything(t *testing.T) {
	e := newTestEnv()
	a := e.seedProduct("Coffee", 5000, 5)
	b := e.seedProduct("Tea", 3000, 1)

	_, err := e.carts.AddItem(e.ctx, testTerminal, a.ID)
	require.NoError(t, err)
	_, err = e.carts.AddItem(e.ctx, testTerminal, b.ID)
	require.NoError(t, err)
	_, err = e.carts.AddItem(e.ctx, testTerminal, b.ID)
	require.NoError(t, err)
	_, err = e.carts.SetAdjustments(e.ctx, testTerminal, &AdjustmentsInput{AmountReceived: fptr(500)})
	require.NoError(t, err)

	_, err = e.checkout.Checkout(e.ctx, testTerminal)
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	// No partial commit: the coverable line is untouched too.
	assert.Equal(t, 5, e.store.stockOf(a.ID))
	assert.Equal(t, 1, e.store.stockOf(b.ID))
	assert.Empty(t, e.store.bills)
	assert.Empty(t, e.store.movements)

	// The cart is preserved for correction; a restock makes the same cart
	// checkout-able without rebuilding it.
	view, err := e.carts.GetCart(e.ctx, testTerminal)
	require.NoError(t, err)
	assert.Len(t, view.Items, 2)

	_, err = e.stock.Adjust(e.ctx, &AdjustStockInput{
		ProductID:    b.ID,
		Type:         enum.AdjustmentTypeAdd,
		Quantity:     10,
		MovementType: "restock",
		Reason:       "delivery",
	})
	require.NoError(t, err)

	result, err := e.checkout.Checkout(e.ctx, testTerminal)
	require.NoError(t, err)
	assert.Equal(t, 4, e.store.stockOf(a.ID))
	assert.Equal(t, 9, e.store.stockOf(b.ID))
	assert.Len(t, result.Bill.Items, 2)
}

func TestCheckout_EmptyCart(t *testing.T) {
	e := newTestEnv()

	_, err := e.checkout.Checkout(e.ctx, testTerminal)

	assert.ErrorIs(t, err, apperror.ErrEmptyCart)
}

func TestCheckout_InsufficientCash(t *testing.T) {
	e := newTestEnv()
	p := e.seedProduct("Coffee", 10000, 10)

	_, err := e.carts.AddItem(e.ctx, testTerminal, p.ID)
	require.NoError(t, err)

	_, err = e.checkout.Checkout(e.ctx, testTerminal)

	assert.ErrorIs(t, err, apperror.ErrInsufficientPayment)
	assert.Equal(t, 10, e.store.stockOf(p.ID))
	assert.Empty(t, e.store.bills)
}

func TestCheckout_CardNeedsNoReceivedAmount(t *testing.T) {
	e := newTestEnv()
	p := e.seedProduct("Coffee", 10000, 10)

	_, err := e.carts.AddItem(e.ctx, testTerminal, p.ID)
	require.NoError(t, err)
	card := enum.PaymentMethodCard
	_, err = e.carts.SetAdjustments(e.ctx, testTerminal, &AdjustmentsInput{PaymentMethod: &card})
	require.NoError(t, err)

	result, err := e.checkout.Checkout(e.ctx, testTerminal)

	require.NoError(t, err)
	assert.Equal(t, result.Bill.TotalAmount, result.Bill.AmountReceived)
	assert.Zero(t, result.Bill.ChangeAmount)
}

func TestCheckout_RequiresUserContext(t *testing.T) {
	e := newTestEnv()

	_, err := e.checkout.Checkout(context.Background(), testTerminal)

	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestCheckout_GlobalDiscountFlowsToBill(t *testing.T) {
	e := newTestEnv()
	p := e.seedProduct("Coffee", 50000, 10) // 500.00

	_, err := e.carts.AddItem(e.ctx, testTerminal, p.ID)
	require.NoError(t, err)
	_, err = e.carts.AddItem(e.ctx, testTerminal, p.ID)
	require.NoError(t, err)
	_, err = e.carts.SetAdjustments(e.ctx, testTerminal, &AdjustmentsInput{
		Discount:       fptr(10),
		AmountReceived: fptr(1000),
	})
	require.NoError(t, err)

	result, err := e.checkout.Checkout(e.ctx, testTerminal)
	require.NoError(t, err)

	// 1000 - 10% = 900, + 7% VAT = 963.
	bill := result.Bill
	assert.Equal(t, int64(100000), bill.Subtotal)
	assert.Equal(t, int64(10000), bill.DiscountAmount)
	assert.Equal(t, 10.0, bill.DiscountPercent)
	assert.Equal(t, int64(6300), bill.TaxAmount)
	assert.Equal(t, int64(96300), bill.TotalAmount)
	assert.Equal(t, int64(3700), bill.ChangeAmount)
}

func TestVoidBill_RestoresStock(t *testing.T) {
	e := newTestEnv()
	p := e.seedProduct("Coffee", 10000, 10)

	_, err := e.carts.AddItem(e.ctx, testTerminal, p.ID)
	require.NoError(t, err)
	_, err = e.carts.SetAdjustments(e.ctx, testTerminal, &AdjustmentsInput{AmountReceived: fptr(200)})
	require.NoError(t, err)

	result, err := e.checkout.Checkout(e.ctx, testTerminal)
	require.NoError(t, err)
	require.Equal(t, 9, e.store.stockOf(p.ID))

	voided, err := e.checkout.VoidBill(e.ctx, result.Bill.ID)
	require.NoError(t, err)

	assert.Equal(t, enum.BillStatusVoided, voided.Status)
	assert.NotNil(t, voided.VoidedAt)
	assert.Equal(t, 10, e.store.stockOf(p.ID))

	// The reporting projection follows the bill.
	sale := e.store.sales[result.Bill.ID]
	assert.Equal(t, enum.BillStatusVoided, sale.Status)

	// One sale movement plus one return movement, both tied to the bill.
	movements, err := e.stock.GetMovementsForBill(e.ctx, result.Bill.ID)
	require.NoError(t, err)
	require.Len(t, movements, 2)
	assert.Equal(t, enum.MovementTypeReturn, movements[1].MovementType)
	assert.Equal(t, 1, movements[1].QuantityChange)
}

func TestVoidBill_Twice(t *testing.T) {
	e := newTestEnv()
	p := e.seedProduct("Coffee", 10000, 10)

	_, err := e.carts.AddItem(e.ctx, testTerminal, p.ID)
	require.NoError(t, err)
	_, err = e.carts.SetAdjustments(e.ctx, testTerminal, &AdjustmentsInput{AmountReceived: fptr(200)})
	require.NoError(t, err)

	result, err := e.checkout.Checkout(e.ctx, testTerminal)
	require.NoError(t, err)

	_, err = e.checkout.VoidBill(e.ctx, result.Bill.ID)
	require.NoError(t, err)

	_, err = e.checkout.VoidBill(e.ctx, result.Bill.ID)
	assert.ErrorIs(t, err, apperror.ErrBillAlreadyVoided)

	// Stock is restored exactly once.
	assert.Equal(t, 10, e.store.stockOf(p.ID))
}

func TestBuildCommit_PromoUnitPrice(t *testing.T) {
	userID := uuid.New()
	snapshot := &cart.Checkout{
		TerminalID: testTerminal,
		TenantID:   uuid.New(),
		Items: []cart.Item{
			{
				ID:            uuid.New(),
				ProductID:     uuid.New(),
				ProductName:   "Tea",
				UnitPrice:     100,
				UnitCost:      40,
				Quantity:      3,
				PromoQuantity: 3,
				PromoPrice:    80,
				DiscountType:  enum.DiscountTypePercent,
			},
		},
		PaymentMethod: enum.PaymentMethodCash,
	}
	snapshot.Totals = cart.Compute(nil, cart.Adjustment{}, cart.Adjustment{}, cart.Config{}, enum.PaymentMethodCash, 0)

	commit := buildCommit(snapshot, userID)

	require.Len(t, commit.Bill.Items, 1)
	it := commit.Bill.Items[0]
	// The unit price persisted is the price as charged: the promo price once
	// the line reached its threshold.
	assert.Equal(t, int64(8000), it.UnitPrice)
	assert.Equal(t, int64(24000), it.Total)

	// Cost basis still uses the real unit cost.
	assert.Equal(t, int64(12000), commit.Sale.TotalCost)
	assert.Equal(t, 3, commit.Sale.TotalItems)
	assert.Equal(t, userID, commit.Bill.UserID)
}
