package service

import (
	"context"
	"time"

	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/cart"
	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/entity"
	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/enum"
	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/repository"
	infraRepo "github.com/Fouxth/CannabisPOS-sub000/internal/infrastructure/repository"
	"github.com/Fouxth/CannabisPOS-sub000/pkg/apperror"
	"github.com/Fouxth/CannabisPOS-sub000/pkg/utils"
	"github.com/google/uuid"
)

// CheckoutService orchestrates the conversion of a cart session into a
// committed Bill, Sale and stock decrement, all-or-nothing.
type CheckoutService struct {
	carts        *CartService
	checkoutRepo repository.CheckoutRepository
	billRepo     repository.BillRepository
	saleRepo     repository.SaleRepository
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	carts *CartService,
	checkoutRepo repository.CheckoutRepository,
	billRepo repository.BillRepository,
	saleRepo repository.SaleRepository,
) *CheckoutService {
	return &CheckoutService{
		carts:        carts,
		checkoutRepo: checkoutRepo,
		billRepo:     billRepo,
		saleRepo:     saleRepo,
	}
}

// CheckoutResult is the committed outcome returned to the terminal.
type CheckoutResult struct {
	Bill *entity.Bill `json:"bill"`
	Sale *entity.Sale `json:"sale"`
}

// Checkout freezes the terminal's cart and commits it. The session validates
// the tender and blocks concurrent submission; the repository enforces stock
// atomically. On success the session resets for the next customer, on any
// failure it is left untouched for correction and retry.
func (s *CheckoutService) Checkout(ctx context.Context, terminalID string) (*CheckoutResult, error) {
	userID, ok := infraRepo.GetUserID(ctx)
	if !ok {
		return nil, apperror.ErrUnauthorized
	}

	session, err := s.carts.Session(ctx, terminalID)
	if err != nil {
		return nil, err
	}

	snapshot, err := session.BeginCheckout()
	if err != nil {
		return nil, err
	}

	commit := buildCommit(snapshot, userID)
	if err := s.checkoutRepo.Commit(ctx, commit); err != nil {
		session.EndCheckout(false)
		return nil, err
	}
	session.EndCheckout(true)

	bill, err := s.billRepo.GetWithItems(ctx, commit.Bill.ID)
	if err != nil {
		// The commit succeeded; fall back to the in-memory copy.
		bill = commit.Bill
	}
	sale, err := s.saleRepo.GetByBillID(ctx, commit.Bill.ID)
	if err != nil {
		sale = commit.Sale
	}

	return &CheckoutResult{Bill: bill, Sale: sale}, nil
}

// VoidBill reverses a committed bill: status flips to voided, stock is
// restored with return-type movements, and the reporting projection follows.
func (s *CheckoutService) VoidBill(ctx context.Context, billID uuid.UUID) (*entity.Bill, error) {
	userID, ok := infraRepo.GetUserID(ctx)
	if !ok {
		return nil, apperror.ErrUnauthorized
	}
	return s.checkoutRepo.Void(ctx, billID, userID)
}

// buildCommit snapshots the frozen cart into the persistent Bill and Sale
// records, converting the rounded decimal totals to integer cents.
func buildCommit(snapshot *cart.Checkout, userID uuid.UUID) *repository.CheckoutCommit {
	t := snapshot.Totals
	now := time.Now()

	bill := &entity.Bill{
		TenantID:         snapshot.TenantID,
		UserID:           userID,
		BillNumber:       utils.GenerateBillNumber(),
		Status:           enum.BillStatusCompleted,
		Subtotal:         cart.Cents(t.Subtotal),
		DiscountAmount:   cart.Cents(t.DiscountAmount),
		DiscountPercent:  t.DiscountPercent,
		SurchargeAmount:  cart.Cents(t.SurchargeAmount),
		SurchargePercent: t.SurchargePercent,
		TaxAmount:        cart.Cents(t.TaxAmount),
		TaxRate:          t.TaxRate,
		TotalAmount:      cart.Cents(t.Total),
		PaymentMethod:    snapshot.PaymentMethod,
		AmountReceived:   cart.Cents(t.AmountReceived),
		ChangeAmount:     cart.Cents(t.Change),
	}

	sale := &entity.Sale{
		TenantID:      snapshot.TenantID,
		UserID:        userID,
		Status:        enum.BillStatusCompleted,
		Subtotal:      bill.Subtotal,
		TotalAmount:   bill.TotalAmount,
		PaymentMethod: snapshot.PaymentMethod,
		SaleDate:      now,
	}

	for i := range snapshot.Items {
		it := &snapshot.Items[i]
		lineTotal := cart.Cents(cart.Round2(cart.LineTotal(it)))

		// Unit price as charged: the promo price when the line hit its
		// promo threshold, the regular price otherwise.
		unit := it.UnitPrice
		if it.PromoQuantity > 0 && it.Quantity >= it.PromoQuantity {
			unit = it.PromoPrice
		}

		bill.Items = append(bill.Items, entity.BillItem{
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			Quantity:     it.Quantity,
			UnitPrice:    cart.Cents(unit),
			Discount:     it.Discount,
			DiscountType: it.DiscountType,
			Total:        lineTotal,
		})

		sale.Items = append(sale.Items, entity.SaleItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   cart.Cents(unit),
			Total:       lineTotal,
		})

		sale.TotalItems += it.Quantity
		sale.TotalCost += cart.Cents(it.UnitCost) * int64(it.Quantity)
	}

	return &repository.CheckoutCommit{Bill: bill, Sale: sale}
}
