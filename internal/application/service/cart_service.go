package service

import (
	"context"

	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/cart"
	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/enum"
	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/repository"
	infraRepo "github.com/Fouxth/CannabisPOS-sub000/internal/infrastructure/repository"
	"github.com/Fouxth/CannabisPOS-sub000/pkg/apperror"
	"github.com/google/uuid"
)

// CartService handles the pending-transaction state for POS terminals.
type CartService struct {
	store       *cart.Store
	productRepo repository.ProductRepository
	tenantRepo  repository.TenantRepository
}

// NewCartService creates a new cart service
func NewCartService(store *cart.Store, productRepo repository.ProductRepository, tenantRepo repository.TenantRepository) *CartService {
	return &CartService{
		store:       store,
		productRepo: productRepo,
		tenantRepo:  tenantRepo,
	}
}

// CartView is the API projection of a session: its lines plus the totals
// breakdown, rounded for display.
type CartView struct {
	TerminalID string      `json:"terminal_id"`
	Items      []cart.Item `json:"items"`
	Totals     cart.Totals `json:"totals"`
}

// Session returns the terminal's session, opening one with the tenant's
// current pricing settings if none exists yet.
func (s *CartService) Session(ctx context.Context, terminalID string) (*cart.Session, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	cfg := cart.Config{
		TaxRate:          tenant.Settings.TaxRate,
		VATEnabled:       tenant.Settings.VATEnabled,
		SurchargeEnabled: tenant.Settings.SurchargeEnabled,
	}
	return s.store.Get(terminalID, tenantID, cfg, tenant.Settings.DefaultPaymentMethod), nil
}

// GetCart returns the current cart with its live totals.
func (s *CartService) GetCart(ctx context.Context, terminalID string) (*CartView, error) {
	session, err := s.Session(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	return s.view(session), nil
}

// AddItem adds one unit of the product to the cart, creating the line or
// incrementing an existing one. Stock is not reserved here; availability is
// enforced atomically at checkout.
func (s *CartService) AddItem(ctx context.Context, terminalID string, productID uuid.UUID) (*CartView, error) {
	session, err := s.Session(ctx, terminalID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive || !product.ShowInPOS {
		return nil, apperror.NewBadRequestError("Product is not available for sale")
	}

	session.AddItem(product)
	return s.view(session), nil
}

// UpdateItemInput carries the changeable fields of a cart line.
type UpdateItemInput struct {
	Quantity     *int
	Discount     *float64
	DiscountType *enum.DiscountType
	Note         *string
}

// UpdateItem patches a cart line. A quantity of zero removes the line; below
// zero is rejected.
func (s *CartService) UpdateItem(ctx context.Context, terminalID string, itemID uuid.UUID, input *UpdateItemInput) (*CartView, error) {
	session, err := s.Session(ctx, terminalID)
	if err != nil {
		return nil, err
	}

	if input.Discount != nil && *input.Discount < 0 {
		return nil, apperror.NewBadRequestError("Discount cannot be negative")
	}

	if input.Quantity != nil && *input.Quantity == 0 {
		if err := session.RemoveItem(itemID); err != nil {
			return nil, err
		}
		return s.view(session), nil
	}

	_, err = session.UpdateItem(itemID, cart.ItemPatch{
		Quantity:     input.Quantity,
		Discount:     input.Discount,
		DiscountType: input.DiscountType,
		Note:         input.Note,
	})
	if err != nil {
		return nil, err
	}
	return s.view(session), nil
}

// RemoveItem deletes a cart line.
func (s *CartService) RemoveItem(ctx context.Context, terminalID string, itemID uuid.UUID) (*CartView, error) {
	session, err := s.Session(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	if err := session.RemoveItem(itemID); err != nil {
		return nil, err
	}
	return s.view(session), nil
}

// ClearCart resets the whole pending transaction: items, adjustments, tender.
func (s *CartService) ClearCart(ctx context.Context, terminalID string) (*CartView, error) {
	session, err := s.Session(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	session.Clear()
	return s.view(session), nil
}

// AdjustmentsInput carries the cart-level adjustments and tender settings.
// Nil fields are left untouched.
type AdjustmentsInput struct {
	Discount       *float64
	DiscountType   *enum.DiscountType
	Surcharge      *float64
	SurchargeType  *enum.DiscountType
	PaymentMethod  *enum.PaymentMethod
	AmountReceived *float64
}

// SetAdjustments applies cart-level discount, surcharge, payment method and
// amount received in one call.
func (s *CartService) SetAdjustments(ctx context.Context, terminalID string, input *AdjustmentsInput) (*CartView, error) {
	session, err := s.Session(ctx, terminalID)
	if err != nil {
		return nil, err
	}

	if input.Discount != nil {
		typ := enum.DiscountTypePercent
		if input.DiscountType != nil {
			typ = *input.DiscountType
		}
		if *input.Discount < 0 {
			return nil, apperror.NewBadRequestError("Discount cannot be negative")
		}
		if typ == enum.DiscountTypePercent && *input.Discount > 100 {
			return nil, apperror.NewBadRequestError("Percent discount cannot exceed 100")
		}
		session.SetGlobalDiscount(*input.Discount, typ)
	}

	if input.Surcharge != nil {
		typ := enum.DiscountTypePercent
		if input.SurchargeType != nil {
			typ = *input.SurchargeType
		}
		if *input.Surcharge < 0 {
			return nil, apperror.NewBadRequestError("Surcharge cannot be negative")
		}
		if err := session.SetGlobalSurcharge(*input.Surcharge, typ); err != nil {
			return nil, err
		}
	}

	if input.PaymentMethod != nil {
		session.SetPaymentMethod(*input.PaymentMethod)
	}

	if input.AmountReceived != nil {
		if *input.AmountReceived < 0 {
			return nil, apperror.NewBadRequestError("Amount received cannot be negative")
		}
		session.SetAmountReceived(*input.AmountReceived)
	}

	return s.view(session), nil
}

func (s *CartService) view(session *cart.Session) *CartView {
	return &CartView{
		TerminalID: session.TerminalID,
		Items:      session.Items(),
		Totals:     session.Totals().Rounded(),
	}
}
