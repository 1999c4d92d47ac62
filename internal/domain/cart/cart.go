package cart

import (
	"sync"

	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/entity"
	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/enum"
	"github.com/Fouxth/CannabisPOS-sub000/pkg/apperror"
	"github.com/google/uuid"
)

// Item is a single line in the active transaction. It exists only in memory;
// at checkout it is snapshotted into an immutable BillItem.
type Item struct {
	ID           uuid.UUID         `json:"id"`
	ProductID    uuid.UUID         `json:"product_id"`
	ProductName  string            `json:"product_name"`
	UnitPrice    float64           `json:"unit_price"`
	UnitCost     float64           `json:"-"`
	Quantity     int               `json:"quantity"`
	Discount     float64           `json:"discount"`
	DiscountType enum.DiscountType `json:"discount_type"`
	Note         string            `json:"note,omitempty"`

	// Promo snapshot copied from the product at add time. Zero means no promo.
	PromoQuantity int     `json:"promo_quantity,omitempty"`
	PromoPrice    float64 `json:"promo_price,omitempty"`
}

// ItemPatch carries the fields a line update may change. Nil fields are left
// untouched.
type ItemPatch struct {
	Quantity     *int
	Discount     *float64
	DiscountType *enum.DiscountType
	Note         *string
}

// Session holds the pending-transaction state for one terminal: the cart
// lines, the cart-level adjustments, the tender, and the tax configuration
// snapshot taken when the session opened. All access goes through methods
// holding the session mutex, so concurrent terminals each get an isolated,
// race-free session.
type Session struct {
	mu sync.Mutex

	TerminalID string
	TenantID   uuid.UUID

	items []*Item

	globalDiscount  Adjustment
	globalSurcharge Adjustment

	paymentMethod  enum.PaymentMethod
	amountReceived float64

	cfg              Config
	defaultMethod    enum.PaymentMethod
	checkoutInFlight bool
}

// NewSession opens a session for a terminal, snapshotting the tenant's tax
// configuration for the session's lifetime.
func NewSession(terminalID string, tenantID uuid.UUID, cfg Config, defaultMethod enum.PaymentMethod) *Session {
	return &Session{
		TerminalID:    terminalID,
		TenantID:      tenantID,
		cfg:           cfg,
		defaultMethod: defaultMethod,
		paymentMethod: defaultMethod,
	}
}

// AddItem adds one unit of a product to the cart. If a line for the product
// already exists its quantity is incremented instead. Stock is not checked
// here; it is enforced only at checkout.
func (s *Session) AddItem(p *entity.Product) *Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, it := range s.items {
		if it.ProductID == p.ID {
			it.Quantity++
			return it
		}
	}

	it := &Item{
		ID:           uuid.New(),
		ProductID:    p.ID,
		ProductName:  p.Name,
		UnitPrice:    p.PriceDecimal(),
		UnitCost:     p.CostDecimal(),
		Quantity:     1,
		Discount:     0,
		DiscountType: enum.DiscountTypePercent,
	}
	if p.PromoQuantity != nil && p.PromoPrice != nil {
		it.PromoQuantity = *p.PromoQuantity
		it.PromoPrice = float64(*p.PromoPrice) / 100
	}
	s.items = append(s.items, it)
	return it
}

// UpdateItem merges the patch into the matching line. A quantity below 1 is
// rejected; callers remove the line instead of zeroing it.
func (s *Session) UpdateItem(id uuid.UUID, patch ItemPatch) (*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, it := range s.items {
		if it.ID != id {
			continue
		}
		if patch.Quantity != nil {
			if *patch.Quantity < 1 {
				return nil, apperror.NewBadRequestError("Quantity must be at least 1; remove the item instead")
			}
			it.Quantity = *patch.Quantity
		}
		if patch.Discount != nil {
			it.Discount = *patch.Discount
		}
		if patch.DiscountType != nil {
			it.DiscountType = *patch.DiscountType
		}
		if patch.Note != nil {
			it.Note = *patch.Note
		}
		return it, nil
	}
	return nil, apperror.NewNotFoundError("Cart item")
}

// RemoveItem deletes the matching line from the cart.
func (s *Session) RemoveItem(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, it := range s.items {
		if it.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return apperror.NewNotFoundError("Cart item")
}

// Clear resets the whole pending-transaction state, not just the item list:
// global discount, global surcharge and amount received return to their zero
// defaults and the payment method returns to the tenant default.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *Session) reset() {
	s.items = nil
	s.globalDiscount = Adjustment{Type: enum.DiscountTypePercent}
	s.globalSurcharge = Adjustment{Type: enum.DiscountTypePercent}
	s.amountReceived = 0
	s.paymentMethod = s.defaultMethod
}

// SetGlobalDiscount sets the cart-level discount.
func (s *Session) SetGlobalDiscount(value float64, typ enum.DiscountType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.globalDiscount = Adjustment{Value: value, Type: typ}
}

// SetGlobalSurcharge sets the cart-level surcharge. Rejected when the tenant
// configuration snapshot has surcharges disabled.
func (s *Session) SetGlobalSurcharge(value float64, typ enum.DiscountType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cfg.SurchargeEnabled && value != 0 {
		return apperror.NewBadRequestError("Surcharges are disabled for this store")
	}
	s.globalSurcharge = Adjustment{Value: value, Type: typ}
	return nil
}

// SetPaymentMethod selects the tender method.
func (s *Session) SetPaymentMethod(m enum.PaymentMethod) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paymentMethod = m
}

// SetAmountReceived records the cash amount offered by the customer.
func (s *Session) SetAmountReceived(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.amountReceived = v
}

// Items returns a copy of the cart lines in insertion order.
func (s *Session) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, len(s.items))
	for i, it := range s.items {
		out[i] = *it
	}
	return out
}

// IsEmpty reports whether the cart has no lines.
func (s *Session) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

// Totals recomputes the breakdown from current state on every call.
func (s *Session) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Compute(s.items, s.globalDiscount, s.globalSurcharge, s.cfg, s.paymentMethod, s.amountReceived)
}

// Checkout is the frozen snapshot handed to the checkout orchestrator: a copy
// of the lines and the rounded totals, decoupled from the live session.
type Checkout struct {
	TerminalID    string
	TenantID      uuid.UUID
	Items         []Item
	Totals        Totals
	PaymentMethod enum.PaymentMethod
}

// BeginCheckout validates the tender and marks the session as having a
// checkout in flight. Only one checkout may be outstanding per session;
// repeated submission while one is pending is rejected, which is what stops a
// double-click from double-charging. The session itself is not modified
// beyond the in-flight flag, so a failed checkout leaves the cart exactly as
// it was for correction and retry.
func (s *Session) BeginCheckout() (*Checkout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.checkoutInFlight {
		return nil, apperror.ErrCheckoutInFlight
	}
	if len(s.items) == 0 {
		return nil, apperror.ErrEmptyCart
	}

	totals := Compute(s.items, s.globalDiscount, s.globalSurcharge, s.cfg, s.paymentMethod, s.amountReceived).Rounded()
	if s.paymentMethod.IsCash() && totals.AmountReceived < totals.Total {
		return nil, apperror.ErrInsufficientPayment
	}

	items := make([]Item, len(s.items))
	for i, it := range s.items {
		items[i] = *it
	}

	s.checkoutInFlight = true
	return &Checkout{
		TerminalID:    s.TerminalID,
		TenantID:      s.TenantID,
		Items:         items,
		Totals:        totals,
		PaymentMethod: s.paymentMethod,
	}, nil
}

// EndCheckout closes the in-flight checkout. On success the session resets to
// its zero defaults; on failure it is left untouched for retry.
func (s *Session) EndCheckout(committed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.checkoutInFlight = false
	if committed {
		s.reset()
	}
}
