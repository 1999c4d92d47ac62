package request

import "github.com/google/uuid"

// AddCartItemRequest adds one unit of a product to the cart.
type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}

// UpdateCartItemRequest patches a cart line. Nil fields are untouched; a
// quantity of zero removes the line.
type UpdateCartItemRequest struct {
	Quantity     *int     `json:"quantity" binding:"omitempty,min=0"`
	Discount     *float64 `json:"discount" binding:"omitempty,min=0"`
	DiscountType *string  `json:"discount_type" binding:"omitempty,oneof=percent amount"`
	Note         *string  `json:"note"`
}

// CartAdjustmentsRequest sets cart-level discount, surcharge and tender.
type CartAdjustmentsRequest struct {
	Discount       *float64 `json:"discount" binding:"omitempty,min=0"`
	DiscountType   *string  `json:"discount_type" binding:"omitempty,oneof=percent amount"`
	Surcharge      *float64 `json:"surcharge" binding:"omitempty,min=0"`
	SurchargeType  *string  `json:"surcharge_type" binding:"omitempty,oneof=percent amount"`
	PaymentMethod  *string  `json:"payment_method" binding:"omitempty,oneof=cash card transfer qr"`
	AmountReceived *float64 `json:"amount_received" binding:"omitempty,min=0"`
}

// BillFilterRequest represents bill listing filter parameters.
type BillFilterRequest struct {
	Search    string `form:"search"`
	Status    string `form:"status"`
	StartDate string `form:"start_date"` // YYYY-MM-DD
	EndDate   string `form:"end_date"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
