package handler

import (
	"github.com/Fouxth/CannabisPOS-sub000/internal/application/service"
	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/enum"
	"github.com/Fouxth/CannabisPOS-sub000/internal/presentation/http/dto/request"
	"github.com/Fouxth/CannabisPOS-sub000/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CartHandler handles cart-related HTTP requests. The terminal ID from the
// token selects the session, so each terminal works an isolated cart.
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Get handles GET /cart
func (h *CartHandler) Get(c *gin.Context) {
	terminalID := GetTerminalID(c)
	if terminalID == "" {
		response.BadRequest(c, "Terminal context required")
		return
	}

	view, err := h.cartService.GetCart(c.Request.Context(), terminalID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart retrieved successfully", view)
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	terminalID := GetTerminalID(c)
	if terminalID == "" {
		response.BadRequest(c, "Terminal context required")
		return
	}

	var req request.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.cartService.AddItem(c.Request.Context(), terminalID, req.ProductID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item added to cart", view)
}

// UpdateItem handles PATCH /cart/items/:id
func (h *CartHandler) UpdateItem(c *gin.Context) {
	terminalID := GetTerminalID(c)
	if terminalID == "" {
		response.BadRequest(c, "Terminal context required")
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	var req request.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.cartService.UpdateItem(c.Request.Context(), terminalID, itemID, &service.UpdateItemInput{
		Quantity:     req.Quantity,
		Discount:     req.Discount,
		DiscountType: parseDiscountType(req.DiscountType),
		Note:         req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart item updated", view)
}

// RemoveItem handles DELETE /cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	terminalID := GetTerminalID(c)
	if terminalID == "" {
		response.BadRequest(c, "Terminal context required")
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	view, err := h.cartService.RemoveItem(c.Request.Context(), terminalID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart item removed", view)
}

// Clear handles DELETE /cart
func (h *CartHandler) Clear(c *gin.Context) {
	terminalID := GetTerminalID(c)
	if terminalID == "" {
		response.BadRequest(c, "Terminal context required")
		return
	}

	view, err := h.cartService.ClearCart(c.Request.Context(), terminalID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart cleared", view)
}

// SetAdjustments handles PUT /cart/adjustments
func (h *CartHandler) SetAdjustments(c *gin.Context) {
	terminalID := GetTerminalID(c)
	if terminalID == "" {
		response.BadRequest(c, "Terminal context required")
		return
	}

	var req request.CartAdjustmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.AdjustmentsInput{
		Discount:       req.Discount,
		DiscountType:   parseDiscountType(req.DiscountType),
		Surcharge:      req.Surcharge,
		SurchargeType:  parseDiscountType(req.SurchargeType),
		AmountReceived: req.AmountReceived,
	}
	if req.PaymentMethod != nil {
		m := enum.ParsePaymentMethod(*req.PaymentMethod)
		input.PaymentMethod = &m
	}

	view, err := h.cartService.SetAdjustments(c.Request.Context(), terminalID, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart adjustments updated", view)
}
