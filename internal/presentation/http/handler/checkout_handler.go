package handler

import (
	"github.com/Fouxth/CannabisPOS-sub000/internal/application/service"
	"github.com/Fouxth/CannabisPOS-sub000/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CheckoutHandler handles checkout and void HTTP requests.
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Checkout handles POST /checkout. The route is wrapped by the idempotency
// middleware, so a retried request replays the original bill instead of
// charging twice.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	terminalID := GetTerminalID(c)
	if terminalID == "" {
		response.BadRequest(c, "Terminal context required")
		return
	}

	result, err := h.checkoutService.Checkout(c.Request.Context(), terminalID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Checkout completed", result)
}

// Void handles POST /bills/:id/void
func (h *CheckoutHandler) Void(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	bill, err := h.checkoutService.VoidBill(c.Request.Context(), billID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Bill voided", bill)
}
