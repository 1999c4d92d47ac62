package handler

import (
	"github.com/Fouxth/CannabisPOS-sub000/internal/application/service"
	"github.com/Fouxth/CannabisPOS-sub000/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReceiptHandler handles receipt printing HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// Status handles GET /printer/status
func (h *ReceiptHandler) Status(c *gin.Context) {
	response.OK(c, "Printer status", h.receiptService.GetStatus())
}

// PrintReceipt handles POST /printer/receipt/:billId. The rendered receipt is
// returned in the response body even when the printer is offline, so the
// terminal can display it on screen instead.
func (h *ReceiptHandler) PrintReceipt(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("billId"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	receipt, err := h.receiptService.PrintBillReceipt(c.Request.Context(), billID)
	if err != nil {
		if receipt != nil {
			response.Success(c, 200, "Receipt rendered but printing failed: "+err.Error(), receipt)
			return
		}
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt printed", receipt)
}
