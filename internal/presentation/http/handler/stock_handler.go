package handler

import (
	"github.com/Fouxth/CannabisPOS-sub000/internal/application/service"
	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/enum"
	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/repository"
	"github.com/Fouxth/CannabisPOS-sub000/internal/presentation/http/dto/request"
	"github.com/Fouxth/CannabisPOS-sub000/internal/presentation/http/dto/response"
	"github.com/Fouxth/CannabisPOS-sub000/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StockHandler handles stock ledger HTTP requests.
type StockHandler struct {
	stockService *service.StockService
}

// NewStockHandler creates a new stock handler
func NewStockHandler(stockService *service.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// Adjust handles POST /stock/adjust
func (h *StockHandler) Adjust(c *gin.Context) {
	var req request.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.stockService.Adjust(c.Request.Context(), &service.AdjustStockInput{
		ProductID:    req.ProductID,
		Type:         enum.AdjustmentType(req.Type),
		Quantity:     req.Quantity,
		MovementType: req.MovementType,
		Reason:       req.Reason,
		Notes:        req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Stock adjusted", result)
}

// ListMovements handles GET /stock/movements
func (h *StockHandler) ListMovements(c *gin.Context) {
	var filter request.MovementFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.MovementFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		StartDate: parseDate(filter.StartDate),
		EndDate:   endOfDay(parseDate(filter.EndDate)),
	}

	if filter.ProductID != "" {
		if productID, err := uuid.Parse(filter.ProductID); err == nil {
			params.ProductID = &productID
		}
	}
	if filter.MovementType != "" {
		mt := enum.ParseMovementType(filter.MovementType)
		params.MovementType = &mt
	}

	result, err := h.stockService.ListMovements(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Stock movements retrieved successfully", result)
}

// MovementsForBill handles GET /bills/:id/movements
func (h *StockHandler) MovementsForBill(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	movements, err := h.stockService.GetMovementsForBill(c.Request.Context(), billID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Stock movements retrieved successfully", movements)
}

// LowStock handles GET /stock/low
func (h *StockHandler) LowStock(c *gin.Context) {
	products, err := h.stockService.GetLowStock(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Low stock products retrieved successfully", products)
}
