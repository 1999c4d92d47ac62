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

// BillHandler serves the transaction history.
type BillHandler struct {
	billService *service.BillService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billService *service.BillService) *BillHandler {
	return &BillHandler{billService: billService}
}

// List handles GET /bills
func (h *BillHandler) List(c *gin.Context) {
	var filter request.BillFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.BillFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
		StartDate: parseDate(filter.StartDate),
		EndDate:   endOfDay(parseDate(filter.EndDate)),
	}

	switch filter.Status {
	case "completed":
		status := enum.BillStatusCompleted
		params.Status = &status
	case "voided":
		status := enum.BillStatusVoided
		params.Status = &status
	}

	result, err := h.billService.ListBills(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Bills retrieved successfully", result)
}

// Get handles GET /bills/:id
func (h *BillHandler) Get(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// Fall back to lookup by bill number, e.g. BILL-3F2A91CE.
		bill, berr := h.billService.GetBillByNumber(c.Request.Context(), c.Param("id"))
		if berr != nil {
			response.Error(c, berr)
			return
		}
		response.OK(c, "Bill retrieved successfully", bill)
		return
	}

	bill, err := h.billService.GetBill(c.Request.Context(), billID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Bill retrieved successfully", bill)
}

// GetSale handles GET /bills/:id/sale
func (h *BillHandler) GetSale(c *gin.Context) {
	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	sale, err := h.billService.GetSale(c.Request.Context(), billID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sale retrieved successfully", sale)
}

// ListSales handles GET /sales
func (h *BillHandler) ListSales(c *gin.Context) {
	var filter request.BillFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		StartDate: parseDate(filter.StartDate),
		EndDate:   endOfDay(parseDate(filter.EndDate)),
	}

	result, err := h.billService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}
