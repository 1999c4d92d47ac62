package handler

import (
	"github.com/Fouxth/CannabisPOS-sub000/internal/application/service"
	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/enum"
	"github.com/Fouxth/CannabisPOS-sub000/internal/presentation/http/dto/request"
	"github.com/Fouxth/CannabisPOS-sub000/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// TenantHandler handles tenant settings HTTP requests
type TenantHandler struct {
	tenantService *service.TenantService
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenantService *service.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// GetSettings handles GET /tenant/settings
func (h *TenantHandler) GetSettings(c *gin.Context) {
	settings, err := h.tenantService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Settings retrieved successfully", settings)
}

// UpdateSettings handles PUT /tenant/settings. Changes apply to cart sessions
// opened after the update; in-flight sessions keep their snapshot.
func (h *TenantHandler) UpdateSettings(c *gin.Context) {
	var req request.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdateSettingsInput{
		Currency:         req.Currency,
		TaxRate:          req.TaxRate,
		VATEnabled:       req.VATEnabled,
		SurchargeEnabled: req.SurchargeEnabled,
		ReceiptHeader:    req.ReceiptHeader,
		ReceiptFooter:    req.ReceiptFooter,
	}
	if req.DefaultPaymentMethod != nil {
		m := enum.ParsePaymentMethod(*req.DefaultPaymentMethod)
		input.DefaultPaymentMethod = &m
	}

	settings, err := h.tenantService.UpdateSettings(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Settings updated successfully", settings)
}
