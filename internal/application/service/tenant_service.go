package service

import (
	"context"

	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/entity"
	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/enum"
	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/repository"
	infraRepo "github.com/Fouxth/CannabisPOS-sub000/internal/infrastructure/repository"
	"github.com/Fouxth/CannabisPOS-sub000/pkg/apperror"
)

// TenantService handles tenant pricing settings. Settings changes apply to
// cart sessions opened after the change; in-flight sessions keep the
// configuration they snapshotted.
type TenantService struct {
	tenantRepo repository.TenantRepository
}

// NewTenantService creates a new tenant service
func NewTenantService(tenantRepo repository.TenantRepository) *TenantService {
	return &TenantService{tenantRepo: tenantRepo}
}

// GetSettings returns the tenant's current pricing settings.
func (s *TenantService) GetSettings(ctx context.Context) (*entity.PricingSettings, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return &tenant.Settings, nil
}

// UpdateSettingsInput carries the changeable settings. Nil fields keep their
// current values.
type UpdateSettingsInput struct {
	Currency             *string
	TaxRate              *float64
	VATEnabled           *bool
	DefaultPaymentMethod *enum.PaymentMethod
	SurchargeEnabled     *bool
	ReceiptHeader        *string
	ReceiptFooter        *string
}

// UpdateSettings merges the input into the tenant's settings and persists
// them.
func (s *TenantService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.PricingSettings, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	settings := tenant.Settings
	if input.Currency != nil {
		settings.Currency = *input.Currency
	}
	if input.TaxRate != nil {
		if *input.TaxRate < 0 || *input.TaxRate > 100 {
			return nil, apperror.NewBadRequestError("Tax rate must be between 0 and 100")
		}
		settings.TaxRate = *input.TaxRate
	}
	if input.VATEnabled != nil {
		settings.VATEnabled = *input.VATEnabled
	}
	if input.DefaultPaymentMethod != nil {
		settings.DefaultPaymentMethod = *input.DefaultPaymentMethod
	}
	if input.SurchargeEnabled != nil {
		settings.SurchargeEnabled = *input.SurchargeEnabled
	}
	if input.ReceiptHeader != nil {
		settings.ReceiptHeader = *input.ReceiptHeader
	}
	if input.ReceiptFooter != nil {
		settings.ReceiptFooter = *input.ReceiptFooter
	}

	if err := s.tenantRepo.UpdateSettings(ctx, tenantID, settings); err != nil {
		return nil, err
	}
	return &settings, nil
}
