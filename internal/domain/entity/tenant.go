package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tenant represents an isolated store instance whose configuration scopes
// pricing behavior for every terminal that belongs to it.
type Tenant struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	Slug      string          `gorm:"size:255;unique;not null" json:"slug"`
	Settings  PricingSettings `gorm:"type:jsonb;serializer:json" json:"settings"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new tenant
func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Tenant model
func (Tenant) TableName() string {
	return "tenants"
}

// PricingSettings holds the tenant configuration the pricing engine consumes.
// A cart session snapshots these values when it opens; settings changes never
// apply to a cart that is already in progress.
type PricingSettings struct {
	Currency             string             `json:"currency,omitempty"`
	TaxRate              float64            `json:"tax_rate,omitempty"`
	VATEnabled           bool               `json:"vat_enabled"`
	DefaultPaymentMethod enum.PaymentMethod `json:"default_payment_method"`
	SurchargeEnabled     bool               `json:"surcharge_enabled"`
	ReceiptHeader        string             `json:"receipt_header,omitempty"`
	ReceiptFooter        string             `json:"receipt_footer,omitempty"`
}

// Scan implements the sql.Scanner interface for PricingSettings
func (ps *PricingSettings) Scan(value interface{}) error {
	if value == nil {
		*ps = PricingSettings{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan PricingSettings: unsupported type")
	}

	return json.Unmarshal(bytes, ps)
}

// Value implements the driver.Valuer interface for PricingSettings
func (ps PricingSettings) Value() (driver.Value, error) {
	return json.Marshal(ps)
}

// DefaultPricingSettings returns default settings for new tenants
func DefaultPricingSettings() PricingSettings {
	return PricingSettings{
		Currency:             "THB",
		TaxRate:              7.0,
		VATEnabled:           true,
		DefaultPaymentMethod: enum.PaymentMethodCash,
		SurchargeEnabled:     true,
	}
}
