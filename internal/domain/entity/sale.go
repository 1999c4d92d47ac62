package entity

import (
	"encoding/json"
	"time"

	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sale is the reporting-oriented projection of a Bill. It is written in the
// same transaction as its Bill and follows the same lifecycle, so analytics
// queries never touch the customer-facing record.
type Sale struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	TenantID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"tenant_id"`
	BillID        uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex" json:"bill_id"`
	UserID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	Status        enum.BillStatus    `gorm:"default:0" json:"status"`
	TotalItems    int                `gorm:"default:0" json:"total_items"`
	Subtotal      int64              `gorm:"default:0" json:"-"`
	TotalAmount   int64              `gorm:"default:0" json:"-"`
	TotalCost     int64              `gorm:"default:0" json:"-"` // cost basis for margin reports
	PaymentMethod enum.PaymentMethod `gorm:"default:0" json:"payment_method"`
	SaleDate      time.Time          `gorm:"type:date;not null;index" json:"sale_date"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	DeletedAt     gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Tenant Tenant     `gorm:"foreignKey:TenantID" json:"-"`
	Bill   Bill       `gorm:"foreignKey:BillID" json:"-"`
	Items  []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		Subtotal    float64 `json:"subtotal"`
		TotalAmount float64 `json:"total_amount"`
		TotalCost   float64 `json:"total_cost"`
	}{
		Alias:       Alias(s),
		Subtotal:    float64(s.Subtotal) / 100,
		TotalAmount: float64(s.TotalAmount) / 100,
		TotalCost:   float64(s.TotalCost) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// SaleItem mirrors a BillItem for reporting queries.
type SaleItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SaleID      uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName string    `gorm:"size:255;not null" json:"product_name"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	UnitPrice   int64     `gorm:"not null" json:"-"` // in cents
	Total       int64     `gorm:"not null" json:"-"` // in cents
	CreatedAt   time.Time `json:"created_at"`

	// Relationships
	Sale Sale `gorm:"foreignKey:SaleID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (si SaleItem) MarshalJSON() ([]byte, error) {
	type Alias SaleItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(si),
		UnitPrice: float64(si.UnitPrice) / 100,
		Total:     float64(si.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale item
func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}
