package entity

import (
	"encoding/json"
	"time"

	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bill is the immutable customer-facing record of a completed transaction.
// It is created exactly once at checkout and never mutated afterwards except
// for the completed -> voided status transition.
type Bill struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	TenantID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	BillNumber string          `gorm:"size:100;unique;not null" json:"bill_number"`
	Status     enum.BillStatus `gorm:"default:0" json:"status"`

	// Monetary breakdown, stored in cents. The persisted components always
	// reconcile: Total == Subtotal - DiscountAmount + SurchargeAmount + TaxAmount.
	Subtotal         int64   `gorm:"default:0" json:"-"`
	DiscountAmount   int64   `gorm:"default:0" json:"-"`
	DiscountPercent  float64 `gorm:"default:0" json:"discount_percent"`
	SurchargeAmount  int64   `gorm:"default:0" json:"-"`
	SurchargePercent float64 `gorm:"default:0" json:"surcharge_percent"`
	TaxAmount        int64   `gorm:"default:0" json:"-"`
	TaxRate          float64 `gorm:"default:0" json:"tax_rate"`
	TotalAmount      int64   `gorm:"default:0" json:"-"`

	PaymentMethod  enum.PaymentMethod `gorm:"default:0" json:"payment_method"`
	AmountReceived int64              `gorm:"default:0" json:"-"`
	ChangeAmount   int64              `gorm:"default:0" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	VoidedAt  *time.Time     `json:"voided_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Tenant Tenant     `gorm:"foreignKey:TenantID" json:"-"`
	User   User       `gorm:"foreignKey:UserID" json:"-"`
	Items  []BillItem `gorm:"foreignKey:BillID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (b Bill) MarshalJSON() ([]byte, error) {
	type Alias Bill
	return json.Marshal(&struct {
		Alias
		Subtotal        float64 `json:"subtotal"`
		DiscountAmount  float64 `json:"discount_amount"`
		SurchargeAmount float64 `json:"surcharge_amount"`
		TaxAmount       float64 `json:"tax_amount"`
		TotalAmount     float64 `json:"total_amount"`
		AmountReceived  float64 `json:"amount_received"`
		ChangeAmount    float64 `json:"change_amount"`
	}{
		Alias:           Alias(b),
		Subtotal:        float64(b.Subtotal) / 100,
		DiscountAmount:  float64(b.DiscountAmount) / 100,
		SurchargeAmount: float64(b.SurchargeAmount) / 100,
		TaxAmount:       float64(b.TaxAmount) / 100,
		TotalAmount:     float64(b.TotalAmount) / 100,
		AmountReceived:  float64(b.AmountReceived) / 100,
		ChangeAmount:    float64(b.ChangeAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new bill
func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Bill model
func (Bill) TableName() string {
	return "bills"
}

// BillItem is a frozen snapshot of a cart line at checkout time. Editing the
// product afterwards must never alter the historical record, so name and
// price are copied rather than joined.
type BillItem struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	BillID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"bill_id"`
	ProductID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName  string            `gorm:"size:255;not null" json:"product_name"`
	Quantity     int               `gorm:"not null" json:"quantity"`
	UnitPrice    int64             `gorm:"not null" json:"-"` // in cents
	Discount     float64           `gorm:"default:0" json:"discount"`
	DiscountType enum.DiscountType `gorm:"default:0" json:"discount_type"`
	Total        int64             `gorm:"not null" json:"-"` // in cents
	CreatedAt    time.Time         `json:"created_at"`

	// Relationships
	Bill Bill `gorm:"foreignKey:BillID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (bi BillItem) MarshalJSON() ([]byte, error) {
	type Alias BillItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(bi),
		UnitPrice: float64(bi.UnitPrice) / 100,
		Total:     float64(bi.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new bill item
func (bi *BillItem) BeforeCreate(tx *gorm.DB) error {
	if bi.ID == uuid.Nil {
		bi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BillItem model
func (BillItem) TableName() string {
	return "bill_items"
}
