package entity

import (
	"time"

	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockMovement is an append-only audit entry for any stock quantity change.
// Movements are never updated or deleted; they are the sole audit trail for
// stock history.
type StockMovement struct {
	ID               uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	TenantID         uuid.UUID         `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ProductID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"product_id"`
	UserID           uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	MovementType     enum.MovementType `gorm:"not null" json:"movement_type"`
	QuantityChange   int               `gorm:"not null" json:"quantity_change"` // signed: negative for outgoing
	PreviousQuantity int               `gorm:"not null" json:"previous_quantity"`
	NewQuantity      int               `gorm:"not null" json:"new_quantity"`
	ReferenceID      *uuid.UUID        `gorm:"type:uuid;index" json:"reference_id,omitempty"` // bill id for sale/return movements
	Reason           string            `gorm:"size:255" json:"reason,omitempty"`
	Notes            *string           `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`

	// Relationships
	Tenant  Tenant  `gorm:"foreignKey:TenantID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new stock movement
func (m *StockMovement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockMovement model
func (StockMovement) TableName() string {
	return "stock_movements"
}
