package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a sellable item. The checkout core only reads price and
// stock and writes stock; everything else is catalog management.
type Product struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	TenantID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"tenant_id"`
	CategoryID *uuid.UUID `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Name       string     `gorm:"size:255;not null" json:"name"`
	Code       string     `gorm:"size:100;unique;not null" json:"code"`
	Price      int64      `gorm:"default:0" json:"-"` // Selling price in cents
	Cost       int64      `gorm:"default:0" json:"-"` // Cost price in cents
	Stock      int        `gorm:"default:0" json:"stock"`
	MinStock   int        `gorm:"default:0" json:"min_stock"`
	StockUnit  string     `gorm:"size:50;default:'pcs'" json:"stock_unit"`

	// Tiered promo pricing: when a cart line reaches PromoQuantity units, the
	// promo price replaces the unit price for the whole line.
	PromoQuantity *int   `json:"promo_quantity,omitempty"`
	PromoPrice    *int64 `gorm:"default:null" json:"-"` // in cents

	IsActive  bool           `gorm:"default:true" json:"is_active"`
	ShowInPOS bool           `gorm:"default:true" json:"show_in_pos"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Tenant   Tenant    `gorm:"foreignKey:TenantID" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// PriceDecimal returns the selling price as a decimal (for display)
func (p *Product) PriceDecimal() float64 {
	return float64(p.Price) / 100
}

// CostDecimal returns the cost price as a decimal (for display)
func (p *Product) CostDecimal() float64 {
	return float64(p.Cost) / 100
}

// PromoPriceDecimal returns the promo price as a decimal, or nil if unset.
func (p *Product) PromoPriceDecimal() *float64 {
	if p.PromoPrice == nil {
		return nil
	}
	v := float64(*p.PromoPrice) / 100
	return &v
}

// SetPriceFromDecimal sets the selling price from a decimal value
func (p *Product) SetPriceFromDecimal(price float64) {
	p.Price = int64(price*100 + 0.5)
}

// SetCostFromDecimal sets the cost price from a decimal value
func (p *Product) SetCostFromDecimal(cost float64) {
	p.Cost = int64(cost*100 + 0.5)
}

// IsLowStock reports whether the product is at or below its minimum stock level.
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}

// MarshalJSON converts Product to JSON with decimal prices
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		Price      float64  `json:"price"`
		Cost       float64  `json:"cost"`
		PromoPrice *float64 `json:"promo_price,omitempty"`
	}{
		Alias:      Alias(p),
		Price:      p.PriceDecimal(),
		Cost:       p.CostDecimal(),
		PromoPrice: p.PromoPriceDecimal(),
	})
}

// Category represents a product category
type Category struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;unique;not null" json:"slug"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Tenant   Tenant    `gorm:"foreignKey:TenantID" json:"-"`
	Products []Product `gorm:"foreignKey:CategoryID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
