package request

import "github.com/google/uuid"

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	CategoryID    *uuid.UUID `json:"category_id"`
	Name          string     `json:"name" binding:"required,min=2,max=255"`
	Code          string     `json:"code" binding:"omitempty,max=100"`
	Price         float64    `json:"price" binding:"min=0"`
	Cost          float64    `json:"cost" binding:"min=0"`
	Stock         int        `json:"stock" binding:"min=0"`
	MinStock      int        `json:"min_stock" binding:"min=0"`
	StockUnit     string     `json:"stock_unit" binding:"omitempty,max=50"`
	PromoQuantity *int       `json:"promo_quantity" binding:"omitempty,min=2"`
	PromoPrice    *float64   `json:"promo_price" binding:"omitempty,min=0"`
	ShowInPOS     *bool      `json:"show_in_pos"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	CategoryID    *uuid.UUID `json:"category_id"`
	Name          *string    `json:"name" binding:"omitempty,min=2,max=255"`
	Price         *float64   `json:"price" binding:"omitempty,min=0"`
	Cost          *float64   `json:"cost" binding:"omitempty,min=0"`
	MinStock      *int       `json:"min_stock" binding:"omitempty,min=0"`
	StockUnit     *string    `json:"stock_unit" binding:"omitempty,max=50"`
	PromoQuantity *int       `json:"promo_quantity" binding:"omitempty,min=2"`
	PromoPrice    *float64   `json:"promo_price" binding:"omitempty,min=0"`
	IsActive      *bool      `json:"is_active"`
	ShowInPOS     *bool      `json:"show_in_pos"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search     string `form:"search"`
	CategoryID string `form:"category_id"`
	POSOnly    bool   `form:"pos_only"`
	LowStock   bool   `form:"low_stock"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

// CreateCategoryRequest represents a category creation request
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
}
