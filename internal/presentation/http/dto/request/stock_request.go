package request

import "github.com/google/uuid"

// AdjustStockRequest represents a manual stock adjustment.
type AdjustStockRequest struct {
	ProductID    uuid.UUID `json:"product_id" binding:"required"`
	Type         string    `json:"adjustment_type" binding:"required,oneof=add subtract set"`
	Quantity     int       `json:"quantity" binding:"min=0"`
	MovementType string    `json:"movement_type" binding:"omitempty,oneof=restock adjustment damaged"`
	Reason       string    `json:"reason" binding:"omitempty,max=255"`
	Notes        *string   `json:"notes"`
}

// MovementFilterRequest represents stock movement listing filters.
type MovementFilterRequest struct {
	ProductID    string `form:"product_id"`
	MovementType string `form:"movement_type"`
	StartDate    string `form:"start_date"` // YYYY-MM-DD
	EndDate      string `form:"end_date"`
	Page         int    `form:"page"`
	PerPage      int    `form:"per_page"`
}
