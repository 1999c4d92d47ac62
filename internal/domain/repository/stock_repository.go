package repository

import (
	"context"
	"time"

	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/entity"
	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/enum"
	"github.com/Fouxth/CannabisPOS-sub000/pkg/pagination"
	"github.com/google/uuid"
)

// StockAdjustment is a manual, out-of-band stock change (restock, damage,
// correction) independent of checkout.
type StockAdjustment struct {
	ProductID    uuid.UUID
	UserID       uuid.UUID
	Type         enum.AdjustmentType
	Quantity     int
	MovementType enum.MovementType
	Reason       string
	Notes        *string
}

// StockMovementRepository defines the interface for the append-only stock
// movement trail. Movements are never updated or deleted.
type StockMovementRepository interface {
	// ApplyAdjustment atomically applies a manual adjustment: the product row
	// is locked, the new quantity computed (add, subtract, or set), and a
	// movement appended with the before/after quantities. A subtract below
	// zero is rejected without mutation.
	ApplyAdjustment(ctx context.Context, adj *StockAdjustment) (*entity.Product, *entity.StockMovement, error)

	List(ctx context.Context, params *MovementFilterParams) ([]entity.StockMovement, int64, error)
	GetByReferenceID(ctx context.Context, referenceID uuid.UUID) ([]entity.StockMovement, error)
}

// MovementFilterParams contains filtering parameters for movement queries
type MovementFilterParams struct {
	Pagination   *pagination.PaginationParams
	ProductID    *uuid.UUID
	MovementType *enum.MovementType
	StartDate    *time.Time
	EndDate      *time.Time
}
