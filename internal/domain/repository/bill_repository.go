package repository

import (
	"context"
	"time"

	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/entity"
	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/enum"
	"github.com/Fouxth/CannabisPOS-sub000/pkg/pagination"
	"github.com/google/uuid"
)

// BillRepository defines read access to committed bills. Writes go through
// CheckoutRepository only, so a bill can never be created or mutated outside
// the atomic checkout protocol.
type BillRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	GetByBillNumber(ctx context.Context, billNumber string) (*entity.Bill, error)
	List(ctx context.Context, params *BillFilterParams) ([]entity.Bill, int64, error)
}

// BillFilterParams contains filtering parameters for bill queries
type BillFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.BillStatus
	UserID     *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// SaleRepository defines read access to the reporting projection.
type SaleRepository interface {
	GetByBillID(ctx context.Context, billID uuid.UUID) (*entity.Sale, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	StartDate  *time.Time
	EndDate    *time.Time
}

// CheckoutCommit is the unit of work for one checkout: the bill and its
// reporting projection, both carrying the frozen item snapshots. Commit
// persists everything, decrements stock, and appends the sale movements in a
// single transaction, or persists nothing.
type CheckoutCommit struct {
	Bill *entity.Bill
	Sale *entity.Sale
}

// CheckoutRepository owns the atomic commit and void protocols.
type CheckoutRepository interface {
	// Commit atomically decrements stock for every bill item, appends one
	// sale-type StockMovement per item, and inserts the Bill and Sale with
	// their item snapshots. If any product's stock cannot cover its quantity
	// the whole transaction rolls back and an insufficient stock error is
	// returned with the offending product names.
	Commit(ctx context.Context, commit *CheckoutCommit) error

	// Void transitions a completed bill to voided, restores the decremented
	// stock with return-type movements, and mirrors the status onto the
	// Sale, all in one transaction.
	Void(ctx context.Context, billID, userID uuid.UUID) (*entity.Bill, error)
}
