package service

import (
	"context"

	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/entity"
	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/enum"
	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/repository"
	infraRepo "github.com/Fouxth/CannabisPOS-sub000/internal/infrastructure/repository"
	"github.com/Fouxth/CannabisPOS-sub000/pkg/apperror"
	"github.com/Fouxth/CannabisPOS-sub000/pkg/pagination"
	"github.com/google/uuid"
)

// StockService handles manual stock adjustments and the movement trail.
type StockService struct {
	stockRepo   repository.StockMovementRepository
	productRepo repository.ProductRepository
}

// NewStockService creates a new stock service
func NewStockService(stockRepo repository.StockMovementRepository, productRepo repository.ProductRepository) *StockService {
	return &StockService{
		stockRepo:   stockRepo,
		productRepo: productRepo,
	}
}

// AdjustStockInput represents a manual stock adjustment request.
type AdjustStockInput struct {
	ProductID    uuid.UUID
	Type         enum.AdjustmentType
	Quantity     int
	MovementType string // restock, adjustment, damaged; defaults to adjustment
	Reason       string
	Notes        *string
}

// AdjustmentResult pairs the updated product with the movement recorded for
// the change.
type AdjustmentResult struct {
	Product  *entity.Product       `json:"product"`
	Movement *entity.StockMovement `json:"movement"`
}

// Adjust applies a manual stock change and records it in the ledger.
func (s *StockService) Adjust(ctx context.Context, input *AdjustStockInput) (*AdjustmentResult, error) {
	userID, ok := infraRepo.GetUserID(ctx)
	if !ok {
		return nil, apperror.ErrUnauthorized
	}

	if !input.Type.IsValid() {
		return nil, apperror.NewBadRequestError("Adjustment type must be add, subtract or set")
	}
	if input.Quantity < 0 {
		return nil, apperror.NewBadRequestError("Quantity cannot be negative")
	}
	if input.Quantity == 0 && input.Type != enum.AdjustmentTypeSet {
		return nil, apperror.NewBadRequestError("Quantity must be positive")
	}

	movementType := enum.ParseMovementType(input.MovementType)
	if movementType == enum.MovementTypeSale || movementType == enum.MovementTypeReturn {
		return nil, apperror.NewBadRequestError("Sale and return movements are recorded by checkout only")
	}

	product, movement, err := s.stockRepo.ApplyAdjustment(ctx, &repository.StockAdjustment{
		ProductID:    input.ProductID,
		UserID:       userID,
		Type:         input.Type,
		Quantity:     input.Quantity,
		MovementType: movementType,
		Reason:       input.Reason,
		Notes:        input.Notes,
	})
	if err != nil {
		return nil, err
	}

	return &AdjustmentResult{Product: product, Movement: movement}, nil
}

// ListMovements returns the movement trail with filtering and pagination.
func (s *StockService) ListMovements(ctx context.Context, params *repository.MovementFilterParams) (*pagination.PaginatedResult[entity.StockMovement], error) {
	movements, total, err := s.stockRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(movements, pag), nil
}

// GetMovementsForBill returns the movements a checkout or void produced.
func (s *StockService) GetMovementsForBill(ctx context.Context, billID uuid.UUID) ([]entity.StockMovement, error) {
	return s.stockRepo.GetByReferenceID(ctx, billID)
}

// GetLowStock returns products at or below their minimum stock level.
func (s *StockService) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}
