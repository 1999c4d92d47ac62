package repository

import (
	"context"
	"errors"

	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/entity"
	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/enum"
	domainRepo "github.com/Fouxth/CannabisPOS-sub000/internal/domain/repository"
	"github.com/Fouxth/CannabisPOS-sub000/pkg/apperror"
	"github.com/Fouxth/CannabisPOS-sub000/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type stockMovementRepository struct {
	db *gorm.DB
}

// NewStockMovementRepository creates a new stock movement repository.
func NewStockMovementRepository(db *gorm.DB) domainRepo.StockMovementRepository {
	return &stockMovementRepository{db: db}
}

// ApplyAdjustment applies a manual stock change under a row lock. The product
// is re-read FOR UPDATE inside the transaction so concurrent adjustments and
// checkouts serialize; a subtract that would go below zero is rejected before
// anything is written.
func (r *stockMovementRepository) ApplyAdjustment(ctx context.Context, adj *domainRepo.StockAdjustment) (*entity.Product, *entity.StockMovement, error) {
	var product entity.Product
	var movement *entity.StockMovement

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Scopes(TenantScope(ctx)).
			First(&product, "id = ?", adj.ProductID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NewNotFoundError("Product")
		}
		if err != nil {
			return err
		}

		previous := product.Stock
		var next int
		switch adj.Type {
		case enum.AdjustmentTypeAdd:
			next = previous + adj.Quantity
		case enum.AdjustmentTypeSubtract:
			next = previous - adj.Quantity
		case enum.AdjustmentTypeSet:
			next = adj.Quantity
		default:
			return apperror.NewBadRequestError("Invalid adjustment type")
		}
		if next < 0 {
			return apperror.NewConflictError("Adjustment would drive stock below zero for " + product.Name)
		}

		if err := tx.Model(&entity.Product{}).
			Where("id = ?", product.ID).
			Update("stock", next).Error; err != nil {
			return err
		}

		movement = &entity.StockMovement{
			TenantID:         product.TenantID,
			ProductID:        product.ID,
			UserID:           adj.UserID,
			MovementType:     adj.MovementType,
			QuantityChange:   next - previous,
			PreviousQuantity: previous,
			NewQuantity:      next,
			Reason:           adj.Reason,
			Notes:            adj.Notes,
		}
		if err := tx.Create(movement).Error; err != nil {
			return err
		}

		product.Stock = next
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &product, movement, nil
}

func (r *stockMovementRepository) List(ctx context.Context, params *domainRepo.MovementFilterParams) ([]entity.StockMovement, int64, error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	query := r.db.WithContext(ctx).Model(&entity.StockMovement{}).Scopes(TenantScope(ctx))

	if params.ProductID != nil {
		query = query.Where("product_id = ?", *params.ProductID)
	}
	if params.MovementType != nil {
		query = query.Where("movement_type = ?", *params.MovementType)
	}
	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var movements []entity.StockMovement
	err := query.Preload("Product").
		Order("created_at DESC").
		Offset(params.Pagination.Offset()).
		Limit(params.Pagination.PerPage).
		Find(&movements).Error
	if err != nil {
		return nil, 0, err
	}

	return movements, total, nil
}

func (r *stockMovementRepository) GetByReferenceID(ctx context.Context, referenceID uuid.UUID) ([]entity.StockMovement, error) {
	var movements []entity.StockMovement
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Where("reference_id = ?", referenceID).
		Order("created_at ASC").
		Find(&movements).Error
	if err != nil {
		return nil, err
	}
	return movements, nil
}
