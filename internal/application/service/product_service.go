package service

import (
	"context"

	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/entity"
	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/repository"
	infraRepo "github.com/Fouxth/CannabisPOS-sub000/internal/infrastructure/repository"
	"github.com/Fouxth/CannabisPOS-sub000/pkg/apperror"
	"github.com/Fouxth/CannabisPOS-sub000/pkg/pagination"
	"github.com/Fouxth/CannabisPOS-sub000/pkg/utils"
	"github.com/google/uuid"
)

// ProductService handles catalog operations.
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// CreateProductInput represents the create product input. Prices arrive as
// decimals and are stored in cents.
type CreateProductInput struct {
	Name          string
	Code          string
	CategoryID    *uuid.UUID
	Price         float64
	Cost          float64
	Stock         int
	MinStock      int
	StockUnit     string
	PromoQuantity *int
	PromoPrice    *float64
	ShowInPOS     *bool
}

// CreateProduct creates a new product, generating a code when none is given.
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	if input.Price < 0 || input.Cost < 0 {
		return nil, apperror.NewBadRequestError("Price and cost cannot be negative")
	}
	if input.Stock < 0 {
		return nil, apperror.NewBadRequestError("Stock cannot be negative")
	}
	if (input.PromoQuantity == nil) != (input.PromoPrice == nil) {
		return nil, apperror.NewBadRequestError("Promo quantity and promo price must be set together")
	}

	if input.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	code := input.Code
	if code == "" {
		code = utils.GenerateProductCode()
	} else if existing, err := s.productRepo.GetByCode(ctx, code); err == nil && existing != nil {
		return nil, apperror.NewConflictError("Product code already exists")
	}

	product := &entity.Product{
		TenantID:   tenantID,
		CategoryID: input.CategoryID,
		Name:       input.Name,
		Code:       code,
		Stock:      input.Stock,
		MinStock:   input.MinStock,
		StockUnit:  input.StockUnit,
		IsActive:   true,
		ShowInPOS:  true,
	}
	product.SetPriceFromDecimal(input.Price)
	product.SetCostFromDecimal(input.Cost)

	if input.PromoQuantity != nil {
		if *input.PromoQuantity < 2 {
			return nil, apperror.NewBadRequestError("Promo quantity must be at least 2")
		}
		promoCents := int64(*input.PromoPrice * 100)
		product.PromoQuantity = input.PromoQuantity
		product.PromoPrice = &promoCents
	}
	if input.ShowInPOS != nil {
		product.ShowInPOS = *input.ShowInPOS
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProductInput represents the update product input. Nil fields are left
// untouched. Price changes never rewrite historical bill items; those carry
// their own frozen copies.
type UpdateProductInput struct {
	Name          *string
	CategoryID    *uuid.UUID
	Price         *float64
	Cost          *float64
	MinStock      *int
	StockUnit     *string
	PromoQuantity *int
	PromoPrice    *float64
	IsActive      *bool
	ShowInPOS     *bool
}

// UpdateProduct updates an existing product. Stock is deliberately absent
// from the input; stock only changes through checkout or the stock ledger.
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = input.CategoryID
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperror.NewBadRequestError("Price cannot be negative")
		}
		product.SetPriceFromDecimal(*input.Price)
	}
	if input.Cost != nil {
		if *input.Cost < 0 {
			return nil, apperror.NewBadRequestError("Cost cannot be negative")
		}
		product.SetCostFromDecimal(*input.Cost)
	}
	if input.MinStock != nil {
		product.MinStock = *input.MinStock
	}
	if input.StockUnit != nil {
		product.StockUnit = *input.StockUnit
	}
	if input.PromoQuantity != nil {
		if *input.PromoQuantity < 2 {
			return nil, apperror.NewBadRequestError("Promo quantity must be at least 2")
		}
		product.PromoQuantity = input.PromoQuantity
	}
	if input.PromoPrice != nil {
		promoCents := int64(*input.PromoPrice * 100)
		product.PromoPrice = &promoCents
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.ShowInPOS != nil {
		product.ShowInPOS = *input.ShowInPOS
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

// DeleteProduct soft-deletes a product. Bills that sold it keep their frozen
// snapshots.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

// ListProducts lists products with filtering and pagination.
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// CreateCategory creates a new category with a slug derived from its name.
func (s *ProductService) CreateCategory(ctx context.Context, name string) (*entity.Category, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	category := &entity.Category{
		TenantID: tenantID,
		Name:     name,
		Slug:     utils.Slugify(name),
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories lists categories with pagination.
func (s *ProductService) ListCategories(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Category], error) {
	categories, total, err := s.categoryRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(categories, pag), nil
}
