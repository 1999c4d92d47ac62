package service

import (
	"context"

	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/entity"
	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/repository"
	"github.com/Fouxth/CannabisPOS-sub000/pkg/pagination"
	"github.com/google/uuid"
)

// BillService serves the immutable transaction history.
type BillService struct {
	billRepo repository.BillRepository
	saleRepo repository.SaleRepository
}

// NewBillService creates a new bill service
func NewBillService(billRepo repository.BillRepository, saleRepo repository.SaleRepository) *BillService {
	return &BillService{
		billRepo: billRepo,
		saleRepo: saleRepo,
	}
}

// GetBill retrieves a bill with its item snapshots.
func (s *BillService) GetBill(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	return s.billRepo.GetWithItems(ctx, id)
}

// GetBillByNumber retrieves a bill by its human-readable number.
func (s *BillService) GetBillByNumber(ctx context.Context, billNumber string) (*entity.Bill, error) {
	return s.billRepo.GetByBillNumber(ctx, billNumber)
}

// ListBills lists bills with filtering and pagination.
func (s *BillService) ListBills(ctx context.Context, params *repository.BillFilterParams) (*pagination.PaginatedResult[entity.Bill], error) {
	bills, total, err := s.billRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(bills, pag), nil
}

// GetSale retrieves the reporting projection for a bill.
func (s *BillService) GetSale(ctx context.Context, billID uuid.UUID) (*entity.Sale, error) {
	return s.saleRepo.GetByBillID(ctx, billID)
}

// ListSales lists the reporting projections with date filtering.
func (s *BillService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}
