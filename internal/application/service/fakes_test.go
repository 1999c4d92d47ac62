package service

import (
	"context"
	"sync"
	"time"

	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/entity"
	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/enum"
	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/repository"
	"github.com/Fouxth/CannabisPOS-sub000/pkg/apperror"
	"github.com/Fouxth/CannabisPOS-sub000/pkg/pagination"
	"github.com/google/uuid"
)

// In-memory repository fakes sharing one product table, so checkout, void and
// manual adjustments observe each other's stock changes the way they would
// against the database.

type fakeStore struct {
	mu         sync.Mutex
	products   map[uuid.UUID]*entity.Product
	categories map[uuid.UUID]*entity.Category
	bills      map[uuid.UUID]*entity.Bill
	sales      map[uuid.UUID]*entity.Sale // keyed by bill id
	movements  []entity.StockMovement
	tenant     *entity.Tenant
}

func newFakeStore(tenant *entity.Tenant) *fakeStore {
	return &fakeStore{
		products:   make(map[uuid.UUID]*entity.Product),
		categories: make(map[uuid.UUID]*entity.Category),
		bills:      make(map[uuid.UUID]*entity.Bill),
		sales:      make(map[uuid.UUID]*entity.Sale),
		tenant:     tenant,
	}
}

func (f *fakeStore) addProduct(p *entity.Product) *entity.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.products[p.ID] = p
	return p
}

func (f *fakeStore) stockOf(id uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.products[id].Stock
}

type fakeTenantRepo struct{ store *fakeStore }

func (r *fakeTenantRepo) Create(ctx context.Context, tenant *entity.Tenant) error { return nil }

func (r *fakeTenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Tenant, error) {
	if r.store.tenant == nil || r.store.tenant.ID != id {
		return nil, apperror.NewNotFoundError("Tenant")
	}
	return r.store.tenant, nil
}

func (r *fakeTenantRepo) GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error) {
	return r.store.tenant, nil
}

func (r *fakeTenantRepo) UpdateSettings(ctx context.Context, id uuid.UUID, settings entity.PricingSettings) error {
	r.store.tenant.Settings = settings
	return nil
}

type fakeProductRepo struct{ store *fakeStore }

func (r *fakeProductRepo) Create(ctx context.Context, p *entity.Product) error {
	r.store.addProduct(p)
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, apperror.NewNotFoundError("Product")
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.Product
	for _, id := range ids {
		if p, ok := r.store.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.products {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFoundError("Product")
}

func (r *fakeProductRepo) Update(ctx context.Context, p *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.products, id)
	return nil
}

func (r *fakeProductRepo) List(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.Product
	for _, p := range r.store.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.Product
	for _, p := range r.store.products {
		if p.IsLowStock() {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeCategoryRepo struct{ store *fakeStore }

func (r *fakeCategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	r.store.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c, ok := r.store.categories[id]
	if !ok {
		return nil, apperror.NewNotFoundError("Category")
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, c := range r.store.categories {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFoundError("Category")
}

func (r *fakeCategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.categories, id)
	return nil
}

func (r *fakeCategoryRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Category, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.Category
	for _, c := range r.store.categories {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

type fakeCheckoutRepo struct{ store *fakeStore }

func (r *fakeCheckoutRepo) Commit(ctx context.Context, commit *repository.CheckoutCommit) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// Verify every line before mutating anything, mirroring the transactional
	// all-or-nothing behavior of the real repository.
	var insufficient []string
	for _, it := range commit.Bill.Items {
		p, ok := r.store.products[it.ProductID]
		if !ok {
			return apperror.NewNotFoundError("Product " + it.ProductName)
		}
		if p.Stock < it.Quantity {
			insufficient = append(insufficient, p.Name)
		}
	}
	if len(insufficient) > 0 {
		return apperror.NewInsufficientStockError(insufficient)
	}

	bill := commit.Bill
	if bill.ID == uuid.Nil {
		bill.ID = uuid.New()
	}
	for i := range bill.Items {
		bill.Items[i].BillID = bill.ID
	}

	for _, it := range bill.Items {
		p := r.store.products[it.ProductID]
		prev := p.Stock
		p.Stock -= it.Quantity
		billID := bill.ID
		r.store.movements = append(r.store.movements, entity.StockMovement{
			ID:               uuid.New(),
			TenantID:         bill.TenantID,
			ProductID:        it.ProductID,
			UserID:           bill.UserID,
			MovementType:     enum.MovementTypeSale,
			QuantityChange:   -it.Quantity,
			PreviousQuantity: prev,
			NewQuantity:      p.Stock,
			ReferenceID:      &billID,
		})
	}

	sale := commit.Sale
	sale.ID = uuid.New()
	sale.BillID = bill.ID

	r.store.bills[bill.ID] = bill
	r.store.sales[bill.ID] = sale
	return nil
}

func (r *fakeCheckoutRepo) Void(ctx context.Context, billID, userID uuid.UUID) (*entity.Bill, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	bill, ok := r.store.bills[billID]
	if !ok {
		return nil, apperror.NewNotFoundError("Bill")
	}
	if bill.Status == enum.BillStatusVoided {
		return nil, apperror.ErrBillAlreadyVoided
	}

	for _, it := range bill.Items {
		p, ok := r.store.products[it.ProductID]
		if !ok {
			continue
		}
		prev := p.Stock
		p.Stock += it.Quantity
		id := billID
		r.store.movements = append(r.store.movements, entity.StockMovement{
			ID:               uuid.New(),
			TenantID:         bill.TenantID,
			ProductID:        it.ProductID,
			UserID:           userID,
			MovementType:     enum.MovementTypeReturn,
			QuantityChange:   it.Quantity,
			PreviousQuantity: prev,
			NewQuantity:      p.Stock,
			ReferenceID:      &id,
		})
	}

	now := time.Now()
	bill.Status = enum.BillStatusVoided
	bill.VoidedAt = &now
	if sale, ok := r.store.sales[billID]; ok {
		sale.Status = enum.BillStatusVoided
	}
	return bill, nil
}

type fakeBillRepo struct{ store *fakeStore }

func (r *fakeBillRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	return r.GetWithItems(ctx, id)
}

func (r *fakeBillRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	bill, ok := r.store.bills[id]
	if !ok {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

func (r *fakeBillRepo) GetByBillNumber(ctx context.Context, billNumber string) (*entity.Bill, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, b := range r.store.bills {
		if b.BillNumber == billNumber {
			return b, nil
		}
	}
	return nil, apperror.NewNotFoundError("Bill")
}

func (r *fakeBillRepo) List(ctx context.Context, params *repository.BillFilterParams) ([]entity.Bill, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.Bill
	for _, b := range r.store.bills {
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

type fakeSaleRepo struct{ store *fakeStore }

func (r *fakeSaleRepo) GetByBillID(ctx context.Context, billID uuid.UUID) (*entity.Sale, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	sale, ok := r.store.sales[billID]
	if !ok {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

func (r *fakeSaleRepo) List(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.Sale
	for _, s := range r.store.sales {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

type fakeStockRepo struct{ store *fakeStore }

func (r *fakeStockRepo) ApplyAdjustment(ctx context.Context, adj *repository.StockAdjustment) (*entity.Product, *entity.StockMovement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.products[adj.ProductID]
	if !ok {
		return nil, nil, apperror.NewNotFoundError("Product")
	}

	prev := p.Stock
	var next int
	switch adj.Type {
	case enum.AdjustmentTypeAdd:
		next = prev + adj.Quantity
	case enum.AdjustmentTypeSubtract:
		next = prev - adj.Quantity
	case enum.AdjustmentTypeSet:
		next = adj.Quantity
	}
	if next < 0 {
		return nil, nil, apperror.NewConflictError("Adjustment would drive stock below zero for " + p.Name)
	}

	p.Stock = next
	movement := entity.StockMovement{
		ID:               uuid.New(),
		TenantID:         p.TenantID,
		ProductID:        p.ID,
		UserID:           adj.UserID,
		MovementType:     adj.MovementType,
		QuantityChange:   next - prev,
		PreviousQuantity: prev,
		NewQuantity:      next,
		Reason:           adj.Reason,
		Notes:            adj.Notes,
	}
	r.store.movements = append(r.store.movements, movement)
	cp := *p
	return &cp, &movement, nil
}

func (r *fakeStockRepo) List(ctx context.Context, params *repository.MovementFilterParams) ([]entity.StockMovement, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]entity.StockMovement, len(r.store.movements))
	copy(out, r.store.movements)
	return out, int64(len(out)), nil
}

func (r *fakeStockRepo) GetByReferenceID(ctx context.Context, referenceID uuid.UUID) ([]entity.StockMovement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.StockMovement
	for _, m := range r.store.movements {
		if m.ReferenceID != nil && *m.ReferenceID == referenceID {
			out = append(out, m)
		}
	}
	return out, nil
}

var _ repository.TenantRepository = (*fakeTenantRepo)(nil)
var _ repository.ProductRepository = (*fakeProductRepo)(nil)
var _ repository.CategoryRepository = (*fakeCategoryRepo)(nil)
var _ repository.CheckoutRepository = (*fakeCheckoutRepo)(nil)
var _ repository.BillRepository = (*fakeBillRepo)(nil)
var _ repository.SaleRepository = (*fakeSaleRepo)(nil)
var _ repository.StockMovementRepository = (*fakeStockRepo)(nil)
