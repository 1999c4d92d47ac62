package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/entity"
	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/enum"
	domainRepo "github.com/Fouxth/CannabisPOS-sub000/internal/domain/repository"
	"github.com/Fouxth/CannabisPOS-sub000/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type checkoutRepository struct {
	db *gorm.DB
}

// NewCheckoutRepository creates the repository owning the atomic checkout
// commit and void protocols.
func NewCheckoutRepository(db *gorm.DB) domainRepo.CheckoutRepository {
	return &checkoutRepository{db: db}
}

// Commit executes the whole checkout inside one transaction. Product rows are
// locked with SELECT ... FOR UPDATE so two concurrent checkouts touching the
// same product serialize their stock checks; the sum of decrements can never
// drive stock negative. Any shortfall rolls the entire transaction back -
// there is no partial checkout.
func (r *checkoutRepository) Commit(ctx context.Context, commit *domainRepo.CheckoutCommit) error {
	bill := commit.Bill

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		productIDs := make([]uuid.UUID, len(bill.Items))
		for i, item := range bill.Items {
			productIDs[i] = item.ProductID
		}

		var products []entity.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ? AND tenant_id = ?", productIDs, bill.TenantID).
			Find(&products).Error; err != nil {
			return err
		}

		productMap := make(map[uuid.UUID]*entity.Product, len(products))
		for i := range products {
			productMap[products[i].ID] = &products[i]
		}

		// Verify every line before mutating anything.
		var insufficient []string
		for _, item := range bill.Items {
			product, exists := productMap[item.ProductID]
			if !exists {
				return apperror.NewNotFoundError("Product " + item.ProductName)
			}
			if product.Stock < item.Quantity {
				insufficient = append(insufficient, product.Name)
			}
		}
		if len(insufficient) > 0 {
			return apperror.NewInsufficientStockError(insufficient)
		}

		if err := tx.Create(bill).Error; err != nil {
			return err
		}

		commit.Sale.BillID = bill.ID
		if err := tx.Create(commit.Sale).Error; err != nil {
			return err
		}

		for _, item := range bill.Items {
			product := productMap[item.ProductID]
			previous := product.Stock
			product.Stock = previous - item.Quantity

			if err := tx.Model(&entity.Product{}).
				Where("id = ?", product.ID).
				Update("stock", product.Stock).Error; err != nil {
				return err
			}

			movement := &entity.StockMovement{
				TenantID:         bill.TenantID,
				ProductID:        product.ID,
				UserID:           bill.UserID,
				MovementType:     enum.MovementTypeSale,
				QuantityChange:   -item.Quantity,
				PreviousQuantity: previous,
				NewQuantity:      product.Stock,
				ReferenceID:      &bill.ID,
				Reason:           "sale " + bill.BillNumber,
			}
			if err := tx.Create(movement).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Void flips a completed bill to voided and restores the stock it consumed,
// appending return-type movements so the audit trail shows the reversal
// rather than erasing the sale.
func (r *checkoutRepository) Void(ctx context.Context, billID, userID uuid.UUID) (*entity.Bill, error) {
	var bill entity.Bill

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Scopes(TenantScope(ctx)).
			Preload("Items").
			First(&bill, "id = ?", billID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NewNotFoundError("Bill")
		}
		if err != nil {
			return err
		}

		if bill.Status == enum.BillStatusVoided {
			return apperror.ErrBillAlreadyVoided
		}

		productIDs := make([]uuid.UUID, len(bill.Items))
		for i, item := range bill.Items {
			productIDs[i] = item.ProductID
		}

		var products []entity.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ?", productIDs).
			Find(&products).Error; err != nil {
			return err
		}
		productMap := make(map[uuid.UUID]*entity.Product, len(products))
		for i := range products {
			productMap[products[i].ID] = &products[i]
		}

		for _, item := range bill.Items {
			product, exists := productMap[item.ProductID]
			if !exists {
				// Product was deleted after the sale; nothing to restore.
				continue
			}
			previous := product.Stock
			product.Stock = previous + item.Quantity

			if err := tx.Model(&entity.Product{}).
				Where("id = ?", product.ID).
				Update("stock", product.Stock).Error; err != nil {
				return err
			}

			movement := &entity.StockMovement{
				TenantID:         bill.TenantID,
				ProductID:        product.ID,
				UserID:           userID,
				MovementType:     enum.MovementTypeReturn,
				QuantityChange:   item.Quantity,
				PreviousQuantity: previous,
				NewQuantity:      product.Stock,
				ReferenceID:      &bill.ID,
				Reason:           "void " + bill.BillNumber,
			}
			if err := tx.Create(movement).Error; err != nil {
				return err
			}
		}

		now := time.Now()
		bill.Status = enum.BillStatusVoided
		bill.VoidedAt = &now
		if err := tx.Model(&entity.Bill{}).
			Where("id = ?", bill.ID).
			Updates(map[string]interface{}{"status": enum.BillStatusVoided, "voided_at": now}).Error; err != nil {
			return err
		}

		return tx.Model(&entity.Sale{}).
			Where("bill_id = ?", bill.ID).
			Update("status", enum.BillStatusVoided).Error
	})
	if err != nil {
		return nil, err
	}

	return &bill, nil
}
