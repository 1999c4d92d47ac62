package service

import (
	"context"
	"testing"

	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/enum"
	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/repository"
	"github.com/Fouxth/CannabisPOS-sub000/pkg/apperror"
	"github.com/Fouxth/CannabisPOS-sub000/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjust_Add(t *testing.T) {
	e := newTestEnv()
	p := e.seedProduct("Coffee", 10000, 10)

	result, err := e.stock.Adjust(e.ctx, &AdjustStockInput{
		ProductID:    p.ID,
		Type:         enum.AdjustmentTypeAdd,
		Quantity:     5,
		MovementType: "restock",
		Reason:       "weekly delivery",
	})

	require.NoError(t, err)
	assert.Equal(t, 15, result.Product.Stock)
	assert.Equal(t, enum.MovementTypeRestock, result.Movement.MovementType)
	assert.Equal(t, 5, result.Movement.QuantityChange)
	assert.Equal(t, 10, result.Movement.PreviousQuantity)
	assert.Equal(t, 15, result.Movement.NewQuantity)
	assert.Equal(t, e.userID, result.Movement.UserID)
	assert.Equal(t, 15, e.store.stockOf(p.ID))
}

func TestAdjust_SubtractBelowZero(t *testing.T) {
	e := newTestEnv()
	p := e.seedProduct("Coffee", 10000, 3)

	_, err := e.stock.Adjust(e.ctx, &AdjustStockInput{
		ProductID:    p.ID,
		Type:         enum.AdjustmentTypeSubtract,
		Quantity:     5,
		MovementType: "damaged",
		Reason:       "breakage",
	})

	require.Error(t, err)
	assert.Equal(t, 3, e.store.stockOf(p.ID))
	assert.Empty(t, e.store.movements)
}

func TestAdjust_SetToZero(t *testing.T) {
	e := newTestEnv()
	p := e.seedProduct("Coffee", 10000, 7)

	result, err := e.stock.Adjust(e.ctx, &AdjustStockInput{
		ProductID: p.ID,
		Type:      enum.AdjustmentTypeSet,
		Quantity:  0,
		Reason:    "stocktake correction",
	})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Product.Stock)
	assert.Equal(t, -7, result.Movement.QuantityChange)
	// An omitted movement type defaults to adjustment.
	assert.Equal(t, enum.MovementTypeAdjustment, result.Movement.MovementType)
}

func TestAdjust_Validation(t *testing.T) {
	e := newTestEnv()
	p := e.seedProduct("Coffee", 10000, 10)

	tests := []struct {
		name  string
		input *AdjustStockInput
	}{
		{
			name:  "invalid adjustment type",
			input: &AdjustStockInput{ProductID: p.ID, Type: "double", Quantity: 1},
		},
		{
			name:  "negative quantity",
			input: &AdjustStockInput{ProductID: p.ID, Type: enum.AdjustmentTypeAdd, Quantity: -1},
		},
		{
			name:  "zero quantity outside set",
			input: &AdjustStockInput{ProductID: p.ID, Type: enum.AdjustmentTypeAdd, Quantity: 0},
		},
		{
			name:  "sale movements are reserved for checkout",
			input: &AdjustStockInput{ProductID: p.ID, Type: enum.AdjustmentTypeAdd, Quantity: 1, MovementType: "sale"},
		},
		{
			name:  "return movements are reserved for void",
			input: &AdjustStockInput{ProductID: p.ID, Type: enum.AdjustmentTypeAdd, Quantity: 1, MovementType: "return"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.stock.Adjust(e.ctx, tt.input)
			require.Error(t, err)
		})
	}

	// Nothing reached the ledger.
	assert.Equal(t, 10, e.store.stockOf(p.ID))
	assert.Empty(t, e.store.movements)
}

func TestAdjust_RequiresUserContext(t *testing.T) {
	e := newTestEnv()
	p := e.seedProduct("Coffee", 10000, 10)

	_, err := e.stock.Adjust(context.Background(), &AdjustStockInput{
		ProductID: p.ID,
		Type:      enum.AdjustmentTypeAdd,
		Quantity:  1,
	})

	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestListMovements(t *testing.T) {
	e := newTestEnv()
	p := e.seedProduct("Coffee", 10000, 10)

	for i := 0; i < 3; i++ {
		_, err := e.stock.Adjust(e.ctx, &AdjustStockInput{
			ProductID:    p.ID,
			Type:         enum.AdjustmentTypeAdd,
			Quantity:     1,
			MovementType: "restock",
		})
		require.NoError(t, err)
	}

	result, err := e.stock.ListMovements(e.ctx, &repository.MovementFilterParams{
		Pagination: pagination.DefaultPagination(),
	})

	require.NoError(t, err)
	assert.Len(t, result.Items, 3)
	assert.Equal(t, int64(3), result.Pagination.Total)
}

func TestGetLowStock(t *testing.T) {
	e := newTestEnv()
	low := e.seedProduct("Coffee", 10000, 2)
	low.MinStock = 5
	e.seedProduct("Tea", 3000, 50)

	products, err := e.stock.GetLowStock(e.ctx)

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Coffee", products[0].Name)
}
