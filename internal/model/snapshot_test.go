package model_test

import (
	"testing"

	"go-icarstok-ws/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id uuid.UUID, stock, minStock int, costPrice string) model.Product {
	return model.Product{
		OwnedModel: model.OwnedModel{BaseModel: model.BaseModel{ID: id}},
		SKU:        "SKU-" + id.String()[:8],
		Name:       "Product " + id.String()[:8],
		Stock:      stock,
		MinStock:   minStock,
		CostPrice:  decimal.RequireFromString(costPrice),
	}
}

func sale(productID uuid.UUID, quantity int, salePrice string) model.Sale {
	return model.Sale{
		ProductID: productID,
		Quantity:  quantity,
		SalePrice: decimal.RequireFromString(salePrice),
	}
}

func TestTotalStockValue(t *testing.T) {
	p1 := uuid.New()
	p2 := uuid.New()
	snapshot := &model.Snapshot{
		Products: []model.Product{
			product(p1, 10, 3, "5"),
			product(p2, 4, 0, "2.50"),
		},
	}

	// 10*5 + 4*2.50 = 60
	assert.True(t, snapshot.TotalStockValue().Equal(decimal.RequireFromString("60")))
}

func TestTotalStockValueRecomputesAfterStockChange(t *testing.T) {
	p1 := uuid.New()
	snapshot := &model.Snapshot{
		Products: []model.Product{product(p1, 10, 3, "5")},
	}
	require.True(t, snapshot.TotalStockValue().Equal(decimal.RequireFromString("50")))

	// Stock drops from 10 to 6 after a sale of 4 units
	snapshot.Products[0].Stock = 6
	assert.True(t, snapshot.TotalStockValue().Equal(decimal.RequireFromString("30")))
}

func TestLowStockProducts(t *testing.T) {
	atThreshold := uuid.New()
	below := uuid.New()
	healthy := uuid.New()

	snapshot := &model.Snapshot{
		Products: []model.Product{
			product(atThreshold, 3, 3, "1"),
			product(below, 0, 5, "1"),
			product(healthy, 50, 5, "1"),
		},
	}

	low := snapshot.LowStockProducts()
	require.Len(t, low, 2)
	assert.Equal(t, atThreshold, low[0].ID)
	assert.Equal(t, below, low[1].ID)
}

func TestLowStockProductLeavesListAfterRestock(t *testing.T) {
	p2 := uuid.New()
	snapshot := &model.Snapshot{
		Products: []model.Product{product(p2, 0, 5, "3")},
	}
	require.Len(t, snapshot.LowStockProducts(), 1)

	// Purchase of 10 units lands
	snapshot.Products[0].Stock = 10
	assert.Empty(t, snapshot.LowStockProducts())
}

func TestTotalSalesValue(t *testing.T) {
	p1 := uuid.New()
	snapshot := &model.Snapshot{
		Sales: []model.Sale{
			sale(p1, 4, "8"),
			sale(p1, 2, "7.25"),
		},
	}

	// 4*8 + 2*7.25 = 46.50
	assert.True(t, snapshot.TotalSalesValue().Equal(decimal.RequireFromString("46.50")))
}

func TestProductSalesSummary(t *testing.T) {
	p1 := uuid.New()
	p2 := uuid.New()
	snapshot := &model.Snapshot{
		Sales: []model.Sale{
			sale(p1, 4, "8"),
			sale(p2, 9, "1"),
			sale(p1, 3, "8"),
		},
	}

	assert.Equal(t, 7, snapshot.ProductSalesSummary(p1))
	assert.Equal(t, 9, snapshot.ProductSalesSummary(p2))
	assert.Equal(t, 0, snapshot.ProductSalesSummary(uuid.New()))
}

func TestAggregationsAreIdempotent(t *testing.T) {
	p1 := uuid.New()
	snapshot := &model.Snapshot{
		Products: []model.Product{product(p1, 10, 3, "5")},
		Sales:    []model.Sale{sale(p1, 4, "8")},
	}

	// Same snapshot, same result, no hidden state
	assert.True(t, snapshot.TotalStockValue().Equal(snapshot.TotalStockValue()))
	assert.True(t, snapshot.TotalSalesValue().Equal(snapshot.TotalSalesValue()))
	assert.Equal(t, snapshot.ProductSalesSummary(p1), snapshot.ProductSalesSummary(p1))
	assert.Equal(t, len(snapshot.LowStockProducts()), len(snapshot.LowStockProducts()))
}
