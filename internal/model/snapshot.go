package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Snapshot is one user's current view of the inventory collections. The
// aggregate helpers below are pure functions of the snapshot: no stored
// aggregate state, recomputing on the same snapshot yields the same result.
type Snapshot struct {
	Products  []Product  `json:"products"`
	Suppliers []Supplier `json:"suppliers"`
	Sales     []Sale     `json:"sales"`
	Purchases []Purchase `json:"purchases"`
}

// TotalStockValue is SUM(stock * cost_price) over all products.
func (s *Snapshot) TotalStockValue() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.Products {
		total = total.Add(p.CostPrice.Mul(decimal.NewFromInt(int64(p.Stock))))
	}
	return total
}

// LowStockProducts returns products at or below their minimum stock threshold.
func (s *Snapshot) LowStockProducts() []Product {
	var low []Product
	for _, p := range s.Products {
		if p.LowStock() {
			low = append(low, p)
		}
	}
	return low
}

// TotalSalesValue is SUM(quantity * sale_price) over all sales.
func (s *Snapshot) TotalSalesValue() decimal.Decimal {
	total := decimal.Zero
	for _, sale := range s.Sales {
		total = total.Add(sale.Total())
	}
	return total
}

// ProductSalesSummary is the total quantity sold for one product.
func (s *Snapshot) ProductSalesSummary(productID uuid.UUID) int {
	sum := 0
	for _, sale := range s.Sales {
		if sale.ProductID == productID {
			sum += sale.Quantity
		}
	}
	return sum
}
