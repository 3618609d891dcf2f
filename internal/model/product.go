package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	OwnedModel
	SKU         string          `gorm:"type:varchar(50);index;not null" json:"sku" validate:"required"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description string          `json:"description"`
	Category    string          `gorm:"type:varchar(100)" json:"category"`
	CostPrice   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"cost_price"`
	SalePrice   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"sale_price"`
	Stock       int             `gorm:"default:0" json:"current_stock"`
	MinStock    int             `gorm:"default:0" json:"min_stock"`

	SupplierID *uuid.UUID `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	Supplier   *Supplier  `gorm:"foreignKey:SupplierID" json:"supplier,omitempty" validate:"-"`
}

// LowStock reports whether the product is at or below its reorder threshold.
func (p *Product) LowStock() bool {
	return p.Stock <= p.MinStock
}
