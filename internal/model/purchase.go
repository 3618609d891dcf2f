package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase records one inbound stock movement. Create-only, like Sale.
type Purchase struct {
	OwnedModel
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product      *Product        `json:"product,omitempty" validate:"-"`
	SupplierID   *uuid.UUID      `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	Supplier     *Supplier       `json:"supplier,omitempty" validate:"-"`
	Quantity     int             `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	CostPrice    decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"cost_price"` // per unit
	PurchaseDate time.Time       `gorm:"type:date;not null" json:"purchase_date"`
}

// Total is quantity * unit cost.
func (p *Purchase) Total() decimal.Decimal {
	return p.CostPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
