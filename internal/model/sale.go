package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale records one outbound stock movement. Sales are create-only: there is
// no edit or delete, the row is the history.
type Sale struct {
	OwnedModel
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   *Product        `json:"product,omitempty" validate:"-"`
	Quantity  int             `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	SalePrice decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"sale_price"` // per unit
	SaleDate  time.Time       `gorm:"type:date;not null" json:"sale_date"`
}

// Total is quantity * unit price.
func (s *Sale) Total() decimal.Decimal {
	return s.SalePrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
}
