package model

type Supplier struct {
	OwnedModel
	Name         string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Contact      string `gorm:"type:varchar(255)" json:"contact"`
	Address      string `json:"address"`
	PaymentTerms string `gorm:"type:varchar(100)" json:"payment_terms"`
}
