package repository

import (
	"time"

	"go-icarstok-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseRepository interface {
	Create(tx *gorm.DB, purchase *model.Purchase) error
	FindAll(ownerID uuid.UUID) ([]model.Purchase, error)
	FindByID(ownerID, id uuid.UUID) (*model.Purchase, error)
	QuantityPerDay(ownerID uuid.UUID, startDate, endDate time.Time) ([]DailyQuantity, error)
}

type purchaseRepo struct {
	db *gorm.DB
}

func NewPurchaseRepo(db *gorm.DB) PurchaseRepository {
	return &purchaseRepo{db}
}

func (r *purchaseRepo) Create(tx *gorm.DB, purchase *model.Purchase) error {
	return tx.Create(purchase).Error
}

func (r *purchaseRepo) FindAll(ownerID uuid.UUID) ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.Preload("Product").Preload("Supplier").Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepo) FindByID(ownerID, id uuid.UUID) (*model.Purchase, error) {
	var purchase model.Purchase
	err := r.db.Preload("Product").Preload("Supplier").First(&purchase, "id = ? AND owner_id = ?", id, ownerID).Error
	return &purchase, err
}

func (r *purchaseRepo) QuantityPerDay(ownerID uuid.UUID, startDate, endDate time.Time) ([]DailyQuantity, error) {
	var results []DailyQuantity

	rows, err := r.db.Model(&model.Purchase{}).
		Select("to_char(purchase_date, 'YYYY-MM-DD') as date, COALESCE(SUM(quantity), 0) as quantity").
		Where("owner_id = ? AND purchase_date BETWEEN ? AND ?", ownerID, startDate, endDate).
		Group("to_char(purchase_date, 'YYYY-MM-DD')").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data DailyQuantity
		if err := rows.Scan(&data.Date, &data.Quantity); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}
