package repository

import (
	"time"

	"go-icarstok-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailyQuantity is one day's total moved quantity, for chart data.
type DailyQuantity struct {
	Date     string `json:"date"`
	Quantity int    `json:"quantity"`
}

type SaleRepository interface {
	Create(tx *gorm.DB, sale *model.Sale) error
	FindAll(ownerID uuid.UUID) ([]model.Sale, error)
	FindByID(ownerID, id uuid.UUID) (*model.Sale, error)
	QuantityPerDay(ownerID uuid.UUID, startDate, endDate time.Time) ([]DailyQuantity, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

// Create takes *gorm.DB (tx) so the insert can run inside the ledger
// transaction together with the stock update.
func (r *saleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

func (r *saleRepo) FindAll(ownerID uuid.UUID) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Product").Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(ownerID, id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Preload("Product").First(&sale, "id = ? AND owner_id = ?", id, ownerID).Error
	return &sale, err
}

func (r *saleRepo) QuantityPerDay(ownerID uuid.UUID, startDate, endDate time.Time) ([]DailyQuantity, error) {
	var results []DailyQuantity

	rows, err := r.db.Model(&model.Sale{}).
		Select("to_char(sale_date, 'YYYY-MM-DD') as date, COALESCE(SUM(quantity), 0) as quantity").
		Where("owner_id = ? AND sale_date BETWEEN ? AND ?", ownerID, startDate, endDate).
		Group("to_char(sale_date, 'YYYY-MM-DD')").
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
