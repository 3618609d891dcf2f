package repository

import (
	"go-icarstok-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll(ownerID uuid.UUID) ([]model.Product, error)
	FindByID(ownerID, id uuid.UUID) (*model.Product, error)
	FindBySKU(ownerID uuid.UUID, sku string) (*model.Product, error)
	Update(product *model.Product) error
	UpdateStock(tx *gorm.DB, id uuid.UUID, newStock int) error
	Delete(ownerID, id uuid.UUID) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll(ownerID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Supplier").Where("owner_id = ?", ownerID).Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(ownerID, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Supplier").First(&product, "id = ? AND owner_id = ?", id, ownerID).Error
	return &product, err
}

func (r *productRepo) FindBySKU(ownerID uuid.UUID, sku string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "sku = ? AND owner_id = ?", sku, ownerID).Error
	return &product, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

// UpdateStock takes *gorm.DB (tx) so the stock write can run inside the
// ledger transaction together with the sale/purchase insert.
func (r *productRepo) UpdateStock(tx *gorm.DB, id uuid.UUID, newStock int) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		Update("stock", newStock).Error
}

func (r *productRepo) Delete(ownerID, id uuid.UUID) error {
	return r.db.Where("owner_id = ?", ownerID).Delete(&model.Product{}, "id = ?", id).Error
}
