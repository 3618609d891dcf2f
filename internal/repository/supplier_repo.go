package repository

import (
	"go-icarstok-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupplierRepository interface {
	Create(supplier *model.Supplier) error
	FindAll(ownerID uuid.UUID) ([]model.Supplier, error)
	FindByID(ownerID, id uuid.UUID) (*model.Supplier, error)
	Update(supplier *model.Supplier) error
	Delete(ownerID, id uuid.UUID) error
}

type supplierRepo struct {
	db *gorm.DB
}

func NewSupplierRepo(db *gorm.DB) SupplierRepository {
	return &supplierRepo{db}
}

func (r *supplierRepo) Create(supplier *model.Supplier) error {
	return r.db.Create(supplier).Error
}

func (r *supplierRepo) FindAll(ownerID uuid.UUID) ([]model.Supplier, error) {
	var suppliers []model.Supplier
	err := r.db.Where("owner_id = ?", ownerID).Order("name ASC").Find(&suppliers).Error
	return suppliers, err
}

func (r *supplierRepo) FindByID(ownerID, id uuid.UUID) (*model.Supplier, error) {
	var supplier model.Supplier
	err := r.db.First(&supplier, "id = ? AND owner_id = ?", id, ownerID).Error
	return &supplier, err
}

func (r *supplierRepo) Update(supplier *model.Supplier) error {
	return r.db.Save(supplier).Error
}

func (r *supplierRepo) Delete(ownerID, id uuid.UUID) error {
	return r.db.Where("owner_id = ?", ownerID).Delete(&model.Supplier{}, "id = ?", id).Error
}
