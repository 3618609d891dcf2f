package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"go-icarstok-ws/internal/model"
	"go-icarstok-ws/internal/repository"
	"go-icarstok-ws/internal/ws"
	"go-icarstok-ws/pkg/validator"

	"github.com/google/uuid"
)

var (
	ErrSKUExists        = errors.New("SKU already exists")
	ErrSupplierNotFound = errors.New("supplier not found")
)

// CatalogService manages the Product and Supplier collections. Deletes are
// soft deletes: rows referenced by historical sales/purchases stay
// resolvable.
type CatalogService interface {
	CreateProduct(ownerID uuid.UUID, req *model.Product) error
	UpdateProduct(ownerID, id uuid.UUID, req *model.Product) (*model.Product, error)
	DeleteProduct(ownerID, id uuid.UUID) error
	GetAllProducts(ownerID uuid.UUID) ([]model.Product, error)
	GetProductByID(ownerID, id uuid.UUID) (*model.Product, error)

	CreateSupplier(ownerID uuid.UUID, req *model.Supplier) error
	UpdateSupplier(ownerID, id uuid.UUID, req *model.Supplier) (*model.Supplier, error)
	DeleteSupplier(ownerID, id uuid.UUID) error
	GetAllSuppliers(ownerID uuid.UUID) ([]model.Supplier, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	wsHub        *ws.Hub
}

func NewCatalogService(pRepo repository.ProductRepository, sRepo repository.SupplierRepository, hub *ws.Hub) CatalogService {
	return &catalogService{
		productRepo:  pRepo,
		supplierRepo: sRepo,
		wsHub:        hub,
	}
}

func (s *catalogService) CreateProduct(ownerID uuid.UUID, req *model.Product) error {
	// 1. Basic struct validation
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}
	if req.Stock < 0 || req.MinStock < 0 {
		return errors.New("stock levels must not be negative")
	}
	if req.CostPrice.IsNegative() || req.SalePrice.IsNegative() {
		return ErrNegativePrice
	}

	// 2. Duplicate SKU check within the owner's partition
	existing, _ := s.productRepo.FindBySKU(ownerID, req.SKU)
	if existing != nil && existing.ID != uuid.Nil {
		return ErrSKUExists
	}

	// 3. Save, scoped to the owner
	req.OwnerID = ownerID
	if err := s.productRepo.Create(req); err != nil {
		return err
	}

	s.broadcastProduct(ownerID, "product_created", req)
	return nil
}

func (s *catalogService) UpdateProduct(ownerID, id uuid.UUID, req *model.Product) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}
	if req.Stock < 0 || req.MinStock < 0 {
		return nil, errors.New("stock levels must not be negative")
	}

	existing, err := s.productRepo.FindByID(ownerID, id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.SKU = req.SKU
	existing.Category = req.Category
	existing.CostPrice = req.CostPrice
	existing.SalePrice = req.SalePrice
	existing.Stock = req.Stock
	existing.MinStock = req.MinStock
	existing.SupplierID = req.SupplierID

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}

	s.broadcastProduct(ownerID, "product_updated", existing)
	return existing, nil
}

func (s *catalogService) DeleteProduct(ownerID, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ownerID, id)
	if err != nil {
		return ErrProductNotFound
	}

	if err := s.productRepo.Delete(ownerID, id); err != nil {
		return err
	}

	s.broadcastProduct(ownerID, "product_deleted", product)
	return nil
}

func (s *catalogService) GetAllProducts(ownerID uuid.UUID) ([]model.Product, error) {
	return s.productRepo.FindAll(ownerID)
}

func (s *catalogService) GetProductByID(ownerID, id uuid.UUID) (*model.Product, error) {
	return s.productRepo.FindByID(ownerID, id)
}

func (s *catalogService) CreateSupplier(ownerID uuid.UUID, req *model.Supplier) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}

	req.OwnerID = ownerID
	if err := s.supplierRepo.Create(req); err != nil {
		return err
	}

	s.broadcastSupplier(ownerID, "supplier_created", req)
	return nil
}

func (s *catalogService) UpdateSupplier(ownerID, id uuid.UUID, req *model.Supplier) (*model.Supplier, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}

	existing, err := s.supplierRepo.FindByID(ownerID, id)
	if err != nil {
		return nil, ErrSupplierNotFound
	}

	existing.Name = req.Name
	existing.Contact = req.Contact
	existing.Address = req.Address
	existing.PaymentTerms = req.PaymentTerms

	if err := s.supplierRepo.Update(existing); err != nil {
		return nil, err
	}

	s.broadcastSupplier(ownerID, "supplier_updated", existing)
	return existing, nil
}

func (s *catalogService) DeleteSupplier(ownerID, id uuid.UUID) error {
	supplier, err := s.supplierRepo.FindByID(ownerID, id)
	if err != nil {
		return ErrSupplierNotFound
	}

	if err := s.supplierRepo.Delete(ownerID, id); err != nil {
		return err
	}

	s.broadcastSupplier(ownerID, "supplier_deleted", supplier)
	return nil
}

func (s *catalogService) GetAllSuppliers(ownerID uuid.UUID) ([]model.Supplier, error) {
	return s.supplierRepo.FindAll(ownerID)
}

func (s *catalogService) broadcastProduct(ownerID uuid.UUID, action string, product *model.Product) {
	go func() {
		payload := map[string]interface{}{
			"type":   "catalog_update",
			"action": action,
			"product": map[string]interface{}{
				"id":    product.ID,
				"sku":   product.SKU,
				"name":  product.Name,
				"stock": product.Stock,
			},
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- ws.Message{OwnerID: ownerID, Data: msg}
	}()
}

func (s *catalogService) broadcastSupplier(ownerID uuid.UUID, action string, supplier *model.Supplier) {
	go func() {
		payload := map[string]interface{}{
			"type":   "catalog_update",
			"action": action,
			"supplier": map[string]interface{}{
				"id":   supplier.ID,
				"name": supplier.Name,
			},
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- ws.Message{OwnerID: ownerID, Data: msg}
	}()
}
