package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-icarstok-ws/internal/model"
	"go-icarstok-ws/internal/repository"
	"go-icarstok-ws/internal/ws"
	"go-icarstok-ws/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock remaining")
	ErrNegativePrice     = errors.New("price must not be negative")
	ErrInvalidDate       = errors.New("invalid date, expected YYYY-MM-DD")
	ErrValidation        = errors.New("validation failed")
)

const dateLayout = "2006-01-02"

// SubmitSaleRequest is the form input for recording a sale.
type SubmitSaleRequest struct {
	ProductID uuid.UUID       `json:"product_id" validate:"uuid_required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	SalePrice decimal.Decimal `json:"sale_price"` // per unit
	SaleDate  string          `json:"sale_date" validate:"required"`
}

// SubmitPurchaseRequest is the form input for recording a purchase.
type SubmitPurchaseRequest struct {
	ProductID    uuid.UUID       `json:"product_id" validate:"uuid_required"`
	SupplierID   *uuid.UUID      `json:"supplier_id,omitempty"`
	Quantity     int             `json:"quantity" validate:"required,gt=0"`
	CostPrice    decimal.Decimal `json:"cost_price"` // per unit
	PurchaseDate string          `json:"purchase_date" validate:"required"`
}

// LedgerService applies sale and purchase transactions: it validates against
// the current stock level, persists the record and adjusts the product's
// stock as one atomic unit. Readers never observe a sale without the
// matching stock decrement, or vice versa.
type LedgerService interface {
	SubmitSale(ownerID uuid.UUID, req *SubmitSaleRequest) (*model.Sale, error)
	SubmitPurchase(ownerID uuid.UUID, req *SubmitPurchaseRequest) (*model.Purchase, error)
	GetAllSales(ownerID uuid.UUID) ([]model.Sale, error)
	GetSaleByID(ownerID, id uuid.UUID) (*model.Sale, error)
	GetAllPurchases(ownerID uuid.UUID) ([]model.Purchase, error)
	GetPurchaseByID(ownerID, id uuid.UUID) (*model.Purchase, error)
}

type ledgerService struct {
	productRepo  repository.ProductRepository
	saleRepo     repository.SaleRepository
	purchaseRepo repository.PurchaseRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewLedgerService(pRepo repository.ProductRepository, sRepo repository.SaleRepository, puRepo repository.PurchaseRepository, db *gorm.DB, hub *ws.Hub) LedgerService {
	return &ledgerService{
		productRepo:  pRepo,
		saleRepo:     sRepo,
		purchaseRepo: puRepo,
		db:           db,
		wsHub:        hub,
	}
}

func (s *ledgerService) SubmitSale(ownerID uuid.UUID, req *SubmitSaleRequest) (*model.Sale, error) {
	// 1. Validate input
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}
	if req.SalePrice.IsNegative() {
		return nil, ErrNegativePrice
	}
	saleDate, err := time.Parse(dateLayout, req.SaleDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	var sale *model.Sale
	var newStock int
	var product model.Product

	// Transaction block: the sale insert and the stock decrement commit or
	// roll back together.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// A. Find & lock the product row (SELECT ... FOR UPDATE). The stock
		// check must read the value as of this transaction, not a cached
		// client snapshot.
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, "id = ? AND owner_id = ?", req.ProductID, ownerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return fmt.Errorf("failed to load product: %w", err)
		}

		// B. Stock must cover the sale
		if product.Stock < req.Quantity {
			return ErrInsufficientStock
		}
		newStock = product.Stock - req.Quantity

		// C. Persist the sale record
		sale = &model.Sale{
			OwnedModel: model.OwnedModel{OwnerID: ownerID},
			ProductID:  product.ID,
			Quantity:   req.Quantity,
			SalePrice:  req.SalePrice,
			SaleDate:   saleDate,
		}
		if err := s.saleRepo.Create(tx, sale); err != nil {
			return err
		}

		// D. Adjust the product's stock
		return s.productRepo.UpdateStock(tx, product.ID, newStock)
	})
	if err != nil {
		return nil, err
	}

	s.broadcastMovement(ownerID, "sale_recorded", sale.ID, &product, req.Quantity, newStock)

	return sale, nil
}

func (s *ledgerService) SubmitPurchase(ownerID uuid.UUID, req *SubmitPurchaseRequest) (*model.Purchase, error) {
	// 1. Validate input
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}
	if req.CostPrice.IsNegative() {
		return nil, ErrNegativePrice
	}
	purchaseDate, err := time.Parse(dateLayout, req.PurchaseDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	var purchase *model.Purchase
	var newStock int
	var product model.Product

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, "id = ? AND owner_id = ?", req.ProductID, ownerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return fmt.Errorf("failed to load product: %w", err)
		}

		// Purchases always increase stock, no upper bound
		newStock = product.Stock + req.Quantity

		purchase = &model.Purchase{
			OwnedModel:   model.OwnedModel{OwnerID: ownerID},
			ProductID:    product.ID,
			SupplierID:   req.SupplierID,
			Quantity:     req.Quantity,
			CostPrice:    req.CostPrice,
			PurchaseDate: purchaseDate,
		}
		if err := s.purchaseRepo.Create(tx, purchase); err != nil {
			return err
		}

		return s.productRepo.UpdateStock(tx, product.ID, newStock)
	})
	if err != nil {
		return nil, err
	}

	s.broadcastMovement(ownerID, "purchase_recorded", purchase.ID, &product, req.Quantity, newStock)

	return purchase, nil
}

// broadcastMovement pushes the updated stock state to the owner's connected
// clients after a committed ledger write.
func (s *ledgerService) broadcastMovement(ownerID uuid.UUID, action string, recordID uuid.UUID, product *model.Product, quantity, newStock int) {
	go func() {
		payload := map[string]interface{}{
			"type":   "stock_update",
			"action": action,
			"record": map[string]interface{}{
				"id":       recordID,
				"quantity": quantity,
			},
			"product": map[string]interface{}{
				"id":        product.ID,
				"sku":       product.SKU,
				"name":      product.Name,
				"old_stock": product.Stock,
				"new_stock": newStock,
			},
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- ws.Message{OwnerID: ownerID, Data: msg}
	}()
}

func (s *ledgerService) GetAllSales(ownerID uuid.UUID) ([]model.Sale, error) {
	return s.saleRepo.FindAll(ownerID)
}

func (s *ledgerService) GetSaleByID(ownerID, id uuid.UUID) (*model.Sale, error) {
	return s.saleRepo.FindByID(ownerID, id)
}

func (s *ledgerService) GetAllPurchases(ownerID uuid.UUID) ([]model.Purchase, error) {
	return s.purchaseRepo.FindAll(ownerID)
}

func (s *ledgerService) GetPurchaseByID(ownerID, id uuid.UUID) (*model.Purchase, error) {
	return s.purchaseRepo.FindByID(ownerID, id)
}
