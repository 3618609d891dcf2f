package service

import (
	"sort"
	"time"

	"go-icarstok-ws/internal/model"
	"go-icarstok-ws/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardStats are the overview KPIs, recomputed from the owner's current
// snapshot on every request.
type DashboardStats struct {
	TotalProducts   int             `json:"total_products"`
	TotalStockValue decimal.Decimal `json:"total_stock_value"`
	TotalSalesValue decimal.Decimal `json:"total_sales_value"`
	LowStockCount   int             `json:"low_stock_count"`
	LowStockItems   []model.Product `json:"low_stock_items"`
}

// StockMovementData is one day of inbound (purchases) and outbound (sales)
// quantities, for chart data.
type StockMovementData struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

type DashboardService interface {
	GetSnapshot(ownerID uuid.UUID) (*model.Snapshot, error)
	GetDashboardStats(ownerID uuid.UUID) (*DashboardStats, error)
	GetStockMovement(ownerID uuid.UUID, days int) ([]StockMovementData, error)
	GetProductSalesSummary(ownerID, productID uuid.UUID) (int, error)
}

type dashboardService struct {
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	saleRepo     repository.SaleRepository
	purchaseRepo repository.PurchaseRepository
}

func NewDashboardService(pRepo repository.ProductRepository, supRepo repository.SupplierRepository, sRepo repository.SaleRepository, puRepo repository.PurchaseRepository) DashboardService {
	return &dashboardService{
		productRepo:  pRepo,
		supplierRepo: supRepo,
		saleRepo:     sRepo,
		purchaseRepo: puRepo,
	}
}

// GetSnapshot loads the owner's full current view of the four collections.
func (s *dashboardService) GetSnapshot(ownerID uuid.UUID) (*model.Snapshot, error) {
	products, err := s.productRepo.FindAll(ownerID)
	if err != nil {
		return nil, err
	}
	suppliers, err := s.supplierRepo.FindAll(ownerID)
	if err != nil {
		return nil, err
	}
	sales, err := s.saleRepo.FindAll(ownerID)
	if err != nil {
		return nil, err
	}
	purchases, err := s.purchaseRepo.FindAll(ownerID)
	if err != nil {
		return nil, err
	}

	return &model.Snapshot{
		Products:  products,
		Suppliers: suppliers,
		Sales:     sales,
		Purchases: purchases,
	}, nil
}

func (s *dashboardService) GetDashboardStats(ownerID uuid.UUID) (*DashboardStats, error) {
	snapshot, err := s.GetSnapshot(ownerID)
	if err != nil {
		return nil, err
	}

	low := snapshot.LowStockProducts()
	return &DashboardStats{
		TotalProducts:   len(snapshot.Products),
		TotalStockValue: snapshot.TotalStockValue(),
		TotalSalesValue: snapshot.TotalSalesValue(),
		LowStockCount:   len(low),
		LowStockItems:   low,
	}, nil
}

func (s *dashboardService) GetStockMovement(ownerID uuid.UUID, days int) ([]StockMovementData, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	outbound, err := s.saleRepo.QuantityPerDay(ownerID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	inbound, err := s.purchaseRepo.QuantityPerDay(ownerID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	// Merge the two per-day series on date
	byDate := make(map[string]*StockMovementData)
	for _, d := range outbound {
		byDate[d.Date] = &StockMovementData{Date: d.Date, Outbound: d.Quantity}
	}
	for _, d := range inbound {
		if entry, ok := byDate[d.Date]; ok {
			entry.Inbound = d.Quantity
		} else {
			byDate[d.Date] = &StockMovementData{Date: d.Date, Inbound: d.Quantity}
		}
	}

	results := make([]StockMovementData, 0, len(byDate))
	for _, entry := range byDate {
		results = append(results, *entry)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Date < results[j].Date })

	return results, nil
}

func (s *dashboardService) GetProductSalesSummary(ownerID, productID uuid.UUID) (int, error) {
	sales, err := s.saleRepo.FindAll(ownerID)
	if err != nil {
		return 0, err
	}
	snapshot := &model.Snapshot{Sales: sales}
	return snapshot.ProductSalesSummary(productID), nil
}
