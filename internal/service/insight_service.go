package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go-icarstok-ws/pkg/gemini"

	"github.com/google/uuid"
)

// Insight result shapes, one fixed field set per insight kind. The generator
// output is advisory only: it is returned to the caller as-is and never used
// to mutate inventory.

type DemandForecast struct {
	ProductID         string  `json:"productId"`
	Month             string  `json:"month"`
	PredictedQuantity float64 `json:"predictedQuantity"`
}

type ReplenishmentSuggestion struct {
	ProductID       string  `json:"productId"`
	QuantityToOrder float64 `json:"quantityToOrder"`
	SupplierID      string  `json:"supplierId"`
}

type Anomaly struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	ProductID   string `json:"productId"`
	Date        string `json:"date"`
}

type PerformanceNote struct {
	ProductID      string `json:"productId"`
	Performance    string `json:"performance"`
	Recommendation string `json:"recommendation"`
}

type InsightService interface {
	PredictDemand(ctx context.Context, ownerID uuid.UUID) ([]DemandForecast, error)
	SuggestReplenishment(ctx context.Context, ownerID uuid.UUID) ([]ReplenishmentSuggestion, error)
	DetectAnomalies(ctx context.Context, ownerID uuid.UUID) ([]Anomaly, error)
	AnalyzePerformance(ctx context.Context, ownerID uuid.UUID) ([]PerformanceNote, error)
}

type insightService struct {
	dashboard DashboardService
	generator *gemini.Client
}

func NewInsightService(dashboard DashboardService, generator *gemini.Client) InsightService {
	return &insightService{
		dashboard: dashboard,
		generator: generator,
	}
}

// saleMovement is the deterministic projection of a sale or purchase passed
// to the generator.
type saleMovement struct {
	Type      string `json:"type,omitempty"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Date      string `json:"date"`
}

type stockLevel struct {
	ProductID  string `json:"productId"`
	Stock      int    `json:"currentStock"`
	MinStock   int    `json:"minStock"`
	SupplierID string `json:"supplierId,omitempty"`
}

type productPerformance struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	TotalSold int    `json:"totalSold"`
	Stock     int    `json:"currentStock"`
}

func (s *insightService) PredictDemand(ctx context.Context, ownerID uuid.UUID) ([]DemandForecast, error) {
	snapshot, err := s.dashboard.GetSnapshot(ownerID)
	if err != nil {
		return nil, err
	}

	salesData := make([]saleMovement, 0, len(snapshot.Sales))
	for _, sale := range snapshot.Sales {
		salesData = append(salesData, saleMovement{
			ProductID: sale.ProductID.String(),
			Quantity:  sale.Quantity,
			Date:      sale.SaleDate.Format(dateLayout),
		})
	}

	encoded, _ := json.Marshal(salesData)
	prompt := fmt.Sprintf("Based on the following historical sales data: %s, forecast demand per product for the next 3 months. Respond as a JSON array like: [{\"productId\": \"id\", \"month\": \"YYYY-MM\", \"predictedQuantity\": 123}].", encoded)

	schema := &gemini.Schema{
		Type: "ARRAY",
		Items: &gemini.Schema{
			Type: "OBJECT",
			Properties: map[string]*gemini.Schema{
				"productId":         {Type: "STRING"},
				"month":             {Type: "STRING"},
				"predictedQuantity": {Type: "NUMBER"},
			},
			PropertyOrdering: []string{"productId", "month", "predictedQuantity"},
		},
	}

	var forecasts []DemandForecast
	if err := s.generator.GenerateInto(ctx, prompt, schema, &forecasts); err != nil {
		return nil, err
	}
	return forecasts, nil
}

func (s *insightService) SuggestReplenishment(ctx context.Context, ownerID uuid.UUID) ([]ReplenishmentSuggestion, error) {
	snapshot, err := s.dashboard.GetSnapshot(ownerID)
	if err != nil {
		return nil, err
	}

	levels := make([]stockLevel, 0, len(snapshot.Products))
	for _, p := range snapshot.Products {
		level := stockLevel{
			ProductID: p.ID.String(),
			Stock:     p.Stock,
			MinStock:  p.MinStock,
		}
		if p.SupplierID != nil {
			level.SupplierID = p.SupplierID.String()
		}
		levels = append(levels, level)
	}

	encoded, _ := json.Marshal(levels)
	prompt := fmt.Sprintf("Based on the current stock levels: %s, suggest replenishment orders per product, including quantity and supplier. Respond as a JSON array like: [{\"productId\": \"id\", \"quantityToOrder\": 50, \"supplierId\": \"id\"}].", encoded)

	schema := &gemini.Schema{
		Type: "ARRAY",
		Items: &gemini.Schema{
			Type: "OBJECT",
			Properties: map[string]*gemini.Schema{
				"productId":       {Type: "STRING"},
				"quantityToOrder": {Type: "NUMBER"},
				"supplierId":      {Type: "STRING"},
			},
			PropertyOrdering: []string{"productId", "quantityToOrder", "supplierId"},
		},
	}

	var suggestions []ReplenishmentSuggestion
	if err := s.generator.GenerateInto(ctx, prompt, schema, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

func (s *insightService) DetectAnomalies(ctx context.Context, ownerID uuid.UUID) ([]Anomaly, error) {
	snapshot, err := s.dashboard.GetSnapshot(ownerID)
	if err != nil {
		return nil, err
	}

	movements := make([]saleMovement, 0, len(snapshot.Sales)+len(snapshot.Purchases))
	for _, sale := range snapshot.Sales {
		movements = append(movements, saleMovement{
			Type:      "sale",
			ProductID: sale.ProductID.String(),
			Quantity:  sale.Quantity,
			Date:      sale.SaleDate.Format(dateLayout),
		})
	}
	for _, purchase := range snapshot.Purchases {
		movements = append(movements, saleMovement{
			Type:      "purchase",
			ProductID: purchase.ProductID.String(),
			Quantity:  purchase.Quantity,
			Date:      purchase.PurchaseDate.Format(dateLayout),
		})
	}

	encoded, _ := json.Marshal(movements)
	prompt := fmt.Sprintf("Analyze the following stock movements: %s. Identify any anomalies (unusual spikes, unexpected drops, etc.) and explain what they may indicate. Respond as a JSON array like: [{\"type\": \"anomaly\", \"description\": \"...\", \"productId\": \"id\", \"date\": \"YYYY-MM-DD\"}].", encoded)

	schema := &gemini.Schema{
		Type: "ARRAY",
		Items: &gemini.Schema{
			Type: "OBJECT",
			Properties: map[string]*gemini.Schema{
				"type":        {Type: "STRING"},
				"description": {Type: "STRING"},
				"productId":   {Type: "STRING"},
				"date":        {Type: "STRING"},
			},
			PropertyOrdering: []string{"type", "description", "productId", "date"},
		},
	}

	var anomalies []Anomaly
	if err := s.generator.GenerateInto(ctx, prompt, schema, &anomalies); err != nil {
		return nil, err
	}
	return anomalies, nil
}

func (s *insightService) AnalyzePerformance(ctx context.Context, ownerID uuid.UUID) ([]PerformanceNote, error) {
	snapshot, err := s.dashboard.GetSnapshot(ownerID)
	if err != nil {
		return nil, err
	}

	performances := make([]productPerformance, 0, len(snapshot.Products))
	for _, p := range snapshot.Products {
		performances = append(performances, productPerformance{
			ProductID: p.ID.String(),
			Name:      p.Name,
			TotalSold: snapshot.ProductSalesSummary(p.ID),
			Stock:     p.Stock,
		})
	}

	encoded, _ := json.Marshal(performances)
	prompt := fmt.Sprintf("Analyze the performance of the following products based on sales: %s. Identify best and worst sellers and suggest actions to improve performance. Respond as a JSON array like: [{\"productId\": \"id\", \"performance\": \"good/average/poor\", \"recommendation\": \"...\"}].", encoded)

	schema := &gemini.Schema{
		Type: "ARRAY",
		Items: &gemini.Schema{
			Type: "OBJECT",
			Properties: map[string]*gemini.Schema{
				"productId":      {Type: "STRING"},
				"performance":    {Type: "STRING"},
				"recommendation": {Type: "STRING"},
			},
			PropertyOrdering: []string{"productId", "performance", "recommendation"},
		},
	}

	var notes []PerformanceNote
	if err := s.generator.GenerateInto(ctx, prompt, schema, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}
