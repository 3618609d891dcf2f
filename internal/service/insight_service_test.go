package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-icarstok-ws/internal/model"
	"go-icarstok-ws/internal/service"
	"go-icarstok-ws/pkg/gemini"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// snapshotStub serves a fixed snapshot, standing in for the repositories.
type snapshotStub struct {
	snapshot *model.Snapshot
}

func (s *snapshotStub) GetSnapshot(uuid.UUID) (*model.Snapshot, error) {
	return s.snapshot, nil
}

func (s *snapshotStub) GetDashboardStats(uuid.UUID) (*service.DashboardStats, error) {
	return nil, nil
}

func (s *snapshotStub) GetStockMovement(uuid.UUID, int) ([]service.StockMovementData, error) {
	return nil, nil
}

func (s *snapshotStub) GetProductSalesSummary(_, productID uuid.UUID) (int, error) {
	return s.snapshot.ProductSalesSummary(productID), nil
}

func insightFixture(t *testing.T, responseText string) (service.InsightService, *[]map[string]interface{}) {
	t.Helper()

	productID := uuid.New()
	saleDate, _ := time.Parse("2006-01-02", "2024-01-05")
	snapshot := &model.Snapshot{
		Products: []model.Product{{
			OwnedModel: model.OwnedModel{BaseModel: model.BaseModel{ID: productID}},
			SKU:        "SKU-1",
			Name:       "Widget",
			Stock:      10,
			MinStock:   3,
		}},
		Sales: []model.Sale{{
			ProductID: productID,
			Quantity:  4,
			SaleDate:  saleDate,
		}},
	}

	var requests []map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		requests = append(requests, body)

		response := map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{"parts": []map[string]string{{"text": responseText}}}},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(response))
	}))
	t.Cleanup(server.Close)

	client := gemini.NewClient("test-key").WithBaseURL(server.URL)
	return service.NewInsightService(&snapshotStub{snapshot: snapshot}, client), &requests
}

func promptText(t *testing.T, request map[string]interface{}) string {
	t.Helper()

	contents := request["contents"].([]interface{})
	parts := contents[0].(map[string]interface{})["parts"].([]interface{})
	return parts[0].(map[string]interface{})["text"].(string)
}

func TestPredictDemandProjectsSalesIntoPrompt(t *testing.T) {
	svc, requests := insightFixture(t, `[{"productId":"p1","month":"2024-02","predictedQuantity":12}]`)

	forecasts, err := svc.PredictDemand(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, forecasts, 1)
	assert.Equal(t, "p1", forecasts[0].ProductID)
	assert.Equal(t, "2024-02", forecasts[0].Month)
	assert.Equal(t, float64(12), forecasts[0].PredictedQuantity)

	require.Len(t, *requests, 1)
	prompt := promptText(t, (*requests)[0])
	// The prompt carries the {productId, quantity, date} projection
	assert.Contains(t, prompt, `"quantity":4`)
	assert.Contains(t, prompt, `"date":"2024-01-05"`)

	// Structured output was requested against a schema
	config := (*requests)[0]["generationConfig"].(map[string]interface{})
	assert.Equal(t, "application/json", config["responseMimeType"])
}

func TestSuggestReplenishmentParsesResult(t *testing.T) {
	svc, requests := insightFixture(t, `[{"productId":"p1","quantityToOrder":50,"supplierId":"s1"}]`)

	suggestions, err := svc.SuggestReplenishment(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, float64(50), suggestions[0].QuantityToOrder)
	assert.Equal(t, "s1", suggestions[0].SupplierID)

	prompt := promptText(t, (*requests)[0])
	assert.Contains(t, prompt, `"currentStock":10`)
	assert.Contains(t, prompt, `"minStock":3`)
}

func TestDetectAnomaliesParsesResult(t *testing.T) {
	svc, requests := insightFixture(t, `[{"type":"anomaly","description":"unusual spike","productId":"p1","date":"2024-01-05"}]`)

	anomalies, err := svc.DetectAnomalies(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, anomalies, 1)
	assert.Equal(t, "unusual spike", anomalies[0].Description)

	prompt := promptText(t, (*requests)[0])
	assert.Contains(t, prompt, `"type":"sale"`)
}

func TestAnalyzePerformanceIncludesTotalsSold(t *testing.T) {
	svc, requests := insightFixture(t, `[{"productId":"p1","performance":"good","recommendation":"keep stocking"}]`)

	notes, err := svc.AnalyzePerformance(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "good", notes[0].Performance)

	prompt := promptText(t, (*requests)[0])
	assert.Contains(t, prompt, `"totalSold":4`)
	assert.Contains(t, prompt, `"name":"Widget"`)
}

func TestInsightSurfacesMalformedOutput(t *testing.T) {
	svc, _ := insightFixture(t, "sorry, no JSON today")

	_, err := svc.PredictDemand(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gemini.ErrMalformedResponse)
}
