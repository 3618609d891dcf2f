package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"go-icarstok-ws/pkg/gemini"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidateBody(text string) string {
	body := map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{"parts": []map[string]string{{"text": text}}}},
		},
	}
	encoded, _ := json.Marshal(body)
	return string(encoded)
}

func TestGenerateReturnsCandidateText(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(candidateBody("hello")))
	}))
	defer server.Close()

	client := gemini.NewClient("test-key").WithBaseURL(server.URL)
	text, err := client.Generate(context.Background(), "say hello", nil)
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
	assert.Equal(t, "/models/gemini-2.0-flash:generateContent", gotPath)
	// No schema given, no generationConfig sent
	assert.NotContains(t, gotBody, "generationConfig")
}

func TestGenerateSendsResponseSchema(t *testing.T) {
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(candidateBody(`[{"productId":"p1"}]`)))
	}))
	defer server.Close()

	schema := &gemini.Schema{
		Type: "ARRAY",
		Items: &gemini.Schema{
			Type:       "OBJECT",
			Properties: map[string]*gemini.Schema{"productId": {Type: "STRING"}},
		},
	}

	client := gemini.NewClient("test-key").WithBaseURL(server.URL)
	_, err := client.Generate(context.Background(), "forecast", schema)
	require.NoError(t, err)

	config, ok := gotBody["generationConfig"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "application/json", config["responseMimeType"])
	responseSchema, ok := config["responseSchema"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ARRAY", responseSchema["type"])
}

func TestGenerateMissingAPIKey(t *testing.T) {
	client := gemini.NewClient("")
	_, err := client.Generate(context.Background(), "anything", nil)
	assert.ErrorIs(t, err, gemini.ErrMissingAPIKey)
}

func TestGenerateEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	client := gemini.NewClient("test-key").WithBaseURL(server.URL)
	_, err := client.Generate(context.Background(), "anything", nil)
	assert.ErrorIs(t, err, gemini.ErrEmptyResponse)
}

func TestGenerateRetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(candidateBody("recovered")))
	}))
	defer server.Close()

	client := gemini.NewClient("test-key").WithBaseURL(server.URL)
	text, err := client.Generate(context.Background(), "anything", nil)
	require.NoError(t, err)
	assert.Equal(t, "recovered", text)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGenerateDoesNotRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := gemini.NewClient("test-key").WithBaseURL(server.URL)
	_, err := client.Generate(context.Background(), "anything", nil)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGenerateIntoMalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateBody("this is not json")))
	}))
	defer server.Close()

	client := gemini.NewClient("test-key").WithBaseURL(server.URL)
	var out []map[string]interface{}
	err := client.GenerateInto(context.Background(), "anything", &gemini.Schema{Type: "ARRAY"}, &out)
	assert.ErrorIs(t, err, gemini.ErrMalformedResponse)
}

func TestGenerateIntoParsesStructuredResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateBody(`[{"productId":"p1","month":"2024-02","predictedQuantity":42}]`)))
	}))
	defer server.Close()

	client := gemini.NewClient("test-key").WithBaseURL(server.URL)
	var out []struct {
		ProductID         string  `json:"productId"`
		Month             string  `json:"month"`
		PredictedQuantity float64 `json:"predictedQuantity"`
	}
	require.NoError(t, client.GenerateInto(context.Background(), "forecast", &gemini.Schema{Type: "ARRAY"}, &out))
	require.Len(t, out, 1)
	assert.Equal(t, "p1", out[0].ProductID)
	assert.Equal(t, float64(42), out[0].PredictedQuantity)
}
