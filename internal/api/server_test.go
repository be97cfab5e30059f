package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pickcard/rewards-backend/internal/api/dto"
	"github.com/pickcard/rewards-backend/internal/api/middleware"
	"github.com/pickcard/rewards-backend/internal/catalog"
	"github.com/pickcard/rewards-backend/internal/infrastructure/config"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	cards := []catalog.Card{
		{
			ID:   "red-card",
			Name: "Red Card",
			Bank: "Red Bank",
			Rules: []catalog.RewardRule{
				{Description: "Base rebate", MatchType: catalog.MatchBase, Percentage: 2},
				{
					Description: "Dining 5%",
					MatchType:   catalog.MatchCategory,
					MatchValue:  []string{"dining"},
					Percentage:  5,
				},
			},
		},
		{
			ID:    "plain-card",
			Name:  "Plain Card",
			Bank:  "Plain Bank",
			Rules: []catalog.RewardRule{{Description: "Base rebate", MatchType: catalog.MatchBase, Percentage: 1}},
		},
	}
	merchants := []catalog.Merchant{
		{ID: "starbucks", Name: "Starbucks", CategoryIDs: []string{"dining"}},
	}
	categories := []catalog.Category{
		{ID: "dining", Name: "Dining"},
	}

	cfg := &config.Config{}
	cfg.Server.Port = 0
	cfg.Server.AllowedOrigins = []string{"http://localhost:3000"}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(cfg, catalog.New(cards, merchants, categories), logger)
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2, resp.Cards)
}

func TestCalculate_RanksCards(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/calculate", dto.CalculateRequest{
		Query:  "starbucks",
		Amount: 1000,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.CalculateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Merchant)
	assert.Equal(t, "starbucks", resp.Merchant.ID)

	require.Len(t, resp.Results, 2)
	assert.Equal(t, "red-card", resp.Results[0].CardID)
	assert.Equal(t, 50.0, resp.Results[0].RewardAmount)
	assert.Equal(t, "Dining 5%", resp.Results[0].RuleDescription)
	assert.Equal(t, "plain-card", resp.Results[1].CardID)
	assert.Equal(t, 10.0, resp.Results[1].RewardAmount)
}

func TestCalculate_NegativeAmount(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/calculate", dto.CalculateRequest{Amount: -5})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr dto.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, dto.ErrCodeInvalidInput, apiErr.Code)
}

func TestCalculate_MalformedBody(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/calculate", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRankings_KnownCategory(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/rankings/dining", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.RankingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "dining", resp.Category.ID)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "red-card", resp.Entries[0].CardID)
	assert.Equal(t, 5.0, resp.Entries[0].Percentage)
}

func TestRankings_UnknownCategory(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/rankings/lottery", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var apiErr dto.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, dto.ErrCodeNotFound, apiErr.Code)
}

func TestRankings_BadLimit(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/rankings/dining?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRankings_ListCategories(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/rankings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "best-dining-cards")
}

func TestCatalogEndpoints(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/cards", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "red-card")

	rec = doJSON(t, srv, http.MethodGet, "/api/cards/red-card", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/cards/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/merchants", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "starbucks")

	rec = doJSON(t, srv, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "dining")
}

func TestRequestIDEchoed(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "fixed-id")
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, "fixed-id", rec.Header().Get(middleware.RequestIDHeader))
}
