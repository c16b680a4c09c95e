package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/precivox/engine-go/internal/api"
	"github.com/precivox/engine-go/internal/config"
	"github.com/precivox/engine-go/internal/domain"
	"github.com/precivox/engine-go/internal/repository/memory"
	"github.com/precivox/engine-go/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(store *memory.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return api.NewRouter(&api.Services{
		AlertService: service.NewAlertService(store, nil),
		DealService:  service.NewDealService(config.DealConfig{AverageSpeedKmh: 30, CostPerKm: 0.5}),
	}, nil)
}

func seedAlert(store *memory.Store, id string, severity domain.AlertSeverity, read bool) {
	alert := domain.Alert{
		ID:             id,
		OrganizationID: "org-1",
		LocationID:     "loc-1",
		ProductID:      "prod-1",
		Type:           domain.AlertStockoutRisk,
		Severity:       severity,
		Title:          "URGENT: Milk stock-out imminent",
		Read:           read,
		CreatedAt:      time.Now(),
	}
	if read {
		at := time.Now()
		alert.ReadAt = &at
	}
	store.AddAlert(alert)
}

func TestGetAlertsRequiresOrganization(t *testing.T) {
	router := newTestRouter(memory.NewStore())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAlerts(t *testing.T) {
	store := memory.NewStore()
	seedAlert(store, "a-1", domain.SeverityCritical, false)
	seedAlert(store, "a-2", domain.SeverityHigh, true)
	router := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts?organization_id=org-1&unread_only=true", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Alerts []domain.Alert `json:"alerts"`
		Total  int            `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Alerts, 1)
	assert.Equal(t, 1, body.Total)
	assert.Equal(t, "a-1", body.Alerts[0].ID)
}

func TestMarkAlertRead(t *testing.T) {
	store := memory.NewStore()
	seedAlert(store, "a-1", domain.SeverityCritical, false)
	router := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts/a-1/read?organization_id=org-1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	alerts := store.Alerts()
	require.Len(t, alerts, 1)
	assert.True(t, alerts[0].Read)
}

func TestMarkAlertReadNotFound(t *testing.T) {
	router := newTestRouter(memory.NewStore())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/alerts/missing/read?organization_id=org-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAlertSummary(t *testing.T) {
	store := memory.NewStore()
	seedAlert(store, "a-1", domain.SeverityCritical, false)
	seedAlert(store, "a-2", domain.SeverityCritical, false)
	seedAlert(store, "a-3", domain.SeverityHigh, false)
	seedAlert(store, "a-4", domain.SeverityHigh, true)
	router := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts/summary?organization_id=org-1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Summary []domain.AlertSummary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	counts := make(map[domain.AlertSeverity]int)
	for _, s := range body.Summary {
		counts[s.Severity] = s.Count
	}
	assert.Equal(t, 2, counts[domain.SeverityCritical])
	assert.Equal(t, 1, counts[domain.SeverityHigh])
}

func TestScoreDeal(t *testing.T) {
	router := newTestRouter(memory.NewStore())

	payload := `{
		"origin": {"latitude": 0, "longitude": 0},
		"destination": {"latitude": 0, "longitude": 0.018},
		"price": 25,
		"savings": 5
	}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/deals/score", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var quote domain.DealQuote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quote))
	assert.Equal(t, 2.0, quote.DistanceKm)
	assert.Equal(t, 83, quote.Score)
	assert.Equal(t, domain.DealExcellent, quote.Category)
	assert.NotEmpty(t, quote.Rationale)
}

func TestScoreDealRejectsInvalidBody(t *testing.T) {
	router := newTestRouter(memory.NewStore())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/deals/score", strings.NewReader(`{"price": -1}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(memory.NewStore())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
