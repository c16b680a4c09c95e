package service

import (
	"context"
	"testing"
	"time"

	"github.com/precivox/engine-go/internal/config"
	"github.com/precivox/engine-go/internal/domain"
	"github.com/precivox/engine-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planningConfig() config.MonitorConfig {
	return config.MonitorConfig{LeadTimeDays: 5}
}

func seedPlanningStore(qty int) *memory.Store {
	store := memory.NewStore()
	store.AddOrganization(domain.Organization{ID: "org-1", Name: "Mercado Azul", Active: true})
	store.AddLocation(domain.Location{ID: "loc-1", OrganizationID: "org-1", Name: "Centro", Active: true})
	store.AddStockEntry(domain.StockEntry{
		InventoryPosition: domain.InventoryPosition{ProductID: "prod-1", LocationID: "loc-1", QuantityOnHand: qty},
		ProductName:       "Rice 5kg",
	})
	return store
}

func addConstantSales(store *memory.Store, perDay, days int) {
	today := time.Now().Truncate(24 * time.Hour)
	obs := make([]domain.SalesObservation, 0, days)
	for i := days; i > 0; i-- {
		obs = append(obs, domain.SalesObservation{
			Date:     today.AddDate(0, 0, -i),
			Quantity: perDay,
		})
	}
	store.AddSales("prod-1", "loc-1", obs)
}

func TestRefreshOrganizationUpdatesForecastFields(t *testing.T) {
	store := seedPlanningStore(100)
	addConstantSales(store, 10, 30)

	svc := NewForecastService(store, store, store, planningConfig())
	report, err := svc.RefreshOrganization(context.Background(), "org-1")
	require.NoError(t, err)

	assert.Equal(t, 1, report.Entries)
	assert.Equal(t, 1, report.Updated)
	assert.Zero(t, report.Failures)

	entries, err := store.ListAvailableByLocation(context.Background(), "loc-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, 70, entry.Demand7d)
	assert.Equal(t, 300, entry.Demand30d)
	// 10/day over a 5-day lead time plus 30% of weekly demand
	assert.Equal(t, 71, entry.ReorderPoint)
	// 300 units/month over 100 on hand
	assert.InDelta(t, 3.0, entry.TurnoverRate, 1e-9)
}

func TestRefreshOrganizationSkipsThinHistory(t *testing.T) {
	store := seedPlanningStore(100)
	addConstantSales(store, 10, 5)

	svc := NewForecastService(store, store, store, planningConfig())
	report, err := svc.RefreshOrganization(context.Background(), "org-1")
	require.NoError(t, err)

	assert.Equal(t, 1, report.SkippedInsufficient)
	assert.Zero(t, report.Updated)

	entries, err := store.ListAvailableByLocation(context.Background(), "loc-1")
	require.NoError(t, err)
	assert.Zero(t, entries[0].Demand7d, "fields must stay untouched")
}

func TestTurnoverRate(t *testing.T) {
	assert.InDelta(t, 3.0, turnoverRate(300, 100), 1e-9)
	assert.Zero(t, turnoverRate(0, 100))
	assert.Zero(t, turnoverRate(-5, 100))
	// Empty position falls back to a divisor of one
	assert.InDelta(t, 300.0, turnoverRate(300, 0), 1e-9)
}

func TestRefreshEmptyOrganization(t *testing.T) {
	store := memory.NewStore()
	store.AddOrganization(domain.Organization{ID: "org-1", Active: true})

	svc := NewForecastService(store, store, store, planningConfig())
	report, err := svc.RefreshOrganization(context.Background(), "org-1")
	require.NoError(t, err)

	assert.Zero(t, report.Entries)
	assert.Zero(t, report.Updated)
}
