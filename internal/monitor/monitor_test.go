package monitor_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/precivox/engine-go/internal/config"
	"github.com/precivox/engine-go/internal/domain"
	"github.com/precivox/engine-go/internal/monitor"
	"github.com/precivox/engine-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.MonitorConfig {
	return config.MonitorConfig{
		IntervalMinutes:       30,
		LeadTimeDays:          5,
		DedupWindowHours:      24,
		AlertRetentionDays:    7,
		AnalysisRetentionDays: 30,
		LocationWorkers:       2,
	}
}

func seedStore() *memory.Store {
	store := memory.NewStore()
	store.AddOrganization(domain.Organization{ID: "org-1", Name: "Mercado Azul", Active: true})
	store.AddLocation(domain.Location{ID: "loc-1", OrganizationID: "org-1", Name: "Centro", Active: true})
	return store
}

func newTestMonitor(store *memory.Store) *monitor.Monitor {
	return monitor.New(store, store, store, store, store, nil, testConfig())
}

func TestRunCreatesCriticalAlert(t *testing.T) {
	store := seedStore()
	store.AddStockEntry(domain.StockEntry{
		InventoryPosition: domain.InventoryPosition{ProductID: "prod-1", LocationID: "loc-1", QuantityOnHand: 2},
		ProductName:       "Whole Milk 1L",
		Demand7d:          70, // 10/day, 0.2 days of coverage
	})

	report, err := newTestMonitor(store).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Organizations)
	assert.Equal(t, 1, report.Locations)
	assert.Equal(t, 1, report.PositionsScanned)
	assert.Equal(t, 1, report.AlertsCreated)
	assert.Zero(t, report.ItemFailures)

	alerts := store.Alerts()
	require.Len(t, alerts, 1)
	alert := alerts[0]
	assert.Equal(t, domain.AlertStockoutRisk, alert.Type)
	assert.Equal(t, domain.SeverityCritical, alert.Severity)
	assert.Equal(t, "prod-1", alert.ProductID)
	assert.Equal(t, "URGENT: Whole Milk 1L stock-out imminent", alert.Title)
	assert.Contains(t, alert.Description, "Only 2 units of Whole Milk 1L left at Centro")
	assert.Contains(t, alert.RecommendedAction, "70 units")
	assert.Equal(t, "/inventory/prod-1", alert.ActionLink)
	assert.False(t, alert.Read)
	require.NotNil(t, alert.ExpiresAt)
	assert.WithinDuration(t, alert.CreatedAt.Add(24*time.Hour), *alert.ExpiresAt, time.Second)
}

func TestRunExactlyOneDayOfCoverageNotFlagged(t *testing.T) {
	store := seedStore()
	store.AddStockEntry(domain.StockEntry{
		InventoryPosition: domain.InventoryPosition{ProductID: "prod-1", LocationID: "loc-1", QuantityOnHand: 10},
		ProductName:       "Rice 5kg",
		Demand7d:          70, // exactly 1.0 days
	})

	report, err := newTestMonitor(store).Run(context.Background())
	require.NoError(t, err)

	assert.Zero(t, report.AlertsCreated)
	assert.Empty(t, store.Alerts())
}

func TestRunReportsHoursOfCoverage(t *testing.T) {
	store := seedStore()
	store.AddStockEntry(domain.StockEntry{
		InventoryPosition: domain.InventoryPosition{ProductID: "prod-1", LocationID: "loc-1", QuantityOnHand: 5},
		ProductName:       "Coffee 500g",
		Demand7d:          42, // 6/day -> 0.833 days -> 20 hours
	})

	_, err := newTestMonitor(store).Run(context.Background())
	require.NoError(t, err)

	alerts := store.Alerts()
	require.Len(t, alerts, 1)
	assert.Contains(t, alerts[0].Description, "about 20.0 hours")

	var metadata struct {
		QuantityOnHand int     `json:"quantity_on_hand"`
		HoursRemaining float64 `json:"hours_remaining"`
	}
	require.NoError(t, json.Unmarshal(alerts[0].Metadata, &metadata))
	assert.Equal(t, 5, metadata.QuantityOnHand)
	assert.InDelta(t, 20.0, metadata.HoursRemaining, 1e-9)
}

func TestRunZeroQuantityNotFlagged(t *testing.T) {
	store := seedStore()
	store.AddStockEntry(domain.StockEntry{
		InventoryPosition: domain.InventoryPosition{ProductID: "prod-1", LocationID: "loc-1", QuantityOnHand: 0},
		ProductName:       "Beans 1kg",
		Demand7d:          70,
	})

	report, err := newTestMonitor(store).Run(context.Background())
	require.NoError(t, err)

	assert.Zero(t, report.AlertsCreated)
	assert.Empty(t, store.Alerts())
}

func TestRunSkipsPositionsWithoutForecast(t *testing.T) {
	store := seedStore()
	store.AddStockEntry(domain.StockEntry{
		InventoryPosition: domain.InventoryPosition{ProductID: "prod-1", LocationID: "loc-1", QuantityOnHand: 1},
		ProductName:       "New Product",
		Demand7d:          0,
	})

	report, err := newTestMonitor(store).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.SkippedNoForecast)
	assert.Zero(t, report.AlertsCreated)
}

func TestRunDeduplicatesAcrossRuns(t *testing.T) {
	store := seedStore()
	store.AddStockEntry(domain.StockEntry{
		InventoryPosition: domain.InventoryPosition{ProductID: "prod-1", LocationID: "loc-1", QuantityOnHand: 2},
		ProductName:       "Whole Milk 1L",
		Demand7d:          70,
	})

	mon := newTestMonitor(store)

	first, err := mon.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.AlertsCreated)

	second, err := mon.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, second.AlertsCreated)
	assert.Equal(t, 1, second.DuplicatesSuppressed)

	assert.Len(t, store.Alerts(), 1)
}

func TestRunFiresAgainAfterAcknowledgement(t *testing.T) {
	store := seedStore()
	store.AddStockEntry(domain.StockEntry{
		InventoryPosition: domain.InventoryPosition{ProductID: "prod-1", LocationID: "loc-1", QuantityOnHand: 2},
		ProductName:       "Whole Milk 1L",
		Demand7d:          70,
	})

	mon := newTestMonitor(store)

	_, err := mon.Run(context.Background())
	require.NoError(t, err)

	alerts := store.Alerts()
	require.Len(t, alerts, 1)
	require.NoError(t, store.MarkRead(context.Background(), alerts[0].ID, time.Now()))

	// The read alert no longer suppresses: the condition persists, so a
	// fresh alert fires
	second, err := mon.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, second.AlertsCreated)
}

func TestRunRetentionSweep(t *testing.T) {
	store := seedStore()

	oldRead := time.Now().AddDate(0, 0, -8)
	recentRead := time.Now().AddDate(0, 0, -6)
	store.AddAlert(domain.Alert{
		ID: "old", OrganizationID: "org-1", LocationID: "loc-1", ProductID: "p",
		Type: domain.AlertStockoutRisk, Severity: domain.SeverityCritical,
		Read: true, ReadAt: &oldRead, CreatedAt: oldRead,
	})
	store.AddAlert(domain.Alert{
		ID: "recent", OrganizationID: "org-1", LocationID: "loc-1", ProductID: "p",
		Type: domain.AlertStockoutRisk, Severity: domain.SeverityCritical,
		Read: true, ReadAt: &recentRead, CreatedAt: recentRead,
	})

	report, err := newTestMonitor(store).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), report.AlertsDeleted)
	alerts := store.Alerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, "recent", alerts[0].ID)
}

func TestRunExpirySweep(t *testing.T) {
	store := seedStore()

	expired := time.Now().Add(-2 * time.Hour)
	store.AddAlert(domain.Alert{
		ID: "expired", OrganizationID: "org-1", LocationID: "loc-1", ProductID: "p",
		Type: domain.AlertStockoutRisk, Severity: domain.SeverityCritical,
		ExpiresAt: &expired, CreatedAt: time.Now().Add(-26 * time.Hour),
	})

	report, err := newTestMonitor(store).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), report.AlertsExpired)
	alerts := store.Alerts()
	require.Len(t, alerts, 1)
	assert.True(t, alerts[0].Read)
	require.NotNil(t, alerts[0].ReadAt)
}

func TestRunAnalysisCleanup(t *testing.T) {
	store := seedStore()

	pastExpiry := time.Now().Add(-time.Hour)
	store.AddAnalysis(domain.Analysis{
		ID: "expired", OrganizationID: "org-1", Status: domain.AnalysisPending,
		CreatedAt: time.Now().AddDate(0, 0, -1), ExpiresAt: &pastExpiry,
	})
	store.AddAnalysis(domain.Analysis{
		ID: "old-rejected", OrganizationID: "org-1", Status: domain.AnalysisRejected,
		CreatedAt: time.Now().AddDate(0, 0, -31),
	})
	store.AddAnalysis(domain.Analysis{
		ID: "old-pending", OrganizationID: "org-1", Status: domain.AnalysisPending,
		CreatedAt: time.Now().AddDate(0, 0, -31),
	})
	store.AddAnalysis(domain.Analysis{
		ID: "fresh-executed", OrganizationID: "org-1", Status: domain.AnalysisExecuted,
		CreatedAt: time.Now().AddDate(0, 0, -2),
	})

	report, err := newTestMonitor(store).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), report.AnalysesDeleted)
}

type failingOrgs struct {
	*memory.Store
}

func (f *failingOrgs) ListActive(ctx context.Context) ([]domain.Organization, error) {
	return nil, errors.New("database unreachable")
}

func TestRunOrganizationEnumerationIsFatal(t *testing.T) {
	store := seedStore()
	mon := monitor.New(&failingOrgs{store}, store, store, store, store, nil, testConfig())

	report, err := mon.Run(context.Background())
	assert.Error(t, err)
	assert.Nil(t, report)
}

type failingInventory struct {
	*memory.Store
	failLocation string
}

func (f *failingInventory) ListAvailableByLocation(ctx context.Context, locationID string) ([]domain.StockEntry, error) {
	if locationID == f.failLocation {
		return nil, errors.New("query timeout")
	}
	return f.Store.ListAvailableByLocation(ctx, locationID)
}

func TestRunLocationFailureDoesNotAbortBatch(t *testing.T) {
	store := seedStore()
	store.AddLocation(domain.Location{ID: "loc-2", OrganizationID: "org-1", Name: "Norte", Active: true})
	store.AddStockEntry(domain.StockEntry{
		InventoryPosition: domain.InventoryPosition{ProductID: "prod-1", LocationID: "loc-2", QuantityOnHand: 2},
		ProductName:       "Whole Milk 1L",
		Demand7d:          70,
	})

	inv := &failingInventory{Store: store, failLocation: "loc-1"}
	mon := monitor.New(store, store, inv, store, store, nil, testConfig())

	report, err := mon.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.ItemFailures)
	assert.Equal(t, 1, report.AlertsCreated, "healthy location must still be scanned")
}
