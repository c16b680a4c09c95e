// Package monitor implements the periodic stock scan: it walks every active
// organization and location, compares on-hand quantities against forecast
// demand, raises deduplicated alerts, and garbage-collects stale alert and
// analysis records.
package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/precivox/engine-go/internal/cache"
	"github.com/precivox/engine-go/internal/config"
	"github.com/precivox/engine-go/internal/domain"
	"github.com/precivox/engine-go/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	// hoursPerDay converts coverage days to the hour figure shown in alerts.
	hoursPerDay = 24

	// criticalCoverageDays is the coverage threshold below which a stockout
	// alert fires. Exactly one day of coverage is not flagged.
	criticalCoverageDays = 1.0

	// alertLifetime bounds how long a stockout alert stays actionable before
	// the expiry sweep auto-acknowledges it.
	alertLifetime = 24 * time.Hour
)

type Monitor struct {
	orgs      repository.OrganizationRepository
	locations repository.LocationRepository
	inventory repository.InventoryRepository
	alerts    repository.AlertRepository
	analyses  repository.AnalysisRepository
	cache     cache.AlertSummaryCache
	cfg       config.MonitorConfig

	// now is swappable for tests
	now func() time.Time

	// runMu serializes runs; Loop skips a tick while a run is in flight
	runMu sync.Mutex
}

func New(
	orgs repository.OrganizationRepository,
	locations repository.LocationRepository,
	inventory repository.InventoryRepository,
	alerts repository.AlertRepository,
	analyses repository.AnalysisRepository,
	summaryCache cache.AlertSummaryCache,
	cfg config.MonitorConfig,
) *Monitor {
	if summaryCache == nil {
		summaryCache = cache.NewNoopAlertSummaryCache()
	}
	return &Monitor{
		orgs:      orgs,
		locations: locations,
		inventory: inventory,
		alerts:    alerts,
		analyses:  analyses,
		cache:     summaryCache,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Run executes one full monitoring cycle. Only the organization enumeration
// is fatal; every narrower failure is logged, counted, and skipped so one bad
// record never aborts the batch.
func (m *Monitor) Run(ctx context.Context) (*RunReport, error) {
	m.runMu.Lock()
	defer m.runMu.Unlock()

	report := newRunReport(m.now())

	orgs, err := m.orgs.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate organizations: %w", err)
	}
	report.Organizations = len(orgs)

	for _, org := range orgs {
		if err := m.scanOrganization(ctx, org, report); err != nil {
			return nil, err
		}
	}

	m.cleanup(ctx, report)

	if err := m.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate alert summary cache")
	}

	report.finish(m.now())
	log.Info().
		Int("organizations", report.Organizations).
		Int("locations", report.Locations).
		Int("positions_scanned", report.PositionsScanned).
		Int("alerts_created", report.AlertsCreated).
		Int("duplicates_suppressed", report.DuplicatesSuppressed).
		Int("item_failures", report.ItemFailures).
		Dur("duration", report.Duration).
		Msg("monitor run completed")

	return report, nil
}

// scanOrganization scans all active locations of one organization, bounded by
// the configured worker count. Location failures are counted, not propagated;
// the errgroup only surfaces context cancellation.
func (m *Monitor) scanOrganization(ctx context.Context, org domain.Organization, report *RunReport) error {
	locations, err := m.locations.ListActiveByOrganization(ctx, org.ID)
	if err != nil {
		log.Warn().Err(err).Str("organization_id", org.ID).Msg("failed to list locations, skipping organization")
		report.addItemFailures(1)
		return nil
	}
	report.addLocations(len(locations))

	workers := m.cfg.LocationWorkers
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, loc := range locations {
		loc := loc
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			m.scanLocation(gctx, org, loc, report)
			return nil
		})
	}

	return g.Wait()
}

func (m *Monitor) scanLocation(ctx context.Context, org domain.Organization, loc domain.Location, report *RunReport) {
	entries, err := m.inventory.ListAvailableByLocation(ctx, loc.ID)
	if err != nil {
		log.Warn().Err(err).Str("location_id", loc.ID).Msg("failed to list stock entries, skipping location")
		report.addItemFailures(1)
		return
	}

	for _, entry := range entries {
		report.addPositionsScanned(1)
		m.evaluatePosition(ctx, org, loc, entry, report)
	}
}

// evaluatePosition applies the coverage rule to one stock entry and raises a
// deduplicated alert when coverage drops below one day.
func (m *Monitor) evaluatePosition(ctx context.Context, org domain.Organization, loc domain.Location, entry domain.StockEntry, report *RunReport) {
	if entry.Demand7d <= 0 {
		report.addSkippedNoForecast(1)
		return
	}

	dailyDemand := float64(entry.Demand7d) / 7
	daysRemaining := float64(entry.QuantityOnHand) / math.Max(dailyDemand, 1)

	if entry.QuantityOnHand <= 0 || daysRemaining >= criticalCoverageDays {
		return
	}

	now := m.now()
	since := now.Add(-m.cfg.DedupWindow())

	existing, err := m.alerts.FindRecentUnread(ctx, org.ID, loc.ID, entry.ProductID,
		domain.AlertStockoutRisk, domain.SeverityCritical, since)
	if err != nil {
		log.Warn().Err(err).
			Str("product_id", entry.ProductID).
			Str("location_id", loc.ID).
			Msg("failed to check for duplicate alert")
		report.addItemFailures(1)
		return
	}
	if existing != nil {
		report.addDuplicatesSuppressed(1)
		return
	}

	alert := m.buildStockoutAlert(org, loc, entry, dailyDemand, daysRemaining, now)
	if err := m.alerts.Create(ctx, alert); err != nil {
		log.Warn().Err(err).
			Str("product_id", entry.ProductID).
			Str("location_id", loc.ID).
			Msg("failed to create alert")
		report.addItemFailures(1)
		return
	}

	report.addAlertsCreated(1)
}

type stockoutMetadata struct {
	QuantityOnHand int     `json:"quantity_on_hand"`
	HoursRemaining float64 `json:"hours_remaining"`
}

func (m *Monitor) buildStockoutAlert(org domain.Organization, loc domain.Location, entry domain.StockEntry,
	dailyDemand, daysRemaining float64, now time.Time) *domain.Alert {

	hoursRemaining := math.Round(daysRemaining*hoursPerDay*10) / 10
	expiresAt := now.Add(alertLifetime)

	metadata, err := json.Marshal(stockoutMetadata{
		QuantityOnHand: entry.QuantityOnHand,
		HoursRemaining: hoursRemaining,
	})
	if err != nil {
		// marshal of a flat struct cannot fail; keep the alert anyway
		metadata = nil
	}

	return &domain.Alert{
		OrganizationID: org.ID,
		LocationID:     loc.ID,
		ProductID:      entry.ProductID,
		Type:           domain.AlertStockoutRisk,
		Severity:       domain.SeverityCritical,
		Title:          fmt.Sprintf("URGENT: %s stock-out imminent", entry.ProductName),
		Description: fmt.Sprintf("Only %d units of %s left at %s, about %.1f hours of coverage at the current sales rate.",
			entry.QuantityOnHand, entry.ProductName, loc.Name, hoursRemaining),
		RecommendedAction: fmt.Sprintf("Reorder at least %d units now to cover the next week of demand.", entry.Demand7d),
		ActionLink:        fmt.Sprintf("/inventory/%s", entry.ProductID),
		Metadata:          metadata,
		ExpiresAt:         &expiresAt,
		CreatedAt:         now,
	}
}

// cleanup runs the three retention sweeps in order: delete old read alerts,
// auto-acknowledge expired ones, then drop stale analyses. Each sweep failure
// is logged and the next sweep still runs.
func (m *Monitor) cleanup(ctx context.Context, report *RunReport) {
	now := m.now()

	deleted, err := m.alerts.DeleteReadBefore(ctx, now.AddDate(0, 0, -m.cfg.AlertRetentionDays))
	if err != nil {
		log.Warn().Err(err).Msg("alert retention sweep failed")
	} else {
		report.AlertsDeleted = deleted
	}

	expired, err := m.alerts.MarkExpiredRead(ctx, now)
	if err != nil {
		log.Warn().Err(err).Msg("alert expiry sweep failed")
	} else {
		report.AlertsExpired = expired
	}

	stale, err := m.analyses.DeleteStale(ctx, now, now.AddDate(0, 0, -m.cfg.AnalysisRetentionDays))
	if err != nil {
		log.Warn().Err(err).Msg("analysis cleanup sweep failed")
	} else {
		report.AnalysesDeleted = stale
	}
}
