// internal/service/forecast_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/precivox/engine-go/internal/config"
	"github.com/precivox/engine-go/internal/domain"
	"github.com/precivox/engine-go/internal/forecast"
	"github.com/precivox/engine-go/internal/repository"
	"github.com/rs/zerolog/log"
)

const (
	shortHorizonDays = 7
	longHorizonDays  = 30
)

// RefreshReport summarizes one planning cycle over an organization.
type RefreshReport struct {
	OrganizationID      string        `json:"organization_id"`
	Entries             int           `json:"entries"`
	Updated             int           `json:"updated"`
	SkippedInsufficient int           `json:"skipped_insufficient"`
	Failures            int           `json:"failures"`
	Duration            time.Duration `json:"duration"`
}

// ForecastService runs the planning cycle: for every stock entry of an
// organization it projects demand, derives the reorder policy, and writes the
// results back to the product record.
type ForecastService struct {
	inventory repository.InventoryRepository
	sales     repository.SalesHistoryRepository
	products  repository.ProductRepository
	cfg       config.MonitorConfig
	now       func() time.Time
}

func NewForecastService(
	inventory repository.InventoryRepository,
	sales repository.SalesHistoryRepository,
	products repository.ProductRepository,
	cfg config.MonitorConfig,
) *ForecastService {
	return &ForecastService{
		inventory: inventory,
		sales:     sales,
		products:  products,
		cfg:       cfg,
		now:       time.Now,
	}
}

// RefreshOrganization recomputes forecast fields for every available stock
// entry of the organization. Per-entry failures are logged and counted; only
// the initial inventory listing is fatal.
func (s *ForecastService) RefreshOrganization(ctx context.Context, organizationID string) (*RefreshReport, error) {
	started := s.now()

	entries, err := s.inventory.ListAvailableByOrganization(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock entries: %w", err)
	}

	report := &RefreshReport{
		OrganizationID: organizationID,
		Entries:        len(entries),
	}

	for _, entry := range entries {
		if err := s.refreshEntry(ctx, entry, report); err != nil {
			log.Warn().Err(err).
				Str("product_id", entry.ProductID).
				Str("location_id", entry.LocationID).
				Msg("failed to refresh forecast")
			report.Failures++
		}
	}

	report.Duration = s.now().Sub(started)
	log.Info().
		Str("organization_id", organizationID).
		Int("entries", report.Entries).
		Int("updated", report.Updated).
		Int("skipped_insufficient", report.SkippedInsufficient).
		Int("failures", report.Failures).
		Dur("duration", report.Duration).
		Msg("planning cycle completed")

	return report, nil
}

func (s *ForecastService) refreshEntry(ctx context.Context, entry domain.StockEntry, report *RefreshReport) error {
	history, err := s.sales.Fetch(ctx, entry.ProductID, entry.LocationID)
	if err != nil {
		return fmt.Errorf("failed to fetch sales history: %w", err)
	}

	short := forecast.Project(history, shortHorizonDays)
	if short.Method == domain.MethodInsufficientData {
		report.SkippedInsufficient++
		return nil
	}
	long := forecast.Project(history, longHorizonDays)

	turnover := turnoverRate(long.HorizonTotal, entry.QuantityOnHand)

	fields := domain.ForecastFields{
		Demand7d:     short.HorizonTotal,
		Demand30d:    long.HorizonTotal,
		ReorderPoint: forecast.ReorderPoint(short.DailyRate, s.cfg.LeadTimeDays),
		TurnoverRate: turnover,
		ABCClass:     forecast.ClassifyABC(turnover),
		LastAIUpdate: s.now(),
	}

	if err := s.products.UpdateForecastFields(ctx, entry.ProductID, fields); err != nil {
		return fmt.Errorf("failed to update forecast fields: %w", err)
	}

	report.Updated++
	return nil
}

// turnoverRate is monthly demand over current stock. Zero demand means zero
// turnover; zero stock falls back to a divisor of one so fast sellers at
// empty positions still classify high.
func turnoverRate(monthlyDemand, quantityOnHand int) float64 {
	if monthlyDemand <= 0 {
		return 0
	}
	divisor := quantityOnHand
	if divisor < 1 {
		divisor = 1
	}
	return float64(monthlyDemand) / float64(divisor)
}
