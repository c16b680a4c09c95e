// internal/service/alert_service.go
package service

import (
	"context"
	"time"

	"github.com/precivox/engine-go/internal/cache"
	"github.com/precivox/engine-go/internal/domain"
	"github.com/precivox/engine-go/internal/repository"
	"github.com/rs/zerolog/log"
)

// AlertService is the read/acknowledge surface over stored alerts, with the
// severity summary cached per organization.
type AlertService struct {
	alerts repository.AlertRepository
	cache  cache.AlertSummaryCache
}

func NewAlertService(alerts repository.AlertRepository, summaryCache cache.AlertSummaryCache) *AlertService {
	if summaryCache == nil {
		summaryCache = cache.NewNoopAlertSummaryCache()
	}
	return &AlertService{
		alerts: alerts,
		cache:  summaryCache,
	}
}

func (s *AlertService) List(ctx context.Context, filter domain.AlertFilter) ([]domain.Alert, int, error) {
	return s.alerts.List(ctx, filter)
}

// MarkRead acknowledges one alert and invalidates the organization's cached
// summary. Cache errors are logged, never surfaced.
func (s *AlertService) MarkRead(ctx context.Context, organizationID, alertID string) error {
	if err := s.alerts.MarkRead(ctx, alertID, time.Now()); err != nil {
		return err
	}

	if err := s.cache.InvalidateOrganization(ctx, organizationID); err != nil {
		log.Warn().Err(err).Str("organization_id", organizationID).Msg("failed to invalidate alert summary cache")
	}

	return nil
}

// Summary returns the unread alert counts by severity, served from cache when
// warm.
func (s *AlertService) Summary(ctx context.Context, organizationID string) ([]domain.AlertSummary, error) {
	if cached, ok, err := s.cache.GetSummary(ctx, organizationID); err != nil {
		log.Warn().Err(err).Str("organization_id", organizationID).Msg("alert summary cache read failed")
	} else if ok {
		return cached, nil
	}

	summary, err := s.alerts.CountUnreadBySeverity(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetSummary(ctx, organizationID, summary); err != nil {
		log.Warn().Err(err).Str("organization_id", organizationID).Msg("alert summary cache write failed")
	}

	return summary, nil
}
