// Package memory provides an in-memory implementation of the repository
// interfaces. It backs the demo seeder and the engine tests; production
// deployments use the postgres package.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/precivox/engine-go/internal/domain"
	"github.com/precivox/engine-go/internal/repository"
)

// Store holds all engine data in memory behind one mutex. A single Store
// satisfies every repository interface so callers can wire it everywhere.
type Store struct {
	mu sync.Mutex

	orgs      []domain.Organization
	locations []domain.Location
	entries   []domain.StockEntry
	sales     map[string][]domain.SalesObservation
	alerts    []domain.Alert
	analyses  []domain.Analysis

	nextAlertID int
}

func NewStore() *Store {
	return &Store{
		sales: make(map[string][]domain.SalesObservation),
	}
}

// Verify interface compliance
var (
	_ repository.OrganizationRepository = (*Store)(nil)
	_ repository.LocationRepository     = (*Store)(nil)
	_ repository.InventoryRepository    = (*Store)(nil)
	_ repository.SalesHistoryRepository = (*Store)(nil)
	_ repository.ProductRepository      = (*Store)(nil)
	_ repository.AlertRepository        = (*Store)(nil)
	_ repository.AnalysisRepository     = (*Store)(nil)
)

func salesKey(productID, locationID string) string {
	return productID + "|" + locationID
}

// AddOrganization loads an organization into the store
func (s *Store) AddOrganization(org domain.Organization) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orgs = append(s.orgs, org)
}

// AddLocation loads a location into the store
func (s *Store) AddLocation(loc domain.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations = append(s.locations, loc)
}

// AddStockEntry loads a stock entry into the store
func (s *Store) AddStockEntry(entry domain.StockEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
}

// AddSales appends history samples for a product/location pair
func (s *Store) AddSales(productID, locationID string, obs []domain.SalesObservation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := salesKey(productID, locationID)
	s.sales[key] = append(s.sales[key], obs...)
}

// AddAlert loads an alert directly, bypassing ID assignment when the alert
// already carries one
func (s *Store) AddAlert(alert domain.Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if alert.ID == "" {
		s.nextAlertID++
		alert.ID = fmt.Sprintf("alert-%d", s.nextAlertID)
	}
	s.alerts = append(s.alerts, alert)
}

// AddAnalysis loads an analysis record into the store
func (s *Store) AddAnalysis(a domain.Analysis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyses = append(s.analyses, a)
}

// SetQuantity updates the on-hand quantity of one position
func (s *Store) SetQuantity(productID, locationID string, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].ProductID == productID && s.entries[i].LocationID == locationID {
			s.entries[i].QuantityOnHand = qty
			return
		}
	}
}

func (s *Store) ListActive(ctx context.Context) ([]domain.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var orgs []domain.Organization
	for _, org := range s.orgs {
		if org.Active {
			orgs = append(orgs, org)
		}
	}
	return orgs, nil
}

func (s *Store) ListActiveByOrganization(ctx context.Context, organizationID string) ([]domain.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var locations []domain.Location
	for _, loc := range s.locations {
		if loc.OrganizationID == organizationID && loc.Active {
			locations = append(locations, loc)
		}
	}
	return locations, nil
}

func (s *Store) ListAvailableByLocation(ctx context.Context, locationID string) ([]domain.StockEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []domain.StockEntry
	for _, e := range s.entries {
		if e.LocationID == locationID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (s *Store) ListAvailableByOrganization(ctx context.Context, organizationID string) ([]domain.StockEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	locs := make(map[string]bool)
	for _, loc := range s.locations {
		if loc.OrganizationID == organizationID && loc.Active {
			locs[loc.ID] = true
		}
	}

	var entries []domain.StockEntry
	for _, e := range s.entries {
		if locs[e.LocationID] {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (s *Store) Fetch(ctx context.Context, productID, locationID string) ([]domain.SalesObservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.sales[salesKey(productID, locationID)]
	out := make([]domain.SalesObservation, len(history))
	copy(out, history)
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *Store) UpdateForecastFields(ctx context.Context, productID string, fields domain.ForecastFields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := false
	for i := range s.entries {
		if s.entries[i].ProductID == productID {
			s.entries[i].Demand7d = fields.Demand7d
			s.entries[i].Demand30d = fields.Demand30d
			s.entries[i].ReorderPoint = fields.ReorderPoint
			s.entries[i].TurnoverRate = fields.TurnoverRate
			updated = true
		}
	}
	if !updated {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) Create(ctx context.Context, alert *domain.Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextAlertID++
	alert.ID = fmt.Sprintf("alert-%d", s.nextAlertID)
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = time.Now()
	}
	s.alerts = append(s.alerts, *alert)
	return nil
}

func (s *Store) FindRecentUnread(ctx context.Context, organizationID, locationID, productID string,
	alertType domain.AlertType, severity domain.AlertSeverity, since time.Time) (*domain.Alert, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	var found *domain.Alert
	for i := range s.alerts {
		a := &s.alerts[i]
		if a.OrganizationID != organizationID || a.LocationID != locationID || a.ProductID != productID {
			continue
		}
		if a.Type != alertType || a.Severity != severity || a.Read {
			continue
		}
		if a.CreatedAt.Before(since) {
			continue
		}
		if found == nil || a.CreatedAt.After(found.CreatedAt) {
			found = a
		}
	}
	if found == nil {
		return nil, nil
	}
	out := *found
	return &out, nil
}

func (s *Store) List(ctx context.Context, filter domain.AlertFilter) ([]domain.Alert, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []domain.Alert
	for _, a := range s.alerts {
		if a.OrganizationID != filter.OrganizationID {
			continue
		}
		if filter.LocationID != "" && a.LocationID != filter.LocationID {
			continue
		}
		if filter.Type != "" && a.Type != filter.Type {
			continue
		}
		if filter.Severity != "" && a.Severity != filter.Severity {
			continue
		}
		if filter.UnreadOnly && a.Read {
			continue
		}
		matched = append(matched, a)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	start := (page - 1) * pageSize
	if start >= total {
		return nil, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return matched[start:end], total, nil
}

func (s *Store) MarkRead(ctx context.Context, id string, readAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.alerts {
		if s.alerts[i].ID == id && !s.alerts[i].Read {
			s.alerts[i].Read = true
			at := readAt
			s.alerts[i].ReadAt = &at
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *Store) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var kept []domain.Alert
	var deleted int64
	for _, a := range s.alerts {
		if a.Read && a.ReadAt != nil && a.ReadAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, a)
	}
	s.alerts = kept
	return deleted, nil
}

func (s *Store) MarkExpiredRead(ctx context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expired int64
	for i := range s.alerts {
		a := &s.alerts[i]
		if !a.Read && a.ExpiresAt != nil && a.ExpiresAt.Before(now) {
			a.Read = true
			at := now
			a.ReadAt = &at
			expired++
		}
	}
	return expired, nil
}

func (s *Store) CountUnreadBySeverity(ctx context.Context, organizationID string) ([]domain.AlertSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	counts := make(map[domain.AlertSeverity]int)
	for _, a := range s.alerts {
		if a.OrganizationID != organizationID || a.Read {
			continue
		}
		if a.ExpiresAt != nil && a.ExpiresAt.Before(now) {
			continue
		}
		counts[a.Severity]++
	}

	var summary []domain.AlertSummary
	for sev, n := range counts {
		summary = append(summary, domain.AlertSummary{Severity: sev, Count: n})
	}
	sort.Slice(summary, func(i, j int) bool {
		return strings.Compare(string(summary[i].Severity), string(summary[j].Severity)) < 0
	})
	return summary, nil
}

func (s *Store) DeleteStale(ctx context.Context, now, ageCutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	terminal := make(map[domain.AnalysisStatus]bool)
	for _, st := range domain.AnalysisTerminalStatuses {
		terminal[st] = true
	}

	var kept []domain.Analysis
	var deleted int64
	for _, a := range s.analyses {
		expired := a.ExpiresAt != nil && a.ExpiresAt.Before(now)
		aged := terminal[a.Status] && a.CreatedAt.Before(ageCutoff)
		if expired || aged {
			deleted++
			continue
		}
		kept = append(kept, a)
	}
	s.analyses = kept
	return deleted, nil
}

// Alerts returns a copy of all stored alerts. Test helper.
func (s *Store) Alerts() []domain.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Alert, len(s.alerts))
	copy(out, s.alerts)
	return out
}
