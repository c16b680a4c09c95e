// internal/monitor/report.go
package monitor

import (
	"sync"
	"time"
)

// RunReport summarizes one monitoring cycle. Counter mutation is
// mutex-guarded because location scans run concurrently.
type RunReport struct {
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`

	Organizations        int `json:"organizations"`
	Locations            int `json:"locations"`
	PositionsScanned     int `json:"positions_scanned"`
	AlertsCreated        int `json:"alerts_created"`
	DuplicatesSuppressed int `json:"duplicates_suppressed"`
	SkippedNoForecast    int `json:"skipped_no_forecast"`
	ItemFailures         int `json:"item_failures"`

	AlertsDeleted   int64 `json:"alerts_deleted"`
	AlertsExpired   int64 `json:"alerts_expired"`
	AnalysesDeleted int64 `json:"analyses_deleted"`

	mu sync.Mutex
}

func newRunReport(startedAt time.Time) *RunReport {
	return &RunReport{StartedAt: startedAt}
}

func (r *RunReport) finish(now time.Time) {
	r.Duration = now.Sub(r.StartedAt)
}

func (r *RunReport) addLocations(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Locations += n
}

func (r *RunReport) addPositionsScanned(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.PositionsScanned += n
}

func (r *RunReport) addAlertsCreated(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.AlertsCreated += n
}

func (r *RunReport) addDuplicatesSuppressed(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.DuplicatesSuppressed += n
}

func (r *RunReport) addSkippedNoForecast(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.SkippedNoForecast += n
}

func (r *RunReport) addItemFailures(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ItemFailures += n
}
