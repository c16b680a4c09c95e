// internal/repository/analysis_repository.go
package repository

import (
	"context"
	"time"
)

// AnalysisRepository garbage-collects stored analysis records. The engine
// never creates analyses; it only removes the ones that are past their own
// expiry or aged out in a terminal state.
type AnalysisRepository interface {
	DeleteStale(ctx context.Context, now, ageCutoff time.Time) (int64, error)
}
