// internal/repository/postgres/analysis_repository.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/precivox/engine-go/internal/domain"
)

type analysisRepository struct {
	db *DB
}

func NewAnalysisRepository(db *DB) *analysisRepository {
	return &analysisRepository{db: db}
}

// DeleteStale removes analyses that are past their own expiry, or that aged
// out in a terminal state before ageCutoff.
func (r *analysisRepository) DeleteStale(ctx context.Context, now, ageCutoff time.Time) (int64, error) {
	statuses := make([]string, len(domain.AnalysisTerminalStatuses))
	for i, s := range domain.AnalysisTerminalStatuses {
		statuses[i] = string(s)
	}

	query := `
		DELETE FROM analyses
		WHERE (expires_at IS NOT NULL AND expires_at < $1)
		   OR (status = ANY($2::text[]) AND created_at < $3)
	`

	res, err := r.db.ExecContext(ctx, query, now, pq.Array(statuses), ageCutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale analyses: %w", err)
	}

	return res.RowsAffected()
}
