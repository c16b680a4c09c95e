// internal/repository/postgres/sales_repository.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/precivox/engine-go/internal/domain"
)

// historyWindowDays bounds how far back the forecaster looks. Older samples
// carry near-zero weight in the moving average anyway.
const historyWindowDays = 90

type salesHistoryRepository struct {
	db *DB
}

func NewSalesHistoryRepository(db *DB) *salesHistoryRepository {
	return &salesHistoryRepository{db: db}
}

func (r *salesHistoryRepository) Fetch(ctx context.Context, productID, locationID string) ([]domain.SalesObservation, error) {
	query := fmt.Sprintf(`
		SELECT sale_date, quantity
		FROM daily_sales
		WHERE product_id = $1
		  AND location_id = $2
		  AND sale_date >= NOW() - INTERVAL '%d days'
		ORDER BY sale_date ASC
	`, historyWindowDays)

	var history []domain.SalesObservation
	if err := sqlx.SelectContext(ctx, r.db, &history, query, productID, locationID); err != nil {
		return nil, fmt.Errorf("failed to fetch sales history: %w", err)
	}

	return history, nil
}
