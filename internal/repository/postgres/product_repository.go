// internal/repository/postgres/product_repository.go
package postgres

import (
	"context"
	"fmt"

	"github.com/precivox/engine-go/internal/domain"
)

type productRepository struct {
	db *DB
}

func NewProductRepository(db *DB) *productRepository {
	return &productRepository{db: db}
}

func (r *productRepository) UpdateForecastFields(ctx context.Context, productID string, fields domain.ForecastFields) error {
	query := `
		UPDATE products
		SET demand_7d = $2,
			demand_30d = $3,
			reorder_point = $4,
			turnover_rate = $5,
			abc_class = $6,
			last_ai_update = $7,
			updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query, productID,
		fields.Demand7d, fields.Demand30d, fields.ReorderPoint,
		fields.TurnoverRate, fields.ABCClass, fields.LastAIUpdate)
	if err != nil {
		return fmt.Errorf("failed to update forecast fields: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}
