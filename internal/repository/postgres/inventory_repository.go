// internal/repository/postgres/inventory_repository.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/precivox/engine-go/internal/domain"
)

type inventoryRepository struct {
	db *DB
}

func NewInventoryRepository(db *DB) *inventoryRepository {
	return &inventoryRepository{db: db}
}

const stockEntryColumns = `
	ip.product_id,
	ip.location_id,
	ip.quantity_on_hand,
	p.name AS product_name,
	COALESCE(p.demand_7d, 0) AS demand_7d,
	COALESCE(p.demand_30d, 0) AS demand_30d,
	COALESCE(p.reorder_point, 0) AS reorder_point,
	COALESCE(p.turnover_rate, 0) AS turnover_rate
`

func (r *inventoryRepository) ListAvailableByLocation(ctx context.Context, locationID string) ([]domain.StockEntry, error) {
	query := `
		SELECT ` + stockEntryColumns + `
		FROM inventory_positions ip
		JOIN products p ON p.id = ip.product_id
		WHERE ip.location_id = $1 AND ip.available = true
		ORDER BY p.name
	`

	var entries []domain.StockEntry
	if err := sqlx.SelectContext(ctx, r.db, &entries, query, locationID); err != nil {
		return nil, fmt.Errorf("failed to list stock entries for location: %w", err)
	}

	return entries, nil
}

func (r *inventoryRepository) ListAvailableByOrganization(ctx context.Context, organizationID string) ([]domain.StockEntry, error) {
	query := `
		SELECT ` + stockEntryColumns + `
		FROM inventory_positions ip
		JOIN products p ON p.id = ip.product_id
		JOIN locations l ON l.id = ip.location_id
		WHERE l.organization_id = $1 AND l.active = true AND ip.available = true
		ORDER BY ip.location_id, p.name
	`

	var entries []domain.StockEntry
	if err := sqlx.SelectContext(ctx, r.db, &entries, query, organizationID); err != nil {
		return nil, fmt.Errorf("failed to list stock entries for organization: %w", err)
	}

	return entries, nil
}
