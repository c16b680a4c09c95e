// internal/repository/inventory_repository.go
package repository

import (
	"context"

	"github.com/precivox/engine-go/internal/domain"
)

// InventoryRepository reads live stock snapshots joined with product
// attributes. The inventory subsystem owns the data; this engine never writes
// positions.
type InventoryRepository interface {
	// ListAvailableByLocation returns the available positions at one location.
	ListAvailableByLocation(ctx context.Context, locationID string) ([]domain.StockEntry, error)

	// ListAvailableByOrganization returns the available positions across all
	// active locations of an organization (planning cycle input).
	ListAvailableByOrganization(ctx context.Context, organizationID string) ([]domain.StockEntry, error)
}
