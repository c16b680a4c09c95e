// internal/repository/sales_repository.go
package repository

import (
	"context"

	"github.com/precivox/engine-go/internal/domain"
)

// SalesHistoryRepository fetches the ordered (oldest first) demand samples for
// a product/location pair. This is the integration seam with the sales
// subsystem: the forecaster consumes whatever history the platform records.
type SalesHistoryRepository interface {
	Fetch(ctx context.Context, productID, locationID string) ([]domain.SalesObservation, error)
}
