// internal/repository/product_repository.go
package repository

import (
	"context"

	"github.com/precivox/engine-go/internal/domain"
)

// ProductRepository writes the planning cycle's derived fields back to the
// product record.
type ProductRepository interface {
	UpdateForecastFields(ctx context.Context, productID string, fields domain.ForecastFields) error
}
