// internal/repository/organization_repository.go
package repository

import (
	"context"

	"github.com/precivox/engine-go/internal/domain"
)

type OrganizationRepository interface {
	ListActive(ctx context.Context) ([]domain.Organization, error)
}

type LocationRepository interface {
	ListActiveByOrganization(ctx context.Context, organizationID string) ([]domain.Location, error)
}
