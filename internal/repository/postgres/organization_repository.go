// internal/repository/postgres/organization_repository.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/precivox/engine-go/internal/domain"
)

type organizationRepository struct {
	db *DB
}

func NewOrganizationRepository(db *DB) *organizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) ListActive(ctx context.Context) ([]domain.Organization, error) {
	query := `
		SELECT id, name, active
		FROM organizations
		WHERE active = true
		ORDER BY name
	`

	var orgs []domain.Organization
	if err := sqlx.SelectContext(ctx, r.db, &orgs, query); err != nil {
		return nil, fmt.Errorf("failed to list active organizations: %w", err)
	}

	return orgs, nil
}

type locationRepository struct {
	db *DB
}

func NewLocationRepository(db *DB) *locationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) ListActiveByOrganization(ctx context.Context, organizationID string) ([]domain.Location, error) {
	query := `
		SELECT id, organization_id, name, active, latitude, longitude
		FROM locations
		WHERE organization_id = $1 AND active = true
		ORDER BY name
	`

	var locations []domain.Location
	if err := sqlx.SelectContext(ctx, r.db, &locations, query, organizationID); err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}

	return locations, nil
}
