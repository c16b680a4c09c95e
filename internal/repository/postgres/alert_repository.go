// internal/repository/postgres/alert_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/precivox/engine-go/internal/domain"
)

type alertRepository struct {
	db *DB
}

func NewAlertRepository(db *DB) *alertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	query := `
		INSERT INTO alerts (
			id, organization_id, location_id, product_id, type, severity,
			title, description, recommended_action, action_link, metadata,
			read, expires_at, created_at
		) VALUES (
			gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			false, $11, NOW()
		)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		alert.OrganizationID, alert.LocationID, alert.ProductID,
		alert.Type, alert.Severity,
		alert.Title, alert.Description, alert.RecommendedAction, alert.ActionLink,
		alert.Metadata, alert.ExpiresAt,
	).Scan(&alert.ID, &alert.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}

	return nil
}

func (r *alertRepository) FindRecentUnread(ctx context.Context, organizationID, locationID, productID string,
	alertType domain.AlertType, severity domain.AlertSeverity, since time.Time) (*domain.Alert, error) {

	query := `
		SELECT id, organization_id, location_id, product_id, type, severity,
			title, description, recommended_action, action_link, metadata,
			read, read_at, expires_at, created_at
		FROM alerts
		WHERE organization_id = $1
		  AND location_id = $2
		  AND product_id = $3
		  AND type = $4
		  AND severity = $5
		  AND read = false
		  AND created_at >= $6
		ORDER BY created_at DESC
		LIMIT 1
	`

	var alert domain.Alert
	err := sqlx.GetContext(ctx, r.db, &alert, query,
		organizationID, locationID, productID, alertType, severity, since)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find recent unread alert: %w", err)
	}

	return &alert, nil
}

func (r *alertRepository) List(ctx context.Context, filter domain.AlertFilter) ([]domain.Alert, int, error) {
	conditions := []string{"organization_id = $1"}
	args := []interface{}{filter.OrganizationID}

	if filter.LocationID != "" {
		args = append(args, filter.LocationID)
		conditions = append(conditions, fmt.Sprintf("location_id = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.Severity != "" {
		args = append(args, filter.Severity)
		conditions = append(conditions, fmt.Sprintf("severity = $%d", len(args)))
	}
	if filter.UnreadOnly {
		conditions = append(conditions, "read = false")
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM alerts WHERE " + where
	if err := sqlx.GetContext(ctx, r.db, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count alerts: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}
	if pageSize > 200 {
		pageSize = 200
	}

	args = append(args, pageSize)
	limitArg := len(args)
	args = append(args, (page-1)*pageSize)
	offsetArg := len(args)

	query := fmt.Sprintf(`
		SELECT id, organization_id, location_id, product_id, type, severity,
			title, description, recommended_action, action_link, metadata,
			read, read_at, expires_at, created_at
		FROM alerts
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, limitArg, offsetArg)

	var alerts []domain.Alert
	if err := sqlx.SelectContext(ctx, r.db, &alerts, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list alerts: %w", err)
	}

	return alerts, total, nil
}

func (r *alertRepository) MarkRead(ctx context.Context, id string, readAt time.Time) error {
	query := `
		UPDATE alerts
		SET read = true, read_at = $2
		WHERE id = $1 AND read = false
	`

	res, err := r.db.ExecContext(ctx, query, id, readAt)
	if err != nil {
		return fmt.Errorf("failed to mark alert read: %w", err)
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

func (r *alertRepository) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM alerts
		WHERE read = true AND read_at < $1
	`

	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete read alerts: %w", err)
	}

	return res.RowsAffected()
}

func (r *alertRepository) MarkExpiredRead(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE alerts
		SET read = true, read_at = $1
		WHERE read = false AND expires_at IS NOT NULL AND expires_at < $1
	`

	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to expire alerts: %w", err)
	}

	return res.RowsAffected()
}

func (r *alertRepository) CountUnreadBySeverity(ctx context.Context, organizationID string) ([]domain.AlertSummary, error) {
	query := `
		SELECT severity, COUNT(*) AS count
		FROM alerts
		WHERE organization_id = $1
		  AND read = false
		  AND (expires_at IS NULL OR expires_at > NOW())
		GROUP BY severity
	`

	var summary []domain.AlertSummary
	if err := sqlx.SelectContext(ctx, r.db, &summary, query, organizationID); err != nil {
		return nil, fmt.Errorf("failed to count unread alerts: %w", err)
	}

	return summary, nil
}
