// internal/repository/alert_repository.go
package repository

import (
	"context"
	"time"

	"github.com/precivox/engine-go/internal/domain"
)

type AlertRepository interface {
	Create(ctx context.Context, alert *domain.Alert) error

	// FindRecentUnread returns the newest unread alert matching the tuple and
	// created at or after since, or nil when none exists. This is the
	// deduplication probe; check-then-create is best-effort, not linearizable.
	FindRecentUnread(ctx context.Context, organizationID, locationID, productID string,
		alertType domain.AlertType, severity domain.AlertSeverity, since time.Time) (*domain.Alert, error)

	List(ctx context.Context, filter domain.AlertFilter) ([]domain.Alert, int, error)

	MarkRead(ctx context.Context, id string, readAt time.Time) error

	// DeleteReadBefore permanently removes alerts read before the cutoff.
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// MarkExpiredRead auto-acknowledges unread alerts whose expiry has passed.
	MarkExpiredRead(ctx context.Context, now time.Time) (int64, error)

	CountUnreadBySeverity(ctx context.Context, organizationID string) ([]domain.AlertSummary, error)
}
