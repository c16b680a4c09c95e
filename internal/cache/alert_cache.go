package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/precivox/engine-go/internal/config"
	"github.com/precivox/engine-go/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	alertSummaryKeyPrefix = "alerts:summary"
	alertScanBatchSize    = 100
)

// AlertSummaryCache caches the per-organization unread severity counts, the
// hottest read path on the alert surface. Writes go around the cache; the
// monitor and the read endpoint invalidate after mutating.
type AlertSummaryCache interface {
	GetSummary(ctx context.Context, organizationID string) ([]domain.AlertSummary, bool, error)
	SetSummary(ctx context.Context, organizationID string, summary []domain.AlertSummary) error
	InvalidateOrganization(ctx context.Context, organizationID string) error
	InvalidateAll(ctx context.Context) error
}

type redisAlertSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopAlertSummaryCache struct{}

func NewAlertSummaryCache(cfg config.CacheConfig) (AlertSummaryCache, error) {
	if !cfg.Enabled {
		return &noopAlertSummaryCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisAlertSummaryCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopAlertSummaryCache() AlertSummaryCache {
	return &noopAlertSummaryCache{}
}

func (c *redisAlertSummaryCache) GetSummary(ctx context.Context, organizationID string) ([]domain.AlertSummary, bool, error) {
	key := buildAlertSummaryKey(organizationID)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var summary []domain.AlertSummary
	if err := json.Unmarshal(payload, &summary); err != nil {
		return nil, false, fmt.Errorf("decode alert summary cache: %w", err)
	}

	return summary, true, nil
}

func (c *redisAlertSummaryCache) SetSummary(ctx context.Context, organizationID string, summary []domain.AlertSummary) error {
	key := buildAlertSummaryKey(organizationID)
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode alert summary cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisAlertSummaryCache) InvalidateOrganization(ctx context.Context, organizationID string) error {
	return c.client.Del(ctx, buildAlertSummaryKey(organizationID)).Err()
}

func (c *redisAlertSummaryCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, alertSummaryKeyPrefix, alertScanBatchSize)
}

func (n *noopAlertSummaryCache) GetSummary(ctx context.Context, organizationID string) ([]domain.AlertSummary, bool, error) {
	return nil, false, nil
}

func (n *noopAlertSummaryCache) SetSummary(ctx context.Context, organizationID string, summary []domain.AlertSummary) error {
	return nil
}

func (n *noopAlertSummaryCache) InvalidateOrganization(ctx context.Context, organizationID string) error {
	return nil
}

func (n *noopAlertSummaryCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildAlertSummaryKey(organizationID string) string {
	return fmt.Sprintf("%s:%s", alertSummaryKeyPrefix, organizationID)
}
