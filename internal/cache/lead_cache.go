package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/white/lead-management/internal/models"
)

const (
	listKey       = "leads:all"
	leadKeyPrefix = "lead:"
)

// LeadCache is an owned, explicitly-scoped Redis cache for lead reads. It
// holds a snapshot of the full lead list plus per-lead entries, refreshed
// after reads and invalidated on every write. It is an optimization only:
// every method can fail and callers fall back to the repository.
type LeadCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLeadCache creates a lead cache with the given snapshot TTL.
func NewLeadCache(client *redis.Client, ttl time.Duration) *LeadCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &LeadCache{
		client: client,
		ttl:    ttl,
	}
}

// GetList retrieves the cached lead list snapshot.
// Returns an error on cache miss or deserialization failure.
func (c *LeadCache) GetList(ctx context.Context) ([]models.Lead, error) {
	val, err := c.client.Get(ctx, listKey).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("cache miss: lead list not in cache")
	}
	if err != nil {
		return nil, fmt.Errorf("redis error: %w", err)
	}

	var leads []models.Lead
	if err := json.Unmarshal([]byte(val), &leads); err != nil {
		return nil, fmt.Errorf("failed to deserialize lead list: %w", err)
	}

	return leads, nil
}

// RefreshList replaces the cached list snapshot.
func (c *LeadCache) RefreshList(ctx context.Context, leads []models.Lead) error {
	data, err := json.Marshal(leads)
	if err != nil {
		return fmt.Errorf("failed to serialize lead list: %w", err)
	}

	if err := c.client.Set(ctx, listKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}

	return nil
}

// Get retrieves a single cached lead.
func (c *LeadCache) Get(ctx context.Context, id string) (*models.Lead, error) {
	val, err := c.client.Get(ctx, leadKeyPrefix+id).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("cache miss: lead not in cache")
	}
	if err != nil {
		return nil, fmt.Errorf("redis error: %w", err)
	}

	var lead models.Lead
	if err := json.Unmarshal([]byte(val), &lead); err != nil {
		return nil, fmt.Errorf("failed to deserialize lead: %w", err)
	}

	return &lead, nil
}

// Set stores a single lead.
func (c *LeadCache) Set(ctx context.Context, lead *models.Lead) error {
	data, err := json.Marshal(lead)
	if err != nil {
		return fmt.Errorf("failed to serialize lead: %w", err)
	}

	if err := c.client.Set(ctx, leadKeyPrefix+lead.ID.Hex(), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}

	return nil
}

// Invalidate drops the list snapshot and the given lead entries. Called on
// every create/update/delete so readers never see a stale merge.
func (c *LeadCache) Invalidate(ctx context.Context, ids ...string) error {
	keys := make([]string, 0, len(ids)+1)
	keys = append(keys, listKey)
	for _, id := range ids {
		keys = append(keys, leadKeyPrefix+id)
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}

	return nil
}

// Ping checks the Redis connection for health reporting.
func (c *LeadCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
