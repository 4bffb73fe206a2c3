package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupKeyPrefix = "projector:seen:"

// Deduplicator remembers correlation ids the projector already applied.
type Deduplicator struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewDeduplicator(rdb redis.Cmdable, ttl time.Duration) *Deduplicator {
	return &Deduplicator{rdb: rdb, ttl: ttl}
}

func (d *Deduplicator) Seen(ctx context.Context, correlationID string) (bool, error) {
	n, err := d.rdb.Exists(ctx, dedupKeyPrefix+correlationID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Mark records correlationID after it was applied. It reports false when
// another delivery got there first.
func (d *Deduplicator) Mark(ctx context.Context, correlationID string) (bool, error) {
	return d.rdb.SetNX(ctx, dedupKeyPrefix+correlationID, time.Now().UTC().Format(time.RFC3339), d.ttl).Result()
}
