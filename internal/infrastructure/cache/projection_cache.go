// Package cache holds the Redis-backed read cache and the projector's
// delivery deduplication.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Jaaccob/SagaApp/internal/domain/projection"
	"github.com/Jaaccob/SagaApp/internal/domain/repository"
	"github.com/Jaaccob/SagaApp/internal/domain/vo"
	"github.com/Jaaccob/SagaApp/pkg/helpers"
)

const projectionKeyPrefix = "product:projection:"

// ProjectionCache is a read-through cache in front of another projection
// store. Redis failures fall through to the store; misses are not cached.
type ProjectionCache struct {
	next   repository.ProductQueryRepository
	rdb    redis.Cmdable
	ttl    time.Duration
	logger *logrus.Logger
}

func NewProjectionCache(next repository.ProductQueryRepository, rdb redis.Cmdable, ttl time.Duration, logger *logrus.Logger) *ProjectionCache {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ProjectionCache{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

func (c *ProjectionCache) GetProjection(ctx context.Context, id vo.ProductID) (*projection.Product, error) {
	key := projectionKeyPrefix + id.String()

	var cached projection.Product
	hit, err := helpers.RedisGetJSON(ctx, c.rdb, key, &cached)
	if err != nil {
		c.logger.WithError(err).WithField("product_id", id.String()).Warn("projection cache read failed")
	} else if hit {
		return &cached, nil
	}

	p, err := c.next.GetProjection(ctx, id)
	if err != nil || p == nil {
		return p, err
	}

	if err := helpers.RedisSetJSON(ctx, c.rdb, key, p, c.ttl); err != nil {
		c.logger.WithError(err).WithField("product_id", id.String()).Warn("projection cache write failed")
	}
	return p, nil
}

var _ repository.ProductQueryRepository = (*ProjectionCache)(nil)
