package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/plateful/ordering-service/internal/application/ports"
	"github.com/plateful/ordering-service/internal/infrastructure/monitoring"
	"github.com/plateful/ordering-service/internal/pkg/logger"
)

// CatalogCache fronts the Postgres catalog for restaurant names, which the
// cart view shows on every render. Entries expire on a TTL; a stale name is
// acceptable since nothing in checkout depends on it.
type CatalogCache struct {
	client *redis.Client
	source ports.CatalogRepository
	ttl    time.Duration
	logger *logger.Logger
}

func NewCatalogCache(conn *Connection, source ports.CatalogRepository, ttl time.Duration, log *logger.Logger) *CatalogCache {
	client := monitoring.InstrumentRedisClient(conn.GetClient())

	return &CatalogCache{
		client: client,
		source: source,
		ttl:    ttl,
		logger: log,
	}
}

func (c *CatalogCache) GetRestaurantName(ctx context.Context, id int64) (string, error) {
	key := fmt.Sprintf("restaurant:%d:name", id)

	name, err := c.client.Get(ctx, key).Result()
	if err == nil {
		monitoring.RecordCatalogCacheHit()
		return name, nil
	}

	if err != redis.Nil {
		// Degrade to the database on cache trouble.
		c.logger.Warn("Catalog cache read failed", "error", err, "restaurant_id", id)
	}
	monitoring.RecordCatalogCacheMiss()

	restaurant, err := c.source.GetRestaurantByID(ctx, id)
	if err != nil {
		return "", err
	}

	if err := c.client.Set(ctx, key, restaurant.Name, c.ttl).Err(); err != nil {
		c.logger.Warn("Catalog cache write failed", "error", err, "restaurant_id", id)
	}

	return restaurant.Name, nil
}

func (c *CatalogCache) InvalidateRestaurant(ctx context.Context, id int64) error {
	key := fmt.Sprintf("restaurant:%d:name", id)
	return c.client.Del(ctx, key).Err()
}
