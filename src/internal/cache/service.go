package cache

import (
	"commerce-admin-svc/src/internal/config"
	"commerce-admin-svc/src/internal/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Service caches hot read aggregates. Cache misses and failures are soft:
// callers fall through to the store.
type Service interface {
	GetTopActivities(ctx context.Context, limit int64) ([]models.TopActivity, error)
	SaveTopActivities(ctx context.Context, limit int64, activities []models.TopActivity) error
}

type cacheService struct {
	client *redis.Client
	cfg    *config.CacheConfig
}

func NewCacheService(client *redis.Client, cfg *config.Configuration) Service {
	return &cacheService{
		client: client,
		cfg:    &cfg.Cache,
	}
}

func (c *cacheService) GetTopActivities(ctx context.Context, limit int64) ([]models.TopActivity, error) {
	key := c.topActivitiesKey(limit)

	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			logrus.WithField("key", key).Debug("Top activities not found in cache")
			return nil, nil // Not an error, just not found
		}
		logrus.WithError(err).WithField("key", key).Error("Failed to get top activities from cache")
		return nil, models.ErrRedisGet
	}

	var activities []models.TopActivity
	if err := json.Unmarshal([]byte(data), &activities); err != nil {
		logrus.WithError(err).WithField("key", key).Error("Failed to unmarshal top activities from cache")
		return nil, models.ErrRedisGet
	}

	logrus.WithField("key", key).Debug("Top activities retrieved from cache")
	return activities, nil
}

func (c *cacheService) SaveTopActivities(ctx context.Context, limit int64, activities []models.TopActivity) error {
	key := c.topActivitiesKey(limit)

	data, err := json.Marshal(activities)
	if err != nil {
		logrus.WithError(err).Error("Failed to marshal top activities for cache")
		return models.ErrRedisSet
	}

	expiration := time.Duration(c.cfg.TopActivitiesExpirationSeconds) * time.Second
	if err := c.client.Set(ctx, key, data, expiration).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Error("Failed to cache top activities")
		return models.ErrRedisSet
	}

	return nil
}

func (c *cacheService) topActivitiesKey(limit int64) string {
	return fmt.Sprintf("%s:%d", c.cfg.TopActivitiesKey, limit)
}
