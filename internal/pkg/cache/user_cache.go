package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/kaganyildiz/academix/internal/app/models"
)

// UserCache is a read-through cache for account lookups performed on every
// authenticated request. It is optional: a nil cache (or an unreachable
// Redis) degrades to a miss and the caller falls through to the database.
// Password digests are never stored (the model excludes them from JSON).
type UserCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewUserCache creates a cache backed by the given Redis client
func NewUserCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *UserCache {
	return &UserCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func userKey(id int64) string {
	return fmt.Sprintf("users:%d", id)
}

// Get returns the cached account, or (nil, false) on miss or cache failure
func (c *UserCache) Get(ctx context.Context, id int64) (*models.User, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn().Err(err).Int64("userID", id).Msg("User cache read failed, falling back to database")
		}
		return nil, false
	}

	user := &models.User{}
	if err := json.Unmarshal(data, user); err != nil {
		c.logger.Warn().Err(err).Int64("userID", id).Msg("User cache entry corrupt, dropping")
		c.Invalidate(ctx, id)
		return nil, false
	}
	return user, true
}

// Set stores the account under its id with the configured TTL
func (c *UserCache) Set(ctx context.Context, user *models.User) {
	if c == nil || c.client == nil || user == nil {
		return
	}

	data, err := json.Marshal(user)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to marshal user for cache")
		return
	}

	if err := c.client.Set(ctx, userKey(user.ID), data, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Int64("userID", user.ID).Msg("User cache write failed")
	}
}

// Invalidate drops the cached account, e.g. after profile update or deletion
func (c *UserCache) Invalidate(ctx context.Context, id int64) {
	if c == nil || c.client == nil {
		return
	}

	if err := c.client.Del(ctx, userKey(id)).Err(); err != nil {
		c.logger.Warn().Err(err).Int64("userID", id).Msg("User cache invalidation failed")
	}
}

// Ping reports whether the backing Redis is reachable
func (c *UserCache) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return fmt.Errorf("cache not configured")
	}
	return c.client.Ping(ctx).Err()
}
