// Package cache holds redis-backed read caches. Cache misses and redis
// outages degrade to the underlying store, never to an error.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/domain"
)

const userKeyPrefix = "helpdesk:user:"

// UserCache caches user projections, mainly the assignee-role lookups the
// assignment policy performs on every assign call.
type UserCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewUserCache builds the cache. A nil client disables caching.
func NewUserCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *UserCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &UserCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached user, or false on miss or redis failure.
func (c *UserCache) Get(ctx context.Context, id string) (*domain.User, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, userKeyPrefix+id).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("user cache get failed", zap.Error(err))
		}
		return nil, false
	}
	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, false
	}
	return &user, true
}

// Set stores the user projection.
func (c *UserCache) Set(ctx context.Context, user *domain.User) {
	if c == nil || c.client == nil || user == nil {
		return
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, userKeyPrefix+user.ID, raw, c.ttl).Err(); err != nil {
		c.logger.Debug("user cache set failed", zap.Error(err))
	}
}

// Invalidate drops a cached user, used when an administrator deletes one.
func (c *UserCache) Invalidate(ctx context.Context, id string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, userKeyPrefix+id).Err(); err != nil {
		c.logger.Debug("user cache invalidate failed", zap.Error(err))
	}
}
