package planstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/patrickwarner/planforge/internal/models"
	"github.com/patrickwarner/planforge/internal/observability"
)

// CachedStore decorates a Store with a Redis read-through cache on
// GetPlan. Plans are immutable once written, so the only invalidation
// needed is on DeletePlan; writes pass straight through.
type CachedStore struct {
	Store

	Client  *redis.Client
	TTL     time.Duration
	Logger  *zap.Logger
	Metrics observability.MetricsRegistry
}

// InitRedisCache connects a Redis client, instruments it for tracing
// and wraps the given store.
func InitRedisCache(inner Store, addr string, ttl time.Duration, logger *zap.Logger, metrics observability.MetricsRegistry) (*CachedStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := redisotel.InstrumentTracing(client); err != nil {
		return nil, fmt.Errorf("instrument redis tracing: %w", err)
	}
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	logger.Info("Connected to Redis plan cache", zap.String("addr", addr))
	return &CachedStore{Store: inner, Client: client, TTL: ttl, Logger: logger, Metrics: metrics}, nil
}

func planKey(campaignID, userID int64) string {
	return fmt.Sprintf("plan:%d:%d", campaignID, userID)
}

// GetPlan serves from Redis when possible and falls back to the inner
// store, caching the result. Cache errors degrade to a store read; they
// never fail the request.
func (c *CachedStore) GetPlan(ctx context.Context, campaignID, userID int64) (*models.StoredPlan, error) {
	key := planKey(campaignID, userID)

	if raw, err := c.Client.Get(ctx, key).Bytes(); err == nil {
		var plan models.StoredPlan
		if err := json.Unmarshal(raw, &plan); err == nil {
			c.Metrics.IncrementPlanCacheHits()
			return &plan, nil
		}
		c.Logger.Warn("corrupt plan cache entry, evicting", zap.String("key", key))
		c.Client.Del(ctx, key)
	} else if err != redis.Nil {
		c.Logger.Error("plan cache get", zap.Error(err))
	}
	c.Metrics.IncrementPlanCacheMisses()

	plan, err := c.Store.GetPlan(ctx, campaignID, userID)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(plan); err == nil {
		if err := c.Client.Set(ctx, key, raw, c.TTL).Err(); err != nil {
			c.Logger.Error("plan cache set", zap.Error(err))
		}
	}
	return plan, nil
}

// DeletePlan invalidates the cache entry before delegating.
func (c *CachedStore) DeletePlan(ctx context.Context, campaignID, userID int64) (bool, error) {
	if err := c.Client.Del(ctx, planKey(campaignID, userID)).Err(); err != nil {
		c.Logger.Error("plan cache del", zap.Error(err))
	}
	return c.Store.DeletePlan(ctx, campaignID, userID)
}

// Close shuts down the Redis client.
func (c *CachedStore) Close() {
	if c != nil && c.Client != nil {
		if err := c.Client.Close(); err != nil {
			c.Logger.Error("redis close", zap.Error(err))
		}
	}
}
