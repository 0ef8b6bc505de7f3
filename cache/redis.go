package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/paypoq/storefront/models"
)

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: 15 * time.Minute,
	}
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r *RedisCache) Get(ctx context.Context, organizationID string) (*models.GatewayConfig, error) {
	data, err := r.client.Get(ctx, cacheKey(organizationID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var cfg models.GatewayConfig
	if err = json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal gateway config failed: %w", err)
	}

	return &cfg, nil
}

func (r *RedisCache) Set(ctx context.Context, organizationID string, cfg *models.GatewayConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal gateway config failed: %w", err)
	}

	if err = r.client.Set(ctx, cacheKey(organizationID), data, r.baseTTL).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, organizationID string) error {
	if err := r.client.Del(ctx, cacheKey(organizationID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func cacheKey(organizationID string) string {
	return fmt.Sprintf("gateway-config:%s", organizationID)
}
