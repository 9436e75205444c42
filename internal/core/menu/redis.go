package menu

import (
	"context"
	"encoding/json"
	"fmt"

	"meal-optimizer/internal/infrastructure/config"
	"meal-optimizer/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisCache Redis 後端的菜單快取，多實例部署時共用同一份週菜單
type RedisCache struct {
	client *redis.Client
	config *config.Config
}

// NewRedisCache 創建 Redis 快取
func NewRedisCache(cfg *config.Config) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Cache.RedisAddr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("菜單快取已初始化",
		zap.String("backend", "redis"),
		zap.String("addr", cfg.Cache.RedisAddr),
	)
	return &RedisCache{
		client: client,
		config: cfg,
	}, nil
}

// Get 獲取快取的菜單
func (c *RedisCache) Get(ctx context.Context, key string) ([]common.FoodItem, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			common.LogCacheMiss("menu", key)
			return nil, common.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}

	var items []common.FoodItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached menu: %w", err)
	}

	common.LogCacheHit("menu", key)
	return items, nil
}

// Set 寫入快取
func (c *RedisCache) Set(ctx context.Context, key string, items []common.FoodItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal menu: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.config.Cache.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}

	return nil
}

// Stats 獲取快取統計信息
func (c *RedisCache) Stats() map[string]interface{} {
	return map[string]interface{}{
		"backend": "redis",
		"addr":    c.config.Cache.RedisAddr,
	}
}

// Close 關閉快取
func (c *RedisCache) Close() error {
	return c.client.Close()
}
