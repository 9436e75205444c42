package menu

import (
	"context"
	"sync"
	"time"

	"meal-optimizer/internal/infrastructure/config"
	"meal-optimizer/internal/pkg/common"

	"go.uber.org/zap"
)

// Cache 週菜單快取
// Get 未命中時回傳 common.ErrCacheMiss。
type Cache interface {
	Get(ctx context.Context, key string) ([]common.FoodItem, error)
	Set(ctx context.Context, key string, items []common.FoodItem) error
	Stats() map[string]interface{}
	Close() error
}

// NewCache 依設定選擇快取後端；快取停用時回傳 nil
func NewCache(cfg *config.Config) (Cache, error) {
	if !cfg.Cache.Enabled {
		common.LogInfo("Menu cache disabled")
		return nil, nil
	}
	if cfg.Cache.Backend == "redis" {
		return NewRedisCache(cfg)
	}
	return NewMemoryCache(cfg), nil
}

// MemoryCache 行程內的 TTL + LRU 菜單快取
type MemoryCache struct {
	config *config.Config
	mu     sync.RWMutex
	store  map[string]cacheEntry
	stats  cacheStats
	done   chan struct{}
}

// cacheEntry 快取條目
type cacheEntry struct {
	items       []common.FoodItem
	expiresAt   time.Time
	createdAt   time.Time
	lastAccess  time.Time
	accessCount int
}

// cacheStats 快取統計
type cacheStats struct {
	hits      int64
	misses    int64
	evictions int64
	errors    int64
}

// NewMemoryCache 創建記憶體快取
func NewMemoryCache(cfg *config.Config) *MemoryCache {
	c := &MemoryCache{
		config: cfg,
		store:  make(map[string]cacheEntry),
		done:   make(chan struct{}),
	}

	// 啟動清理過期快取的協程
	go c.startCleanup()

	common.LogInfo("菜單快取已初始化",
		zap.String("backend", "memory"),
		zap.Int("最大容量", cfg.Cache.MaxSize),
		zap.Duration("存活時間", cfg.Cache.TTL),
		zap.Duration("清理間隔", cfg.Cache.CleanupInterval),
	)

	return c
}

// Get 獲取快取的菜單
func (c *MemoryCache) Get(ctx context.Context, key string) ([]common.FoodItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.store[key]
	if !exists {
		c.stats.misses++
		common.LogCacheMiss("menu", key)
		return nil, common.ErrCacheMiss
	}

	// 檢查是否過期
	if time.Now().After(entry.expiresAt) {
		delete(c.store, key)
		c.stats.evictions++
		c.stats.misses++
		common.LogInfo("快取已過期", zap.String("鍵", key))
		return nil, common.ErrCacheMiss
	}

	// 更新訪問統計
	entry.lastAccess = time.Now()
	entry.accessCount++
	c.store[key] = entry
	c.stats.hits++

	common.LogCacheHit("menu", key)
	return entry.items, nil
}

// Set 寫入快取
func (c *MemoryCache) Set(ctx context.Context, key string, items []common.FoodItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 檢查快取大小
	if len(c.store) >= c.config.Cache.MaxSize {
		evicted := c.cleanupLocked()
		common.LogInfo("快取清理執行", zap.Int("清理數量", evicted))

		// 如果仍然超過大小限制，執行 LRU 清理
		if len(c.store) >= c.config.Cache.MaxSize {
			c.evictLRULocked()
		}

		if len(c.store) >= c.config.Cache.MaxSize {
			c.stats.errors++
			common.LogWarn("快取已滿", zap.Int("目前容量", len(c.store)))
			return common.ErrCacheFull
		}
	}

	now := time.Now()
	c.store[key] = cacheEntry{
		items:      items,
		expiresAt:  now.Add(c.config.Cache.TTL),
		createdAt:  now,
		lastAccess: now,
	}

	common.LogInfo("快取已儲存", zap.String("鍵", key), zap.Int("items", len(items)))
	return nil
}

// startCleanup 定期清理過期條目
func (c *MemoryCache) startCleanup() {
	ticker := time.NewTicker(c.config.Cache.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			count := c.cleanupLocked()
			c.mu.Unlock()
			if count > 0 {
				common.LogInfo("Cleaned up expired cache entries", zap.Int("count", count))
			}
		case <-c.done:
			return
		}
	}
}

// cleanupLocked 清理過期條目，呼叫方需持有鎖
func (c *MemoryCache) cleanupLocked() int {
	now := time.Now()
	count := 0
	for key, entry := range c.store {
		if now.After(entry.expiresAt) {
			delete(c.store, key)
			count++
			c.stats.evictions++
		}
	}
	return count
}

// evictLRULocked 淘汰最少被訪問的條目，呼叫方需持有鎖
func (c *MemoryCache) evictLRULocked() {
	var oldestKey string
	var oldestAccess time.Time
	var lowestAccessCount int

	for key, entry := range c.store {
		if oldestKey == "" ||
			entry.accessCount < lowestAccessCount ||
			(entry.accessCount == lowestAccessCount && entry.lastAccess.Before(oldestAccess)) {
			oldestKey = key
			oldestAccess = entry.lastAccess
			lowestAccessCount = entry.accessCount
		}
	}

	if oldestKey != "" {
		delete(c.store, oldestKey)
		c.stats.evictions++
		common.LogInfo("快取已淘汰(LRU)", zap.String("鍵", oldestKey))
	}
}

// Stats 獲取快取統計信息
func (c *MemoryCache) Stats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := c.stats.hits + c.stats.misses
	hitRatio := 0.0
	if total > 0 {
		hitRatio = float64(c.stats.hits) / float64(total)
	}

	return map[string]interface{}{
		"backend":   "memory",
		"size":      len(c.store),
		"max_size":  c.config.Cache.MaxSize,
		"hits":      c.stats.hits,
		"misses":    c.stats.misses,
		"evictions": c.stats.evictions,
		"errors":    c.stats.errors,
		"hit_ratio": hitRatio,
	}
}

// Close 關閉快取
func (c *MemoryCache) Close() error {
	close(c.done)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]cacheEntry)

	common.LogInfo("菜單快取已關閉",
		zap.Int64("命中次數", c.stats.hits),
		zap.Int64("未命中次數", c.stats.misses),
		zap.Int64("淘汰次數", c.stats.evictions),
	)
	return nil
}
