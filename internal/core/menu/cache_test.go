package menu

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"meal-optimizer/internal/pkg/common"
)

func TestMemoryCacheGetSet(t *testing.T) {
	cache := NewMemoryCache(testConfig(""))
	defer cache.Close()
	ctx := context.Background()

	if _, err := cache.Get(ctx, "menu:west-village:lunch:2025-03-03"); !errors.Is(err, common.ErrCacheMiss) {
		t.Fatalf("empty cache Get error = %v, want ErrCacheMiss", err)
	}

	items := []common.FoodItem{{Name: "Grilled Chicken", Protein: 35, Calories: 200}}
	if err := cache.Set(ctx, "menu:west-village:lunch:2025-03-03", items); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := cache.Get(ctx, "menu:west-village:lunch:2025-03-03")
	if err != nil {
		t.Fatalf("Get after Set failed: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Grilled Chicken" {
		t.Fatalf("Get returned %+v", got)
	}

	stats := cache.Stats()
	if stats["hits"].(int64) != 1 || stats["misses"].(int64) != 1 {
		t.Errorf("stats = %v, want 1 hit and 1 miss", stats)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	cfg := testConfig("")
	cfg.Cache.TTL = 10 * time.Millisecond
	cache := NewMemoryCache(cfg)
	defer cache.Close()
	ctx := context.Background()

	if err := cache.Set(ctx, "menu:west-village:lunch:2025-03-03", nil); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	if _, err := cache.Get(ctx, "menu:west-village:lunch:2025-03-03"); !errors.Is(err, common.ErrCacheMiss) {
		t.Fatalf("expired entry Get error = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCacheEviction(t *testing.T) {
	cfg := testConfig("")
	cfg.Cache.MaxSize = 3
	cache := NewMemoryCache(cfg)
	defer cache.Close()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		key := fmt.Sprintf("menu:west-village:lunch:2025-03-%02d", i+1)
		if err := cache.Set(ctx, key, nil); err != nil {
			t.Fatalf("Set %d failed: %v", i, err)
		}
	}

	// 讀兩筆墊高訪問次數，第一筆成為 LRU 淘汰對象
	cache.Get(ctx, "menu:west-village:lunch:2025-03-02")
	cache.Get(ctx, "menu:west-village:lunch:2025-03-03")

	if err := cache.Set(ctx, "menu:west-village:lunch:2025-03-04", nil); err != nil {
		t.Fatalf("Set over capacity failed: %v", err)
	}

	if _, err := cache.Get(ctx, "menu:west-village:lunch:2025-03-01"); !errors.Is(err, common.ErrCacheMiss) {
		t.Errorf("least-used entry should have been evicted, got err = %v", err)
	}
	if _, err := cache.Get(ctx, "menu:west-village:lunch:2025-03-04"); err != nil {
		t.Errorf("new entry should be cached, got err = %v", err)
	}
}

func TestNewCacheDisabled(t *testing.T) {
	cfg := testConfig("")
	cfg.Cache.Enabled = false

	cache, err := NewCache(cfg)
	if err != nil {
		t.Fatalf("NewCache failed: %v", err)
	}
	if cache != nil {
		t.Fatal("disabled cache should be nil")
	}
}
