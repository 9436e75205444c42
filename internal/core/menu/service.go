package menu

import (
	"context"
	"fmt"
	"time"

	"meal-optimizer/internal/infrastructure/config"
	"meal-optimizer/internal/pkg/common"

	"go.uber.org/zap"
)

// Fetcher 週菜單來源
type Fetcher interface {
	FetchWeek(ctx context.Context, hall, mealType string, date time.Time) ([]common.FoodItem, error)
}

// Service 快取優先的菜單服務
type Service struct {
	config  *config.Config
	fetcher Fetcher
	cache   Cache
}

// NewService 創建菜單服務
func NewService(cfg *config.Config, fetcher Fetcher, cache Cache) *Service {
	return &Service{
		config:  cfg,
		fetcher: fetcher,
		cache:   cache,
	}
}

// Menu 取得指定餐廳與餐別的週菜單，優先使用快取
func (s *Service) Menu(ctx context.Context, hall, mealType string, date time.Time) ([]common.FoodItem, error) {
	key := cacheKey(hall, mealType, date)

	if s.cache != nil {
		if items, err := s.cache.Get(ctx, key); err == nil {
			return items, nil
		}
	}

	items, err := s.fetcher.FetchWeek(ctx, hall, mealType, date)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, items); err != nil {
			// 寫入失敗不影響本次請求
			common.LogWarn("菜單快取寫入失敗",
				zap.String("鍵", key),
				zap.Error(err),
			)
		}
	}

	return items, nil
}

// Stats 回傳快取統計；快取停用時回傳 nil
func (s *Service) Stats() map[string]interface{} {
	if s.cache == nil {
		return nil
	}
	return s.cache.Stats()
}

// cacheKey 以該週週一為鍵：API 回傳的是整週菜單
func cacheKey(hall, mealType string, date time.Time) string {
	monday := date.AddDate(0, 0, -int((date.Weekday()+6)%7))
	return fmt.Sprintf("menu:%s:%s:%s", hall, mealType, monday.Format("2006-01-02"))
}
