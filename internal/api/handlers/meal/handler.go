package meal

import (
	"context"
	"fmt"
	"time"

	"meal-optimizer/internal/core/menu"
	"meal-optimizer/internal/infrastructure/config"
	"meal-optimizer/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MenuSource 提供週菜單的服務
type MenuSource interface {
	Menu(ctx context.Context, hall, mealType string, date time.Time) ([]common.FoodItem, error)
	Stats() map[string]interface{}
}

// Handler 餐點相關端點的處理器
type Handler struct {
	menuService MenuSource
	config      *config.Config
}

// NewHandler 創建餐點處理器
func NewHandler(menuService MenuSource, cfg *config.Config) *Handler {
	return &Handler{
		menuService: menuService,
		config:      cfg,
	}
}

// resolveHalls 將請求的餐廳代號轉為抓取清單與引擎的餐廳過濾條件
// "both"（或留空）搜尋全部餐廳且不過濾；單一餐廳時引擎只看該餐廳。
func resolveHalls(diningHall string) (halls []string, filter string, err error) {
	switch diningHall {
	case "", "both":
		return menu.HallSlugs, "", nil
	default:
		name, ok := menu.DiningHalls[diningHall]
		if !ok {
			return nil, "", common.ErrInvalidDiningHall
		}
		return []string{diningHall}, name, nil
	}
}

// parseDate 解析 YYYY-MM-DD 日期，留空時用今天
func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
	}
	return date, nil
}

// validMealType 檢查餐別
func validMealType(mealType string) bool {
	_, ok := menu.MealTypes[mealType]
	return ok
}

// collectMenus 逐一抓取各餐廳菜單，回傳合併品項與失敗的餐廳數
func (h *Handler) collectMenus(c *gin.Context, halls []string, mealType string, date time.Time) ([]common.FoodItem, int) {
	var items []common.FoodItem
	failed := 0
	for _, hall := range halls {
		menuItems, err := h.menuService.Menu(c.Request.Context(), hall, mealType, date)
		if err != nil {
			common.LogWarn("餐廳菜單抓取失敗",
				zap.String("dining_hall", hall),
				zap.Error(err),
			)
			failed++
			continue
		}
		items = append(items, menuItems...)
	}
	return items, failed
}
