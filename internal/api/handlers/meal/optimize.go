package meal

import (
	"net/http"

	"meal-optimizer/internal/core/optimizer"
	"meal-optimizer/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OptimizeRequest 組合搜尋請求
type OptimizeRequest struct {
	DiningHall   string  `json:"dining_hall"`                           // west-village | north-ave-dining-hall | both
	MealType     string  `json:"meal_type" binding:"required"`          // lunch | dinner
	ProteinGoal  float64 `json:"protein_goal" binding:"required,gt=0"`  // 最低蛋白質（克）
	CalorieLimit float64 `json:"calorie_limit" binding:"required,gt=0"` // 最高熱量
	Date         string  `json:"date,omitempty"`                        // YYYY-MM-DD，留空用今天
}

// OptimizeResponse 組合搜尋響應
type OptimizeResponse struct {
	SearchID     string                  `json:"search_id"`
	Count        int                     `json:"count"`
	Combinations []optimizer.Combination `json:"combinations"`
}

// HandleOptimize 搜尋符合蛋白質/熱量限制的餐點組合
func (h *Handler) HandleOptimize(c *gin.Context) {
	var req OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	if !validMealType(req.MealType) {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrInvalidMealType.Code,
			Message: "meal_type must be lunch or dinner",
		})
		return
	}

	halls, hallFilter, err := resolveHalls(req.DiningHall)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrInvalidDiningHall.Code,
			Message: "unknown dining hall: " + req.DiningHall,
		})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: err.Error(),
		})
		return
	}

	searchID := common.GenerateUUID()
	common.LogInfo("開始組合搜尋",
		zap.String("search_id", searchID),
		zap.String("dining_hall", req.DiningHall),
		zap.String("meal_type", req.MealType),
		zap.Float64("protein_goal", req.ProteinGoal),
		zap.Float64("calorie_limit", req.CalorieLimit),
	)

	// 逐一抓取選定餐廳的菜單；部分失敗時用拿得到的繼續搜尋
	var items []common.FoodItem
	failed := 0
	for _, hall := range halls {
		menuItems, err := h.menuService.Menu(c.Request.Context(), hall, req.MealType, date)
		if err != nil {
			common.LogWarn("餐廳菜單抓取失敗",
				zap.String("search_id", searchID),
				zap.String("dining_hall", hall),
				zap.Error(err),
			)
			failed++
			continue
		}
		items = append(items, menuItems...)
	}

	// 全部餐廳都抓不到菜單是來源故障，與「找不到組合」是不同的使用者訊息
	if failed == len(halls) {
		c.JSON(http.StatusServiceUnavailable, common.ErrorResponse{
			Code:    common.ErrMenuUnavailable.Code,
			Message: common.ErrMenuUnavailable.Message,
		})
		return
	}

	combinations := optimizer.FindCombinations(items, optimizer.SearchParams{
		ProteinGoal:  req.ProteinGoal,
		CalorieLimit: req.CalorieLimit,
		DiningHall:   hallFilter,
	})

	common.LogInfo("組合搜尋完成",
		zap.String("search_id", searchID),
		zap.Int("menu_items", len(items)),
		zap.Int("combinations", len(combinations)),
	)

	c.JSON(http.StatusOK, OptimizeResponse{
		SearchID:     searchID,
		Count:        len(combinations),
		Combinations: combinations,
	})
}
