package meal

import (
	"net/http"
	"strconv"

	"meal-optimizer/internal/core/optimizer"
	"meal-optimizer/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// TopItemsResponse 最佳單品列表響應
type TopItemsResponse struct {
	Count int                         `json:"count"`
	Items []optimizer.CategorizedItem `json:"items"`
}

// HandleTopItems 依蛋白質效率列出最佳單品
func (h *Handler) HandleTopItems(c *gin.Context) {
	mealType := c.DefaultQuery("meal_type", "lunch")
	if !validMealType(mealType) {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrInvalidMealType.Code,
			Message: "meal_type must be lunch or dinner",
		})
		return
	}

	halls, _, err := resolveHalls(c.Query("dining_hall"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrInvalidDiningHall.Code,
			Message: "unknown dining hall: " + c.Query("dining_hall"),
		})
		return
	}

	date, err := parseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: err.Error(),
		})
		return
	}

	limit := h.config.Optimizer.TopItemsLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, common.ErrorResponse{
				Code:    common.ErrCodeInvalidRequest,
				Message: "limit must be a positive integer",
			})
			return
		}
		limit = parsed
	}

	items, failed := h.collectMenus(c, halls, mealType, date)
	if failed == len(halls) {
		c.JSON(http.StatusServiceUnavailable, common.ErrorResponse{
			Code:    common.ErrMenuUnavailable.Code,
			Message: common.ErrMenuUnavailable.Message,
		})
		return
	}

	top := optimizer.TopItems(items, limit)
	c.JSON(http.StatusOK, TopItemsResponse{
		Count: len(top),
		Items: top,
	})
}

// MenuResponse 分類後的菜單響應
type MenuResponse struct {
	Count int                         `json:"count"`
	Items []optimizer.CategorizedItem `json:"items"`
}

// HandleMenu 回傳附上分類的完整菜單，供展示層使用
func (h *Handler) HandleMenu(c *gin.Context) {
	mealType := c.DefaultQuery("meal_type", "lunch")
	if !validMealType(mealType) {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrInvalidMealType.Code,
			Message: "meal_type must be lunch or dinner",
		})
		return
	}

	halls, _, err := resolveHalls(c.Query("dining_hall"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrInvalidDiningHall.Code,
			Message: "unknown dining hall: " + c.Query("dining_hall"),
		})
		return
	}

	date, err := parseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: err.Error(),
		})
		return
	}

	items, failed := h.collectMenus(c, halls, mealType, date)
	if failed == len(halls) {
		c.JSON(http.StatusServiceUnavailable, common.ErrorResponse{
			Code:    common.ErrMenuUnavailable.Code,
			Message: common.ErrMenuUnavailable.Message,
		})
		return
	}

	annotated := optimizer.Annotate(items)
	c.JSON(http.StatusOK, MenuResponse{
		Count: len(annotated),
		Items: annotated,
	})
}

// HandleCacheStats 回傳菜單快取統計
func (h *Handler) HandleCacheStats(c *gin.Context) {
	stats := h.menuService.Stats()
	if stats == nil {
		c.JSON(http.StatusOK, gin.H{"enabled": false})
		return
	}
	c.JSON(http.StatusOK, stats)
}
