package menu

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"meal-optimizer/internal/infrastructure/config"
	"meal-optimizer/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

// DiningHalls 校內餐廳代號與顯示名稱
var DiningHalls = map[string]string{
	"west-village":          "West Village",
	"north-ave-dining-hall": "North Ave Dining Hall",
}

// HallSlugs 餐廳代號的固定順序，跨餐廳搜尋時依此順序抓取
var HallSlugs = []string{"west-village", "north-ave-dining-hall"}

// MealTypes 支援的餐別
var MealTypes = map[string]struct{}{
	"lunch":  {},
	"dinner": {},
}

// Client 抓取 Nutrislice 週菜單的 API 客戶端
type Client struct {
	config *config.Config
	client *resty.Client
}

// NewClient 創建菜單 API 客戶端
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(cfg.Nutrislice.BaseURL).
		SetTimeout(cfg.Nutrislice.Timeout).
		SetHeader("Accept", "application/json")

	return &Client{
		config: cfg,
		client: client,
	}
}

// weekResponse Nutrislice 週菜單回應
// 營養欄位可能為 null，用指標接住後統一補 0。
type weekResponse struct {
	Days []struct {
		MenuItems []struct {
			Food *struct {
				Name             string `json:"name"`
				RoundedNutrition struct {
					Calories *float64 `json:"calories"`
					GProtein *float64 `json:"g_protein"`
					GFat     *float64 `json:"g_fat"`
					GCarbs   *float64 `json:"g_carbs"`
					MgSodium *float64 `json:"mg_sodium"`
				} `json:"rounded_nutrition_info"`
				ServingSizeInfo struct {
					Amount interface{} `json:"serving_size_amount"`
					Unit   string      `json:"serving_size_unit"`
				} `json:"serving_size_info"`
			} `json:"food"`
		} `json:"menu_items"`
	} `json:"days"`
}

// FetchWeek 抓取指定餐廳、餐別、日期所屬週的菜單
func (c *Client) FetchWeek(ctx context.Context, hall, mealType string, date time.Time) ([]common.FoodItem, error) {
	hallName, ok := DiningHalls[hall]
	if !ok {
		return nil, common.ErrInvalidDiningHall
	}
	if _, ok := MealTypes[mealType]; !ok {
		return nil, common.ErrInvalidMealType
	}

	start := time.Now()
	path := fmt.Sprintf("/%s/menu-type/%s/%04d/%02d/%02d/",
		hall, mealType, date.Year(), int(date.Month()), date.Day())

	resp, err := c.client.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		common.LogMenuFetch(hall, mealType, 0, time.Since(start), err)
		return nil, fmt.Errorf("failed to fetch menu from %s: %w", hall, err)
	}

	if resp.StatusCode() != http.StatusOK {
		err := fmt.Errorf("menu API returned status %d for %s", resp.StatusCode(), hall)
		common.LogMenuFetch(hall, mealType, 0, time.Since(start), err)
		return nil, err
	}

	var week weekResponse
	if err := common.ParseJSONBytes(resp.Body(), &week); err != nil {
		common.LogMenuFetch(hall, mealType, 0, time.Since(start), err)
		return nil, fmt.Errorf("failed to parse menu response from %s: %w", hall, err)
	}

	items := extractItems(&week, hallName)
	common.LogMenuFetch(hall, mealType, len(items), time.Since(start), nil)
	return items, nil
}

// extractItems 攤平週菜單回應為品項列表
func extractItems(week *weekResponse, hallName string) []common.FoodItem {
	var items []common.FoodItem
	for _, day := range week.Days {
		for _, menuItem := range day.MenuItems {
			food := menuItem.Food
			if food == nil {
				continue
			}
			items = append(items, common.FoodItem{
				Name:       food.Name,
				Calories:   coalesce(food.RoundedNutrition.Calories),
				Protein:    coalesce(food.RoundedNutrition.GProtein),
				Fat:        coalesce(food.RoundedNutrition.GFat),
				Carbs:      coalesce(food.RoundedNutrition.GCarbs),
				Sodium:     coalesce(food.RoundedNutrition.MgSodium),
				Serving:    servingString(food.ServingSizeInfo.Amount, food.ServingSizeInfo.Unit),
				DiningHall: hallName,
			})
		}
	}
	return items
}

// coalesce 缺漏的營養值一律當 0，不拒絕整個品項
func coalesce(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// servingString 組出顯示用的份量字串
// 單位是磅時把數字乘 0.25：上游一份的標示是 1 lb，實際是 0.25 lb。
func servingString(amount interface{}, unit string) string {
	amountStr := ""
	switch v := amount.(type) {
	case nil:
		// 留空
	case string:
		amountStr = v
	case fmt.Stringer:
		amountStr = v.String()
	default:
		amountStr = fmt.Sprintf("%v", v)
	}

	if unit != "" && strings.Contains(strings.ToLower(unit), "lb") && amountStr != "" {
		if f, err := strconv.ParseFloat(amountStr, 64); err == nil {
			amountStr = strconv.FormatFloat(f*0.25, 'f', -1, 64)
		}
	}

	return strings.TrimSpace(amountStr + " " + unit)
}
