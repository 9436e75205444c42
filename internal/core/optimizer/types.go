package optimizer

import (
	"math"
	"sort"
	"strings"

	"meal-optimizer/internal/pkg/common"
)

// Category 食物分類
type Category string

const (
	CategoryProtein   Category = "protein"
	CategoryCarb      Category = "carb"
	CategoryVegetable Category = "vegetable"
	CategoryFruit     Category = "fruit"
	CategoryOther     Category = "other"
)

// CategorizedItem 帶分類與蛋白質效率的菜單品項
// The annotation is computed fresh for every search; the caller's FoodItem
// values are never mutated.
type CategorizedItem struct {
	common.FoodItem
	Category          Category `json:"category"`
	ProteinEfficiency float64  `json:"protein_efficiency"`
}

// ScoreBreakdown 組合評分明細，僅供顯示，不參與排序
type ScoreBreakdown struct {
	Efficiency   float64    `json:"efficiency"`
	Precision    float64    `json:"precision"`
	MacroBalance float64    `json:"macro_balance"`
	Composition  float64    `json:"composition"`
	ProteinPct   float64    `json:"protein_pct"`
	CarbPct      float64    `json:"carb_pct"`
	FatPct       float64    `json:"fat_pct"`
	Categories   []Category `json:"categories"`
	HasProtein   bool       `json:"has_protein"`
	HasVegetable bool       `json:"has_vegetable"`
	HasCarb      bool       `json:"has_carb"`
}

// Combination 一組 1–3 個品項的餐點組合
type Combination struct {
	Items         []CategorizedItem `json:"items"`
	TotalProtein  float64           `json:"total_protein"`
	TotalCalories float64           `json:"total_calories"`
	TotalFat      float64           `json:"total_fat"`
	TotalCarbs    float64           `json:"total_carbs"`
	Score         float64           `json:"score"`
	Breakdown     *ScoreBreakdown   `json:"breakdown,omitempty"`
}

// ProteinEfficiency 每卡蛋白質克數，為主要排序依據
func (c Combination) ProteinEfficiency() float64 {
	return c.TotalProtein / math.Max(c.TotalCalories, 1)
}

// dedupeKey 成員名稱排序後組成的鍵，與發現順序無關
func (c Combination) dedupeKey() string {
	names := make([]string, len(c.Items))
	for i, it := range c.Items {
		names[i] = it.Name
	}
	sort.Strings(names)
	return strings.Join(names, "\x1f")
}

// SearchParams 一次組合搜尋的參數
type SearchParams struct {
	ProteinGoal  float64 // 最低蛋白質（克）
	CalorieLimit float64 // 最高熱量
	DiningHall   string  // 可選，限定單一餐廳（顯示名稱）
}

func newCombination(items []CategorizedItem, score float64, breakdown *ScoreBreakdown) Combination {
	c := Combination{
		Items:     items,
		Score:     score,
		Breakdown: breakdown,
	}
	for _, it := range items {
		c.TotalProtein += it.Protein
		c.TotalCalories += it.Calories
		c.TotalFat += it.Fat
		c.TotalCarbs += it.Carbs
	}
	return c
}
