package optimizer

import (
	"math"
	"strings"

	"meal-optimizer/internal/pkg/common"
)

// Categorize 依名稱關鍵字與營養值判斷品項分類
// Pure function: the same item always classifies the same way.
func Categorize(item common.FoodItem) Category {
	name := strings.ToLower(item.Name)

	// 先比對關鍵字（蛋白質優先）
	for _, group := range categoryKeywords {
		for _, keyword := range group.keywords {
			if strings.Contains(name, keyword) {
				return group.category
			}
		}
	}

	// 關鍵字沒中時用營養值輔助判斷
	switch {
	case item.Protein >= 15:
		return CategoryProtein
	case item.Carbs >= 25 && item.Protein < 8:
		return CategoryCarb
	case item.Calories < 50 && item.Carbs < 15:
		return CategoryVegetable
	}

	return CategoryOther
}

// Annotate 為每個品項附上分類與蛋白質效率，不修改輸入
func Annotate(items []common.FoodItem) []CategorizedItem {
	annotated := make([]CategorizedItem, len(items))
	for i, it := range items {
		annotated[i] = CategorizedItem{
			FoodItem:          it,
			Category:          Categorize(it),
			ProteinEfficiency: it.Protein / math.Max(it.Calories, 1),
		}
	}
	return annotated
}
