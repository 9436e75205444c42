package common

import (
	"fmt"
	"strings"
)

// FoodItem 單一菜單品項，由菜單來源提供
// A FoodItem is one menu entry as supplied by the menu source. Numeric
// nutrition fields are grams (calories excepted) and are coalesced to 0
// at ingestion when the upstream payload omits them.
type FoodItem struct {
	Name       string  `json:"name"`
	Calories   float64 `json:"calories"`
	Protein    float64 `json:"protein"`
	Fat        float64 `json:"fat"`
	Carbs      float64 `json:"carbs"`
	Sodium     float64 `json:"sodium"`
	Serving    string  `json:"serving"`
	DiningHall string  `json:"dining_hall"`
}

// Key identifies an item across repeated fetches: the same dish served at
// two halls counts as two items.
func (f FoodItem) Key() string {
	return f.Name + "|" + f.DiningHall
}

// FormatItems 格式化品項列表
func FormatItems(items []FoodItem) string {
	var sb strings.Builder
	for _, it := range items {
		sb.WriteString(fmt.Sprintf("- %s [%s]: %.1fg protein, %.0f cal, %.1fg fat, %.1fg carbs\n",
			it.Name, it.DiningHall, it.Protein, it.Calories, it.Fat, it.Carbs))
	}
	return sb.String()
}
