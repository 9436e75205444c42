package optimizer

import (
	"sort"

	"meal-optimizer/internal/pkg/common"

	"go.uber.org/zap"
)

// maxResults 回傳的組合數上限
const maxResults = 15

// FindCombinations 搜尋符合蛋白質/熱量限制的餐點組合
// 流程：附上分類 → 建候選池 → 依五種策略枚舉 → 可行性過濾與評分 →
// 依成員名稱去重 → 依蛋白質效率排序，回傳前 15 名。
// 空輸入或無可行組合回傳空切片，不是錯誤。
func FindCombinations(items []common.FoodItem, params SearchParams) []Combination {
	if len(items) == 0 {
		return []Combination{}
	}

	valid := annotateValid(items, params.CalorieLimit, params.DiningHall)
	p := buildPools(valid)

	common.LogDebug("候選池建立完成",
		zap.Int("valid_items", len(valid)),
		zap.Int("proteins", len(p.proteins)),
		zap.Int("vegetables", len(p.vegetables)),
		zap.Int("carbs", len(p.carbs)),
	)

	var feasible []Combination
	for _, candidate := range enumerate(p) {
		score, breakdown, ok := scoreCombination(candidate, params.ProteinGoal, params.CalorieLimit)
		if !ok {
			continue
		}
		feasible = append(feasible, newCombination(candidate, score, breakdown))
	}

	unique := dedupe(feasible)

	// 排序只看蛋白質效率與總蛋白質，綜合分數僅供顯示
	sort.SliceStable(unique, func(i, j int) bool {
		ei, ej := unique[i].ProteinEfficiency(), unique[j].ProteinEfficiency()
		if ei != ej {
			return ei > ej
		}
		return unique[i].TotalProtein > unique[j].TotalProtein
	})

	if len(unique) > maxResults {
		unique = unique[:maxResults]
	}

	common.LogDebug("組合搜尋完成",
		zap.Int("feasible", len(feasible)),
		zap.Int("returned", len(unique)),
	)

	return unique
}

// dedupe 去除成員相同的組合，保留最先出現者（即策略順序）
func dedupe(combos []Combination) []Combination {
	seen := make(map[string]struct{}, len(combos))
	unique := make([]Combination, 0, len(combos))
	for _, c := range combos {
		key := c.dedupeKey()
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, c)
	}
	return unique
}

// TopItems 依蛋白質效率列出最佳單品（至少 12g 蛋白質）
// 同名同餐廳的重複品項只保留第一筆。
func TopItems(items []common.FoodItem, n int) []CategorizedItem {
	const minTopItemProtein = 12

	seen := make(map[string]struct{}, len(items))
	ranked := make([]CategorizedItem, 0, len(items))
	for _, annotated := range Annotate(items) {
		if annotated.Calories <= 0 || annotated.Protein < minTopItemProtein {
			continue
		}
		key := annotated.Key()
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		ranked = append(ranked, annotated)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ProteinEfficiency > ranked[j].ProteinEfficiency
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
