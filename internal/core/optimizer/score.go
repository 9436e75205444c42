package optimizer

import "math"

// 各評分面向的上限
const (
	efficiencyCap  = 40.0
	compositionCap = 15.0
)

// scoreCombination 為可行組合計算綜合分數與明細
// 蛋白質不足或熱量超標的組合不可行，回傳 (0, nil, false)；
// 這個限制永遠不放寬。
func scoreCombination(items []CategorizedItem, proteinGoal, calorieLimit float64) (float64, *ScoreBreakdown, bool) {
	var totalProtein, totalCalories, totalFat, totalCarbs float64
	for _, it := range items {
		totalProtein += it.Protein
		totalCalories += it.Calories
		totalFat += it.Fat
		totalCarbs += it.Carbs
	}

	if totalProtein < proteinGoal || totalCalories > calorieLimit {
		return 0, nil, false
	}

	breakdown := &ScoreBreakdown{}

	// 1. 蛋白質效率（0–40 分），主要指標
	proteinPerCal := totalProtein / math.Max(totalCalories, 1)
	breakdown.Efficiency = math.Min(proteinPerCal*80, efficiencyCap)

	// 2. 精準度（0–20 分）：蛋白質超標越多扣越多，熱量預算用越滿越好
	proteinWaste := totalProtein - proteinGoal
	proteinPrecision := math.Max(0, 10-proteinWaste*0.3)
	calorieUsage := totalCalories / math.Max(calorieLimit, 1)
	caloriePrecision := 0.0
	if calorieUsage <= 1 {
		caloriePrecision = 10 * calorieUsage
	}
	breakdown.Precision = proteinPrecision + caloriePrecision

	// 3. 宏量營養素平衡（0–25 分）
	// 理想區間：蛋白質 25–35%、碳水 40–55%、脂肪 20–30%
	macroCalories := totalProtein*4 + totalCarbs*4 + totalFat*9
	if macroCalories > 0 {
		breakdown.ProteinPct = totalProtein * 4 / macroCalories
		breakdown.CarbPct = totalCarbs * 4 / macroCalories
		breakdown.FatPct = totalFat * 9 / macroCalories

		balance := 0.0
		switch {
		case breakdown.ProteinPct >= 0.25 && breakdown.ProteinPct <= 0.35:
			balance += 10
		case breakdown.ProteinPct >= 0.20 && breakdown.ProteinPct <= 0.40:
			balance += 5
		}
		switch {
		case breakdown.CarbPct >= 0.40 && breakdown.CarbPct <= 0.55:
			balance += 10
		case breakdown.CarbPct >= 0.30 && breakdown.CarbPct <= 0.65:
			balance += 5
		}
		switch {
		case breakdown.FatPct >= 0.20 && breakdown.FatPct <= 0.30:
			balance += 5
		case breakdown.FatPct >= 0.15 && breakdown.FatPct <= 0.40:
			balance += 2
		}
		breakdown.MacroBalance = balance
	}

	// 4. 餐點組成（0–15 分）＋多樣性加分
	categories := make([]Category, len(items))
	unique := make(map[Category]struct{}, len(items))
	for i, it := range items {
		categories[i] = it.Category
		unique[it.Category] = struct{}{}
		switch it.Category {
		case CategoryProtein:
			breakdown.HasProtein = true
		case CategoryVegetable, CategoryFruit:
			breakdown.HasVegetable = true
		case CategoryCarb:
			breakdown.HasCarb = true
		}
	}
	breakdown.Categories = categories

	composition := 0.0
	if breakdown.HasProtein {
		composition += 7
	}
	if breakdown.HasVegetable {
		composition += 5
	}
	if breakdown.HasCarb {
		composition += 2
	}
	composition += math.Min(float64(len(unique)), 3)
	breakdown.Composition = math.Min(composition, compositionCap)

	score := breakdown.Efficiency + breakdown.Precision + breakdown.MacroBalance + breakdown.Composition
	return score, breakdown, true
}
