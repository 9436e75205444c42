package optimizer

import (
	"sort"

	"meal-optimizer/internal/pkg/common"
)

// 各候選池的上限：全品項交叉組合會爆炸，先縮到最可能出線的品項
const (
	proteinPoolSize   = 30
	vegetablePoolSize = 25
	carbPoolSize      = 20

	minPoolProtein  = 10  // 蛋白質池：至少 10g 蛋白質
	maxVeggieCal    = 100 // 蔬果池：低熱量
	minCarbGrams    = 15  // 碳水池：要有足量碳水
	maxCarbCalories = 300 // 碳水池：熱量不能太高
)

// pools 三個有界、排序過的候選池
type pools struct {
	proteins   []CategorizedItem
	vegetables []CategorizedItem
	carbs      []CategorizedItem
}

type poolKind int

const (
	poolProtein poolKind = iota
	poolVegetable
	poolCarb
)

func (p pools) byKind(k poolKind) []CategorizedItem {
	switch k {
	case poolProtein:
		return p.proteins
	case poolVegetable:
		return p.vegetables
	default:
		return p.carbs
	}
}

// annotateValid 附上分類與效率，同時剔除不可能出現在可行組合中的品項：
// 熱量 0（沒有營養資訊）或單項就超過熱量上限。
func annotateValid(items []common.FoodItem, calorieLimit float64, diningHall string) []CategorizedItem {
	valid := make([]CategorizedItem, 0, len(items))
	for _, annotated := range Annotate(items) {
		if annotated.Calories <= 0 || annotated.Calories >= calorieLimit {
			continue
		}
		if diningHall != "" && annotated.DiningHall != diningHall {
			continue
		}
		valid = append(valid, annotated)
	}
	return valid
}

// buildPools 由全品項導出三個候選池
func buildPools(items []CategorizedItem) pools {
	var p pools

	for _, it := range items {
		// 同一品項可以同時進蛋白質池與分類池
		if it.Protein >= minPoolProtein {
			p.proteins = append(p.proteins, it)
		}
		switch it.Category {
		case CategoryVegetable, CategoryFruit:
			if it.Calories < maxVeggieCal {
				p.vegetables = append(p.vegetables, it)
			}
		case CategoryCarb:
			if it.Carbs >= minCarbGrams && it.Calories < maxCarbCalories {
				p.carbs = append(p.carbs, it)
			}
		}
	}

	// 蛋白質池：效率優先，其次總蛋白質
	sort.SliceStable(p.proteins, func(i, j int) bool {
		if p.proteins[i].ProteinEfficiency != p.proteins[j].ProteinEfficiency {
			return p.proteins[i].ProteinEfficiency > p.proteins[j].ProteinEfficiency
		}
		return p.proteins[i].Protein > p.proteins[j].Protein
	})

	// 蔬果與碳水池：效率優先，其次熱量低者
	byEfficiencyThenCalories := func(s []CategorizedItem) func(i, j int) bool {
		return func(i, j int) bool {
			if s[i].ProteinEfficiency != s[j].ProteinEfficiency {
				return s[i].ProteinEfficiency > s[j].ProteinEfficiency
			}
			return s[i].Calories < s[j].Calories
		}
	}
	sort.SliceStable(p.vegetables, byEfficiencyThenCalories(p.vegetables))
	sort.SliceStable(p.carbs, byEfficiencyThenCalories(p.carbs))

	p.proteins = truncate(p.proteins, proteinPoolSize)
	p.vegetables = truncate(p.vegetables, vegetablePoolSize)
	p.carbs = truncate(p.carbs, carbPoolSize)

	return p
}

func truncate(items []CategorizedItem, n int) []CategorizedItem {
	if len(items) > n {
		return items[:n]
	}
	return items
}
