package optimizer

// slot 一個組合欄位：從哪個池取、最多取到第幾名
type slot struct {
	pool poolKind
	take int
}

// strategy 一種固定的組合形態
// 連續兩個 slot 取同一個池時，後者的索引必須嚴格大於前者，
// 避免重複枚舉同一對品項。
type strategy struct {
	name  string
	slots []slot
}

// strategies 五種固定形態，依序枚舉；新增形態只需加一筆描述
var strategies = []strategy{
	{name: "single_protein", slots: []slot{{poolProtein, 20}}},
	{name: "protein_vegetable", slots: []slot{{poolProtein, 15}, {poolVegetable, 15}}},
	{name: "protein_vegetable_carb", slots: []slot{{poolProtein, 12}, {poolVegetable, 12}, {poolCarb, 10}}},
	{name: "protein_carb", slots: []slot{{poolProtein, 15}, {poolCarb, 12}}},
	{name: "double_protein_vegetable", slots: []slot{{poolProtein, 10}, {poolProtein, 15}, {poolVegetable, 10}}},
}

// enumerate 依策略順序產生所有原始候選組合（尚未過濾可行性）
func enumerate(p pools) [][]CategorizedItem {
	var candidates [][]CategorizedItem
	for _, s := range strategies {
		candidates = append(candidates, s.generate(p)...)
	}
	return candidates
}

// generate 對策略的各 slot 做交叉枚舉
// 同名品項不會進同一個組合：同一道菜可能同時出現在兩個餐廳的菜單上，
// 不能重複計算。
func (s strategy) generate(p pools) [][]CategorizedItem {
	var results [][]CategorizedItem
	combo := make([]CategorizedItem, 0, len(s.slots))

	var walk func(depth, prevIdx int)
	walk = func(depth, prevIdx int) {
		if depth == len(s.slots) {
			picked := make([]CategorizedItem, len(combo))
			copy(picked, combo)
			results = append(results, picked)
			return
		}

		sl := s.slots[depth]
		pool := truncate(p.byKind(sl.pool), sl.take)

		from := 0
		if depth > 0 && s.slots[depth-1].pool == sl.pool {
			from = prevIdx + 1
		}

		for i := from; i < len(pool); i++ {
			if containsName(combo, pool[i].Name) {
				continue
			}
			combo = append(combo, pool[i])
			walk(depth+1, i)
			combo = combo[:len(combo)-1]
		}
	}
	walk(0, -1)

	return results
}

func containsName(items []CategorizedItem, name string) bool {
	for _, it := range items {
		if it.Name == name {
			return true
		}
	}
	return false
}
