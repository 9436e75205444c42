package optimizer

import (
	"testing"

	"meal-optimizer/internal/pkg/common"
)

func TestAnnotateValidFilters(t *testing.T) {
	items := []common.FoodItem{
		{Name: "Grilled Chicken", Protein: 35, Calories: 200, DiningHall: "West Village"},
		{Name: "Missing Nutrition", Protein: 0, Calories: 0, DiningHall: "West Village"},
		{Name: "Giant Platter", Protein: 60, Calories: 900, DiningHall: "West Village"},
		{Name: "Roast Turkey", Protein: 28, Calories: 180, DiningHall: "North Ave Dining Hall"},
	}

	valid := annotateValid(items, 500, "")
	if len(valid) != 2 {
		t.Fatalf("annotateValid returned %d items, want 2 (zero-calorie and over-limit dropped)", len(valid))
	}

	// 餐廳過濾
	valid = annotateValid(items, 500, "West Village")
	if len(valid) != 1 || valid[0].Name != "Grilled Chicken" {
		t.Fatalf("hall-filtered pool = %+v, want just Grilled Chicken", valid)
	}
}

func TestBuildPoolsMembershipAndOrder(t *testing.T) {
	items := Annotate([]common.FoodItem{
		{Name: "Grilled Chicken", Protein: 35, Calories: 200},
		{Name: "Baked Tilapia", Protein: 25, Calories: 120},
		{Name: "Steamed Broccoli", Protein: 3, Calories: 30},
		{Name: "Creamed Spinach", Protein: 4, Calories: 150}, // 熱量過高，進不了蔬果池
		{Name: "Brown Rice", Protein: 5, Calories: 200, Carbs: 45},
		{Name: "Plain Bagel", Protein: 9, Calories: 320, Carbs: 60}, // 熱量過高，進不了碳水池
		{Name: "Low Protein Soup", Protein: 4, Calories: 90},
	})

	p := buildPools(items)

	if len(p.proteins) != 2 {
		t.Fatalf("protein pool has %d items, want 2", len(p.proteins))
	}
	// 效率高者在前：25/120 > 35/200
	if p.proteins[0].Name != "Baked Tilapia" {
		t.Errorf("protein pool head = %q, want Baked Tilapia", p.proteins[0].Name)
	}

	if len(p.vegetables) != 1 || p.vegetables[0].Name != "Steamed Broccoli" {
		t.Errorf("vegetable pool = %+v, want just Steamed Broccoli", p.vegetables)
	}
	if len(p.carbs) != 1 || p.carbs[0].Name != "Brown Rice" {
		t.Errorf("carb pool = %+v, want just Brown Rice", p.carbs)
	}
}

func TestBuildPoolsItemCanJoinTwoPools(t *testing.T) {
	// 高蛋白的碳水品項同時進蛋白質池與碳水池
	items := Annotate([]common.FoodItem{
		{Name: "Quinoa Bowl", Protein: 12, Calories: 220, Carbs: 40},
	})

	p := buildPools(items)
	if len(p.proteins) != 1 || len(p.carbs) != 1 {
		t.Fatalf("proteins=%d carbs=%d, want 1 and 1", len(p.proteins), len(p.carbs))
	}
}

func TestBuildPoolsTruncated(t *testing.T) {
	var raw []common.FoodItem
	for i := 0; i < proteinPoolSize+10; i++ {
		raw = append(raw, common.FoodItem{
			Name:     "Chicken Dish " + string(rune('A'+i)),
			Protein:  float64(15 + i),
			Calories: 200,
		})
	}

	p := buildPools(Annotate(raw))
	if len(p.proteins) != proteinPoolSize {
		t.Fatalf("protein pool has %d items, want cap %d", len(p.proteins), proteinPoolSize)
	}
}

func TestStrategyPairNeverRepeats(t *testing.T) {
	// double_protein_vegetable 的兩個蛋白質欄位不能枚舉出 (A,B) 與 (B,A)
	items := Annotate([]common.FoodItem{
		{Name: "Grilled Chicken", Protein: 35, Calories: 200},
		{Name: "Baked Tilapia", Protein: 25, Calories: 120},
		{Name: "Roast Turkey", Protein: 28, Calories: 180},
		{Name: "Steamed Broccoli", Protein: 3, Calories: 30},
	})
	p := buildPools(items)

	var doubleProtein strategy
	for _, s := range strategies {
		if s.name == "double_protein_vegetable" {
			doubleProtein = s
		}
	}
	if doubleProtein.name == "" {
		t.Fatal("double_protein_vegetable strategy not registered")
	}

	seen := make(map[string]struct{})
	for _, combo := range doubleProtein.generate(p) {
		if len(combo) != 3 {
			t.Fatalf("combo size = %d, want 3", len(combo))
		}
		key := Combination{Items: combo}.dedupeKey()
		if _, dup := seen[key]; dup {
			t.Errorf("pair enumerated twice: %q", key)
		}
		seen[key] = struct{}{}
	}
	// C(3,2) 對蛋白質 × 1 個蔬菜
	if len(seen) != 3 {
		t.Errorf("unique double-protein combos = %d, want 3", len(seen))
	}
}

func TestStrategySkipsDuplicateNames(t *testing.T) {
	// 同一道菜在兩間餐廳都出現時不能被組進同一份餐
	items := Annotate([]common.FoodItem{
		{Name: "Grilled Chicken", Protein: 35, Calories: 200, DiningHall: "West Village"},
		{Name: "Grilled Chicken", Protein: 33, Calories: 190, DiningHall: "North Ave Dining Hall"},
		{Name: "Steamed Broccoli", Protein: 3, Calories: 30, DiningHall: "West Village"},
	})
	p := buildPools(items)

	for _, combo := range enumerate(p) {
		names := make(map[string]struct{}, len(combo))
		for _, it := range combo {
			if _, dup := names[it.Name]; dup {
				t.Fatalf("combo contains duplicate name: %+v", combo)
			}
			names[it.Name] = struct{}{}
		}
	}
}
