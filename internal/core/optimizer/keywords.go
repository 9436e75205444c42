package optimizer

// categoryKeywords 各分類的名稱關鍵字表
// Order matters: the first list containing a substring match wins, so
// "Chicken Salad" is a protein, not a vegetable.
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{
		category: CategoryProtein,
		keywords: []string{
			"chicken", "beef", "pork", "fish", "salmon", "tuna", "turkey", "duck",
			"tofu", "tempeh", "seitan", "egg", "shrimp", "steak", "patty", "sausage",
			"bacon", "ham", "lamb", "tilapia", "cod", "halibut", "edamame", "beans",
		},
	},
	{
		category: CategoryVegetable,
		keywords: []string{
			"broccoli", "salad", "lettuce", "spinach", "kale", "carrot", "broccolini",
			"tomato", "cucumber", "pepper", "green beans", "corn", "peas", "mushroom",
			"vegetable", "greens", "cabbage", "cauliflower", "asparagus", "zucchini",
			"squash", "brussels", "bok choy", "celery", "onion", "eggplant",
		},
	},
	{
		category: CategoryFruit,
		keywords: []string{
			"apple", "banana", "orange", "berry", "strawberry", "blueberry", "melon",
			"grape", "pineapple", "mango", "peach", "pear", "fruit", "watermelon",
		},
	},
	{
		category: CategoryCarb,
		keywords: []string{
			"rice", "pasta", "bread", "potato", "fries", "noodle", "quinoa", "couscous",
			"tortilla", "bun", "roll", "bagel", "cereal", "oat", "waffle", "pancake",
			"muffin", "biscuit", "mac", "macaroni", "spaghetti", "penne", "linguine",
		},
	},
}
