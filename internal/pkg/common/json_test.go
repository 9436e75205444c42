package common

import (
	"strings"
	"testing"
)

func TestParseJSON(t *testing.T) {
	var item FoodItem
	if err := ParseJSON(`{"name":"Grilled Chicken","protein":35,"calories":200}`, &item); err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	if item.Name != "Grilled Chicken" || item.Protein != 35 {
		t.Errorf("parsed item = %+v", item)
	}
}

func TestParseJSONTrailingData(t *testing.T) {
	var item FoodItem
	if err := ParseJSON(`{"name":"Rice"}{"name":"Beans"}`, &item); err == nil {
		t.Error("trailing JSON data should be rejected")
	}
}

func TestParseJSONStrict(t *testing.T) {
	var item FoodItem
	err := ParseJSONStrict(`{"name":"Rice","unexpected_field":1}`, &item)
	if err == nil {
		t.Error("unknown field should be rejected in strict mode")
	}

	if err := ParseJSON(`{"name":"Rice","unexpected_field":1}`, &item); err != nil {
		t.Errorf("non-strict parse should ignore unknown fields: %v", err)
	}
}

func TestFoodItemKey(t *testing.T) {
	a := FoodItem{Name: "Grilled Chicken", DiningHall: "West Village"}
	b := FoodItem{Name: "Grilled Chicken", DiningHall: "North Ave Dining Hall"}
	if a.Key() == b.Key() {
		t.Error("same dish at two halls must have distinct keys")
	}
	if a.Key() != (FoodItem{Name: "Grilled Chicken", DiningHall: "West Village"}).Key() {
		t.Error("identical items must share a key")
	}
}

func TestFormatItems(t *testing.T) {
	out := FormatItems([]FoodItem{
		{Name: "Grilled Chicken", DiningHall: "West Village", Protein: 35, Calories: 200, Fat: 5},
	})
	if !strings.Contains(out, "Grilled Chicken") || !strings.Contains(out, "35.0g protein") {
		t.Errorf("formatted output = %q", out)
	}
}
