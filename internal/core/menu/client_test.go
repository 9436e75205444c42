package menu

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"meal-optimizer/internal/infrastructure/config"
)

const sampleWeekJSON = `{
	"days": [
		{
			"menu_items": [
				{
					"food": {
						"name": "Grilled Chicken",
						"rounded_nutrition_info": {
							"calories": 200,
							"g_protein": 35,
							"g_fat": 5,
							"g_carbs": 0,
							"mg_sodium": 400
						},
						"serving_size_info": {
							"serving_size_amount": 4,
							"serving_size_unit": "oz"
						}
					}
				},
				{
					"food": {
						"name": "Roast Beef",
						"rounded_nutrition_info": {
							"calories": 250,
							"g_protein": 30,
							"g_fat": null,
							"g_carbs": null,
							"mg_sodium": null
						},
						"serving_size_info": {
							"serving_size_amount": 1,
							"serving_size_unit": "lb"
						}
					}
				},
				{
					"food": null
				}
			]
		},
		{
			"menu_items": [
				{
					"food": {
						"name": "Steamed Broccoli",
						"rounded_nutrition_info": {
							"calories": 30,
							"g_protein": 3,
							"g_fat": 0,
							"g_carbs": 6,
							"mg_sodium": 20
						},
						"serving_size_info": {
							"serving_size_amount": null,
							"serving_size_unit": "cup"
						}
					}
				}
			]
		}
	]
}`

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		Nutrislice: config.NutrisliceConfig{
			BaseURL: baseURL,
			Timeout: 5 * time.Second,
		},
		Cache: config.CacheConfig{
			Enabled:         true,
			Backend:         "memory",
			MaxSize:         10,
			TTL:             time.Hour,
			CleanupInterval: time.Hour,
		},
	}
}

func TestFetchWeek(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleWeekJSON))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	date := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)

	items, err := client.FetchWeek(context.Background(), "west-village", "lunch", date)
	if err != nil {
		t.Fatalf("FetchWeek failed: %v", err)
	}

	wantPath := "/west-village/menu-type/lunch/2025/03/05/"
	if gotPath != wantPath {
		t.Errorf("request path = %q, want %q", gotPath, wantPath)
	}

	// 空 food 被跳過，剩下兩天共 3 個品項
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}

	chicken := items[0]
	if chicken.Name != "Grilled Chicken" || chicken.Protein != 35 || chicken.Calories != 200 {
		t.Errorf("unexpected first item: %+v", chicken)
	}
	if chicken.DiningHall != "West Village" {
		t.Errorf("DiningHall = %q, want display name West Village", chicken.DiningHall)
	}
	if chicken.Serving != "4 oz" {
		t.Errorf("Serving = %q, want %q", chicken.Serving, "4 oz")
	}

	// null 營養值補 0，不剔除品項
	beef := items[1]
	if beef.Fat != 0 || beef.Carbs != 0 || beef.Sodium != 0 {
		t.Errorf("null nutrition not coalesced to zero: %+v", beef)
	}
	// 磅單位的份量要乘 0.25
	if beef.Serving != "0.25 lb" {
		t.Errorf("lb serving = %q, want %q", beef.Serving, "0.25 lb")
	}

	// 缺份量數字時只剩單位
	broccoli := items[2]
	if broccoli.Serving != "cup" {
		t.Errorf("missing amount serving = %q, want %q", broccoli.Serving, "cup")
	}
}

func TestFetchWeekValidation(t *testing.T) {
	client := NewClient(testConfig("http://localhost:1"))
	date := time.Now()

	if _, err := client.FetchWeek(context.Background(), "unknown-hall", "lunch", date); err == nil {
		t.Error("unknown hall should be rejected")
	}
	if _, err := client.FetchWeek(context.Background(), "west-village", "breakfast", date); err == nil {
		t.Error("unsupported meal type should be rejected")
	}
}

func TestFetchWeekUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	if _, err := client.FetchWeek(context.Background(), "west-village", "lunch", time.Now()); err == nil {
		t.Error("non-200 upstream response should surface as an error")
	}
}

func TestFetchWeekMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	if _, err := client.FetchWeek(context.Background(), "west-village", "dinner", time.Now()); err == nil {
		t.Error("malformed body should surface as an error")
	}
}
