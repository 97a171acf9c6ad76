package openfoodfacts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSearchParsesProducts(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/cgi/search.pl") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("search_terms"); got != "dal" {
			t.Errorf("expected search_terms=dal, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "products": [
    {
      "code": "1234567890123",
      "product_name": "Dal Makhani",
      "nutriments": {
        "energy-kcal_100g": 142,
        "proteins_100g": 6.1,
        "carbohydrates_100g": 15.3,
        "fat_100g": 6.2,
        "fiber_100g": 3.4,
        "sodium_100g": 0.32
      }
    },
    {
      "code": "999",
      "product_name": "  ",
      "nutriments": {"energy-kcal_100g": 50}
    }
  ]
}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	results, err := c.Search(context.Background(), "dal", 5)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	// Nameless products are dropped.
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	info := results[0]
	if info.Name != "Dal Makhani" || info.Source != "openfoodfacts" || info.SourceID != "1234567890123" {
		t.Fatalf("unexpected product: %+v", info)
	}
	if info.Calories != 142 || info.ProteinG != 6.1 || info.CarbsG != 15.3 || info.FatG != 6.2 {
		t.Fatalf("unexpected macros: %+v", info)
	}
	if info.FiberG == nil || *info.FiberG != 3.4 {
		t.Fatalf("expected fiber 3.4, got %+v", info.FiberG)
	}
	// Sodium is reported in grams per 100g and stored as mg.
	if info.SodiumMg == nil || *info.SodiumMg != 320 {
		t.Fatalf("expected sodium 320mg, got %+v", info.SodiumMg)
	}
}

func TestSearchAcceptsStringNutriments(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "products": [
    {
      "code": "42",
      "product_name": "Oat Drink",
      "nutriments": {
        "energy-kcal_100g": "46.5",
        "proteins_100g": "1",
        "carbohydrates_100g": 6.6,
        "fat_100g": "not-a-number"
      }
    }
  ]
}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	results, err := c.Search(context.Background(), "oat drink", 5)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	info := results[0]
	if info.Calories != 46.5 || info.ProteinG != 1 || info.CarbsG != 6.6 {
		t.Fatalf("string-valued nutriments not parsed: %+v", info)
	}
	if info.FatG != 0 {
		t.Fatalf("unparseable nutriment should read as zero, got %v", info.FatG)
	}
}

func TestSearchTruncatesToLimit(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products": [
  {"code": "1", "product_name": "A", "nutriments": {}},
  {"code": "2", "product_name": "B", "nutriments": {}},
  {"code": "3", "product_name": "C", "nutriments": {}}
]}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	results, err := c.Search(context.Background(), "anything", 2)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected limit applied, got %d results", len(results))
	}
}

func TestSearchReportsHTTPFailure(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	if _, err := c.Search(context.Background(), "dal", 5); err == nil {
		t.Fatalf("expected error on HTTP 502")
	}
}

func TestGetByIDParsesProduct(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/product/1234567890123.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "status": 1,
  "product": {
    "code": "1234567890123",
    "product_name": "Dal Makhani",
    "nutriments": {"energy-kcal_100g": 142, "proteins_100g": 6.1}
  }
}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	info, err := c.GetByID(context.Background(), "1234567890123")
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if info.Name != "Dal Makhani" || info.Calories != 142 || info.ProteinG != 6.1 {
		t.Fatalf("unexpected product: %+v", info)
	}
}

func TestGetByIDUnknownCode(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": 0, "status_verbose": "product not found"}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	if _, err := c.GetByID(context.Background(), "0000000000000"); err == nil {
		t.Fatalf("expected error for unknown product code")
	}
}
