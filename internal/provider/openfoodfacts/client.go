package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/siddhantjain/macro-tracker/internal/model"
)

const (
	defaultBaseURL = "https://world.openfoodfacts.org"
	sourceName     = "openfoodfacts"
)

// Client talks to the Open Food Facts API. Values are read from the
// per-100g nutriment fields so they line up with the USDA convention.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func (c *Client) Name() string { return sourceName }

func (c *Client) baseURL() string {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	return base
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 12 * time.Second}
}

func (c *Client) Search(ctx context.Context, query string, limit int) ([]model.NutritionInfo, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}
	if limit <= 0 {
		limit = 5
	}

	params := url.Values{}
	params.Set("search_terms", query)
	params.Set("search_simple", "1")
	params.Set("action", "process")
	params.Set("json", "1")
	params.Set("page_size", strconv.Itoa(limit))

	reqURL := fmt.Sprintf("%s/cgi/search.pl?%s", c.baseURL(), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create openfoodfacts request: %w", err)
	}
	req.Header.Set("User-Agent", "macro-tracker/1.0 (+https://github.com/siddhantjain/macro-tracker)")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute openfoodfacts request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read openfoodfacts response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openfoodfacts request failed with status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode openfoodfacts response: %w", err)
	}

	results := make([]model.NutritionInfo, 0, len(parsed.Products))
	for _, p := range parsed.Products {
		if len(results) >= limit {
			break
		}
		if strings.TrimSpace(p.ProductName) == "" {
			continue
		}
		results = append(results, parseProduct(p))
	}
	return results, nil
}

func (c *Client) GetByID(ctx context.Context, id string) (*model.NutritionInfo, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("product code is required")
	}

	reqURL := fmt.Sprintf("%s/api/v2/product/%s.json", c.baseURL(), url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create openfoodfacts request: %w", err)
	}
	req.Header.Set("User-Agent", "macro-tracker/1.0 (+https://github.com/siddhantjain/macro-tracker)")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute openfoodfacts request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read openfoodfacts response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openfoodfacts request failed with status %d", resp.StatusCode)
	}

	var parsed productResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode openfoodfacts response: %w", err)
	}
	if parsed.Status != 1 || strings.TrimSpace(parsed.Product.ProductName) == "" {
		return nil, fmt.Errorf("no openfoodfacts product found for code %q", id)
	}
	info := parseProduct(parsed.Product)
	return &info, nil
}

type searchResponse struct {
	Products []product `json:"products"`
}

type productResponse struct {
	Status  int     `json:"status"`
	Product product `json:"product"`
}

type product struct {
	Code        string     `json:"code"`
	ProductName string     `json:"product_name"`
	Nutriments  nutriments `json:"nutriments"`
}

type nutriments map[string]json.RawMessage

func (n nutriments) value(key string) (float64, bool) {
	raw, ok := n[key]
	if !ok {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func parseProduct(p product) model.NutritionInfo {
	calories, _ := p.Nutriments.value("energy-kcal_100g")
	protein, _ := p.Nutriments.value("proteins_100g")
	carbs, _ := p.Nutriments.value("carbohydrates_100g")
	fat, _ := p.Nutriments.value("fat_100g")

	info := model.NutritionInfo{
		Name:        strings.TrimSpace(p.ProductName),
		ServingSize: "100g",
		Calories:    calories,
		ProteinG:    protein,
		CarbsG:      carbs,
		FatG:        fat,
		Source:      sourceName,
		SourceID:    strings.TrimSpace(p.Code),
	}
	if v, ok := p.Nutriments.value("fiber_100g"); ok {
		info.FiberG = &v
	}
	if v, ok := p.Nutriments.value("sugars_100g"); ok {
		info.SugarG = &v
	}
	if v, ok := p.Nutriments.value("sodium_100g"); ok {
		mg := v * 1000
		info.SodiumMg = &mg
	}
	return info
}
