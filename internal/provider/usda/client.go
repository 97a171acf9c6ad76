package usda

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/siddhantjain/macro-tracker/internal/model"
)

const (
	defaultBaseURL = "https://api.nal.usda.gov"
	sourceName     = "usda"
)

// FoodData Central nutrient numbers.
const (
	nutrientEnergy  = 1008
	nutrientProtein = 1003
	nutrientFat     = 1004
	nutrientCarbs   = 1005
	nutrientFiber   = 1079
	nutrientSugar   = 2000
	nutrientSodium  = 1093
)

// Client talks to USDA FoodData Central. Macro values in search and
// detail responses are per 100g.
type Client struct {
	APIKey     string
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

func (c *Client) apiKey() string {
	key := strings.TrimSpace(c.APIKey)
	if key == "" {
		key = "DEMO_KEY"
	}
	return key
}

func (c *Client) Search(ctx context.Context, query string, limit int) ([]model.NutritionInfo, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}
	if limit <= 0 {
		limit = 5
	}

	reqBody := map[string]any{
		"query":    query,
		"pageSize": limit,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal USDA search payload: %w", err)
	}

	url := fmt.Sprintf("%s/fdc/v1/foods/search?api_key=%s", c.baseURL(), c.apiKey())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create USDA request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute USDA request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read USDA response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("USDA request failed with status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode USDA response: %w", err)
	}

	results := make([]model.NutritionInfo, 0, len(parsed.Foods))
	for _, f := range parsed.Foods {
		if len(results) >= limit {
			break
		}
		results = append(results, parseSearchFood(f))
	}
	return results, nil
}

func (c *Client) GetByID(ctx context.Context, id string) (*model.NutritionInfo, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("food id is required")
	}

	url := fmt.Sprintf("%s/fdc/v1/food/%s?api_key=%s", c.baseURL(), id, c.apiKey())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create USDA request: %w", err)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute USDA request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read USDA response: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("USDA food %s not found", id)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("USDA request failed with status %d", resp.StatusCode)
	}

	var parsed detailFood
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode USDA response: %w", err)
	}
	info := parseDetailFood(parsed)
	return &info, nil
}

type searchResponse struct {
	Foods []searchFood `json:"foods"`
}

type searchFood struct {
	FDCID         int64            `json:"fdcId"`
	Description   string           `json:"description"`
	ServingSize   float64          `json:"servingSize"`
	ServingUnit   string           `json:"servingSizeUnit"`
	FoodNutrients []searchNutrient `json:"foodNutrients"`
	FoodMeasures  []foodMeasure    `json:"foodMeasures"`
}

type searchNutrient struct {
	NutrientID int64   `json:"nutrientId"`
	Value      float64 `json:"value"`
}

type foodMeasure struct {
	DisseminationText string  `json:"disseminationText"`
	GramWeight        float64 `json:"gramWeight"`
}

type detailFood struct {
	FDCID         int64            `json:"fdcId"`
	Description   string           `json:"description"`
	FoodNutrients []detailNutrient `json:"foodNutrients"`
	FoodPortions  []foodPortion    `json:"foodPortions"`
}

type detailNutrient struct {
	Nutrient struct {
		ID int64 `json:"id"`
	} `json:"nutrient"`
	Amount float64 `json:"amount"`
}

type foodPortion struct {
	PortionDescription string  `json:"portionDescription"`
	Modifier           string  `json:"modifier"`
	GramWeight         float64 `json:"gramWeight"`
}

func parseSearchFood(f searchFood) model.NutritionInfo {
	byID := map[int64]float64{}
	for _, n := range f.FoodNutrients {
		byID[n.NutrientID] = n.Value
	}

	info := model.NutritionInfo{
		Name:        strings.TrimSpace(f.Description),
		ServingSize: "100g",
		Calories:    byID[nutrientEnergy],
		ProteinG:    byID[nutrientProtein],
		CarbsG:      byID[nutrientCarbs],
		FatG:        byID[nutrientFat],
		Source:      sourceName,
		SourceID:    fmt.Sprintf("%d", f.FDCID),
	}
	if v, ok := byID[nutrientFiber]; ok {
		info.FiberG = &v
	}
	if v, ok := byID[nutrientSugar]; ok {
		info.SugarG = &v
	}
	if v, ok := byID[nutrientSodium]; ok {
		info.SodiumMg = &v
	}
	for _, m := range f.FoodMeasures {
		desc := strings.TrimSpace(m.DisseminationText)
		if desc == "" || m.GramWeight <= 0 {
			continue
		}
		info.Portions = append(info.Portions, model.Portion{Description: desc, GramWeight: m.GramWeight})
	}
	return info
}

func parseDetailFood(f detailFood) model.NutritionInfo {
	byID := map[int64]float64{}
	for _, n := range f.FoodNutrients {
		byID[n.Nutrient.ID] = n.Amount
	}

	info := model.NutritionInfo{
		Name:        strings.TrimSpace(f.Description),
		ServingSize: "100g",
		Calories:    byID[nutrientEnergy],
		ProteinG:    byID[nutrientProtein],
		CarbsG:      byID[nutrientCarbs],
		FatG:        byID[nutrientFat],
		Source:      sourceName,
		SourceID:    fmt.Sprintf("%d", f.FDCID),
	}
	if v, ok := byID[nutrientFiber]; ok {
		info.FiberG = &v
	}
	if v, ok := byID[nutrientSugar]; ok {
		info.SugarG = &v
	}
	if v, ok := byID[nutrientSodium]; ok {
		info.SodiumMg = &v
	}
	for _, p := range f.FoodPortions {
		desc := strings.TrimSpace(p.PortionDescription)
		if desc == "" {
			desc = strings.TrimSpace(p.Modifier)
		}
		if desc == "" || p.GramWeight <= 0 {
			continue
		}
		info.Portions = append(info.Portions, model.Portion{Description: desc, GramWeight: p.GramWeight})
	}
	return info
}
