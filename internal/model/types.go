package model

import "time"

// FoodEntry is one logged food consumption event. Macro values are already
// scaled to the logged quantity, never per-100g.
type FoodEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Name      string    `json:"name"`
	Quantity  float64   `json:"quantity"`
	Unit      string    `json:"unit"`
	Grams     *float64  `json:"grams,omitempty"`
	Calories  float64   `json:"calories"`
	ProteinG  float64   `json:"protein_g"`
	CarbsG    float64   `json:"carbs_g"`
	FatG      float64   `json:"fat_g"`
	Source    string    `json:"source"`
	SourceID  string    `json:"source_id,omitempty"`
}

// WaterEntry is one logged water event, amount already converted to ml.
type WaterEntry struct {
	Timestamp time.Time `json:"timestamp"`
	AmountML  float64   `json:"amount_ml"`
}

// Goals is the singleton daily-target record.
type Goals struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	WaterML  float64 `json:"water_ml"`
}

// Portion maps a food-specific serving description to a gram weight,
// e.g. "1 cup, cooked" -> 174.
type Portion struct {
	Description string  `json:"description"`
	GramWeight  float64 `json:"gram_weight"`
}

// NutritionInfo is a provider search result. Macro values are per 100g
// unless the provider states otherwise in ServingSize.
type NutritionInfo struct {
	Name        string    `json:"name"`
	ServingSize string    `json:"serving_size"`
	Calories    float64   `json:"calories"`
	ProteinG    float64   `json:"protein_g"`
	CarbsG      float64   `json:"carbs_g"`
	FatG        float64   `json:"fat_g"`
	FiberG      *float64  `json:"fiber_g,omitempty"`
	SugarG      *float64  `json:"sugar_g,omitempty"`
	SodiumMg    *float64  `json:"sodium_mg,omitempty"`
	Source      string    `json:"source"`
	SourceID    string    `json:"source_id,omitempty"`
	Portions    []Portion `json:"portions,omitempty"`
}
