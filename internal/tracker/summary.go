package tracker

import (
	"fmt"
	"time"

	"github.com/siddhantjain/macro-tracker/internal/model"
)

// FoodTotals aggregates one day's food entries.
type FoodTotals struct {
	Calories float64           `json:"calories"`
	ProteinG float64           `json:"protein_g"`
	CarbsG   float64           `json:"carbs_g"`
	FatG     float64           `json:"fat_g"`
	Entries  []model.FoodEntry `json:"entries"`
}

// WaterTotals aggregates one day's water entries.
type WaterTotals struct {
	TotalML     float64 `json:"total_ml"`
	TotalLiters float64 `json:"total_liters"`
	Glasses     float64 `json:"glasses"`
	Entries     int     `json:"entries"`
}

// Progress is percentage-of-goal for each tracked target, one decimal.
// A zero goal reports zero progress rather than dividing by it.
type Progress struct {
	CaloriesPct float64 `json:"calories_pct"`
	ProteinPct  float64 `json:"protein_pct"`
	CarbsPct    float64 `json:"carbs_pct"`
	FatPct      float64 `json:"fat_pct"`
	WaterPct    float64 `json:"water_pct"`
}

// Summary composes food totals, water totals, goals and progress for
// one calendar day.
type Summary struct {
	Date     string      `json:"date"`
	Timezone string      `json:"timezone"`
	Food     FoodTotals  `json:"food"`
	Water    WaterTotals `json:"water"`
	Goals    model.Goals `json:"goals"`
	Progress Progress    `json:"progress"`
}

// WaterStatus reports one day's water intake against the goal.
type WaterStatus struct {
	Date        string  `json:"date"`
	Timezone    string  `json:"timezone"`
	TotalML     float64 `json:"total_ml"`
	TotalLiters float64 `json:"total_liters"`
	Glasses     float64 `json:"glasses"`
	GoalML      float64 `json:"goal_ml"`
	GoalLiters  float64 `json:"goal_liters"`
	RemainingML float64 `json:"remaining_ml"`
	ProgressPct float64 `json:"progress_pct"`
}

// resolveDay picks the day bucket for a read. The per-call timezone
// override governs bucket selection for that read only; the store's
// reference timezone remains the write-time rule.
func (t *Tracker) resolveDay(day, timezone string) (string, string, error) {
	loc := t.store.Location()
	tzName := loc.String()
	if timezone != "" {
		override, err := time.LoadLocation(timezone)
		if err != nil {
			return "", "", fmt.Errorf("invalid timezone %q: %w", timezone, err)
		}
		loc = override
		tzName = timezone
	}
	if day == "" {
		return t.now().In(loc).Format("2006-01-02"), tzName, nil
	}
	if _, err := time.Parse("2006-01-02", day); err != nil {
		return "", "", fmt.Errorf("invalid day %q (expected YYYY-MM-DD)", day)
	}
	return day, tzName, nil
}

// FoodLog returns all food entries for a day (default: today in the
// query timezone).
func (t *Tracker) FoodLog(day, timezone string) ([]model.FoodEntry, error) {
	d, _, err := t.resolveDay(day, timezone)
	if err != nil {
		return nil, err
	}
	return t.store.FoodLog(d)
}

// GetWaterStatus reports the day's water intake, goal and remainder.
func (t *Tracker) GetWaterStatus(day, timezone string) (*WaterStatus, error) {
	d, tzName, err := t.resolveDay(day, timezone)
	if err != nil {
		return nil, err
	}
	water, err := t.waterTotals(d)
	if err != nil {
		return nil, err
	}
	goals, err := t.store.Goals()
	if err != nil {
		return nil, err
	}
	status := &WaterStatus{
		Date:        d,
		Timezone:    tzName,
		TotalML:     water.TotalML,
		TotalLiters: water.TotalLiters,
		Glasses:     water.Glasses,
		GoalML:      goals.WaterML,
		GoalLiters:  goals.WaterML / 1000,
		RemainingML: 0,
		ProgressPct: pctOf(water.TotalML, goals.WaterML),
	}
	if remaining := goals.WaterML - water.TotalML; remaining > 0 {
		status.RemainingML = round1(remaining)
	}
	return status, nil
}

// GetDailySummary composes food, water, goals and progress for a day.
func (t *Tracker) GetDailySummary(day, timezone string) (*Summary, error) {
	d, tzName, err := t.resolveDay(day, timezone)
	if err != nil {
		return nil, err
	}
	food, err := t.foodTotals(d)
	if err != nil {
		return nil, err
	}
	water, err := t.waterTotals(d)
	if err != nil {
		return nil, err
	}
	goals, err := t.store.Goals()
	if err != nil {
		return nil, err
	}
	return &Summary{
		Date:     d,
		Timezone: tzName,
		Food:     food,
		Water:    water,
		Goals:    goals,
		Progress: Progress{
			CaloriesPct: pctOf(food.Calories, goals.Calories),
			ProteinPct:  pctOf(food.ProteinG, goals.ProteinG),
			CarbsPct:    pctOf(food.CarbsG, goals.CarbsG),
			FatPct:      pctOf(food.FatG, goals.FatG),
			WaterPct:    pctOf(water.TotalML, goals.WaterML),
		},
	}, nil
}

func (t *Tracker) foodTotals(day string) (FoodTotals, error) {
	entries, err := t.store.FoodLog(day)
	if err != nil {
		return FoodTotals{}, err
	}
	totals := FoodTotals{Entries: entries}
	for _, e := range entries {
		totals.Calories += e.Calories
		totals.ProteinG += e.ProteinG
		totals.CarbsG += e.CarbsG
		totals.FatG += e.FatG
	}
	totals.Calories = round1(totals.Calories)
	totals.ProteinG = round1(totals.ProteinG)
	totals.CarbsG = round1(totals.CarbsG)
	totals.FatG = round1(totals.FatG)
	return totals, nil
}

func (t *Tracker) waterTotals(day string) (WaterTotals, error) {
	entries, err := t.store.WaterLog(day)
	if err != nil {
		return WaterTotals{}, err
	}
	var totalML float64
	for _, e := range entries {
		totalML += e.AmountML
	}
	return WaterTotals{
		TotalML:     round1(totalML),
		TotalLiters: round2(totalML / 1000),
		Glasses:     round1(totalML / 237),
		Entries:     len(entries),
	}, nil
}

func pctOf(actual, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return round1(actual / goal * 100)
}
