package tracker

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/siddhantjain/macro-tracker/internal/model"
	"github.com/siddhantjain/macro-tracker/internal/provider"
	"github.com/siddhantjain/macro-tracker/internal/store"
)

// DefaultDedupeWindowMinutes is the trailing window within which a
// same-named entry is treated as a likely duplicate.
const DefaultDedupeWindowMinutes = 5

const searchLimit = 1

// Tracker combines provider lookup, unit conversion, deduplication and
// storage into single logical operations. Every operation runs to
// completion before returning; all state lives in the store.
type Tracker struct {
	provider provider.Provider
	store    *store.Store
	now      func() time.Time
}

func New(p provider.Provider, s *store.Store) *Tracker {
	return &Tracker{provider: p, store: s, now: time.Now}
}

type LogFoodInput struct {
	Name                string
	Quantity            float64
	Unit                string
	Calories            *float64
	ProteinG            *float64
	CarbsG              *float64
	FatG                *float64
	DedupeWindowMinutes int
	DryRun              bool
}

// LogFood logs one food item. Manual macros bypass lookup entirely and
// are recorded as-is for the full stated quantity; otherwise the first
// provider match is scaled from per-100g values by resolved grams.
// Recoverable conditions come back inside the LogResult; the error
// return is reserved for storage faults.
func (t *Tracker) LogFood(ctx context.Context, in LogFoodInput) (*LogResult, error) {
	entry, failure, err := t.computeFood(ctx, in, t.now())
	if err != nil {
		return nil, err
	}
	if failure != nil {
		return failure, nil
	}
	if in.DryRun {
		return &LogResult{DryRun: true, Entry: &entry}, nil
	}
	if err := t.store.AppendFood(entry); err != nil {
		return nil, err
	}
	return &LogResult{Logged: true, Entry: &entry}, nil
}

// computeFood runs the full log_food pipeline up to (but excluding) the
// write: dedupe scan, lookup or manual macros, gram resolution, scaling.
func (t *Tracker) computeFood(ctx context.Context, in LogFoodInput, ts time.Time) (model.FoodEntry, *LogResult, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.FoodEntry{}, nil, fmt.Errorf("food name is required")
	}
	quantity := in.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = "serving"
	}

	if in.DedupeWindowMinutes > 0 {
		existing, err := t.findRecentDuplicate(name, ts, time.Duration(in.DedupeWindowMinutes)*time.Minute)
		if err != nil {
			return model.FoodEntry{}, nil, err
		}
		if existing != nil {
			return model.FoodEntry{}, &LogResult{
				Error:         OutcomeDuplicateDetected,
				ExistingEntry: existing,
				Message: fmt.Sprintf("%q was already logged at %s, within the last %d minutes. Pass dedupe_window_minutes=0 to log it anyway.",
					existing.Name, existing.Timestamp.Format(time.RFC3339), in.DedupeWindowMinutes),
			}, nil
		}
	}

	entry := model.FoodEntry{
		Timestamp: ts.UTC(),
		Name:      name,
		Quantity:  quantity,
		Unit:      unit,
	}

	if in.Calories != nil {
		// Manual macros are already for the full stated quantity.
		entry.Calories = round1(*in.Calories)
		entry.ProteinG = round1(deref(in.ProteinG))
		entry.CarbsG = round1(deref(in.CarbsG))
		entry.FatG = round1(deref(in.FatG))
		entry.Source = "manual"
		if isMassUnit(unit) {
			grams := quantity
			entry.Grams = &grams
		}
		return entry, nil, nil
	}

	results, err := t.provider.Search(ctx, name, searchLimit)
	if err != nil || len(results) == 0 {
		return model.FoodEntry{}, &LogResult{
			Error:    OutcomeFoodNotFound,
			Name:     name,
			Quantity: quantity,
			Unit:     unit,
			Message:  fmt.Sprintf("Could not find nutrition info for %q. Provide calories/protein/carbs/fat manually, or retry with different text.", name),
		}, nil
	}
	info := results[0]

	grams, err := ResolveGrams(quantity, unit, info.Portions)
	if err != nil {
		var pnf *PortionNotFoundError
		if errors.As(err, &pnf) {
			return model.FoodEntry{}, &LogResult{
				Error:             OutcomePortionNotFound,
				Name:              name,
				Quantity:          quantity,
				Unit:              unit,
				AvailablePortions: pnf.Portions,
				Message:           fmt.Sprintf("Cannot convert %g %s of %q to grams. %s", quantity, unit, info.Name, pnf.Error()),
			}, nil
		}
		return model.FoodEntry{}, nil, err
	}

	factor := grams / 100
	entry.Grams = &grams
	entry.Calories = round1(info.Calories * factor)
	entry.ProteinG = round1(info.ProteinG * factor)
	entry.CarbsG = round1(info.CarbsG * factor)
	entry.FatG = round1(info.FatG * factor)
	entry.Source = info.Source
	entry.SourceID = info.SourceID
	return entry, nil, nil
}

func (t *Tracker) findRecentDuplicate(name string, ts time.Time, window time.Duration) (*model.FoodEntry, error) {
	entries, err := t.store.FoodLog(t.store.DayOf(ts))
	if err != nil {
		return nil, err
	}
	cutoff := ts.Add(-window)
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if strings.EqualFold(e.Name, name) && !e.Timestamp.Before(cutoff) && !e.Timestamp.After(ts) {
			return &e, nil
		}
	}
	return nil, nil
}

type MealItem struct {
	Name     string   `json:"name"`
	Quantity float64  `json:"quantity"`
	Unit     string   `json:"unit"`
	Calories *float64 `json:"calories,omitempty"`
	ProteinG *float64 `json:"protein_g,omitempty"`
	CarbsG   *float64 `json:"carbs_g,omitempty"`
	FatG     *float64 `json:"fat_g,omitempty"`
}

// LogMeal applies the full log_food pipeline to each item, writing
// nothing unless every item validates. Any per-item failure (including
// a detected duplicate) aborts the whole call and is reported in Failed.
func (t *Tracker) LogMeal(ctx context.Context, items []MealItem, mealName string, dedupeWindowMinutes int, dryRun bool) (*MealResult, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("meal requires at least one item")
	}
	now := t.now()
	result := &MealResult{MealName: strings.TrimSpace(mealName), DryRun: dryRun}
	entries := make([]model.FoodEntry, 0, len(items))

	for i, item := range items {
		in := LogFoodInput{
			Name:                item.Name,
			Quantity:            item.Quantity,
			Unit:                item.Unit,
			Calories:            item.Calories,
			ProteinG:            item.ProteinG,
			CarbsG:              item.CarbsG,
			FatG:                item.FatG,
			DedupeWindowMinutes: dedupeWindowMinutes,
		}
		// Staggered timestamps keep delete-by-timestamp unambiguous.
		entry, failure, err := t.computeFood(ctx, in, now.Add(time.Duration(i)*time.Millisecond))
		if err != nil {
			return nil, err
		}
		if failure != nil {
			result.Failed = append(result.Failed, MealItemFailure{
				Index:             i,
				Name:              strings.TrimSpace(item.Name),
				Error:             failure.Error,
				Message:           failure.Message,
				AvailablePortions: failure.AvailablePortions,
			})
			continue
		}
		entries = append(entries, entry)
	}

	if len(result.Failed) > 0 {
		result.Message = fmt.Sprintf("%d of %d items failed validation; nothing was logged.", len(result.Failed), len(items))
		return result, nil
	}

	for _, e := range entries {
		result.Total.Calories = round1(result.Total.Calories + e.Calories)
		result.Total.ProteinG = round1(result.Total.ProteinG + e.ProteinG)
		result.Total.CarbsG = round1(result.Total.CarbsG + e.CarbsG)
		result.Total.FatG = round1(result.Total.FatG + e.FatG)
	}
	result.Entries = entries
	if dryRun {
		return result, nil
	}
	for _, e := range entries {
		if err := t.store.AppendFood(e); err != nil {
			return nil, err
		}
	}
	result.Logged = true
	return result, nil
}

// LogWater converts the amount to ml via the fixed water unit table and
// persists it. Unknown units come back as an invalid_unit outcome.
func (t *Tracker) LogWater(amount float64, unit string) (*WaterResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("water amount must be > 0")
	}
	ml, err := WaterToML(amount, unit)
	if err != nil {
		var iu *InvalidUnitError
		if errors.As(err, &iu) {
			return &WaterResult{
				Error:   OutcomeInvalidUnit,
				Message: fmt.Sprintf("Unrecognized water unit %q. Supported: ml, l, glass, oz, cup.", unit),
			}, nil
		}
		return nil, err
	}
	entry := model.WaterEntry{Timestamp: t.now().UTC(), AmountML: round1(ml)}
	if err := t.store.AppendWater(entry); err != nil {
		return nil, err
	}
	return &WaterResult{Logged: true, Entry: &entry}, nil
}

// RecentEntries returns today's food entries whose timestamps fall in
// the trailing window. Automated callers use it to inspect state before
// deciding whether to log again.
func (t *Tracker) RecentEntries(minutes int) ([]model.FoodEntry, error) {
	if minutes <= 0 {
		return []model.FoodEntry{}, nil
	}
	now := t.now()
	entries, err := t.store.FoodLog(t.store.DayOf(now))
	if err != nil {
		return nil, err
	}
	cutoff := now.Add(-time.Duration(minutes) * time.Minute)
	recent := make([]model.FoodEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Timestamp.Before(cutoff) && !e.Timestamp.After(now) {
			recent = append(recent, e)
		}
	}
	return recent, nil
}

// DeleteEntry removes the food entry with the exact timestamp. A
// timestamp with no match reports not_found, including on repeat
// deletes of an already-removed entry.
func (t *Tracker) DeleteEntry(ts time.Time) (*DeleteResult, error) {
	removed, err := t.store.DeleteFood(ts)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &DeleteResult{
				Timestamp: ts.UTC().Format(time.RFC3339Nano),
				Error:     OutcomeNotFound,
				Message:   fmt.Sprintf("No entry found with timestamp %s.", ts.UTC().Format(time.RFC3339Nano)),
			}, nil
		}
		return nil, err
	}
	return &DeleteResult{
		Timestamp: ts.UTC().Format(time.RFC3339Nano),
		Deleted:   true,
		Entry:     &removed,
	}, nil
}

// DeleteEntries aggregates per-timestamp outcomes into one result set.
func (t *Tracker) DeleteEntries(timestamps []time.Time) ([]DeleteResult, error) {
	results := make([]DeleteResult, 0, len(timestamps))
	for _, ts := range timestamps {
		r, err := t.DeleteEntry(ts)
		if err != nil {
			return nil, err
		}
		results = append(results, *r)
	}
	return results, nil
}

// SearchFood exposes the provider search. Lookup failures surface as an
// empty result set, the same as no match.
func (t *Tracker) SearchFood(ctx context.Context, query string, limit int) []model.NutritionInfo {
	if limit <= 0 {
		limit = 5
	}
	results, err := t.provider.Search(ctx, query, limit)
	if err != nil {
		return []model.NutritionInfo{}
	}
	if results == nil {
		results = []model.NutritionInfo{}
	}
	return results
}

// GetFoodByID fetches full provider detail (including portion tables)
// for a previously returned source id.
func (t *Tracker) GetFoodByID(ctx context.Context, id string) (*model.NutritionInfo, error) {
	return t.provider.GetByID(ctx, id)
}

var goalCategories = map[string]bool{
	"calories":  true,
	"protein_g": true,
	"carbs_g":   true,
	"fat_g":     true,
	"water_ml":  true,
}

// SetGoal updates one target on the singleton goals record and returns
// the updated record.
func (t *Tracker) SetGoal(category string, value float64) (model.Goals, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	if !goalCategories[category] {
		return model.Goals{}, fmt.Errorf("unknown goal category %q (expected calories, protein_g, carbs_g, fat_g or water_ml)", category)
	}
	if value < 0 {
		return model.Goals{}, fmt.Errorf("goal value must be >= 0")
	}
	goals, err := t.store.Goals()
	if err != nil {
		return model.Goals{}, err
	}
	switch category {
	case "calories":
		goals.Calories = value
	case "protein_g":
		goals.ProteinG = value
	case "carbs_g":
		goals.CarbsG = value
	case "fat_g":
		goals.FatG = value
	case "water_ml":
		goals.WaterML = value
	}
	if err := t.store.SaveGoals(goals); err != nil {
		return model.Goals{}, err
	}
	return goals, nil
}

func (t *Tracker) Goals() (model.Goals, error) {
	return t.store.Goals()
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
