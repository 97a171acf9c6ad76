package tracker

import "github.com/siddhantjain/macro-tracker/internal/model"

// Outcome kinds. All are caller-recoverable conditions, returned as
// values the caller branches on, never as process faults.
const (
	OutcomeFoodNotFound      = "food_not_found"
	OutcomePortionNotFound   = "portion_not_found"
	OutcomeInvalidUnit       = "invalid_unit"
	OutcomeDuplicateDetected = "duplicate_detected"
	OutcomeNotFound          = "not_found"
)

// LogResult is the structured outcome of a single food-logging attempt.
// Exactly one of these holds: Logged is true and Entry is set; DryRun is
// true and Entry carries the computed would-be entry; Error names a
// recoverable failure with its retry payload.
type LogResult struct {
	Logged            bool             `json:"logged"`
	DryRun            bool             `json:"dry_run,omitempty"`
	Entry             *model.FoodEntry `json:"entry,omitempty"`
	Error             string           `json:"error,omitempty"`
	Message           string           `json:"message,omitempty"`
	Name              string           `json:"name,omitempty"`
	Quantity          float64          `json:"quantity,omitempty"`
	Unit              string           `json:"unit,omitempty"`
	AvailablePortions []model.Portion  `json:"available_portions,omitempty"`
	ExistingEntry     *model.FoodEntry `json:"existing_entry,omitempty"`
}

// MealItemFailure identifies which meal item blocked an atomic log_meal.
type MealItemFailure struct {
	Index             int             `json:"index"`
	Name              string          `json:"name"`
	Error             string          `json:"error"`
	Message           string          `json:"message"`
	AvailablePortions []model.Portion `json:"available_portions,omitempty"`
}

// MacroTotals aggregates macros across a meal's items.
type MacroTotals struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// MealResult is the structured outcome of a log_meal call. Nothing is
// persisted unless Logged (or the dry-run computation) covers every item.
type MealResult struct {
	Logged   bool              `json:"logged"`
	DryRun   bool              `json:"dry_run,omitempty"`
	MealName string            `json:"meal_name,omitempty"`
	Entries  []model.FoodEntry `json:"entries,omitempty"`
	Total    MacroTotals       `json:"total"`
	Failed   []MealItemFailure `json:"failed,omitempty"`
	Message  string            `json:"message,omitempty"`
}

// WaterResult is the structured outcome of a log_water call.
type WaterResult struct {
	Logged  bool              `json:"logged"`
	Entry   *model.WaterEntry `json:"entry,omitempty"`
	Error   string            `json:"error,omitempty"`
	Message string            `json:"message,omitempty"`
}

// DeleteResult reports one delete-by-timestamp attempt.
type DeleteResult struct {
	Timestamp string           `json:"timestamp"`
	Deleted   bool             `json:"deleted"`
	Entry     *model.FoodEntry `json:"entry,omitempty"`
	Error     string           `json:"error,omitempty"`
	Message   string           `json:"message,omitempty"`
}
