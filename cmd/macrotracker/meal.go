package macrotracker

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/siddhantjain/macro-tracker/internal/tracker"
)

var (
	mealName         string
	mealItems        []string
	mealItemsJSON    string
	mealDedupeWindow int
	mealDryRun       bool
	mealJSON         bool
)

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Log several foods as one atomic meal",
	Long:  "Log several foods at once. Every item is validated before anything is written; if any item fails lookup or unit conversion the whole meal is rejected and the failing items are reported.",
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := collectMealItems()
		if err != nil {
			return err
		}
		return withTracker(func(t *tracker.Tracker) error {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			result, err := t.LogMeal(ctx, items, mealName, mealDedupeWindow, mealDryRun)
			if err != nil {
				return err
			}
			if mealJSON {
				return printJSON(cmd.OutOrStdout(), result)
			}
			printMealResult(cmd, result)
			return nil
		})
	},
}

func collectMealItems() ([]tracker.MealItem, error) {
	if mealItemsJSON != "" {
		var items []tracker.MealItem
		if err := json.Unmarshal([]byte(mealItemsJSON), &items); err != nil {
			return nil, fmt.Errorf("decode --items-json: %w", err)
		}
		return items, nil
	}
	items := make([]tracker.MealItem, 0, len(mealItems))
	for _, raw := range mealItems {
		item, err := parseMealItem(raw)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("at least one --item or --items-json is required")
	}
	return items, nil
}

// parseMealItem accepts "name", "name:quantity" or "name:quantity:unit".
func parseMealItem(raw string) (tracker.MealItem, error) {
	parts := strings.Split(raw, ":")
	item := tracker.MealItem{Name: strings.TrimSpace(parts[0]), Quantity: 1, Unit: "serving"}
	if item.Name == "" {
		return tracker.MealItem{}, fmt.Errorf("invalid --item %q: empty name", raw)
	}
	if len(parts) > 1 {
		q, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil || q <= 0 {
			return tracker.MealItem{}, fmt.Errorf("invalid --item %q: bad quantity", raw)
		}
		item.Quantity = q
	}
	if len(parts) > 2 {
		item.Unit = strings.TrimSpace(parts[2])
	}
	if len(parts) > 3 {
		return tracker.MealItem{}, fmt.Errorf("invalid --item %q (expected name:quantity:unit)", raw)
	}
	return item, nil
}

func printMealResult(cmd *cobra.Command, result *tracker.MealResult) {
	out := cmd.OutOrStdout()
	if len(result.Failed) > 0 {
		fmt.Fprintln(out, result.Message)
		for _, f := range result.Failed {
			fmt.Fprintf(out, "  item %d (%s): %s\n", f.Index+1, f.Name, f.Message)
			for _, p := range f.AvailablePortions {
				fmt.Fprintf(out, "    portion: %s = %.0fg\n", p.Description, p.GramWeight)
			}
		}
		return
	}
	verb := "Logged"
	if result.DryRun {
		verb = "Dry run (not logged)"
	}
	name := result.MealName
	if name == "" {
		name = "meal"
	}
	fmt.Fprintf(out, "%s: %s with %d items - %.1f cal, %.1fg protein, %.1fg carbs, %.1fg fat total\n",
		verb, name, len(result.Entries), result.Total.Calories, result.Total.ProteinG, result.Total.CarbsG, result.Total.FatG)
}

func init() {
	rootCmd.AddCommand(mealCmd)
	mealCmd.Flags().StringVar(&mealName, "name", "", "Meal name")
	mealCmd.Flags().StringArrayVar(&mealItems, "item", nil, "Meal item as name:quantity:unit (repeatable)")
	mealCmd.Flags().StringVar(&mealItemsJSON, "items-json", "", "Meal items as a JSON array (assistant-friendly)")
	mealCmd.Flags().IntVar(&mealDedupeWindow, "dedupe-window", tracker.DefaultDedupeWindowMinutes, "Duplicate detection window in minutes (0 disables)")
	mealCmd.Flags().BoolVar(&mealDryRun, "dry-run", false, "Validate and compute without persisting")
	mealCmd.Flags().BoolVar(&mealJSON, "json", false, "Output JSON")
}
