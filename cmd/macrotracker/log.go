package macrotracker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/siddhantjain/macro-tracker/internal/tracker"
)

var (
	logQuantity     float64
	logUnit         string
	logCalories     float64
	logProtein      float64
	logCarbs        float64
	logFat          float64
	logDedupeWindow int
	logDryRun       bool
	logJSON         bool
)

var logCmd = &cobra.Command{
	Use:   "log <food name>",
	Short: "Log a food item",
	Long:  "Log a food item. Without --calories the name is resolved through the provider chain and per-100g macros are scaled by the converted gram weight. With --calories the supplied values are recorded as-is for the stated quantity.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := tracker.LogFoodInput{
			Name:                strings.Join(args, " "),
			Quantity:            logQuantity,
			Unit:                logUnit,
			DedupeWindowMinutes: logDedupeWindow,
			DryRun:              logDryRun,
		}
		if cmd.Flags().Changed("calories") {
			in.Calories = &logCalories
		}
		if cmd.Flags().Changed("protein") {
			in.ProteinG = &logProtein
		}
		if cmd.Flags().Changed("carbs") {
			in.CarbsG = &logCarbs
		}
		if cmd.Flags().Changed("fat") {
			in.FatG = &logFat
		}

		return withTracker(func(t *tracker.Tracker) error {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()

			result, err := t.LogFood(ctx, in)
			if err != nil {
				return err
			}
			if logJSON {
				return printJSON(cmd.OutOrStdout(), result)
			}
			printLogResult(cmd, result)
			return nil
		})
	},
}

func printLogResult(cmd *cobra.Command, result *tracker.LogResult) {
	out := cmd.OutOrStdout()
	switch {
	case result.Logged:
		e := result.Entry
		fmt.Fprintf(out, "Logged: %s - %.1f cal, %.1fg protein, %.1fg carbs, %.1fg fat\n",
			e.Name, e.Calories, e.ProteinG, e.CarbsG, e.FatG)
	case result.DryRun:
		e := result.Entry
		fmt.Fprintf(out, "Dry run (not logged): %s - %.1f cal, %.1fg protein, %.1fg carbs, %.1fg fat\n",
			e.Name, e.Calories, e.ProteinG, e.CarbsG, e.FatG)
	default:
		fmt.Fprintln(out, result.Message)
		for _, p := range result.AvailablePortions {
			fmt.Fprintf(out, "  portion: %s = %.0fg\n", p.Description, p.GramWeight)
		}
	}
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.Flags().Float64Var(&logQuantity, "quantity", 1, "Amount consumed")
	logCmd.Flags().StringVar(&logUnit, "unit", "serving", "Unit (g, cup, oz, serving, ...)")
	logCmd.Flags().Float64Var(&logCalories, "calories", 0, "Manual calories for the full quantity (skips lookup)")
	logCmd.Flags().Float64Var(&logProtein, "protein", 0, "Manual protein grams")
	logCmd.Flags().Float64Var(&logCarbs, "carbs", 0, "Manual carb grams")
	logCmd.Flags().Float64Var(&logFat, "fat", 0, "Manual fat grams")
	logCmd.Flags().IntVar(&logDedupeWindow, "dedupe-window", tracker.DefaultDedupeWindowMinutes, "Minutes within which a same-named entry is treated as a duplicate (0 disables)")
	logCmd.Flags().BoolVar(&logDryRun, "dry-run", false, "Compute the entry without persisting it")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "Output JSON")
}
