package macrotracker

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/siddhantjain/macro-tracker/internal/tracker"
)

var (
	statusDate string
	statusJSON bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the daily summary with progress toward goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(func(t *tracker.Tracker) error {
			summary, err := t.GetDailySummary(statusDate, "")
			if err != nil {
				return err
			}
			if statusJSON {
				return printJSON(cmd.OutOrStdout(), summary)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Daily Summary - %s (%s)\n", summary.Date, summary.Timezone)
			fmt.Fprintf(out, "Food:\n")
			fmt.Fprintf(out, "  Calories: %.1f / %.0f kcal (%.1f%%)\n", summary.Food.Calories, summary.Goals.Calories, summary.Progress.CaloriesPct)
			fmt.Fprintf(out, "  Protein:  %.1fg / %.0fg (%.1f%%)\n", summary.Food.ProteinG, summary.Goals.ProteinG, summary.Progress.ProteinPct)
			fmt.Fprintf(out, "  Carbs:    %.1fg\n", summary.Food.CarbsG)
			fmt.Fprintf(out, "  Fat:      %.1fg\n", summary.Food.FatG)
			fmt.Fprintf(out, "Water:\n")
			fmt.Fprintf(out, "  Total: %.2fL / %.1fL (%.1f%%)\n", summary.Water.TotalLiters, summary.Goals.WaterML/1000, summary.Progress.WaterPct)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringVar(&statusDate, "date", "", "Day YYYY-MM-DD (default today)")
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output JSON")
}
