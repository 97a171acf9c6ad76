package macrotracker

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/siddhantjain/macro-tracker/internal/model"
	"github.com/siddhantjain/macro-tracker/internal/tracker"
)

var (
	goalSetJSON  bool
	goalShowJSON bool
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage daily targets",
}

var goalSetCmd = &cobra.Command{
	Use:   "set <category> <value>",
	Short: "Set one daily target (calories, protein_g, carbs_g, fat_g, water_ml)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.ParseFloat(strings.TrimSpace(args[1]), 64)
		if err != nil {
			return fmt.Errorf("invalid goal value %q", args[1])
		}
		return withTracker(func(t *tracker.Tracker) error {
			goals, err := t.SetGoal(args[0], value)
			if err != nil {
				return err
			}
			if goalSetJSON {
				return printJSON(cmd.OutOrStdout(), goals)
			}
			printGoals(cmd, goals)
			return nil
		})
	},
}

var goalShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(func(t *tracker.Tracker) error {
			goals, err := t.Goals()
			if err != nil {
				return err
			}
			if goalShowJSON {
				return printJSON(cmd.OutOrStdout(), goals)
			}
			printGoals(cmd, goals)
			return nil
		})
	},
}

func printGoals(cmd *cobra.Command, goals model.Goals) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Current Goals:")
	fmt.Fprintf(out, "  calories:  %.0f kcal\n", goals.Calories)
	fmt.Fprintf(out, "  protein_g: %.0fg\n", goals.ProteinG)
	fmt.Fprintf(out, "  carbs_g:   %.0fg\n", goals.CarbsG)
	fmt.Fprintf(out, "  fat_g:     %.0fg\n", goals.FatG)
	fmt.Fprintf(out, "  water_ml:  %.0fml\n", goals.WaterML)
}

func init() {
	rootCmd.AddCommand(goalCmd)
	goalCmd.AddCommand(goalSetCmd, goalShowCmd)

	goalSetCmd.Flags().BoolVar(&goalSetJSON, "json", false, "Output JSON")
	goalShowCmd.Flags().BoolVar(&goalShowJSON, "json", false, "Output JSON")
}
