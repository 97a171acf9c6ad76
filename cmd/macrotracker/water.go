package macrotracker

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/siddhantjain/macro-tracker/internal/tracker"
)

var (
	waterJSON       bool
	waterStatusDate string
	waterStatusJSON bool
)

var waterCmd = &cobra.Command{
	Use:   "water <amount> [unit]",
	Short: "Log water intake",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
		if err != nil || amount <= 0 {
			return fmt.Errorf("invalid amount %q", args[0])
		}
		unit := "ml"
		if len(args) > 1 {
			unit = args[1]
		}
		return withTracker(func(t *tracker.Tracker) error {
			result, err := t.LogWater(amount, unit)
			if err != nil {
				return err
			}
			if waterJSON {
				return printJSON(cmd.OutOrStdout(), result)
			}
			if !result.Logged {
				fmt.Fprintln(cmd.OutOrStdout(), result.Message)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged: %.0fml water\n", result.Entry.AmountML)

			status, err := t.GetWaterStatus("", "")
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Today: %.0fml / %.0fml (%.1f%%)\n", status.TotalML, status.GoalML, status.ProgressPct)
			return nil
		})
	},
}

var waterStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show water intake for a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(func(t *tracker.Tracker) error {
			status, err := t.GetWaterStatus(waterStatusDate, "")
			if err != nil {
				return err
			}
			if waterStatusJSON {
				return printJSON(cmd.OutOrStdout(), status)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Water %s: %.0fml (%.1f glasses)\n", status.Date, status.TotalML, status.Glasses)
			fmt.Fprintf(out, "  Goal: %.0fml\n", status.GoalML)
			fmt.Fprintf(out, "  Remaining: %.0fml\n", status.RemainingML)
			fmt.Fprintf(out, "  Progress: %.1f%%\n", status.ProgressPct)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(waterCmd)
	waterCmd.AddCommand(waterStatusCmd)

	waterCmd.Flags().BoolVar(&waterJSON, "json", false, "Output JSON")
	waterStatusCmd.Flags().StringVar(&waterStatusDate, "date", "", "Day YYYY-MM-DD (default today)")
	waterStatusCmd.Flags().BoolVar(&waterStatusJSON, "json", false, "Output JSON")
}
