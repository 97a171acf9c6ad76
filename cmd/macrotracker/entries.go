package macrotracker

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/siddhantjain/macro-tracker/internal/model"
	"github.com/siddhantjain/macro-tracker/internal/tracker"
)

var (
	entriesDate   string
	entriesJSON   bool
	recentMinutes int
	recentJSON    bool
	deleteJSON    bool
)

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "List and manage logged food entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(func(t *tracker.Tracker) error {
			entries, err := t.FoodLog(entriesDate, "")
			if err != nil {
				return err
			}
			if entriesJSON {
				return printJSON(cmd.OutOrStdout(), entries)
			}
			printEntries(cmd, entries)
			return nil
		})
	},
}

var entriesRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show entries logged within the trailing window",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(func(t *tracker.Tracker) error {
			entries, err := t.RecentEntries(recentMinutes)
			if err != nil {
				return err
			}
			if recentJSON {
				return printJSON(cmd.OutOrStdout(), entries)
			}
			printEntries(cmd, entries)
			return nil
		})
	},
}

var entriesDeleteCmd = &cobra.Command{
	Use:   "delete <timestamp>...",
	Short: "Delete entries by exact RFC3339 timestamp",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		timestamps := make([]time.Time, 0, len(args))
		for _, arg := range args {
			ts, err := parseTimestampArg(arg)
			if err != nil {
				return err
			}
			timestamps = append(timestamps, ts)
		}
		return withTracker(func(t *tracker.Tracker) error {
			results, err := t.DeleteEntries(timestamps)
			if err != nil {
				return err
			}
			if deleteJSON {
				return printJSON(cmd.OutOrStdout(), results)
			}
			for _, r := range results {
				if r.Deleted {
					fmt.Fprintf(cmd.OutOrStdout(), "Deleted: %s (%s)\n", r.Entry.Name, r.Timestamp)
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), r.Message)
				}
			}
			return nil
		})
	},
}

func printEntries(cmd *cobra.Command, entries []model.FoodEntry) {
	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No entries")
		return
	}
	fmt.Fprintln(out, "TIMESTAMP\tNAME\tQTY\tKCAL\tP\tC\tF")
	for _, e := range entries {
		fmt.Fprintf(out, "%s\t%s\t%g %s\t%.1f\t%.1f\t%.1f\t%.1f\n",
			e.Timestamp.Format(time.RFC3339Nano), e.Name, e.Quantity, e.Unit, e.Calories, e.ProteinG, e.CarbsG, e.FatG)
	}
}

func init() {
	rootCmd.AddCommand(entriesCmd)
	entriesCmd.AddCommand(entriesRecentCmd, entriesDeleteCmd)

	entriesCmd.Flags().StringVar(&entriesDate, "date", "", "Day YYYY-MM-DD (default today)")
	entriesCmd.Flags().BoolVar(&entriesJSON, "json", false, "Output JSON")
	entriesRecentCmd.Flags().IntVar(&recentMinutes, "minutes", 60, "Trailing window in minutes")
	entriesRecentCmd.Flags().BoolVar(&recentJSON, "json", false, "Output JSON")
	entriesDeleteCmd.Flags().BoolVar(&deleteJSON, "json", false, "Output JSON")
}
