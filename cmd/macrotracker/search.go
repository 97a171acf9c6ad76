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
	searchLimit int
	searchID    string
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search nutrition providers for a food",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		if searchID == "" && query == "" {
			return fmt.Errorf("a search query or --id is required")
		}
		return withTracker(func(t *tracker.Tracker) error {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()

			if searchID != "" {
				info, err := t.GetFoodByID(ctx, searchID)
				if err != nil {
					return err
				}
				if searchJSON {
					return printJSON(cmd.OutOrStdout(), info)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s): %.0f cal, %.1fg protein, %.1fg carbs, %.1fg fat per %s\n",
					info.Name, info.SourceID, info.Calories, info.ProteinG, info.CarbsG, info.FatG, info.ServingSize)
				for _, p := range info.Portions {
					fmt.Fprintf(cmd.OutOrStdout(), "  portion: %s = %.0fg\n", p.Description, p.GramWeight)
				}
				return nil
			}

			results := t.SearchFood(ctx, query, searchLimit)
			if searchJSON {
				return printJSON(cmd.OutOrStdout(), results)
			}
			if len(results) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No results for %q\n", query)
				return nil
			}
			for _, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s [%s %s]: %.0f cal, %.1fg protein, %.1fg carbs, %.1fg fat per %s\n",
					r.Name, r.Source, r.SourceID, r.Calories, r.ProteinG, r.CarbsG, r.FatG, r.ServingSize)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVar(&searchLimit, "limit", 5, "Max results to return")
	searchCmd.Flags().StringVar(&searchID, "id", "", "Fetch provider detail (with portions) by source id")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output JSON")
}
