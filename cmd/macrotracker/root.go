package macrotracker

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dataDir  string
	timezone string
)

var rootCmd = &cobra.Command{
	Use:   "macrotracker",
	Short: "macrotracker logs food and water intake against daily goals",
	Long:  "macrotracker is a single-user nutrition tracking tool built to be driven by an AI assistant or the terminal. It resolves nutrition facts from USDA FoodData Central and Open Food Facts, persists per-day JSON files, and serves a read-only dashboard.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Path to the data directory")
	rootCmd.PersistentFlags().StringVar(&timezone, "tz", "", "Reference timezone for day bucketing")
}
