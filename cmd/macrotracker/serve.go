package macrotracker

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/siddhantjain/macro-tracker/internal/server"
	"github.com/siddhantjain/macro-tracker/internal/tracker"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the read-only dashboard and JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		port := cfg.Port
		if cmd.Flags().Changed("port") {
			port = servePort
		}
		return withTracker(func(t *tracker.Tracker) error {
			fmt.Fprintf(cmd.OutOrStdout(), "Macro tracker dashboard on http://127.0.0.1:%d\n", port)
			return server.New(t, cfg.DashboardToken).Run(port)
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", 8787, "Port to listen on")
}
