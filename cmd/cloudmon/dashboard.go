package main

import (
	"github.com/spf13/cobra"

	"cloudmon/internal/dashboard"
)

var dashboardOutDir string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Render Grafana dashboards for the report tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboard.Render(dashboardOutDir)
	},
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardOutDir, "out", "build", "Output directory for rendered dashboards")
}
