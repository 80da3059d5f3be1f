package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cloudmon",
	Short: "AWS monitoring report toolkit",
	Long:  "cloudmon polls AWS infrastructure and produces periodic health and task status reports for scheduled runs.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(elbHealthCmd)
	rootCmd.AddCommand(swfStatusCmd)
	rootCmd.AddCommand(dashboardCmd)
}
