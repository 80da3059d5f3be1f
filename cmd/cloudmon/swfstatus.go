package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cloudmon/internal/awsapi"
	"cloudmon/internal/config"
	"cloudmon/internal/logging"
	"cloudmon/internal/metrics"
	"cloudmon/internal/mon"
	"cloudmon/internal/workflow"
)

var (
	swfConfigPath  string
	swfSchemaPath  string
	swfLogFile     string
	swfPushGateway string
	swfPrintOnly   bool
	swfJSON        bool
)

var swfStatusCmd = &cobra.Command{
	Use:   "swf-status",
	Short: "Count waiting and zombie workflow tasks per application",
	Long:  "swf-status lists open workflow executions, counts scheduled tasks still waiting for a worker, and detects tasks claimed by worker processes that no longer exist on this host.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(swfConfigPath, swfSchemaPath)
		if err != nil {
			return err
		}
		logger := logging.New()
		ctx := logging.NewContext(context.Background(), logger)

		writer, cleanup, err := newReportWriters(swfPrintOnly, swfJSON, swfLogFile)
		if err != nil {
			return err
		}
		defer cleanup()

		var source *awsapi.SWFSource
		if cfg.CredentialsFile != "" {
			awsCfg, err := awsapi.LoadConfig(ctx, cfg.Region, cfg.CredentialsFile)
			if err != nil {
				return err
			}
			source = awsapi.NewSWFSource(awsCfg)
		}

		collector := metrics.NewCollector()
		monitor := &mon.SWFMonitor{
			Config:  cfg,
			Writer:  writer,
			Metrics: collector,
			Logger:  logger,
			Probe:   workflow.LocalProbe{},
		}
		if source != nil {
			monitor.Source = source
			monitor.History = source
		}
		_, checkErrs, err := monitor.Run(ctx)
		if err != nil {
			return err
		}
		if len(checkErrs) > 0 {
			for _, ce := range checkErrs {
				fmt.Fprintf(os.Stderr, "%s: %s\n", ce.Subject, ce.Body)
			}
			return fmt.Errorf("missing required inputs")
		}

		if swfPushGateway != "" {
			return metrics.Push(swfPushGateway, "cloudmon-swf-status", collector)
		}
		return nil
	},
}

func init() {
	swfStatusCmd.Flags().StringVar(&swfConfigPath, "config", "config/monitor.yaml", "Path to monitor configuration YAML")
	swfStatusCmd.Flags().StringVar(&swfSchemaPath, "schema", "schemas/monitor.cue", "Path to CUE schema file")
	swfStatusCmd.Flags().StringVar(&swfLogFile, "log-file", "", "Path prefix to export report rows (JSONL)")
	swfStatusCmd.Flags().StringVar(&swfPushGateway, "pushgateway", "", "Prometheus Pushgateway URL to push run metrics to")
	swfStatusCmd.Flags().BoolVar(&swfPrintOnly, "print-only", false, "Print the report to STDOUT instead of writing to DB")
	swfStatusCmd.Flags().BoolVar(&swfJSON, "json", false, "Emit the report as JSON lines instead of styled output")
}
