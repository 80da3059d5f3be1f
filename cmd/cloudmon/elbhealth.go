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
)

var (
	elbConfigPath  string
	elbSchemaPath  string
	elbLogFile     string
	elbPushGateway string
	elbPrintOnly   bool
	elbJSON        bool
)

var elbHealthCmd = &cobra.Command{
	Use:   "elb-health",
	Short: "Report load balancer instance health by availability zone",
	Long:  "elb-health polls registered instance health for one ELB, aggregates it per zone, and appends unhealthy instances to the anomaly log.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(elbConfigPath, elbSchemaPath)
		if err != nil {
			return err
		}
		logger := logging.New()
		ctx := logging.NewContext(context.Background(), logger)

		writer, cleanup, err := newReportWriters(elbPrintOnly, elbJSON, elbLogFile)
		if err != nil {
			return err
		}
		defer cleanup()

		// The AWS client is only built when a credentials path is configured;
		// the monitor's required-input checks report the gap otherwise.
		var source mon.InstanceHealthSource
		if cfg.CredentialsFile != "" {
			awsCfg, err := awsapi.LoadConfig(ctx, cfg.Region, cfg.CredentialsFile)
			if err != nil {
				return err
			}
			source = awsapi.NewELBSource(awsCfg)
		}

		collector := metrics.NewCollector()
		monitor := &mon.ELBMonitor{
			Config:  cfg,
			Source:  source,
			Writer:  writer,
			Metrics: collector,
			Logger:  logger,
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

		if elbPushGateway != "" {
			return metrics.Push(elbPushGateway, "cloudmon-elb-health", collector)
		}
		return nil
	},
}

func init() {
	elbHealthCmd.Flags().StringVar(&elbConfigPath, "config", "config/monitor.yaml", "Path to monitor configuration YAML")
	elbHealthCmd.Flags().StringVar(&elbSchemaPath, "schema", "schemas/monitor.cue", "Path to CUE schema file")
	elbHealthCmd.Flags().StringVar(&elbLogFile, "log-file", "", "Path prefix to export report rows (JSONL)")
	elbHealthCmd.Flags().StringVar(&elbPushGateway, "pushgateway", "", "Prometheus Pushgateway URL to push run metrics to")
	elbHealthCmd.Flags().BoolVar(&elbPrintOnly, "print-only", false, "Print the report to STDOUT instead of writing to DB")
	elbHealthCmd.Flags().BoolVar(&elbJSON, "json", false, "Emit the report as JSON lines instead of styled output")
}
