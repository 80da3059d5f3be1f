package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus/push"
)

// Push delivers the collector's current state to a Prometheus Pushgateway.
// Runs are one-shot cron invocations, so push is the delivery model rather
// than a scrape endpoint.
func Push(gatewayURL, job string, c *Collector) error {
	if err := push.New(gatewayURL, job).Collector(c).Push(); err != nil {
		return fmt.Errorf("cannot push metrics to %s: %w", gatewayURL, err)
	}
	return nil
}
