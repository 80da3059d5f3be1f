package mon

import (
	"context"
	"encoding/json"
	"log"

	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	ingesterContext "github.com/GreptimeTeam/greptimedb-ingester-go/context"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"

	"cloudmon/internal/report"
)

// GreptimeDBWriter writes report rows to GreptimeDB via the ingester client.
type GreptimeDBWriter struct {
	client greptime.Client
	db     string
}

// NewGreptimeDBWriter creates a new GreptimeDB writer and auto-creates the
// report tables if needed.
func NewGreptimeDBWriter(endpoint, database string) (*GreptimeDBWriter, error) {
	ctx := ingesterContext.NewContext(context.Background())
	client, err := greptime.NewClient(ctx, &greptime.Config{
		Endpoint: endpoint,
	})
	if err != nil {
		return nil, err
	}

	ddls := []string{
		`
CREATE TABLE IF NOT EXISTS ` + report.HealthTableName + ` (
  run_id STRING TAG,
  elb_name STRING TAG,
  total BIGINT,
  average DOUBLE,
  minimum BIGINT,
  zones BIGINT,
  healthy_zones BIGINT,
  unhealthy_zones BIGINT,
  per_zone STRING,
  ts TIMESTAMP TIME INDEX
) WITH (ttl='90d')
`,
		`
CREATE TABLE IF NOT EXISTS ` + report.TaskStatTableName + ` (
  run_id STRING TAG,
  domain STRING TAG,
  metric STRING TAG,
  app STRING,
  kind STRING,
  count BIGINT,
  ts TIMESTAMP TIME INDEX
) WITH (ttl='90d')
`,
	}
	for _, ddl := range ddls {
		if _, err := client.SQL(ctx, ddl); err != nil {
			return nil, err
		}
	}

	return &GreptimeDBWriter{client: client, db: database}, nil
}

// WriteHealthReport inserts a single health report row.
func (w *GreptimeDBWriter) WriteHealthReport(row report.HealthRow) error {
	ctx := ingesterContext.NewContext(context.Background())

	perZone, err := json.Marshal(row.PerZone)
	if err != nil {
		return err
	}

	tbl := table.New(report.HealthTableName)
	tbl.AddTagColumn("run_id", types.StringType, 0)
	tbl.AddTagColumn("elb_name", types.StringType, 0)
	tbl.AddFieldColumn("total", types.Int64Type)
	tbl.AddFieldColumn("average", types.Float64Type)
	tbl.AddFieldColumn("minimum", types.Int64Type)
	tbl.AddFieldColumn("zones", types.Int64Type)
	tbl.AddFieldColumn("healthy_zones", types.Int64Type)
	tbl.AddFieldColumn("unhealthy_zones", types.Int64Type)
	tbl.AddFieldColumn("per_zone", types.StringType)
	tbl.SetTimeIndex("ts", types.TimestampType)

	tbl.AppendTagValue("run_id", row.RunID)
	tbl.AppendTagValue("elb_name", row.ELBName)
	tbl.AppendFieldValue("total", int64(row.Total))
	tbl.AppendFieldValue("average", row.Average)
	tbl.AppendFieldValue("minimum", int64(row.Minimum))
	tbl.AppendFieldValue("zones", int64(row.Zones))
	tbl.AppendFieldValue("healthy_zones", int64(row.HealthyZones))
	tbl.AppendFieldValue("unhealthy_zones", int64(row.UnhealthyZones))
	tbl.AppendFieldValue("per_zone", string(perZone))
	tbl.AppendTimeIndex(row.Timestamp)

	if err := w.client.Write(ctx, w.db, []*table.Table{tbl}); err != nil {
		log.Printf("[GreptimeDBWriter] health report write failed: %v", err)
		return err
	}
	return nil
}

// WriteTaskStats inserts task statistic rows.
func (w *GreptimeDBWriter) WriteTaskStats(rows []report.TaskStatRow) error {
	if len(rows) == 0 {
		return nil
	}
	ctx := ingesterContext.NewContext(context.Background())

	tbl := table.New(report.TaskStatTableName)
	tbl.AddTagColumn("run_id", types.StringType, 0)
	tbl.AddTagColumn("domain", types.StringType, 0)
	tbl.AddTagColumn("metric", types.StringType, 0)
	tbl.AddFieldColumn("app", types.StringType)
	tbl.AddFieldColumn("kind", types.StringType)
	tbl.AddFieldColumn("count", types.Int64Type)
	tbl.SetTimeIndex("ts", types.TimestampType)

	for _, r := range rows {
		tbl.AppendTagValue("run_id", r.RunID)
		tbl.AppendTagValue("domain", r.Domain)
		tbl.AppendTagValue("metric", r.Metric)
		tbl.AppendFieldValue("app", r.App)
		tbl.AppendFieldValue("kind", r.Kind)
		tbl.AppendFieldValue("count", int64(r.Count))
		tbl.AppendTimeIndex(r.Timestamp)
	}

	if err := w.client.Write(ctx, w.db, []*table.Table{tbl}); err != nil {
		log.Printf("[GreptimeDBWriter] task stats write failed: %v", err)
		return err
	}
	log.Printf("[GreptimeDBWriter] wrote %d task stat rows", len(rows))
	return nil
}
