// Package exporter pkg/exporter/exporter.go ships snapshot data to InfluxDB.
package exporter

import (
	"context"
	"fmt"
	"log"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/mfreeman451/unradar/pkg/models"
)

var (
	errHealthCheck = fmt.Errorf("influxdb health check failed")
	errNotHealthy  = fmt.Errorf("influxdb not healthy")
)

const healthCheckTimeout = 5 * time.Second

// Config holds the InfluxDB export settings.
type Config struct {
	Enabled bool   `json:"enabled"`
	URL     string `json:"url"`
	Token   string `json:"token"`
	Org     string `json:"org"`
	Bucket  string `json:"bucket"`
}

// InfluxExporter writes snapshot measurements to an InfluxDB bucket.
type InfluxExporter struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
}

// NewInfluxExporter connects to InfluxDB and verifies it is healthy.
func NewInfluxExporter(cfg *Config) (*InfluxExporter, error) {
	client := influxdb2.NewClient(cfg.URL, cfg.Token)

	ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()

	health, err := client.Health(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errHealthCheck, err)
	}

	if health.Status != "pass" {
		return nil, fmt.Errorf("%w: status %s", errNotHealthy, health.Status)
	}

	log.Printf("Connected to InfluxDB at %s", cfg.URL)

	return &InfluxExporter{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
	}, nil
}

// Export writes one snapshot as a server_metrics point plus one
// disk_metrics point per disk. A failed disk point is logged and does
// not abort the remaining disks.
func (e *InfluxExporter) Export(ctx context.Context, serverID string, snap *models.Snapshot) error {
	tags := map[string]string{
		"server_id": serverID,
		"server":    snap.Server.Name,
		"version":   snap.Server.UnraidVersion,
	}

	fields := map[string]interface{}{
		"cpu_percent":    snap.Metrics.CPUPercent,
		"memory_percent": snap.Metrics.MemoryPercent,
		"memory_free":    snap.Metrics.MemoryFree,
		"memory_total":   snap.Metrics.MemoryTotal,
		"array_state":    string(snap.Array.State),
		"array_free_kb":  snap.Array.FreeKB,
		"array_used_kb":  snap.Array.UsedKB,
	}

	if snap.Metrics.CPUTemp != nil {
		fields["cpu_temp"] = *snap.Metrics.CPUTemp
	}

	if snap.Metrics.CPUPower != nil {
		fields["cpu_power"] = *snap.Metrics.CPUPower
	}

	if snap.Array.UsagePercent != nil {
		fields["array_usage_percent"] = *snap.Array.UsagePercent
	}

	point := write.NewPoint("server_metrics", tags, fields, snap.UpdatedAt)

	if err := e.writeAPI.WritePoint(ctx, point); err != nil {
		return fmt.Errorf("influxdb write failed for %s: %w", serverID, err)
	}

	for name, disk := range snap.Disks {
		diskTags := map[string]string{
			"server_id": serverID,
			"server":    snap.Server.Name,
			"disk":      name,
			"type":      string(disk.Type),
		}

		diskFields := map[string]interface{}{
			"status":      string(disk.Status),
			"is_spinning": disk.IsSpinning,
		}

		if disk.Temp != nil {
			diskFields["temp"] = *disk.Temp
		}

		if disk.UsagePercent != nil {
			diskFields["usage_percent"] = *disk.UsagePercent
		}

		diskPoint := write.NewPoint("disk_metrics", diskTags, diskFields, snap.UpdatedAt)

		if err := e.writeAPI.WritePoint(ctx, diskPoint); err != nil {
			log.Printf("Failed to write disk point for %s disk %s: %v", serverID, name, err)
		}
	}

	return nil
}

// Close releases the underlying InfluxDB client.
func (e *InfluxExporter) Close() {
	e.client.Close()
}
