package exporter

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfreeman451/unradar/pkg/models"
)

// fakeInflux stands in for an InfluxDB instance, answering the health
// probe and capturing line-protocol writes.
type fakeInflux struct {
	mu      sync.Mutex
	writes  []string
	healthy bool
}

func (f *fakeInflux) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/health"):
			w.Header().Set("Content-Type", "application/json")

			if f.healthy {
				_, _ = w.Write([]byte(`{"name":"influxdb","status":"pass","version":"2.7.0","commit":""}`))
			} else {
				_, _ = w.Write([]byte(`{"name":"influxdb","status":"fail","version":"2.7.0","commit":""}`))
			}
		case strings.HasSuffix(r.URL.Path, "/api/v2/write"):
			body, _ := io.ReadAll(r.Body)

			f.mu.Lock()
			f.writes = append(f.writes, string(body))
			f.mu.Unlock()

			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	})
}

func (f *fakeInflux) allWrites() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return strings.Join(f.writes, "\n")
}

func TestNewInfluxExporter_Unhealthy(t *testing.T) {
	fake := &fakeInflux{healthy: false}
	server := httptest.NewServer(fake.handler())

	defer server.Close()

	_, err := NewInfluxExporter(&Config{
		Enabled: true,
		URL:     server.URL,
		Token:   "token",
		Org:     "unradar",
		Bucket:  "metrics",
	})
	assert.ErrorIs(t, err, errNotHealthy)
}

func TestInfluxExporter_Export(t *testing.T) {
	fake := &fakeInflux{healthy: true}
	server := httptest.NewServer(fake.handler())

	defer server.Close()

	exporter, err := NewInfluxExporter(&Config{
		Enabled: true,
		URL:     server.URL,
		Token:   "token",
		Org:     "unradar",
		Bucket:  "metrics",
	})
	require.NoError(t, err)

	defer exporter.Close()

	temp := int64(38)
	diskUsage := 71.2
	arrayUsage := 63.4

	snap := &models.Snapshot{
		Server: models.ServerInfo{
			Name:          "Tower",
			UnraidVersion: "7.0.1",
		},
		Metrics: models.Metrics{
			CPUPercent:    12.5,
			MemoryPercent: 40.2,
			MemoryFree:    8 << 20,
			MemoryTotal:   32 << 20,
		},
		Array: models.Array{
			State:        models.ArrayStarted,
			FreeKB:       100,
			UsedKB:       900,
			TotalKB:      1000,
			UsagePercent: &arrayUsage,
		},
		Disks: map[string]models.Disk{
			"disk1": {
				ID:           "disk1-id",
				Name:         "disk1",
				Type:         models.DiskTypeData,
				Status:       models.DiskOK,
				Temp:         &temp,
				IsSpinning:   true,
				UsagePercent: &diskUsage,
			},
		},
		UpdatedAt: time.Now(),
	}

	require.NoError(t, exporter.Export(context.Background(), "tower", snap))

	writes := fake.allWrites()
	assert.Contains(t, writes, "server_metrics")
	assert.Contains(t, writes, "server_id=tower")
	assert.Contains(t, writes, "cpu_percent=12.5")
	assert.Contains(t, writes, "array_usage_percent=63.4")
	assert.Contains(t, writes, "disk_metrics")
	assert.Contains(t, writes, "disk=disk1")
	assert.Contains(t, writes, "temp=38i")
}
