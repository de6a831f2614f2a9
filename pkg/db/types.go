// Package db pkg/db/types.go
package db

import (
	"time"

	"github.com/mfreeman451/unradar/pkg/models"
)

// ServerStatus is the stored state of one monitored server.
type ServerStatus struct {
	ServerID    string    `json:"server_id"`
	Name        string    `json:"name"`
	Version     string    `json:"version"`
	FirstSeen   time.Time `json:"first_seen"`
	LastSeen    time.Time `json:"last_seen"`
	Online      bool      `json:"online"`
	Degraded    bool      `json:"degraded"`
	NeedsReauth bool      `json:"needs_reauth"`
}

// MetricsSample is one stored utilization sample.
type MetricsSample struct {
	ServerID      string    `json:"server_id"`
	Timestamp     time.Time `json:"timestamp"`
	CPUPercent    float64   `json:"cpu_percent"`
	MemoryPercent float64   `json:"memory_percent"`
	ArrayPercent  *float64  `json:"array_percent,omitempty"`
}

// ResourceEvent is one stored appearance or removal.
type ResourceEvent struct {
	ServerID   string               `json:"server_id"`
	Class      models.ResourceClass `json:"class"`
	ResourceID string               `json:"resource_id"`
	Event      string               `json:"event"`
	Timestamp  time.Time            `json:"timestamp"`
}
