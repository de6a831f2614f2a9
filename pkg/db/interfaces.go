// Package db pkg/db/interfaces.go
package db

import (
	"time"
)

//go:generate mockgen -destination=mock_db.go -package=db github.com/mfreeman451/unradar/pkg/db Service

// Service represents all database operations.
type Service interface {
	Close() error

	// Server operations.

	UpdateServerStatus(status *ServerStatus) error
	GetServerStatus(serverID string) (*ServerStatus, error)
	GetServerStatuses() ([]ServerStatus, error)

	// History operations.

	StoreMetricsSample(sample *MetricsSample) error
	GetMetricsHistory(serverID string, limit int) ([]MetricsSample, error)
	StoreResourceEvent(event *ResourceEvent) error
	GetResourceEvents(serverID string, limit int) ([]ResourceEvent, error)

	// Maintenance operations.

	CleanOldData(retentionPeriod time.Duration) error
}
