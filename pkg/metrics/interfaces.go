// Package metrics pkg/metrics/interfaces.go
package metrics

import (
	"time"

	"github.com/mfreeman451/unradar/pkg/models"
)

//go:generate mockgen -destination=mock_metrics.go -package=metrics github.com/mfreeman451/unradar/pkg/metrics MetricStore,MetricCollector

// MetricStore buffers utilization samples for one server.
type MetricStore interface {
	Add(timestamp time.Time, cpu, memory float64, array *float64)
	GetPoints() []models.MetricPoint
	GetLastPoint() *models.MetricPoint
}

// MetricCollector aggregates sample rings across servers.
type MetricCollector interface {
	AddSample(serverID string, timestamp time.Time, cpu, memory float64, array *float64)
	GetMetrics(serverID string) []models.MetricPoint
	GetLastPoint(serverID string) *models.MetricPoint
}
