// Package api pkg/api/interfaces.go
package api

import (
	"context"

	"github.com/mfreeman451/unradar/pkg/coordinator"
	"github.com/mfreeman451/unradar/pkg/db"
	"github.com/mfreeman451/unradar/pkg/models"
)

//go:generate mockgen -destination=mock_api.go -package=api github.com/mfreeman451/unradar/pkg/api MonitorService

// MonitorService is the surface the HTTP API needs from the monitor.
// Calls with an unknown server ID return ErrServerNotFound.
type MonitorService interface {
	// ServerIDs lists the configured servers.
	ServerIDs() []string

	// Status returns one server's polling health.
	Status(serverID string) (*coordinator.Status, error)

	// Snapshot returns the most recently published snapshot.
	Snapshot(serverID string) (*models.Snapshot, error)

	// RequestRefresh schedules an immediate refresh cycle.
	RequestRefresh(serverID string) error

	// InvokeMutation starts or stops a VM or container.
	InvokeMutation(ctx context.Context, serverID string, class models.ResourceClass, id string, action coordinator.MutationAction) error

	// ParityCheckAction controls the array parity check.
	ParityCheckAction(ctx context.Context, serverID, action string) error

	// UpdateCredential swaps the server's API key at runtime.
	UpdateCredential(ctx context.Context, serverID, apiKey string) error

	// MetricsHistory returns the in-memory utilization ring, newest first.
	MetricsHistory(serverID string) []models.MetricPoint

	// Events returns stored resource events, newest first.
	Events(serverID string, limit int) ([]db.ResourceEvent, error)
}
