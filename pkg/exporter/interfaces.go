// Package exporter pkg/exporter/interfaces.go
package exporter

import (
	"context"

	"github.com/mfreeman451/unradar/pkg/models"
)

//go:generate mockgen -destination=mock_exporter.go -package=exporter github.com/mfreeman451/unradar/pkg/exporter SnapshotExporter

// SnapshotExporter ships published snapshots to an external store.
type SnapshotExporter interface {
	Export(ctx context.Context, serverID string, snap *models.Snapshot) error
	Close()
}
