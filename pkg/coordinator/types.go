package coordinator

import (
	"time"

	"github.com/mfreeman451/unradar/pkg/models"
)

// Config holds the per-server polling options.
type Config struct {
	ServerID          string
	PollInterval      time.Duration
	MonitorDisks      bool
	MonitorShares     bool
	MonitorVMs        bool
	MonitorContainers bool
	MonitorUPS        bool
}

// EventKind distinguishes the two identifier lifecycle transitions.
type EventKind string

const (
	EventAppeared EventKind = "appeared"
	EventRemoved  EventKind = "removed"
)

// ResourceEvent notifies a listener about one identifier transition.
// Snapshot is the cycle result being published: for an appearance it
// already contains the identifier's data; for a removal it no longer
// does, while the previously published snapshot still carries the final
// values. Listeners must treat the snapshot as read-only.
type ResourceEvent struct {
	Class    models.ResourceClass
	ID       string
	Kind     EventKind
	Snapshot *models.Snapshot
}

// ResourceListener receives identifier lifecycle events.
type ResourceListener func(ResourceEvent)

// SnapshotListener receives every published snapshot.
type SnapshotListener func(*models.Snapshot)

// MutationAction names a resource mutation.
type MutationAction string

const (
	ActionStart MutationAction = "start"
	ActionStop  MutationAction = "stop"
)

// Status summarizes one coordinator's health for diagnostics.
type Status struct {
	ServerID    string    `json:"server_id"`
	APIVersion  string    `json:"api_version"`
	NeedsReauth bool      `json:"needs_reauth"`
	LastAttempt time.Time `json:"last_attempt"`
	LastSuccess time.Time `json:"last_success"`
	LastError   string    `json:"last_error,omitempty"`
	Degraded    []string  `json:"degraded,omitempty"`
}
