package models

import "time"

// Snapshot is the immutable aggregate of one refresh cycle. The
// coordinator builds a fresh Snapshot each cycle and never mutates a
// published one; carried-forward maps are shared between consecutive
// snapshots and must be treated as read-only by observers.
type Snapshot struct {
	Server     ServerInfo                 `json:"server"`
	Metrics    Metrics                    `json:"metrics"`
	Array      Array                      `json:"array"`
	Disks      map[string]Disk            `json:"disks"`
	Shares     map[string]Share           `json:"shares"`
	VMs        map[string]VirtualMachine  `json:"vms"`
	Containers map[string]DockerContainer `json:"containers"`
	UPSDevices map[string]UPSDevice       `json:"ups_devices"`
	Degraded   map[ResourceClass]bool     `json:"degraded,omitempty"`
	UpdatedAt  time.Time                  `json:"updated_at"`
}

// IsDegraded reports whether the given class failed its most recent
// cycle and is serving carried-forward data.
func (s *Snapshot) IsDegraded(class ResourceClass) bool {
	return s.Degraded[class]
}

// Percentage computes used/total as a percentage clamped to [0, 100].
// A total of zero means the ratio is undefined and nil is returned;
// callers must treat nil as "unknown", not as zero.
func Percentage(used, total float64) *float64 {
	if total == 0 {
		return nil
	}

	pct := used / total * 100
	if pct < 0 {
		pct = 0
	}

	if pct > 100 {
		pct = 100
	}

	return &pct
}
