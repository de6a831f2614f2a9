// Package api pkg/api/types.go
package api

import "time"

// SystemStatus summarizes the monitor across every configured server.
type SystemStatus struct {
	TotalServers    int          `json:"total_servers"`
	OnlineServers   int          `json:"online_servers"`
	DegradedServers int          `json:"degraded_servers"`
	ReauthServers   int          `json:"reauth_servers"`
	LastUpdate      time.Time    `json:"last_update"`
	Process         ProcessStats `json:"process"`
}

// ProcessStats reports the monitor's own resource usage.
type ProcessStats struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemoryMB   float64 `json:"memory_mb"`
}

// credentialRequest is the PUT credential body.
type credentialRequest struct {
	APIKey string `json:"api_key"`
}
