package models

import "time"

// ServerInfo identifies the monitored server. It is populated once at
// setup and treated as read-only afterwards.
type ServerInfo struct {
	Name          string     `json:"name"`
	LocalURL      string     `json:"local_url"`
	UnraidVersion string     `json:"unraid_version"`
	APIVersion    string     `json:"api_version"`
	BootTime      *time.Time `json:"boot_time,omitempty"`
}

// Metrics holds one cycle's host utilization readings. CPUTemp and
// CPUPower are only reported by API versions >= 4.26.
type Metrics struct {
	MemoryFree      int64    `json:"memory_free"`
	MemoryTotal     int64    `json:"memory_total"`
	MemoryActive    int64    `json:"memory_active"`
	MemoryAvailable int64    `json:"memory_available"`
	MemoryPercent   float64  `json:"memory_percent"`
	CPUPercent      float64  `json:"cpu_percent"`
	CPUTemp         *float64 `json:"cpu_temp,omitempty"`
	CPUPower        *float64 `json:"cpu_power,omitempty"`
}

// UPSDevice is one uninterruptible power supply attached to the server.
// Reported by API versions >= 4.26.
type UPSDevice struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Model          string   `json:"model"`
	Status         string   `json:"status"`
	BatteryLevel   int64    `json:"battery_level"`
	BatteryRuntime int64    `json:"battery_runtime"`
	BatteryHealth  string   `json:"battery_health,omitempty"`
	LoadPercentage float64  `json:"load_percentage"`
	InputVoltage   *float64 `json:"input_voltage,omitempty"`
	OutputVoltage  *float64 `json:"output_voltage,omitempty"`
}
