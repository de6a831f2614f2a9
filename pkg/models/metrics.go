package models

import "time"

// MetricPoint is one sampled utilization reading kept in the in-memory
// history ring. ArrayPercent is nil while the array is stopped.
type MetricPoint struct {
	Timestamp     time.Time `json:"timestamp"`
	CPUPercent    float64   `json:"cpu_percent"`
	MemoryPercent float64   `json:"memory_percent"`
	ArrayPercent  *float64  `json:"array_percent,omitempty"`
}

// MetricsConfig controls the in-memory metric history buffers.
type MetricsConfig struct {
	Enabled   bool `json:"metrics_enabled"`
	Retention int  `json:"metrics_retention"`
}
