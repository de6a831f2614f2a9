package metrics

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/mfreeman451/unradar/pkg/models"
)

const defaultRetention = 100

// Manager keeps one sample ring per monitored server.
type Manager struct {
	servers       sync.Map // Map of serverID -> MetricStore
	config        models.MetricsConfig
	activeServers int64 // Atomic counter for servers holding samples
}

// NewManager builds a collector with the configured retention. A
// disabled collector drops samples and serves empty histories.
func NewManager(cfg models.MetricsConfig) *Manager {
	if cfg.Retention <= 0 {
		cfg.Retention = defaultRetention
	}

	return &Manager{config: cfg}
}

// AddSample records one utilization sample for a server.
func (m *Manager) AddSample(serverID string, timestamp time.Time, cpu, memory float64, array *float64) {
	if !m.config.Enabled {
		return
	}

	store, loaded := m.servers.LoadOrStore(serverID, NewBuffer(m.config.Retention))
	if !loaded {
		atomic.AddInt64(&m.activeServers, 1)
	}

	store.(MetricStore).Add(timestamp, cpu, memory, array)
}

// GetMetrics returns a server's buffered samples, newest first, or nil
// for a server without samples.
func (m *Manager) GetMetrics(serverID string) []models.MetricPoint {
	store, ok := m.servers.Load(serverID)
	if !ok {
		return nil
	}

	return store.(MetricStore).GetPoints()
}

// GetLastPoint returns a server's most recent sample, or nil.
func (m *Manager) GetLastPoint(serverID string) *models.MetricPoint {
	store, ok := m.servers.Load(serverID)
	if !ok {
		return nil
	}

	return store.(MetricStore).GetLastPoint()
}

// GetActiveServers returns the number of servers holding samples.
func (m *Manager) GetActiveServers() int64 {
	return atomic.LoadInt64(&m.activeServers)
}
