// Package monitor pkg/monitor/types.go
package monitor

import (
	"fmt"
	"time"

	"github.com/mfreeman451/unradar/pkg/alerts"
	"github.com/mfreeman451/unradar/pkg/config"
	"github.com/mfreeman451/unradar/pkg/exporter"
	"github.com/mfreeman451/unradar/pkg/models"
)

const (
	defaultListenAddr   = ":8090"
	defaultDBPath       = "/var/lib/unradar/unradar.db"
	defaultPollInterval = 60 * time.Second
	defaultRetention    = 7 * 24 * time.Hour
)

// ServerConfig describes one Unraid server to monitor.
type ServerConfig struct {
	ID        string `json:"id"`
	Endpoint  string `json:"endpoint"`
	APIKey    string `json:"api_key"`
	VerifySSL bool   `json:"verify_ssl"`

	// PollInterval defaults to 60s when unset.
	PollInterval config.Duration `json:"poll_interval,omitempty"`

	MonitorDisks      bool `json:"monitor_disks"`
	MonitorShares     bool `json:"monitor_shares"`
	MonitorVMs        bool `json:"monitor_vms"`
	MonitorContainers bool `json:"monitor_containers"`
	MonitorUPS        bool `json:"monitor_ups"`

	// LiveMetrics feeds the sample ring from the server's metric
	// subscriptions between polls.
	LiveMetrics bool `json:"live_metrics"`
}

// Config is the top-level unradar configuration.
type Config struct {
	ListenAddr string                 `json:"listen_addr"`
	GrpcAddr   string                 `json:"grpc_addr,omitempty"`
	DBPath     string                 `json:"db_path"`
	Metrics    models.MetricsConfig   `json:"metrics"`
	Retention  config.Duration        `json:"retention,omitempty"`
	Webhooks   []alerts.WebhookConfig `json:"webhooks,omitempty"`
	InfluxDB   *exporter.Config       `json:"influxdb,omitempty"`
	Servers    []ServerConfig         `json:"servers"`
}

// Validate implements config.Validator. It rejects incomplete server
// entries and fills in defaults.
func (c *Config) Validate() error {
	if len(c.Servers) == 0 {
		return errNoServers
	}

	if c.ListenAddr == "" {
		c.ListenAddr = defaultListenAddr
	}

	if c.DBPath == "" {
		c.DBPath = defaultDBPath
	}

	if c.Retention <= 0 {
		c.Retention = config.Duration(defaultRetention)
	}

	seen := make(map[string]struct{}, len(c.Servers))

	for i := range c.Servers {
		srv := &c.Servers[i]

		if srv.ID == "" {
			return errServerIDRequired
		}

		if _, ok := seen[srv.ID]; ok {
			return fmt.Errorf("%w: %q", errDuplicateServer, srv.ID)
		}

		seen[srv.ID] = struct{}{}

		if srv.Endpoint == "" {
			return fmt.Errorf("%w: server %q", errEndpointRequired, srv.ID)
		}

		if srv.APIKey == "" {
			return fmt.Errorf("%w: server %q", errAPIKeyRequired, srv.ID)
		}

		if srv.PollInterval <= 0 {
			srv.PollInterval = config.Duration(defaultPollInterval)
		}
	}

	return nil
}
