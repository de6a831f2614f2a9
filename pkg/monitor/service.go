// Package monitor runs one polling coordinator per configured Unraid
// server and fans its observations out to the shared sinks: the metric
// ring, SQLite history, webhook alerting, and the optional InfluxDB
// exporter. It implements the surface the HTTP API consumes.
package monitor

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mfreeman451/unradar/pkg/alerts"
	"github.com/mfreeman451/unradar/pkg/api"
	"github.com/mfreeman451/unradar/pkg/coordinator"
	"github.com/mfreeman451/unradar/pkg/db"
	"github.com/mfreeman451/unradar/pkg/exporter"
	"github.com/mfreeman451/unradar/pkg/graphql"
	"github.com/mfreeman451/unradar/pkg/metrics"
	"github.com/mfreeman451/unradar/pkg/models"
	"github.com/mfreeman451/unradar/pkg/unraid"
)

const (
	setupRetryInterval = 30 * time.Second
	healthTickInterval = 30 * time.Second
	cleanTickInterval  = time.Hour
	exportTimeout      = 10 * time.Second

	// staleAfterCycles is how many missed poll intervals mark a server
	// offline.
	staleAfterCycles = 3
)

// Service owns one coordinator per configured server. Servers that
// fail setup are retried in the background so one unreachable server
// never blocks the rest.
type Service struct {
	config   Config
	database db.Service
	metrics  metrics.MetricCollector
	alerters []alerts.AlertService
	exporter exporter.SnapshotExporter

	mu      sync.RWMutex
	servers map[string]*serverHandle

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// serverHandle bundles everything the monitor holds for one server.
type serverHandle struct {
	cfg       ServerConfig
	transport *graphql.Client
	client    *unraid.Client
	coord     *coordinator.Coordinator
	live      *liveFeed

	mu          sync.Mutex
	wasDegraded bool
	wasReauth   bool
	wasOffline  bool
}

// NewService builds the monitor. The exporter may be nil when no
// InfluxDB sink is configured.
func NewService(
	cfg Config,
	database db.Service,
	collector metrics.MetricCollector,
	alerters []alerts.AlertService,
	exp exporter.SnapshotExporter,
) *Service {
	return &Service{
		config:   cfg,
		database: database,
		metrics:  collector,
		alerters: alerters,
		exporter: exp,
		servers:  make(map[string]*serverHandle),
		done:     make(chan struct{}),
	}
}

// Start connects every configured server and blocks until ctx is
// canceled or Stop is called.
func (s *Service) Start(ctx context.Context) error {
	log.Printf("Monitor starting: %d server(s) configured", len(s.config.Servers))

	for i := range s.config.Servers {
		cfg := s.config.Servers[i]

		s.wg.Add(1)

		go func() {
			defer s.wg.Done()
			s.runServer(ctx, cfg)
		}()
	}

	s.wg.Add(1)

	go func() {
		defer s.wg.Done()
		s.cleanLoop(ctx)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return nil
	}
}

// Stop shuts down every coordinator and live feed and waits for the
// background goroutines to drain.
func (s *Service) Stop(_ context.Context) error {
	s.stopOnce.Do(func() {
		close(s.done)
	})

	s.mu.Lock()
	for _, h := range s.servers {
		if err := h.coord.Stop(); err != nil {
			log.Printf("Error stopping coordinator for %s: %v", h.cfg.ID, err)
		}

		if h.live != nil {
			h.live.close()
		}
	}
	s.mu.Unlock()

	s.wg.Wait()

	if s.exporter != nil {
		s.exporter.Close()
	}

	log.Printf("Monitor stopped")

	return nil
}

// runServer performs setup for one server, retrying until it succeeds,
// then drives its coordinator until shutdown.
func (s *Service) runServer(ctx context.Context, cfg ServerConfig) {
	for {
		handle, err := s.connectServer(ctx, cfg)
		if err != nil {
			log.Printf("Setup for server %s failed: %v", cfg.ID, err)
			s.alertAll(ctx, &alerts.WebhookAlert{
				Level:    alerts.Error,
				Title:    "Server Setup Failed",
				Message:  fmt.Sprintf("Connecting to %s failed: %v", cfg.Endpoint, err),
				ServerID: cfg.ID,
				Details:  map[string]any{"endpoint": cfg.Endpoint},
			})

			select {
			case <-time.After(setupRetryInterval):
				continue
			case <-ctx.Done():
				return
			case <-s.done:
				return
			}
		}

		if cfg.LiveMetrics {
			s.startLiveFeed(ctx, handle)
		}

		s.register(handle)

		s.wg.Add(1)

		go func() {
			defer s.wg.Done()
			s.watchHealth(ctx, handle)
		}()

		if err := handle.coord.Start(ctx); err != nil {
			log.Printf("Coordinator for %s stopped: %v", cfg.ID, err)
		}

		return
	}
}

// connectServer builds the transport, negotiates the API version, and
// assembles the coordinator for one server.
func (s *Service) connectServer(ctx context.Context, cfg ServerConfig) (*serverHandle, error) {
	transport, err := graphql.NewClient(cfg.Endpoint, cfg.APIKey, cfg.VerifySSL)
	if err != nil {
		return nil, fmt.Errorf("build client for %s: %w", cfg.ID, err)
	}

	client, err := unraid.Negotiate(ctx, transport)
	if err != nil {
		return nil, fmt.Errorf("negotiate with %s: %w", cfg.ID, err)
	}

	info, err := client.ServerInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("server info for %s: %w", cfg.ID, err)
	}

	coord := coordinator.New(coordinator.Config{
		ServerID:          cfg.ID,
		PollInterval:      time.Duration(cfg.PollInterval),
		MonitorDisks:      cfg.MonitorDisks,
		MonitorShares:     cfg.MonitorShares,
		MonitorVMs:        cfg.MonitorVMs,
		MonitorContainers: cfg.MonitorContainers,
		MonitorUPS:        cfg.MonitorUPS,
	}, client, info)

	log.Printf("Connected to %s (%s, Unraid %s, API %s)",
		cfg.ID, info.Name, info.UnraidVersion, info.APIVersion)

	return &serverHandle{
		cfg:       cfg,
		transport: transport,
		client:    client,
		coord:     coord,
	}, nil
}

// register publishes the handle to the API surface and wires the
// coordinator's observers into the sinks.
func (s *Service) register(h *serverHandle) {
	s.mu.Lock()
	s.servers[h.cfg.ID] = h
	s.mu.Unlock()

	h.coord.SubscribeSnapshot(func(snap *models.Snapshot) {
		s.onSnapshot(h, snap)
	})

	for _, class := range models.ResourceClasses {
		class := class

		h.coord.SubscribeClass(class, func(ev coordinator.ResourceEvent) {
			s.onAppearance(h, ev)
		})
	}
}

// onSnapshot records one published cycle: sample ring, history tables,
// server status, export, and degraded-transition alerts.
func (s *Service) onSnapshot(h *serverHandle, snap *models.Snapshot) {
	s.metrics.AddSample(h.cfg.ID, snap.UpdatedAt,
		snap.Metrics.CPUPercent, snap.Metrics.MemoryPercent, snap.Array.UsagePercent)

	if err := s.database.StoreMetricsSample(&db.MetricsSample{
		ServerID:      h.cfg.ID,
		Timestamp:     snap.UpdatedAt,
		CPUPercent:    snap.Metrics.CPUPercent,
		MemoryPercent: snap.Metrics.MemoryPercent,
		ArrayPercent:  snap.Array.UsagePercent,
	}); err != nil {
		log.Printf("Error storing metrics sample for %s: %v", h.cfg.ID, err)
	}

	status := h.coord.Status()

	if err := s.database.UpdateServerStatus(&db.ServerStatus{
		ServerID:    h.cfg.ID,
		Name:        snap.Server.Name,
		Version:     snap.Server.UnraidVersion,
		LastSeen:    snap.UpdatedAt,
		Online:      true,
		Degraded:    len(status.Degraded) > 0,
		NeedsReauth: status.NeedsReauth,
	}); err != nil {
		log.Printf("Error updating server status for %s: %v", h.cfg.ID, err)
	}

	if s.exporter != nil {
		exportCtx, cancel := context.WithTimeout(context.Background(), exportTimeout)

		if err := s.exporter.Export(exportCtx, h.cfg.ID, snap); err != nil {
			log.Printf("Error exporting snapshot for %s: %v", h.cfg.ID, err)
		}

		cancel()
	}

	s.checkDegraded(h, snap)
}

// checkDegraded alerts when a server starts or stops serving
// carried-forward data.
func (s *Service) checkDegraded(h *serverHandle, snap *models.Snapshot) {
	classes := make([]string, 0, len(snap.Degraded))

	for class, bad := range snap.Degraded {
		if bad {
			classes = append(classes, string(class))
		}
	}

	sort.Strings(classes)

	h.mu.Lock()
	was := h.wasDegraded
	h.wasDegraded = len(classes) > 0
	h.mu.Unlock()

	switch {
	case len(classes) > 0 && !was:
		s.alertAll(context.Background(), &alerts.WebhookAlert{
			Level:    alerts.Warning,
			Title:    "Polling Degraded",
			Message:  fmt.Sprintf("Server %s is serving carried-forward data for: %s", h.cfg.ID, strings.Join(classes, ", ")),
			ServerID: h.cfg.ID,
			Details:  map[string]any{"classes": classes},
		})
	case len(classes) == 0 && was:
		s.alertAll(context.Background(), &alerts.WebhookAlert{
			Level:    alerts.Info,
			Title:    "Polling Recovered",
			Message:  fmt.Sprintf("Server %s recovered; all resource groups are fresh", h.cfg.ID),
			ServerID: h.cfg.ID,
		})
	}
}

// onAppearance stores the appearance and follows the identifier so its
// removal is recorded too. Class listeners only see appearances;
// removals are delivered to per-identifier listeners.
func (s *Service) onAppearance(h *serverHandle, ev coordinator.ResourceEvent) {
	s.storeEvent(h, ev)

	if ev.Kind != coordinator.EventAppeared {
		return
	}

	h.coord.SubscribeResource(ev.Class, ev.ID, func(rev coordinator.ResourceEvent) {
		if rev.Kind == coordinator.EventRemoved {
			s.onRemoval(h, rev)
		}
	})
}

// onRemoval stores the removal and alerts. Disk removals are warnings;
// everything else is informational churn.
func (s *Service) onRemoval(h *serverHandle, ev coordinator.ResourceEvent) {
	s.storeEvent(h, ev)

	level := alerts.Info
	if ev.Class == models.ClassDisks {
		level = alerts.Warning
	}

	s.alertAll(context.Background(), &alerts.WebhookAlert{
		Level:    level,
		Title:    fmt.Sprintf("Resource Removed: %s/%s", ev.Class, ev.ID),
		Message:  fmt.Sprintf("%s %q is no longer reported by %s", ev.Class, ev.ID, h.cfg.ID),
		ServerID: h.cfg.ID,
		Details:  map[string]any{"class": string(ev.Class), "resource_id": ev.ID},
	})
}

func (s *Service) storeEvent(h *serverHandle, ev coordinator.ResourceEvent) {
	if err := s.database.StoreResourceEvent(&db.ResourceEvent{
		ServerID:   h.cfg.ID,
		Class:      ev.Class,
		ResourceID: ev.ID,
		Event:      string(ev.Kind),
		Timestamp:  time.Now().UTC(),
	}); err != nil {
		log.Printf("Error storing %s event for %s/%s: %v", ev.Kind, h.cfg.ID, ev.ID, err)
	}
}

// watchHealth alerts on authentication and reachability transitions.
func (s *Service) watchHealth(ctx context.Context, h *serverHandle) {
	ticker := time.NewTicker(healthTickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case <-ticker.C:
			s.checkHealth(ctx, h)
		}
	}
}

func (s *Service) checkHealth(ctx context.Context, h *serverHandle) {
	status := h.coord.Status()

	stale := status.LastError != "" &&
		(status.LastSuccess.IsZero() ||
			time.Since(status.LastSuccess) > staleAfterCycles*time.Duration(h.cfg.PollInterval))

	h.mu.Lock()
	wasReauth := h.wasReauth
	h.wasReauth = status.NeedsReauth
	wasOffline := h.wasOffline
	h.wasOffline = stale
	h.mu.Unlock()

	switch {
	case status.NeedsReauth && !wasReauth:
		s.alertAll(ctx, &alerts.WebhookAlert{
			Level:    alerts.Error,
			Title:    "Authentication Required",
			Message:  fmt.Sprintf("Server %s rejected its API key; update the credential", h.cfg.ID),
			ServerID: h.cfg.ID,
			Details:  map[string]any{"last_error": status.LastError},
		})
	case !status.NeedsReauth && wasReauth:
		s.alertAll(ctx, &alerts.WebhookAlert{
			Level:    alerts.Info,
			Title:    "Authentication Restored",
			Message:  fmt.Sprintf("Server %s accepted its API key again", h.cfg.ID),
			ServerID: h.cfg.ID,
		})
	}

	switch {
	case stale && !wasOffline:
		s.markOffline(h, status)
	case !stale && wasOffline:
		s.alertAll(ctx, &alerts.WebhookAlert{
			Level:    alerts.Info,
			Title:    "Server Back Online",
			Message:  fmt.Sprintf("Server %s is responding again", h.cfg.ID),
			ServerID: h.cfg.ID,
		})
	}
}

// markOffline flips the stored status and raises the offline alert. The
// online flag recovers through the next published snapshot.
func (s *Service) markOffline(h *serverHandle, status coordinator.Status) {
	var name, version string

	if snap := h.coord.GetSnapshot(); snap != nil {
		name = snap.Server.Name
		version = snap.Server.UnraidVersion
	}

	if err := s.database.UpdateServerStatus(&db.ServerStatus{
		ServerID:    h.cfg.ID,
		Name:        name,
		Version:     version,
		LastSeen:    status.LastSuccess,
		Online:      false,
		Degraded:    len(status.Degraded) > 0,
		NeedsReauth: status.NeedsReauth,
	}); err != nil {
		log.Printf("Error marking %s offline: %v", h.cfg.ID, err)
	}

	s.alertAll(context.Background(), &alerts.WebhookAlert{
		Level:    alerts.Error,
		Title:    "Server Offline",
		Message:  fmt.Sprintf("Server %s has not answered for %d poll intervals: %s", h.cfg.ID, staleAfterCycles, status.LastError),
		ServerID: h.cfg.ID,
		Details:  map[string]any{"last_error": status.LastError},
	})
}

// cleanLoop prunes stored history past the configured retention.
func (s *Service) cleanLoop(ctx context.Context) {
	ticker := time.NewTicker(cleanTickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case <-ticker.C:
			if err := s.database.CleanOldData(time.Duration(s.config.Retention)); err != nil {
				log.Printf("Error cleaning old data: %v", err)
			}
		}
	}
}

func (s *Service) alertAll(ctx context.Context, alert *alerts.WebhookAlert) {
	for _, alerter := range s.alerters {
		if !alerter.IsEnabled() {
			continue
		}

		if err := alerter.Alert(ctx, alert); err != nil {
			log.Printf("Error sending alert %q for %s: %v", alert.Title, alert.ServerID, err)
		}
	}
}

func (s *Service) handle(serverID string) (*serverHandle, error) {
	s.mu.RLock()
	h, ok := s.servers[serverID]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", api.ErrServerNotFound, serverID)
	}

	return h, nil
}

// ServerIDs implements api.MonitorService. It lists the connected
// servers in a stable order; servers still failing setup surface
// through logs and alerts instead.
func (s *Service) ServerIDs() []string {
	s.mu.RLock()

	ids := make([]string, 0, len(s.servers))
	for id := range s.servers {
		ids = append(ids, id)
	}

	s.mu.RUnlock()

	sort.Strings(ids)

	return ids
}

// Status implements api.MonitorService.
func (s *Service) Status(serverID string) (*coordinator.Status, error) {
	h, err := s.handle(serverID)
	if err != nil {
		return nil, err
	}

	status := h.coord.Status()

	return &status, nil
}

// Snapshot implements api.MonitorService.
func (s *Service) Snapshot(serverID string) (*models.Snapshot, error) {
	h, err := s.handle(serverID)
	if err != nil {
		return nil, err
	}

	snap := h.coord.GetSnapshot()
	if snap == nil {
		return nil, fmt.Errorf("%w: server %s", errNoSnapshot, serverID)
	}

	return snap, nil
}

// RequestRefresh implements api.MonitorService.
func (s *Service) RequestRefresh(serverID string) error {
	h, err := s.handle(serverID)
	if err != nil {
		return err
	}

	h.coord.RequestRefresh()

	return nil
}

// InvokeMutation implements api.MonitorService.
func (s *Service) InvokeMutation(
	ctx context.Context,
	serverID string,
	class models.ResourceClass,
	id string,
	action coordinator.MutationAction,
) error {
	h, err := s.handle(serverID)
	if err != nil {
		return err
	}

	return h.coord.InvokeMutation(ctx, class, id, action)
}

// ParityCheckAction implements api.MonitorService. A successful action
// schedules a refresh so the parity state converges quickly.
func (s *Service) ParityCheckAction(ctx context.Context, serverID, action string) error {
	h, err := s.handle(serverID)
	if err != nil {
		return err
	}

	switch action {
	case "start":
		err = h.client.StartParityCheck(ctx)
	case "pause":
		err = h.client.PauseParityCheck(ctx)
	case "resume":
		err = h.client.ResumeParityCheck(ctx)
	case "cancel":
		err = h.client.CancelParityCheck(ctx)
	default:
		return fmt.Errorf("%w: %q", errUnknownParityAction, action)
	}

	if err != nil {
		return err
	}

	h.coord.RequestRefresh()

	return nil
}

// UpdateCredential implements api.MonitorService. The new key reaches
// the HTTP transport immediately and the subscription feed on its next
// reconnect; the follow-up refresh clears needs-reauth on success.
func (s *Service) UpdateCredential(_ context.Context, serverID, apiKey string) error {
	h, err := s.handle(serverID)
	if err != nil {
		return err
	}

	h.transport.UpdateAPIKey(apiKey)

	if h.live != nil {
		h.live.updateAPIKey(apiKey)
	}

	h.coord.RequestRefresh()

	log.Printf("Credential updated for %s", serverID)

	return nil
}

// MetricsHistory implements api.MonitorService.
func (s *Service) MetricsHistory(serverID string) []models.MetricPoint {
	return s.metrics.GetMetrics(serverID)
}

// Events implements api.MonitorService.
func (s *Service) Events(serverID string, limit int) ([]db.ResourceEvent, error) {
	if _, err := s.handle(serverID); err != nil {
		return nil, err
	}

	return s.database.GetResourceEvents(serverID, limit)
}
