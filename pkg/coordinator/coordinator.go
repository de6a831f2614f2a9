// Package coordinator drives the polling lifecycle for one server:
// concurrent per-unit query fan-out, partial-failure aggregation,
// identifier discovery and removal notifications, and atomic snapshot
// publication.
package coordinator

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/mfreeman451/unradar/pkg/models"
)

const defaultPollInterval = 60 * time.Second

// refreshKey is the singleflight key; one coordinator only ever has one
// cycle in flight.
const refreshKey = "refresh"

// Coordinator owns the refresh loop for a single server. Create one per
// configured server; there is no shared process-wide state.
type Coordinator struct {
	config   Config
	client   QueryClient
	registry *Registry
	group    singleflight.Group

	mu          sync.RWMutex
	server      models.ServerInfo
	needsReauth bool
	lastAttempt time.Time
	lastSuccess time.Time
	lastErr     error

	done     chan struct{}
	stopOnce sync.Once
}

// refreshUnit is one query plus the slot it fills in the pending
// snapshot. Units run concurrently; each writes only its own slot.
type refreshUnit struct {
	name      string
	class     models.ResourceClass
	mandatory bool
	run       func(ctx context.Context) error
}

// New builds a coordinator around an already-negotiated client. server
// is the identity fetched during setup.
func New(config Config, client QueryClient, server models.ServerInfo) *Coordinator {
	if config.PollInterval <= 0 {
		config.PollInterval = defaultPollInterval
	}

	return &Coordinator{
		config:   config,
		client:   client,
		registry: NewRegistry(),
		server:   server,
		done:     make(chan struct{}),
	}
}

// Start runs the refresh loop until the context is canceled or Stop is
// called. The first cycle runs immediately; failures are logged and
// retried on the next tick.
func (c *Coordinator) Start(ctx context.Context) error {
	ticker := time.NewTicker(c.config.PollInterval)
	defer ticker.Stop()

	log.Printf("Coordinator %s started with interval %v", c.config.ServerID, c.config.PollInterval)

	if _, err := c.Refresh(ctx); err != nil {
		log.Printf("Coordinator %s: initial refresh failed: %v", c.config.ServerID, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.done:
			return nil
		case <-ticker.C:
			if _, err := c.Refresh(ctx); err != nil {
				log.Printf("Coordinator %s: refresh failed: %v", c.config.ServerID, err)
			}
		}
	}
}

// Stop ends the refresh loop. Safe to call more than once.
func (c *Coordinator) Stop() error {
	c.stopOnce.Do(func() {
		close(c.done)
	})

	return nil
}

// Refresh runs one cycle and returns the published snapshot. A call
// made while a cycle is in flight attaches to it and receives the same
// snapshot; overlapping cycles never run.
func (c *Coordinator) Refresh(ctx context.Context) (*models.Snapshot, error) {
	v, err, _ := c.group.Do(refreshKey, func() (interface{}, error) {
		return c.runCycle(ctx)
	})
	if err != nil {
		return nil, err
	}

	return v.(*models.Snapshot), nil
}

// RequestRefresh triggers a refresh without waiting for the result. It
// coalesces with any in-flight cycle.
func (c *Coordinator) RequestRefresh() {
	go func() {
		if _, err := c.Refresh(context.Background()); err != nil {
			log.Printf("Coordinator %s: on-demand refresh failed: %v", c.config.ServerID, err)
		}
	}()
}

// GetSnapshot returns the currently published snapshot, or nil before
// the first successful cycle.
func (c *Coordinator) GetSnapshot() *models.Snapshot {
	return c.registry.Current()
}

// NeedsReauth reports whether polling hit an authentication failure
// that has not yet been followed by a successful cycle.
func (c *Coordinator) NeedsReauth() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.needsReauth
}

// SubscribeClass registers a listener for newly appearing identifiers
// in one resource class, with immediate catch-up for identifiers
// already known.
func (c *Coordinator) SubscribeClass(class models.ResourceClass, fn ResourceListener) uint64 {
	return c.registry.SubscribeClass(class, fn)
}

// SubscribeResource registers a listener for one identifier's lifecycle.
func (c *Coordinator) SubscribeResource(class models.ResourceClass, id string, fn ResourceListener) uint64 {
	return c.registry.SubscribeResource(class, id, fn)
}

// SubscribeSnapshot registers a listener invoked after every published
// snapshot.
func (c *Coordinator) SubscribeSnapshot(fn SnapshotListener) uint64 {
	return c.registry.SubscribeSnapshot(fn)
}

// Unsubscribe drops a registration; unknown tokens are a no-op.
func (c *Coordinator) Unsubscribe(token uint64) {
	c.registry.Unsubscribe(token)
}

// InvokeMutation fires the action against one resource and schedules an
// immediate refresh so observers converge on the resulting state.
func (c *Coordinator) InvokeMutation(ctx context.Context, class models.ResourceClass, id string, action MutationAction) error {
	var err error

	switch {
	case class == models.ClassVMs && action == ActionStart:
		err = c.client.StartVM(ctx, id)
	case class == models.ClassVMs && action == ActionStop:
		err = c.client.StopVM(ctx, id)
	case class == models.ClassContainers && action == ActionStart:
		err = c.client.StartContainer(ctx, id)
	case class == models.ClassContainers && action == ActionStop:
		err = c.client.StopContainer(ctx, id)
	default:
		return fmt.Errorf("%w: %s %s", ErrUnsupportedMutation, action, class)
	}

	if err != nil {
		return fmt.Errorf("%s %s %s: %w", action, class, id, err)
	}

	c.RequestRefresh()

	return nil
}

// Status summarizes the coordinator for diagnostics.
func (c *Coordinator) Status() Status {
	c.mu.RLock()
	status := Status{
		ServerID:    c.config.ServerID,
		APIVersion:  c.client.APIVersion(),
		NeedsReauth: c.needsReauth,
		LastAttempt: c.lastAttempt,
		LastSuccess: c.lastSuccess,
	}

	if c.lastErr != nil {
		status.LastError = c.lastErr.Error()
	}
	c.mu.RUnlock()

	if snap := c.registry.Current(); snap != nil {
		for _, class := range models.ResourceClasses {
			if snap.Degraded[class] {
				status.Degraded = append(status.Degraded, string(class))
			}
		}
	}

	return status
}

// runCycle executes one full refresh: fan out, aggregate, diff, publish.
func (c *Coordinator) runCycle(ctx context.Context) (*models.Snapshot, error) {
	c.mu.Lock()
	c.lastAttempt = time.Now()
	c.mu.Unlock()

	prev := c.registry.Current()

	next := &models.Snapshot{
		Server:   c.server,
		Degraded: make(map[models.ResourceClass]bool),
	}

	units := c.buildUnits(next)
	errs := make([]error, len(units))

	var wg sync.WaitGroup

	for i := range units {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			errs[i] = units[i].run(ctx)
		}(i)
	}

	wg.Wait()

	var cycleErr, authErr error

	for i := range units {
		err := errs[i]
		if err == nil {
			continue
		}

		kind := Classify(err)

		if Decide(kind, PhaseSteady) == RecoveryReauth && authErr == nil {
			authErr = fmt.Errorf("%s: %w", units[i].name, err)
		}

		if units[i].mandatory {
			log.Printf("Coordinator %s: %s unit failed (%s): %v", c.config.ServerID, units[i].name, kind, err)

			if cycleErr == nil {
				cycleErr = fmt.Errorf("%s: %w", units[i].name, err)
			}

			continue
		}

		log.Printf("Coordinator %s: %s unit degraded (%s), keeping previous data: %v",
			c.config.ServerID, units[i].name, kind, err)

		next.Degraded[units[i].class] = true
	}

	// An auth failure anywhere stops fresh data everywhere: the prior
	// snapshot stays published until credentials are refreshed.
	if authErr != nil {
		c.fail(authErr, true)
		return nil, authErr
	}

	if cycleErr != nil {
		c.fail(cycleErr, false)
		return nil, cycleErr
	}

	for _, class := range models.ResourceClasses {
		if next.Degraded[class] {
			carryForward(next, prev, class)
		}
	}

	// Discovery deltas fire before the snapshot becomes visible; only
	// units that returned a full result set this cycle report.
	for i := range units {
		if units[i].class == "" || errs[i] != nil {
			continue
		}

		appeared, removed := c.registry.Report(units[i].class, classIDs(next, units[i].class), next)
		if len(appeared) > 0 || len(removed) > 0 {
			log.Printf("Coordinator %s: %s delta: %d appeared, %d removed",
				c.config.ServerID, units[i].class, len(appeared), len(removed))
		}
	}

	next.UpdatedAt = time.Now()

	c.mu.Lock()
	c.needsReauth = false
	c.lastSuccess = next.UpdatedAt
	c.lastErr = nil
	c.mu.Unlock()

	c.registry.Publish(next)

	return next, nil
}

func (c *Coordinator) fail(err error, reauth bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastErr = err
	if reauth {
		c.needsReauth = true
	}
}

// buildUnits assembles the enabled units for one cycle. Metrics and
// array are always queried; the optional classes follow configuration,
// and UPS additionally requires server support.
func (c *Coordinator) buildUnits(next *models.Snapshot) []refreshUnit {
	units := []refreshUnit{
		{
			name:      "metrics",
			mandatory: true,
			run: func(ctx context.Context) error {
				metrics, err := c.client.Metrics(ctx)
				if err != nil {
					return err
				}

				next.Metrics = metrics

				return nil
			},
		},
		{
			name:      "array",
			mandatory: true,
			run: func(ctx context.Context) error {
				array, err := c.client.Array(ctx)
				if err != nil {
					return err
				}

				next.Array = array

				return nil
			},
		},
	}

	if c.config.MonitorDisks {
		units = append(units, refreshUnit{
			name:  "disks",
			class: models.ClassDisks,
			run: func(ctx context.Context) error {
				disks, err := c.client.Disks(ctx)
				if err != nil {
					return err
				}

				next.Disks = disks

				return nil
			},
		})
	}

	if c.config.MonitorShares {
		units = append(units, refreshUnit{
			name:  "shares",
			class: models.ClassShares,
			run: func(ctx context.Context) error {
				shares, err := c.client.Shares(ctx)
				if err != nil {
					return err
				}

				next.Shares = shares

				return nil
			},
		})
	}

	if c.config.MonitorVMs {
		units = append(units, refreshUnit{
			name:  "vms",
			class: models.ClassVMs,
			run: func(ctx context.Context) error {
				vms, err := c.client.VMs(ctx)
				if err != nil {
					return err
				}

				next.VMs = vms

				return nil
			},
		})
	}

	if c.config.MonitorContainers {
		units = append(units, refreshUnit{
			name:  "containers",
			class: models.ClassContainers,
			run: func(ctx context.Context) error {
				containers, err := c.client.Containers(ctx)
				if err != nil {
					return err
				}

				next.Containers = containers

				return nil
			},
		})
	}

	if c.config.MonitorUPS && c.client.SupportsUPS() {
		units = append(units, refreshUnit{
			name:  "ups",
			class: models.ClassUPS,
			run: func(ctx context.Context) error {
				devices, err := c.client.UPSDevices(ctx)
				if err != nil {
					return err
				}

				next.UPSDevices = devices

				return nil
			},
		})
	}

	return units
}

// carryForward copies one class's collection from the previous snapshot
// into the pending one. The map is shared, not cloned; snapshots are
// read-only after publication.
func carryForward(next, prev *models.Snapshot, class models.ResourceClass) {
	if prev == nil {
		return
	}

	switch class {
	case models.ClassDisks:
		next.Disks = prev.Disks
	case models.ClassShares:
		next.Shares = prev.Shares
	case models.ClassVMs:
		next.VMs = prev.VMs
	case models.ClassContainers:
		next.Containers = prev.Containers
	case models.ClassUPS:
		next.UPSDevices = prev.UPSDevices
	}
}

// classIDs lists the identifiers a pending snapshot holds for a class.
func classIDs(snap *models.Snapshot, class models.ResourceClass) []string {
	var ids []string

	switch class {
	case models.ClassDisks:
		for id := range snap.Disks {
			ids = append(ids, id)
		}
	case models.ClassShares:
		for id := range snap.Shares {
			ids = append(ids, id)
		}
	case models.ClassVMs:
		for id := range snap.VMs {
			ids = append(ids, id)
		}
	case models.ClassContainers:
		for id := range snap.Containers {
			ids = append(ids, id)
		}
	case models.ClassUPS:
		for id := range snap.UPSDevices {
			ids = append(ids, id)
		}
	}

	return ids
}
