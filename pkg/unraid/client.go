package unraid

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/mfreeman451/unradar/pkg/graphql"
	"github.com/mfreeman451/unradar/pkg/models"
)

// Client issues the negotiated query set against one server and
// normalizes responses into the internal model. It is safe for
// concurrent use; the query set is fixed at negotiation time.
type Client struct {
	exec    graphql.Executor
	qs      *querySet
	version string
}

// Negotiate queries the server's API version once and builds a client
// around the highest compatible query set. Transport errors pass
// through unwrapped so callers can classify them.
func Negotiate(ctx context.Context, exec graphql.Executor) (*Client, error) {
	raw, err := exec.Execute(ctx, queryAPIVersion, nil)
	if err != nil {
		return nil, err
	}

	var payload apiVersionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode api version: %w", ErrMalformedResponse, err)
	}

	version := payload.Info.Versions.Core.API

	qs, err := selectQuerySet(version)
	if err != nil {
		return nil, err
	}

	log.Printf("Negotiated Unraid API version %s (query set %s)", version, qs.version)

	return &Client{exec: exec, qs: qs, version: version}, nil
}

// APIVersion returns the version the server reported at negotiation.
func (c *Client) APIVersion() string {
	return c.version
}

// SupportsUPS reports whether the negotiated query set includes the UPS
// collection.
func (c *Client) SupportsUPS() bool {
	return c.qs.upsDevices
}

// ServerInfo fetches the server identity.
func (c *Client) ServerInfo(ctx context.Context) (models.ServerInfo, error) {
	var payload serverInfoPayload
	if err := c.do(ctx, c.qs.serverInfo, nil, &payload); err != nil {
		return models.ServerInfo{}, err
	}

	info := models.ServerInfo{
		Name:          payload.Server.Name,
		LocalURL:      payload.Server.LocalURL,
		UnraidVersion: payload.Info.Versions.Core.Unraid,
		APIVersion:    c.version,
	}

	if payload.Info.OS != nil && payload.Info.OS.Uptime != "" {
		if bootTime, err := time.Parse(time.RFC3339Nano, payload.Info.OS.Uptime); err == nil {
			info.BootTime = &bootTime
		} else {
			log.Printf("Ignoring unparseable uptime %q: %v", payload.Info.OS.Uptime, err)
		}
	}

	return info, nil
}

// Metrics fetches one cycle's utilization readings.
func (c *Client) Metrics(ctx context.Context) (models.Metrics, error) {
	var payload metricsPayload
	if err := c.do(ctx, c.qs.metrics, nil, &payload); err != nil {
		return models.Metrics{}, err
	}

	metrics := models.Metrics{
		MemoryFree:      int64(payload.Metrics.Memory.Free),
		MemoryTotal:     int64(payload.Metrics.Memory.Total),
		MemoryActive:    int64(payload.Metrics.Memory.Active),
		MemoryAvailable: int64(payload.Metrics.Memory.Available),
		MemoryPercent:   payload.Metrics.Memory.PercentTotal,
		CPUPercent:      payload.Metrics.CPU.PercentTotal,
	}

	if c.qs.cpuPackages && payload.Info != nil {
		if temps := payload.Info.CPU.Packages.Temp; len(temps) > 0 {
			metrics.CPUTemp = &temps[0]
		}

		if power := payload.Info.CPU.Packages.Power; len(power) > 0 {
			metrics.CPUPower = &power[0]
		}
	}

	return metrics, nil
}

// Array fetches the array state, capacity and parity check status.
func (c *Client) Array(ctx context.Context) (models.Array, error) {
	var payload arrayPayload
	if err := c.do(ctx, c.qs.array, nil, &payload); err != nil {
		return models.Array{}, err
	}

	kb := payload.Array.Capacity.Kilobytes
	array := models.Array{
		State:        models.ArrayState(payload.Array.State),
		FreeKB:       int64(kb.Free),
		UsedKB:       int64(kb.Used),
		TotalKB:      int64(kb.Total),
		UsagePercent: models.Percentage(float64(kb.Used), float64(kb.Total)),
		ParityCheck:  normalizeParityCheck(payload.Array.ParityCheck),
	}

	return array, nil
}

// Disks fetches all disks: data disks and caches with filesystem
// capacity, parity disks without.
func (c *Client) Disks(ctx context.Context) (map[string]models.Disk, error) {
	var payload disksPayload
	if err := c.do(ctx, c.qs.disks, nil, &payload); err != nil {
		return nil, err
	}

	arr := payload.Array
	disks := make(map[string]models.Disk, len(arr.Disks)+len(arr.Parities)+len(arr.Caches))

	for _, p := range arr.Disks {
		disks[p.ID] = normalizeDisk(&p, true)
	}

	for _, p := range arr.Caches {
		disks[p.ID] = normalizeDisk(&p, true)
	}

	for _, p := range arr.Parities {
		disks[p.ID] = normalizeDisk(&p, false)
	}

	return disks, nil
}

// Shares fetches the user shares keyed by name.
func (c *Client) Shares(ctx context.Context) (map[string]models.Share, error) {
	var payload sharesPayload
	if err := c.do(ctx, c.qs.shares, nil, &payload); err != nil {
		return nil, err
	}

	shares := make(map[string]models.Share, len(payload.Shares))
	for _, p := range payload.Shares {
		shares[p.Name] = models.Share{
			Name:         p.Name,
			FreeKB:       int64(p.Free),
			UsedKB:       int64(p.Used),
			SizeKB:       int64(p.Size),
			Allocator:    p.Allocator,
			Floor:        p.Floor,
			UsagePercent: models.Percentage(float64(p.Used), float64(p.Size)),
		}
	}

	return shares, nil
}

// VMs fetches the libvirt domains keyed by id.
func (c *Client) VMs(ctx context.Context) (map[string]models.VirtualMachine, error) {
	var payload vmsPayload
	if err := c.do(ctx, c.qs.vms, nil, &payload); err != nil {
		return nil, err
	}

	vms := make(map[string]models.VirtualMachine, len(payload.VMs.Domain))
	for _, p := range payload.VMs.Domain {
		vms[p.ID] = models.VirtualMachine{
			ID:    p.ID,
			Name:  p.Name,
			State: models.VMState(p.State),
		}
	}

	return vms, nil
}

// Containers fetches the docker containers keyed by id.
func (c *Client) Containers(ctx context.Context) (map[string]models.DockerContainer, error) {
	var payload dockerPayload
	if err := c.do(ctx, c.qs.containers, nil, &payload); err != nil {
		return nil, err
	}

	containers := make(map[string]models.DockerContainer, len(payload.Docker.Containers))
	for _, p := range payload.Docker.Containers {
		containers[p.ID] = normalizeContainer(&p)
	}

	return containers, nil
}

// UPSDevices fetches the UPS collection keyed by id. Callers should
// gate on SupportsUPS.
func (c *Client) UPSDevices(ctx context.Context) (map[string]models.UPSDevice, error) {
	var payload upsPayload
	if err := c.do(ctx, c.qs.ups, nil, &payload); err != nil {
		return nil, err
	}

	devices := make(map[string]models.UPSDevice, len(payload.UPSDevices))
	for _, p := range payload.UPSDevices {
		devices[p.ID] = models.UPSDevice{
			ID:             p.ID,
			Name:           p.Name,
			Model:          p.Model,
			Status:         p.Status,
			BatteryLevel:   int64(p.Battery.ChargeLevel),
			BatteryRuntime: int64(p.Battery.EstimatedRuntime),
			BatteryHealth:  p.Battery.Health,
			LoadPercentage: p.Power.LoadPercentage,
			InputVoltage:   p.Power.InputVoltage,
			OutputVoltage:  p.Power.OutputVoltage,
		}
	}

	return devices, nil
}

// StartVM starts the domain with the given id.
func (c *Client) StartVM(ctx context.Context, id string) error {
	var payload vmMutationPayload
	if err := c.do(ctx, mutationStartVM, map[string]interface{}{"id": id}, &payload); err != nil {
		return err
	}

	if payload.VM.Start == nil || !*payload.VM.Start {
		return fmt.Errorf("%w: start vm %s", errMutationRefused, id)
	}

	return nil
}

// StopVM stops the domain with the given id.
func (c *Client) StopVM(ctx context.Context, id string) error {
	var payload vmMutationPayload
	if err := c.do(ctx, mutationStopVM, map[string]interface{}{"id": id}, &payload); err != nil {
		return err
	}

	if payload.VM.Stop == nil || !*payload.VM.Stop {
		return fmt.Errorf("%w: stop vm %s", errMutationRefused, id)
	}

	return nil
}

// StartContainer starts the docker container with the given id.
func (c *Client) StartContainer(ctx context.Context, id string) error {
	var payload containerMutationPayload
	if err := c.do(ctx, mutationStartContainer, map[string]interface{}{"id": id}, &payload); err != nil {
		return err
	}

	if payload.Docker.Start == nil {
		return fmt.Errorf("%w: start container %s", errMutationRefused, id)
	}

	return nil
}

// StopContainer stops the docker container with the given id.
func (c *Client) StopContainer(ctx context.Context, id string) error {
	var payload containerMutationPayload
	if err := c.do(ctx, mutationStopContainer, map[string]interface{}{"id": id}, &payload); err != nil {
		return err
	}

	if payload.Docker.Stop == nil {
		return fmt.Errorf("%w: stop container %s", errMutationRefused, id)
	}

	return nil
}

// StartParityCheck kicks off a parity check.
func (c *Client) StartParityCheck(ctx context.Context) error {
	return c.parityMutation(ctx, mutationStartParityCheck, "start")
}

// PauseParityCheck pauses a running parity check.
func (c *Client) PauseParityCheck(ctx context.Context) error {
	return c.parityMutation(ctx, mutationPauseParityCheck, "pause")
}

// ResumeParityCheck resumes a paused parity check.
func (c *Client) ResumeParityCheck(ctx context.Context) error {
	return c.parityMutation(ctx, mutationResumeParityCheck, "resume")
}

// CancelParityCheck cancels a parity check.
func (c *Client) CancelParityCheck(ctx context.Context) error {
	return c.parityMutation(ctx, mutationCancelParityCheck, "cancel")
}

func (c *Client) parityMutation(ctx context.Context, doc, action string) error {
	var payload parityMutationPayload
	if err := c.do(ctx, doc, nil, &payload); err != nil {
		return err
	}

	var accepted *bool

	switch action {
	case "start":
		accepted = payload.ParityCheck.Start
	case "pause":
		accepted = payload.ParityCheck.Pause
	case "resume":
		accepted = payload.ParityCheck.Resume
	case "cancel":
		accepted = payload.ParityCheck.Cancel
	}

	if accepted == nil || !*accepted {
		return fmt.Errorf("%w: parity check %s", errMutationRefused, action)
	}

	return nil
}

func (c *Client) do(ctx context.Context, doc string, vars map[string]interface{}, dst interface{}) error {
	raw, err := c.exec.Execute(ctx, doc, vars)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	return nil
}

func normalizeDisk(p *diskPayload, withFS bool) models.Disk {
	disk := models.Disk{
		ID:         p.ID,
		Name:       p.Name,
		Type:       models.DiskType(p.Type),
		Status:     models.DiskStatus(p.Status),
		Temp:       p.Temp,
		IsSpinning: p.IsSpinning,
	}

	if !withFS {
		return disk
	}

	if p.FSSize != nil {
		size := int64(*p.FSSize)
		disk.FSSizeKB = &size
	}

	if p.FSFree != nil {
		free := int64(*p.FSFree)
		disk.FSFreeKB = &free
	}

	if p.FSUsed != nil {
		used := int64(*p.FSUsed)
		disk.FSUsedKB = &used
	}

	if disk.FSUsedKB != nil && disk.FSSizeKB != nil {
		disk.UsagePercent = models.Percentage(float64(*disk.FSUsedKB), float64(*disk.FSSizeKB))
	}

	return disk
}

func normalizeContainer(p *containerPayload) models.DockerContainer {
	name := p.ID
	if len(p.Names) > 0 {
		name = p.Names[0]
	}

	return models.DockerContainer{
		ID:        p.ID,
		Name:      name,
		State:     models.ContainerState(p.State),
		Image:     p.Image,
		Status:    p.Status,
		AutoStart: p.AutoStart,
	}
}

func normalizeParityCheck(p *parityCheckPayload) models.ParityCheck {
	if p == nil {
		return models.ParityCheck{Status: models.ParityNeverRun}
	}

	check := models.ParityCheck{
		Status:   models.ParityCheckStatus(p.Status),
		Duration: int64(p.Duration),
		Speed:    p.Speed,
		Errors:   p.Errors,
		Progress: p.Progress,
	}

	if p.Date != "" {
		if date, err := time.Parse(time.RFC3339Nano, p.Date); err == nil {
			check.Date = &date
		}
	}

	return check
}

// ParseCPUSubscription decodes one CPU subscription payload.
func ParseCPUSubscription(data json.RawMessage) (float64, error) {
	var payload struct {
		Metrics struct {
			CPU struct {
				PercentTotal float64 `json:"percentTotal"`
			} `json:"cpu"`
		} `json:"metrics"`
	}

	if err := json.Unmarshal(data, &payload); err != nil {
		return 0, fmt.Errorf("%w: decode cpu subscription: %w", ErrMalformedResponse, err)
	}

	return payload.Metrics.CPU.PercentTotal, nil
}

// MemorySample is one memory subscription reading.
type MemorySample struct {
	Free      int64
	Total     int64
	Active    int64
	Available int64
	Percent   float64
}

// ParseMemorySubscription decodes one memory subscription payload.
func ParseMemorySubscription(data json.RawMessage) (*MemorySample, error) {
	var payload struct {
		Metrics struct {
			Memory memoryPayload `json:"memory"`
		} `json:"metrics"`
	}

	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode memory subscription: %w", ErrMalformedResponse, err)
	}

	mem := payload.Metrics.Memory

	return &MemorySample{
		Free:      int64(mem.Free),
		Total:     int64(mem.Total),
		Active:    int64(mem.Active),
		Available: int64(mem.Available),
		Percent:   mem.PercentTotal,
	}, nil
}
