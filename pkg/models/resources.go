package models

// ResourceClass names one dynamically discovered resource collection.
type ResourceClass string

const (
	ClassDisks      ResourceClass = "disks"
	ClassShares     ResourceClass = "shares"
	ClassVMs        ResourceClass = "vms"
	ClassContainers ResourceClass = "containers"
	ClassUPS        ResourceClass = "ups"
)

// ResourceClasses lists every dynamic collection in a stable order.
var ResourceClasses = []ResourceClass{ClassDisks, ClassShares, ClassVMs, ClassContainers, ClassUPS}

// Share is one user share on the array, keyed by name.
type Share struct {
	Name         string   `json:"name"`
	FreeKB       int64    `json:"free_kb"`
	UsedKB       int64    `json:"used_kb"`
	SizeKB       int64    `json:"size_kb"`
	Allocator    string   `json:"allocator"`
	Floor        string   `json:"floor"`
	UsagePercent *float64 `json:"usage_percent,omitempty"`
}

// VMState mirrors the server's virtual machine state enum.
type VMState string

const (
	VMRunning     VMState = "RUNNING"
	VMShutoff     VMState = "SHUTOFF"
	VMPaused      VMState = "PAUSED"
	VMIdle        VMState = "IDLE"
	VMShutdown    VMState = "SHUTDOWN"
	VMCrashed     VMState = "CRASHED"
	VMPMSuspended VMState = "PMSUSPENDED"
	VMNoState     VMState = "NOSTATE"
)

// VirtualMachine is one libvirt domain on the server.
type VirtualMachine struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	State VMState `json:"state"`
}

// ContainerState mirrors the server's docker container state enum.
type ContainerState string

const (
	ContainerRunning    ContainerState = "RUNNING"
	ContainerExited     ContainerState = "EXITED"
	ContainerPaused     ContainerState = "PAUSED"
	ContainerRestarting ContainerState = "RESTARTING"
	ContainerCreated    ContainerState = "CREATED"
	ContainerDead       ContainerState = "DEAD"
)

// DockerContainer is one docker container on the server. Name is the
// primary name; the server may report several.
type DockerContainer struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	State     ContainerState `json:"state"`
	Image     string         `json:"image,omitempty"`
	Status    string         `json:"status,omitempty"`
	AutoStart bool           `json:"auto_start"`
}
