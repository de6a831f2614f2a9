package models

import "time"

// ArrayState mirrors the server's array state enum.
type ArrayState string

const (
	ArrayStarted             ArrayState = "STARTED"
	ArrayStopped             ArrayState = "STOPPED"
	ArrayNewArray            ArrayState = "NEW_ARRAY"
	ArrayReconDisk           ArrayState = "RECON_DISK"
	ArrayDisableDisk         ArrayState = "DISABLE_DISK"
	ArraySwapDsbl            ArrayState = "SWAP_DSBL"
	ArrayInvalidExpansion    ArrayState = "INVALID_EXPANSION"
	ArrayParityNotBiggest    ArrayState = "PARITY_NOT_BIGGEST"
	ArrayTooManyMissingDisks ArrayState = "TOO_MANY_MISSING_DISKS"
	ArrayNewDiskTooSmall     ArrayState = "NEW_DISK_TOO_SMALL"
	ArrayNoDataDisks         ArrayState = "NO_DATA_DISKS"
)

// ParityCheckStatus mirrors the server's parity check state enum.
type ParityCheckStatus string

const (
	ParityNeverRun  ParityCheckStatus = "NEVER_RUN"
	ParityRunning   ParityCheckStatus = "RUNNING"
	ParityPaused    ParityCheckStatus = "PAUSED"
	ParityCompleted ParityCheckStatus = "COMPLETED"
	ParityCancelled ParityCheckStatus = "CANCELLED"
	ParityFailed    ParityCheckStatus = "FAILED"
)

// ParityCheck describes the most recent parity check run.
type ParityCheck struct {
	Status   ParityCheckStatus `json:"status"`
	Date     *time.Time        `json:"date,omitempty"`
	Duration int64             `json:"duration"`
	Speed    float64           `json:"speed"`
	Errors   *int64            `json:"errors,omitempty"`
	Progress float64           `json:"progress"`
}

// Array is the server's storage array. Capacity values are kilobytes.
// UsagePercent is nil when total capacity is unknown (array stopped),
// never a division fault.
type Array struct {
	State        ArrayState  `json:"state"`
	FreeKB       int64       `json:"free_kb"`
	UsedKB       int64       `json:"used_kb"`
	TotalKB      int64       `json:"total_kb"`
	UsagePercent *float64    `json:"usage_percent,omitempty"`
	ParityCheck  ParityCheck `json:"parity_check"`
}

// DiskStatus mirrors the server's disk status enum.
type DiskStatus string

const (
	DiskNP        DiskStatus = "DISK_NP"
	DiskOK        DiskStatus = "DISK_OK"
	DiskNPMissing DiskStatus = "DISK_NP_MISSING"
	DiskInvalid   DiskStatus = "DISK_INVALID"
	DiskWrong     DiskStatus = "DISK_WRONG"
	DiskDsbl      DiskStatus = "DISK_DSBL"
	DiskNPDsbl    DiskStatus = "DISK_NP_DSBL"
	DiskDsblNew   DiskStatus = "DISK_DSBL_NEW"
	DiskNew       DiskStatus = "DISK_NEW"
)

// DiskType distinguishes the array roles a disk can hold.
type DiskType string

const (
	DiskTypeData   DiskType = "DATA"
	DiskTypeParity DiskType = "PARITY"
	DiskTypeFlash  DiskType = "FLASH"
	DiskTypeCache  DiskType = "CACHE"
)

// Disk is one physical disk in the array. Temp is nil while the disk is
// spun down. Filesystem capacity fields are nil for parity disks, which
// carry no filesystem.
type Disk struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Type         DiskType   `json:"type"`
	Status       DiskStatus `json:"status"`
	Temp         *int64     `json:"temp,omitempty"`
	IsSpinning   bool       `json:"is_spinning"`
	FSSizeKB     *int64     `json:"fs_size_kb,omitempty"`
	FSFreeKB     *int64     `json:"fs_free_kb,omitempty"`
	FSUsedKB     *int64     `json:"fs_used_kb,omitempty"`
	UsagePercent *float64   `json:"usage_percent,omitempty"`
}
