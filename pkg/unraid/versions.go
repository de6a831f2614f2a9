package unraid

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// MinSupportedVersion is the lowest server API version unradar speaks.
const MinSupportedVersion = "4.20.0"

// querySet is the capability table for one supported API version: the
// documents to send and the optional features the version unlocks.
// Newer sets start from a copy of the previous one and override.
type querySet struct {
	version     string
	serverInfo  string
	metrics     string
	shares      string
	disks       string
	array       string
	ups         string
	vms         string
	containers  string
	cpuPackages bool // metrics document includes package temp/power
	upsDevices  bool // server exposes the UPS collection
}

func querySet420() *querySet {
	return &querySet{
		version:    "4.20.0",
		serverInfo: queryServerInfo,
		metrics:    queryMetrics,
		shares:     queryShares,
		disks:      queryDisks,
		array:      queryArray,
		ups:        queryUPSDevices,
		vms:        queryVMs,
		containers: queryDocker,
	}
}

func querySet426() *querySet {
	qs := querySet420()
	qs.version = "4.26.0"
	qs.metrics = queryMetricsV426
	qs.cpuPackages = true
	qs.upsDevices = true

	return qs
}

// querySets is ordered newest first; selection picks the first set whose
// version is <= the negotiated server version.
var querySets = []*querySet{querySet426(), querySet420()}

// selectQuerySet picks the highest query set compatible with the
// reported API version. Build metadata suffixes are ignored.
func selectQuerySet(apiVersion string) (*querySet, error) {
	v, err := canonicalVersion(apiVersion)
	if err != nil {
		return nil, err
	}

	minimum, _ := canonicalVersion(MinSupportedVersion)
	if semver.Compare(v, minimum) < 0 {
		return nil, &IncompatibleVersionError{Version: apiVersion, Minimum: MinSupportedVersion}
	}

	for _, qs := range querySets {
		qsVersion, _ := canonicalVersion(qs.version)
		if semver.Compare(v, qsVersion) >= 0 {
			return qs, nil
		}
	}

	return nil, &IncompatibleVersionError{Version: apiVersion, Minimum: MinSupportedVersion}
}

func canonicalVersion(version string) (string, error) {
	trimmed := strings.SplitN(version, "+", 2)[0]
	trimmed = "v" + strings.TrimPrefix(trimmed, "v")

	if !semver.IsValid(trimmed) {
		return "", fmt.Errorf("%w: %q", errUnknownVersion, version)
	}

	return trimmed, nil
}
