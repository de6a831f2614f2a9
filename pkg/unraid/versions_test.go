package unraid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectQuerySet(t *testing.T) {
	tests := []struct {
		name        string
		version     string
		wantSet     string
		wantUPS     bool
		wantErr     bool
		wantCPUInfo bool
	}{
		{
			name:    "below minimum",
			version: "4.19.5",
			wantErr: true,
		},
		{
			name:    "minimum exactly",
			version: "4.20.0",
			wantSet: "4.20.0",
		},
		{
			name:    "between sets uses older",
			version: "4.25.3",
			wantSet: "4.20.0",
		},
		{
			name:        "capability boundary",
			version:     "4.26.0",
			wantSet:     "4.26.0",
			wantUPS:     true,
			wantCPUInfo: true,
		},
		{
			name:        "newer than newest set",
			version:     "5.1.2",
			wantSet:     "4.26.0",
			wantUPS:     true,
			wantCPUInfo: true,
		},
		{
			name:        "build metadata is ignored",
			version:     "4.26.1+build.20250810",
			wantSet:     "4.26.0",
			wantUPS:     true,
			wantCPUInfo: true,
		},
		{
			name:    "unparseable version",
			version: "latest",
			wantErr: true,
		},
		{
			name:    "empty version",
			version: "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qs, err := selectQuerySet(tt.version)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsIncompatibleVersion(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantSet, qs.version)
			assert.Equal(t, tt.wantUPS, qs.upsDevices)
			assert.Equal(t, tt.wantCPUInfo, qs.cpuPackages)
		})
	}
}

func TestIncompatibleVersionError(t *testing.T) {
	_, err := selectQuerySet("4.2.0")
	require.Error(t, err)

	var incompatible *IncompatibleVersionError

	require.ErrorAs(t, err, &incompatible)
	assert.Equal(t, "4.2.0", incompatible.Version)
	assert.Equal(t, MinSupportedVersion, incompatible.Minimum)
	assert.Contains(t, incompatible.Error(), "4.2.0")
}

func TestQuerySet426ExtendsBaseline(t *testing.T) {
	base := querySet420()
	next := querySet426()

	// Only metrics is overridden; everything else carries over.
	assert.Equal(t, base.shares, next.shares)
	assert.Equal(t, base.disks, next.disks)
	assert.Equal(t, base.array, next.array)
	assert.Equal(t, base.vms, next.vms)
	assert.Equal(t, base.containers, next.containers)
	assert.NotEqual(t, base.metrics, next.metrics)
	assert.Contains(t, next.metrics, "packages")
}
