/*
Copyright 2025 Carver Automation Corporation.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package coordinator

import (
	"context"

	"github.com/mfreeman451/unradar/pkg/models"
)

//go:generate mockgen -destination=mock_coordinator.go -package=coordinator github.com/mfreeman451/unradar/pkg/coordinator QueryClient

// QueryClient is the version-negotiated query surface the coordinator
// polls. One unit of a refresh cycle maps onto one query method.
type QueryClient interface {
	// APIVersion returns the server API version negotiated at setup.
	APIVersion() string

	// SupportsUPS reports whether the negotiated version can serve the
	// UPS collection.
	SupportsUPS() bool

	// Metrics and Array are the mandatory units, queried every cycle.
	Metrics(ctx context.Context) (models.Metrics, error)
	Array(ctx context.Context) (models.Array, error)

	// Optional units, each gated by configuration.
	Disks(ctx context.Context) (map[string]models.Disk, error)
	Shares(ctx context.Context) (map[string]models.Share, error)
	VMs(ctx context.Context) (map[string]models.VirtualMachine, error)
	Containers(ctx context.Context) (map[string]models.DockerContainer, error)
	UPSDevices(ctx context.Context) (map[string]models.UPSDevice, error)

	// Mutations. Each returns an error when the server refuses the
	// request; state convergence happens through the follow-up refresh.
	StartVM(ctx context.Context, id string) error
	StopVM(ctx context.Context, id string) error
	StartContainer(ctx context.Context, id string) error
	StopContainer(ctx context.Context, id string) error
}
