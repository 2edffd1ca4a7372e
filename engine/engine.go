// Package engine talks to the container runtime that hosts the VROOM
// routing engine.
package engine

import (
	"context"
)

const (
	// DefaultImage is the routing-engine image.
	DefaultImage = "vroomvrp/vroom-docker"
	// DefaultTag pins the engine version.
	DefaultTag = "v1.13.0"
	// ContainerName is the fixed name the engine container is created under.
	ContainerName = "vroom-engine"

	// ConfMountTarget is where the host conf directory appears inside the
	// container; vroom-express reads config.yml from there.
	ConfMountTarget = "/conf"

	routerEnv = "VROOM_ROUTER=osrm"
)

// ContainerSpec describes the engine container to create.
type ContainerSpec struct {
	Image       string // image reference including tag
	Name        string
	ConfDir     string // host directory bind-mounted at ConfMountTarget
	Env         []string
	NetworkMode string
}

// DefaultSpec returns the fixed configuration the routing engine runs with:
// host networking, the conf directory mounted at /conf, and OSRM selected
// as the routing backend.
func DefaultSpec(confDir string) ContainerSpec {
	return ContainerSpec{
		Image:       DefaultImage + ":" + DefaultTag,
		Name:        ContainerName,
		ConfDir:     confDir,
		Env:         []string{routerEnv},
		NetworkMode: "host",
	}
}

// Runtime is the narrow surface of the container runtime the lifecycle
// controller needs. Implementations must be usable without any prior
// setup beyond construction.
type Runtime interface {
	// Create creates the engine container described by spec and returns
	// the identifier the runtime assigned. It does not start the container.
	Create(ctx context.Context, spec ContainerSpec) (string, error)

	// Start starts a previously created container.
	Start(ctx context.Context, id string) error

	// Stop stops the container. Stopping a container that is already
	// stopped succeeds.
	Stop(ctx context.Context, id string) error

	// ListRunning returns the identifiers of running containers whose
	// name contains name.
	ListRunning(ctx context.Context, name string) ([]string, error)

	// Logs returns the last tail lines of the container's combined output.
	Logs(ctx context.Context, id string, tail int) (string, error)
}
