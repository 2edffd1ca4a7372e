package vroom

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/everydev1618/govroom/conf"
	"github.com/everydev1618/govroom/engine"
)

// ContainerIDKey is the config-file key the engine container identifier is
// recorded under.
const ContainerIDKey = "VROOM_CONTAINER_ID"

// State describes what the controller knows about the engine container.
type State int

const (
	// Unprovisioned means no container identifier is on record.
	Unprovisioned State = iota
	// ProvisionedStopped means an identifier is recorded but the container
	// is not running.
	ProvisionedStopped
	// ProvisionedRunning means the recorded container is running.
	ProvisionedRunning
)

func (s State) String() string {
	switch s {
	case ProvisionedStopped:
		return "stopped"
	case ProvisionedRunning:
		return "running"
	default:
		return "not provisioned"
	}
}

// StartOutcome reports which path Start took.
type StartOutcome int

const (
	// StartCreated means no container was on record; a new one was created,
	// recorded and started.
	StartCreated StartOutcome = iota
	// StartStarted means the recorded container existed but was stopped,
	// and a start command was issued.
	StartStarted
	// StartAlreadyRunning means the recorded container was already running
	// and nothing was done.
	StartAlreadyRunning
)

// StartOptions configures a Start call.
type StartOptions struct {
	// ConfigSource, when set, refreshes the engine's config.yml in the
	// conf directory from this file before anything is started. The
	// source file must exist.
	ConfigSource string
}

// Status is a point-in-time view of the engine container.
type Status struct {
	State       State
	ContainerID string // empty when Unprovisioned
}

// Controller drives the engine container lifecycle. It consults the
// identifier store to decide between provisioning a new container and
// reusing the recorded one, and issues all runtime commands through the
// narrow engine.Runtime interface.
//
// A Controller is built for one command invocation; it holds no state
// beyond its configuration and is not safe for concurrent use.
type Controller struct {
	paths   Paths
	store   *conf.Store
	runtime engine.Runtime
	spec    engine.ContainerSpec
	logger  *log.Logger
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithLogger sets the logger for operational messages.
func WithLogger(l *log.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithSpec overrides the engine container specification.
func WithSpec(spec engine.ContainerSpec) ControllerOption {
	return func(c *Controller) {
		c.spec = spec
	}
}

// NewController creates a controller over the given paths and runtime.
func NewController(paths Paths, rt engine.Runtime, opts ...ControllerOption) *Controller {
	c := &Controller{
		paths:   paths,
		store:   conf.NewStore(paths.ConfFile),
		runtime: rt,
		spec:    engine.DefaultSpec(paths.ConfDir),
		logger:  log.New(os.Stdout, "[vroom] ", log.LstdFlags|log.Lmsgprefix),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Start brings the engine container up. With no identifier on record it
// creates a new container, records the identifier, and starts it. With an
// identifier on record it checks the runtime and starts the container only
// if it is not already running.
func (c *Controller) Start(ctx context.Context, opts StartOptions) (StartOutcome, error) {
	if err := c.seedConfig(opts.ConfigSource); err != nil {
		return 0, err
	}

	id, ok, err := c.store.Lookup(ContainerIDKey)
	if err != nil {
		return 0, err
	}

	if !ok {
		if err := c.provision(ctx); err != nil {
			return 0, err
		}
		return StartCreated, nil
	}

	running, err := c.runtime.ListRunning(ctx, c.spec.Name)
	if err != nil {
		return 0, &EngineError{Op: "list", Err: err}
	}
	for _, r := range running {
		if r == id {
			c.logger.Printf("engine container %s is already running", shortID(id))
			return StartAlreadyRunning, nil
		}
	}

	if err := c.runtime.Start(ctx, id); err != nil {
		return 0, &EngineError{Op: "start", ID: id, Err: err}
	}
	c.logger.Printf("started engine container %s", shortID(id))
	return StartStarted, nil
}

// provision creates a fresh engine container, records its identifier, and
// starts it. The identifier is recorded before the start command so a
// failed start still leaves the container findable by a later invocation.
func (c *Controller) provision(ctx context.Context) error {
	id, err := c.runtime.Create(ctx, c.spec)
	if err != nil {
		return &EngineError{Op: "create", Err: err}
	}

	if err := c.store.Append(ContainerIDKey, id); err != nil {
		return fmt.Errorf("record container id: %w", err)
	}

	if err := c.runtime.Start(ctx, id); err != nil {
		return &EngineError{Op: "start", ID: id, Err: err}
	}
	c.logger.Printf("created and started engine container %s", shortID(id))
	return nil
}

// Stop stops the recorded engine container. It issues the stop command
// unconditionally; Docker treats stopping an already stopped container as
// success, so no running check is needed. With nothing on record it
// returns ErrNoContainer without touching the runtime.
func (c *Controller) Stop(ctx context.Context) error {
	id, ok, err := c.store.Lookup(ContainerIDKey)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoContainer
	}

	if err := c.runtime.Stop(ctx, id); err != nil {
		return &EngineError{Op: "stop", ID: id, Err: err}
	}
	c.logger.Printf("stopped engine container %s", shortID(id))
	return nil
}

// Status reports the current lifecycle state and the recorded identifier.
func (c *Controller) Status(ctx context.Context) (Status, error) {
	id, ok, err := c.store.Lookup(ContainerIDKey)
	if err != nil {
		return Status{}, err
	}
	if !ok {
		return Status{State: Unprovisioned}, nil
	}

	running, err := c.runtime.ListRunning(ctx, c.spec.Name)
	if err != nil {
		return Status{}, &EngineError{Op: "list", Err: err}
	}
	for _, r := range running {
		if r == id {
			return Status{State: ProvisionedRunning, ContainerID: id}, nil
		}
	}
	return Status{State: ProvisionedStopped, ContainerID: id}, nil
}

// Logs returns the last tail lines of the engine container's output.
func (c *Controller) Logs(ctx context.Context, tail int) (string, error) {
	id, ok, err := c.store.Lookup(ContainerIDKey)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrNoContainer
	}

	out, err := c.runtime.Logs(ctx, id, tail)
	if err != nil {
		return "", &EngineError{Op: "logs", ID: id, Err: err}
	}
	return out, nil
}

// ConfigPath returns where the engine's config.yml lives on the host.
func (c *Controller) ConfigPath() string {
	return filepath.Join(c.paths.ConfDir, "config.yml")
}

// seedConfig makes sure the conf directory holds a config.yml for the
// engine. A caller-supplied source refreshes it through SyncFile;
// otherwise the embedded default is written once and left alone.
func (c *Controller) seedConfig(source string) error {
	dst := c.ConfigPath()

	if source != "" {
		result, err := conf.SyncFile(source, dst)
		if err != nil {
			return fmt.Errorf("refresh engine config: %w", err)
		}
		if result != conf.CopyUnchanged {
			c.logger.Printf("engine config %s: %s", dst, result)
		}
		return nil
	}

	if _, err := os.Stat(dst); err == nil {
		return nil
	}
	if err := engine.WriteDefaultConfig(dst); err != nil {
		return fmt.Errorf("seed engine config: %w", err)
	}
	c.logger.Printf("seeded default engine config at %s", dst)
	return nil
}
