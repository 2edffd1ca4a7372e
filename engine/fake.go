package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// FakeRuntime is an in-memory Runtime for tests. It records every call so
// tests can assert what the controller asked for, and mints identifiers in
// the hex shape the Docker daemon uses.
type FakeRuntime struct {
	mu         sync.Mutex
	containers map[string]*fakeContainer

	CreateCalls []ContainerSpec
	StartCalls  []string
	StopCalls   []string
	ListCalls   int

	// Errors to inject per operation; nil means success.
	CreateErr error
	StartErr  error
	StopErr   error
	ListErr   error
	LogsErr   error

	// LogOutput is returned by Logs for any known container.
	LogOutput string
}

type fakeContainer struct {
	spec    ContainerSpec
	running bool
}

// NewFakeRuntime returns an empty fake with no containers.
func NewFakeRuntime() *FakeRuntime {
	return &FakeRuntime{containers: make(map[string]*fakeContainer)}
}

// AddContainer seeds a container as if it had been created earlier, so
// tests can start from a provisioned state. It returns the minted ID.
func (f *FakeRuntime) AddContainer(spec ContainerSpec, running bool) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := mintID()
	f.containers[id] = &fakeContainer{spec: spec, running: running}
	return id
}

// Running reports whether the container with the given ID is running.
func (f *FakeRuntime) Running(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.containers[id]
	return ok && c.running
}

func (f *FakeRuntime) Create(ctx context.Context, spec ContainerSpec) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.CreateCalls = append(f.CreateCalls, spec)
	if f.CreateErr != nil {
		return "", f.CreateErr
	}

	id := mintID()
	f.containers[id] = &fakeContainer{spec: spec}
	return id, nil
}

func (f *FakeRuntime) Start(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.StartCalls = append(f.StartCalls, id)
	if f.StartErr != nil {
		return f.StartErr
	}

	c, ok := f.containers[id]
	if !ok {
		return fmt.Errorf("no such container: %s", id)
	}
	c.running = true
	return nil
}

func (f *FakeRuntime) Stop(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.StopCalls = append(f.StopCalls, id)
	if f.StopErr != nil {
		return f.StopErr
	}

	c, ok := f.containers[id]
	if !ok {
		return fmt.Errorf("no such container: %s", id)
	}
	// Stopping an already stopped container succeeds, as in Docker.
	c.running = false
	return nil
}

func (f *FakeRuntime) ListRunning(ctx context.Context, name string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.ListCalls++
	if f.ListErr != nil {
		return nil, f.ListErr
	}

	var ids []string
	for id, c := range f.containers {
		if c.running && strings.Contains(c.spec.Name, name) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *FakeRuntime) Logs(ctx context.Context, id string, tail int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.LogsErr != nil {
		return "", f.LogsErr
	}
	if _, ok := f.containers[id]; !ok {
		return "", fmt.Errorf("no such container: %s", id)
	}
	return f.LogOutput, nil
}

// mintID produces a 64-char hex identifier like the Docker daemon's.
func mintID() string {
	a := strings.ReplaceAll(uuid.New().String(), "-", "")
	b := strings.ReplaceAll(uuid.New().String(), "-", "")
	return a + b
}
