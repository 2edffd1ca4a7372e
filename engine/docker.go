package engine

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
)

// stopTimeoutSeconds is how long the daemon waits for the engine to exit
// before killing it.
const stopTimeoutSeconds = 10

// DockerRuntime implements Runtime against the Docker Engine API.
type DockerRuntime struct {
	client *client.Client
}

// NewDockerRuntime creates a runtime connected to the local Docker daemon,
// honoring DOCKER_HOST and related environment settings.
func NewDockerRuntime() (*DockerRuntime, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("connect to docker daemon: %w", err)
	}
	return &DockerRuntime{client: cli}, nil
}

// Create pulls the engine image if it is not present locally, then creates
// the container. The docker CLI pulls implicitly on `docker create`; the
// SDK does not, so the pull happens here.
func (d *DockerRuntime) Create(ctx context.Context, spec ContainerSpec) (string, error) {
	if err := d.ensureImage(ctx, spec.Image); err != nil {
		return "", fmt.Errorf("pull image %s: %w", spec.Image, err)
	}

	absConfDir, err := filepath.Abs(spec.ConfDir)
	if err != nil {
		return "", fmt.Errorf("resolve conf directory: %w", err)
	}

	containerCfg := &container.Config{
		Image: spec.Image,
		Env:   spec.Env,
	}

	hostCfg := &container.HostConfig{
		NetworkMode: container.NetworkMode(spec.NetworkMode),
		Mounts: []mount.Mount{
			{
				Type:   mount.TypeBind,
				Source: absConfDir,
				Target: ConfMountTarget,
			},
		},
	}

	resp, err := d.client.ContainerCreate(ctx, containerCfg, hostCfg, nil, nil, spec.Name)
	if err != nil {
		return "", fmt.Errorf("create container: %w", err)
	}
	return resp.ID, nil
}

// Start starts a previously created container.
func (d *DockerRuntime) Start(ctx context.Context, id string) error {
	return d.client.ContainerStart(ctx, id, container.StartOptions{})
}

// Stop stops the container with the daemon's default grace period.
// Docker reports success for a container that is already stopped.
func (d *DockerRuntime) Stop(ctx context.Context, id string) error {
	timeout := stopTimeoutSeconds
	return d.client.ContainerStop(ctx, id, container.StopOptions{Timeout: &timeout})
}

// ListRunning returns the IDs of running containers whose name contains name.
func (d *DockerRuntime) ListRunning(ctx context.Context, name string) ([]string, error) {
	containers, err := d.client.ContainerList(ctx, container.ListOptions{
		Filters: filters.NewArgs(filters.Arg("name", name)),
	})
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(containers))
	for _, c := range containers {
		ids = append(ids, c.ID)
	}
	return ids, nil
}

// Logs returns the last tail lines of the container's combined output.
func (d *DockerRuntime) Logs(ctx context.Context, id string, tail int) (string, error) {
	reader, err := d.client.ContainerLogs(ctx, id, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Tail:       fmt.Sprintf("%d", tail),
	})
	if err != nil {
		return "", err
	}
	defer reader.Close()

	var output strings.Builder
	_, err = stdcopy.StdCopy(&output, &output, reader)
	if err != nil && err != io.EOF {
		return "", err
	}
	return output.String(), nil
}

// ensureImage pulls an image if not present locally.
func (d *DockerRuntime) ensureImage(ctx context.Context, imageName string) error {
	_, _, err := d.client.ImageInspectWithRaw(ctx, imageName)
	if err == nil {
		return nil
	}

	reader, err := d.client.ImagePull(ctx, imageName, image.PullOptions{})
	if err != nil {
		return err
	}
	defer reader.Close()

	// Consume the reader to complete the pull.
	_, err = io.Copy(io.Discard, reader)
	return err
}

// Close closes the Docker client.
func (d *DockerRuntime) Close() error {
	if d.client != nil {
		return d.client.Close()
	}
	return nil
}
