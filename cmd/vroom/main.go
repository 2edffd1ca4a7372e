// Package main provides the vroom CLI.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	vroom "github.com/everydev1618/govroom"
	"github.com/everydev1618/govroom/engine"
)

var (
	version = "dev"
)

func main() {
	paths, err := vroom.ResolvePaths()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Set VROOM_HOME or HOME to a writable directory.")
		os.Exit(1)
	}
	if err := paths.Provision(); err != nil {
		fmt.Fprintf(os.Stderr, "Error preparing %s: %v\n", paths.Home, err)
		os.Exit(1)
	}

	if len(os.Args) < 2 {
		printUsage()
		return
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "start":
		startCmd(paths, args)
	case "stop":
		stopCmd(paths, args)
	case "status":
		statusCmd(paths, args)
	case "logs":
		logsCmd(paths, args)
	case "config":
		configCmd(paths, args)
	case "version":
		fmt.Printf("vroom %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
	}
}

func printUsage() {
	fmt.Println(`Vroom - VROOM routing-engine container manager

Usage:
  vroom <command> [options]

Commands:
  start     Provision and start the engine container
  stop      Stop the engine container
  status    Show the engine container state
  logs      Show engine container logs
  config    Show resolved paths and the engine configuration
  version   Print version information
  help      Show this help message

Examples:
  vroom start
  vroom start --config my-config.yml
  vroom stop

Run 'vroom <command> --help' for more information on a command.`)
}

// newController builds a controller over the real Docker runtime. The
// caller must Close the returned runtime.
func newController(paths vroom.Paths) (*vroom.Controller, *engine.DockerRuntime) {
	rt, err := engine.NewDockerRuntime()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return vroom.NewController(paths, rt), rt
}

// startCmd provisions and starts the engine container.
func startCmd(paths vroom.Paths, args []string) {
	fs := flag.NewFlagSet("start", flag.ExitOnError)
	config := fs.String("config", "", "Engine config.yml to copy into the conf directory")

	fs.Usage = func() {
		fmt.Println(`Usage: vroom start [options]

Provision and start the engine container. The first start creates the
container and records its identifier; later starts reuse it.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	ctl, rt := newController(paths)
	defer rt.Close()

	outcome, err := ctl.Start(context.Background(), vroom.StartOptions{ConfigSource: *config})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch outcome {
	case vroom.StartAlreadyRunning:
		fmt.Println("Engine container is already running.")
	case vroom.StartStarted:
		fmt.Println("Engine container started.")
	default:
		fmt.Println("Engine container created and started.")
	}
}

// stopCmd stops the engine container.
func stopCmd(paths vroom.Paths, args []string) {
	fs := flag.NewFlagSet("stop", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Println(`Usage: vroom stop

Stop the engine container recorded in the config file.`)
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	ctl, rt := newController(paths)
	defer rt.Close()

	err := ctl.Stop(context.Background())
	if errors.Is(err, vroom.ErrNoContainer) {
		fmt.Fprintln(os.Stderr, "No engine container found. Run 'vroom start' first.")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Engine container stopped.")
}

// statusCmd prints the engine container state.
func statusCmd(paths vroom.Paths, args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	ctl, rt := newController(paths)
	defer rt.Close()

	status, err := ctl.Status(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if status.State == vroom.Unprovisioned {
		fmt.Println("Engine container: not provisioned")
		return
	}
	fmt.Printf("Engine container: %s (%s)\n", status.State, status.ContainerID)
}

// logsCmd prints engine container logs.
func logsCmd(paths vroom.Paths, args []string) {
	fs := flag.NewFlagSet("logs", flag.ExitOnError)
	tail := fs.Int("tail", 100, "Number of log lines to show")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	ctl, rt := newController(paths)
	defer rt.Close()

	out, err := ctl.Logs(context.Background(), *tail)
	if errors.Is(err, vroom.ErrNoContainer) {
		fmt.Fprintln(os.Stderr, "No engine container found. Run 'vroom start' first.")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(out)
}

// configCmd prints the resolved paths and a summary of the engine config.
func configCmd(paths vroom.Paths, args []string) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	fmt.Printf("Home:        %s\n", paths.Home)
	fmt.Printf("Conf dir:    %s\n", paths.ConfDir)
	fmt.Printf("Config file: %s\n", paths.ConfFile)

	cfgPath := filepath.Join(paths.ConfDir, "config.yml")
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		fmt.Println("Engine config: not seeded yet (run 'vroom start')")
		return
	}

	cfg, err := engine.LoadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid engine config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Engine config: %s\n", cfgPath)
	fmt.Printf("  router: %s\n", cfg.CLIArgs.Router)
	fmt.Printf("  port:   %d\n", cfg.CLIArgs.Port)
	for router, profiles := range cfg.RoutingServers {
		for profile, srv := range profiles {
			fmt.Printf("  server: %s/%s -> %s:%s\n", router, profile, srv.Host, srv.Port)
		}
	}
}
