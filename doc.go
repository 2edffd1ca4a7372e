// Package vroom manages the lifecycle of a single VROOM routing-engine
// container.
//
// Vroom provisions one named Docker container running the VROOM routing
// engine, records the identifier the daemon assigns in a flat config file
// under the vroom home directory, and reuses that record on every later
// invocation to find, start and stop the same container.
//
// # Quick Start
//
// Resolve paths, provision the home layout, and start the engine:
//
//	paths, err := vroom.ResolvePaths()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := paths.Provision(); err != nil {
//	    log.Fatal(err)
//	}
//
//	rt, err := engine.NewDockerRuntime()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rt.Close()
//
//	ctl := vroom.NewController(paths, rt)
//	outcome, err := ctl.Start(ctx, vroom.StartOptions{})
//
// Stop it again later, from a different process:
//
//	err := ctl.Stop(ctx)
//	if errors.Is(err, vroom.ErrNoContainer) {
//	    // nothing was ever started; run Start first
//	}
//
// # Architecture
//
// The main components are:
//
//   - Paths: home, conf-directory and config-file locations, resolved once
//     from the environment and passed explicitly to everything below
//   - conf.Store: the flat KEY=value file holding the container identifier
//   - engine.Runtime: the narrow container-runtime surface (Create, Start,
//     Stop, ListRunning, Logs), implemented by engine.DockerRuntime and by
//     engine.FakeRuntime for tests
//   - Controller: the start/stop state machine over the store and runtime
//
// # Concurrency
//
// Vroom is a one-shot CLI: one command runs to completion per process with
// no internal parallelism. The config file is not locked, so two concurrent
// `vroom start` invocations can race and both append an identifier record;
// the store's first-match-wins lookup keeps later invocations deterministic,
// but the race itself is an accepted limitation.
package vroom
