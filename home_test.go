package vroom

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestResolvePathsWithOverride(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("VROOM_HOME", tmpDir)

	paths, err := ResolvePaths()
	if err != nil {
		t.Fatalf("ResolvePaths failed: %v", err)
	}

	if paths.Home != tmpDir {
		t.Errorf("Home = %q, want %q", paths.Home, tmpDir)
	}
	if paths.ConfDir != filepath.Join(tmpDir, "conf") {
		t.Errorf("ConfDir = %q, want %q", paths.ConfDir, filepath.Join(tmpDir, "conf"))
	}
	if paths.ConfFile != filepath.Join(tmpDir, "vroom.conf") {
		t.Errorf("ConfFile = %q, want %q", paths.ConfFile, filepath.Join(tmpDir, "vroom.conf"))
	}
}

func TestResolvePathsDefaultsToUserHome(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("VROOM_HOME", "")
	t.Setenv("HOME", tmpDir)

	paths, err := ResolvePaths()
	if err != nil {
		t.Fatalf("ResolvePaths failed: %v", err)
	}

	want := filepath.Join(tmpDir, ".vroom")
	if paths.Home != want {
		t.Errorf("Home = %q, want %q", paths.Home, want)
	}
}

func TestResolvePathsNoHome(t *testing.T) {
	t.Setenv("VROOM_HOME", "")
	t.Setenv("HOME", "")

	_, err := ResolvePaths()
	if !errors.Is(err, ErrNoHome) {
		t.Fatalf("Expected ErrNoHome, got %v", err)
	}
}

func TestProvision(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("VROOM_HOME", filepath.Join(tmpDir, "vroom-home"))

	paths, err := ResolvePaths()
	if err != nil {
		t.Fatalf("ResolvePaths failed: %v", err)
	}

	if err := paths.Provision(); err != nil {
		t.Fatalf("Provision failed: %v", err)
	}

	info, err := os.Stat(paths.ConfDir)
	if err != nil || !info.IsDir() {
		t.Errorf("ConfDir was not created: %v", err)
	}
	if _, err := os.Stat(paths.ConfFile); err != nil {
		t.Errorf("ConfFile was not created: %v", err)
	}

	// Second call must be a no-op.
	if err := paths.Provision(); err != nil {
		t.Errorf("Provision on existing layout failed: %v", err)
	}
}
