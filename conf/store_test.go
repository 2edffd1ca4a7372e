package conf

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreAppendLookup(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "vroom.conf"))

	if err := store.Append("VROOM_CONTAINER_ID", "abc123"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	value, ok, err := store.Lookup("VROOM_CONTAINER_ID")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected the key to be found")
	}
	if value != "abc123" {
		t.Errorf("Lookup = %q, want %q", value, "abc123")
	}
}

func TestStoreLookupMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "does-not-exist.conf"))

	value, ok, err := store.Lookup("VROOM_CONTAINER_ID")
	if err != nil {
		t.Fatalf("Lookup on missing file should not fail: %v", err)
	}
	if ok || value != "" {
		t.Errorf("Expected absent result, got %q (ok=%v)", value, ok)
	}
}

func TestStoreLookupMissingKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vroom.conf")
	if err := os.WriteFile(path, []byte("OTHER_KEY=value\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	store := NewStore(path)

	_, ok, err := store.Lookup("VROOM_CONTAINER_ID")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if ok {
		t.Error("Expected the key to be absent")
	}
}

func TestStoreFirstMatchWins(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "vroom.conf"))

	// Duplicate appends happen when start races or is rerun after an
	// external edit; the first line is authoritative.
	if err := store.Append("VROOM_CONTAINER_ID", "first"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := store.Append("VROOM_CONTAINER_ID", "second"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	value, ok, err := store.Lookup("VROOM_CONTAINER_ID")
	if err != nil || !ok {
		t.Fatalf("Lookup failed: %v (ok=%v)", err, ok)
	}
	if value != "first" {
		t.Errorf("Lookup = %q, want first match %q", value, "first")
	}
}

func TestStoreSkipsCommentsAndBlanks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vroom.conf")
	content := "# managed by vroom\n\n  \nnot a pair\nVROOM_CONTAINER_ID = abc123  \n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	store := NewStore(path)

	value, ok, err := store.Lookup("VROOM_CONTAINER_ID")
	if err != nil || !ok {
		t.Fatalf("Lookup failed: %v (ok=%v)", err, ok)
	}
	if value != "abc123" {
		t.Errorf("Lookup = %q, want %q (whitespace trimmed)", value, "abc123")
	}
}

func TestStoreAppendPreservesExistingLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vroom.conf")
	if err := os.WriteFile(path, []byte("EXISTING=1\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	store := NewStore(path)

	if err := store.Append("VROOM_CONTAINER_ID", "abc123"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	want := "EXISTING=1\nVROOM_CONTAINER_ID=abc123\n"
	if string(data) != want {
		t.Errorf("File content = %q, want %q", data, want)
	}
}
