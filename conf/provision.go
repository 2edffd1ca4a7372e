package conf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrSourceMissing is returned by SyncFile when the source file does not exist.
var ErrSourceMissing = errors.New("source file does not exist")

// CopyResult reports what SyncFile did with the destination.
type CopyResult int

const (
	// CopyUnchanged means the destination was at least as new as the source.
	CopyUnchanged CopyResult = iota
	// CopyFresh means the destination did not exist and was created.
	CopyFresh
	// CopyReplaced means the destination was older and was overwritten.
	CopyReplaced
)

func (r CopyResult) String() string {
	switch r {
	case CopyFresh:
		return "fresh copy"
	case CopyReplaced:
		return "replaced"
	default:
		return "unchanged"
	}
}

// SyncFile copies src over dst when dst is missing or strictly older than
// src by modification time. Callers must not invoke it concurrently on the
// same destination.
func SyncFile(src, dst string) (CopyResult, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return CopyUnchanged, fmt.Errorf("%s: %w", src, ErrSourceMissing)
		}
		return CopyUnchanged, fmt.Errorf("stat source: %w", err)
	}

	result := CopyFresh
	dstInfo, err := os.Stat(dst)
	if err == nil {
		if !dstInfo.ModTime().Before(srcInfo.ModTime()) {
			return CopyUnchanged, nil
		}
		result = CopyReplaced
	} else if !os.IsNotExist(err) {
		return CopyUnchanged, fmt.Errorf("stat destination: %w", err)
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return CopyUnchanged, fmt.Errorf("read source: %w", err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return CopyUnchanged, fmt.Errorf("write destination: %w", err)
	}
	return result, nil
}

// EnsureDir creates dir and any missing parents. It reports whether it
// created anything; false means the directory already existed. Safe to
// call repeatedly.
func EnsureDir(dir string) (bool, error) {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("%s exists and is not a directory", dir)
		}
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("create %s: %w", dir, err)
	}
	return true, nil
}

// EnsureFile creates an empty file at path, along with any missing parent
// directories, if it does not already exist.
func EnsureFile(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if _, err := EnsureDir(filepath.Dir(path)); err != nil {
		return false, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("create %s: %w", path, err)
	}
	f.Close()
	return true, nil
}
