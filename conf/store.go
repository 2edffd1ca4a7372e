// Package conf handles the flat on-disk state vroom keeps under its home
// directory: the KEY=value config file and the provisioning of the files
// and directories around it.
package conf

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Store reads and appends KEY=value lines in a flat config file, the same
// format as a shell env file. Lookups scan in line order, so when a key
// appears more than once the first line wins.
type Store struct {
	path string
}

// NewStore returns a Store backed by the file at path. The file does not
// need to exist yet.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the config file location the store was built with.
func (s *Store) Path() string {
	return s.path
}

// Lookup returns the value recorded for key. A missing file or missing key
// is a valid state, not an error: ok reports whether the key was found.
// Blank lines and lines starting with # are skipped.
func (s *Store) Lookup(key string) (value string, ok bool, err error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		if strings.TrimSpace(k) == key {
			return strings.TrimSpace(v), true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", false, fmt.Errorf("read config: %w", err)
	}
	return "", false, nil
}

// Append writes one KEY=value line to the end of the file, creating it if
// needed. Existing lines are never rewritten or deduplicated, so appending
// a key twice leaves both lines in place; Lookup keeps returning the first.
func (s *Store) Append(key, value string) error {
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s=%s\n", key, value); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
