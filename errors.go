package vroom

import (
	"errors"
	"fmt"
)

// Standard errors returned by vroom operations.
var (
	// ErrNoContainer is returned when an operation needs a provisioned
	// engine container but no identifier is on record.
	ErrNoContainer = errors.New("no engine container found")

	// ErrNoHome is returned when neither VROOM_HOME nor the user's home
	// directory can be resolved.
	ErrNoHome = errors.New("vroom home directory not set")
)

// EngineError wraps a container runtime failure with the operation that
// caused it.
type EngineError struct {
	Op  string // create, start, stop, list, logs
	ID  string // container identifier, if known
	Err error
}

func (e *EngineError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("engine %s %s: %v", e.Op, shortID(e.ID), e.Err)
	}
	return fmt.Sprintf("engine %s: %v", e.Op, e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// shortID truncates a runtime identifier to the 12-char form the docker
// CLI prints.
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
