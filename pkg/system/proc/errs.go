package proc

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates that a required procfs record could not be opened.
	ErrNotFound = errors.New("proc: not found")

	// ErrNoTaskRoot indicates that the task directory itself could not be read,
	// so no enumeration result is meaningful.
	ErrNoTaskRoot = errors.New("proc: task root unreadable")
)

func notFound(path string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
}
