// Package runlock provides a file-based mutual exclusion guard over the
// staging directory, so only one process sweeps and stages at a time.
package runlock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrHeld reports that another process already holds the lock.
var ErrHeld = errors.New("another podscribe instance holds the staging lock")

// Lock guards a staging directory. Acquire is non-blocking; a held lock
// is reported as ErrHeld, never waited on.
type Lock struct {
	path string
	fl   *flock.Flock
}

// New creates a lock rooted in dir. The lock file is created on Acquire.
func New(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure lock directory: %w", err)
	}
	path := filepath.Join(dir, "podscribe.lock")
	return &Lock{path: path, fl: flock.New(path)}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Acquire attempts to take the lock without blocking.
func (l *Lock) Acquire() error {
	ok, err := l.fl.TryLock()
	if err != nil {
		return fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return ErrHeld
	}
	return nil
}

// Release gives the lock up. Safe to call when not held.
func (l *Lock) Release() error {
	return l.fl.Unlock()
}
