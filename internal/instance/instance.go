// Package instance keeps two launchers from streaming on the same local port.
package instance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another launcher holds the port.
var ErrLocked = errors.New("another arenavision launcher is already using this stream port")

// Lock is a held per-port lock.
type Lock struct {
	path string
	lock *flock.Flock
}

// Dir returns the directory lock files live in.
func Dir() string {
	if dir := strings.TrimSpace(os.Getenv("XDG_RUNTIME_DIR")); dir != "" {
		return dir
	}
	return os.TempDir()
}

// Acquire takes the lock for port without blocking.
func Acquire(dir, port string) (*Lock, error) {
	if strings.TrimSpace(dir) == "" {
		dir = Dir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("arenavision-%s.lock", strings.TrimSpace(port)))
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (port %s, lock %s)", ErrLocked, port, path)
	}
	return &Lock{path: path, lock: fl}, nil
}

// Path is the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Release unlocks. It is safe to call on a nil Lock.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}
