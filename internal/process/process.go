package process

import (
	"context"
	"time"
)

// Handle is a supervised background process.
type Handle interface {
	PID() int
	StartedAt() time.Time
	// Alive polls without blocking.
	Alive() bool
	// ExitCode reports the exit status once the process is gone. A process
	// ended by a signal reports -1.
	ExitCode() (int, bool)
	// Terminate stops the process and everything in its process group, then
	// waits for it to be reaped. Calling it on an exited process is a no-op.
	Terminate() error
}

// Launcher starts the external helper and player programs.
type Launcher interface {
	StartHelper(ctx context.Context, locator, p2pPort, streamPort string) (Handle, error)
	// RunPlayer blocks until the player exits and returns its exit status.
	// A non-zero status is not an error; err is reserved for spawn failures.
	RunPlayer(ctx context.Context, command, streamURL string) (int, error)
}

// StreamURL is the local endpoint the helper serves for the player.
func StreamURL(port string) string {
	return "http://localhost:" + port + "/tv.asf"
}
