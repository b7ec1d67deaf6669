// Package process owns the lifecycle of the two external programs the
// launcher drives: the peer-to-peer helper that serves a stream on a local
// port, and the media player that reads it.
//
// The helper runs in its own process group so Terminate can take down any
// children it forks (SIGTERM, then SIGKILL after a grace period). Liveness is
// observed through a single waiter goroutine per process, which gives the
// session a non-blocking poll without ever calling Wait twice.
package process
