// Package session implements the interactive controller that walks the user
// from the agenda to a channel and supervises the streaming helper and the
// player while it plays.
//
// The controller is single threaded. Liveness of the helper is polled
// without blocking between one second cold-start ticks; a helper that is
// still alive after the configured number of wait cycles is terminated
// outside server mode. Every path out of streaming terminates the helper,
// and a helper stopped that way is reported as a clean closure.
package session
