// Package logging assembles structured slog loggers used across the launcher.
//
// It owns the console and JSON handlers, level and output plumbing, and a
// fan-out handler that tees records into an optional JSON log file. Loggers
// are built once by the command layer and injected into components, which
// tag them with NewComponentLogger; nothing in the tree relies on the slog
// default logger. NewNop serves tests and wiring code that cannot fail.
package logging
