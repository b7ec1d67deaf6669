// Package main hosts the arenavision CLI entrypoint and command graph.
//
// The root command fetches the agenda, walks the user through event and
// channel menus and supervises the stream helper and player until they quit.
// Subcommands cover configuration scaffolding, dependency checks and a
// non-interactive agenda listing. This package is the only place that turns
// an error into a process exit status.
package main
