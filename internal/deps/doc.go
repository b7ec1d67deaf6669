// Package deps checks that the external programs the launcher spawns are
// installed before a run starts.
package deps
