// Package testsupport builds isolated configurations and stub executables
// for tests across the repository.
package testsupport
