// Package services defines the error taxonomy shared by the launcher's
// components.
//
// Key responsibilities:
//   - Sentinel markers (fetch, resolve, input, configuration, process) that
//     let the session and the command boundary classify failures with
//     errors.Is instead of string matching.
//   - The Wrap helper that stamps component and operation context onto a
//     failure while keeping the marker and the cause in the chain.
//   - IsFatal and NeedsIssueReport, which decide whether a failure ends the
//     run and whether the user should be pointed at the issue tracker.
//
// Internal packages return these errors; only cmd/arenavision turns them
// into an exit status.
package services
