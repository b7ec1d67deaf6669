// Package console is the interactive terminal front end: agenda and channel
// tables, numbered prompts, cold-start progress marks and status lines.
package console
